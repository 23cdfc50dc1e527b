package lang

// IDMapper receives the positional values written after an element's tag
// when the element also has a block with nested constructs, and attaches
// them to the node however the caller sees fit.
//
// For example, given
//
//	resource "testlab" "loadbalancer1" {
//	    size = 2
//	}
//
// the mapper is called with the resource node and
// []string{"testlab", "loadbalancer1"}.
type IDMapper func(n *Node, ids []string)

// MapIDToAttr returns an [IDMapper] that stores the last positional value in
// the attribute named name.
//
//	user "toto" { shell = zsh }
//
// becomes a user node with attributes name=toto and shell=zsh when used as
// MapIDToAttr("name").
func MapIDToAttr(name string) IDMapper {
	return func(n *Node, ids []string) {
		if len(ids) == 0 {
			return
		}

		n.Attrs.Set(name, ids[len(ids)-1])
	}
}

// MapIDToElem returns an [IDMapper] that inserts a leaf tagged tag, holding
// the last positional value, as the first child of the node.
//
//	user "toto" { shell = zsh }
//
// becomes a user node whose first child is name=toto when used as
// MapIDToElem("name").
func MapIDToElem(tag string) IDMapper {
	return func(n *Node, ids []string) {
		if len(ids) == 0 {
			return
		}

		n.Insert(0, NewLeaf(tag, ids[len(ids)-1]))
	}
}
