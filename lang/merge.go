package lang

// Merge combines change into base, modifying base in place.
//
// Every attribute of change overwrites the same-named attribute of base.
// Each direct child of change is merged recursively into the first direct
// child of base with the same tag; a child without such a match is appended
// to base as a deep copy. change is never modified.
//
// Matching is by tag only. When base holds several siblings with one tag,
// every same-tag child of change merges into the first of them.
func Merge(change, base *Node) {
	for key, value := range change.Attrs.All() {
		base.Attrs.Set(key, value)
	}

	for _, c := range change.Children {
		if b := base.Child(c.Tag); b != nil {
			Merge(c, b)

			continue
		}

		base.Append(c.Clone())
	}
}

// Extend appends to base a deep copy of each direct child of defaults whose
// tag does not already occur among the direct children of base.
// Attributes and text are left untouched.
func Extend(base, defaults *Node) {
	present := make(map[string]bool, len(base.Children))
	for _, c := range base.Children {
		present[c.Tag] = true
	}

	for _, d := range defaults.Children {
		if !present[d.Tag] {
			base.Append(d.Clone())
			present[d.Tag] = true
		}
	}
}
