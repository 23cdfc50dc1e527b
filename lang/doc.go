// Package lang parses and writes elconf, a small brace-and-semicolon
// configuration language, into a generic element tree.
//
// Every document becomes a tree of [Node] values, each carrying a tag,
// ordered attributes, optional text, and ordered children. The tree can be
// written back in the native syntax, converted to nested maps and slices for
// JSON or YAML, converted to and from XML, and queried with XPath.
//
// # Grammar
//
// Informal EBNF:
//
//	Document   → Construct* EOF
//	Construct  → Attribute | Element
//	Attribute  → Name '=' Value ';'?
//	Element    → Name Value* ( Block | ';' )
//	Block      → '{' String? Construct* '}'
//	Value      → Word | String | Text
//	Name       → [_A-Za-z][A-Za-z0-9_-]* ( '.' [A-Za-z0-9_-]+ )*
//	Word       → [A-Za-z0-9/:.,_-]+
//	String     → '"' ( '\' any | [^"\] )* '"'
//	Text       → '```' any* '```'
//
// Comments start with '#' or '//' and run to the end of the line, or are
// enclosed in '/*' and '*/'. Strings resolve the escapes \" \\ \/ \b \n \r
// and \t; triple-backtick text is taken verbatim.
//
// # Tree construction
//
// An attribute sets a key on the enclosing node. An element with a block
// becomes one node holding the block's text, attributes, and nested
// elements. An element with values but without nested constructs becomes
// one leaf per value, all sharing the element's tag. Values written before a
// block that also contains nested constructs are passed to an [IDMapper],
// or discarded when none is configured.
//
// A dotted name such as net.ip.address addresses a path of nested nodes.
// Each segment but the last reuses the first existing child with that tag or
// creates one, so
//
//	net.ip.address = 10.0.0.1
//	net.ip.netmask = 255.0.0.0
//
// and
//
//	net { ip { address = 10.0.0.1; netmask = 255.0.0.0 } }
//
// produce the same tree.
//
// # Example
//
//	# libvirt style network
//	network "lan" {
//	    bridge.name = br0
//	    forward.mode = nat
//	    ip {
//	        address = 10.20.30.1
//	        netmask = 255.255.255.0
//	        dhcp.range { start = 10.20.30.40; end = 10.20.30.254 }
//	    }
//	}
//
// Parsed with [MapIDToElem]("name"), the network node receives a first child
// "name lan;" and the dotted names expand into bridge, forward, and dhcp
// nodes.
//
// # API
//
//   - [Parse], [ParseReader], [ParseFile], [ParseNode]: build a tree
//   - [Format], [ToText]: write the native syntax
//   - [ToStruct], [FormatJSON], [FormatYAML]: nested map form
//   - [ToXML], [FormatXML], [ParseXML]: XML form
//   - [Merge], [Extend]: combine trees
//   - [CompileQuery], [Node.Find], [Node.FindAll]: XPath selection
package lang
