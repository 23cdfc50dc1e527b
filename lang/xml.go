package lang

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/antchfx/xmlquery"
)

// ToXML returns n as an XML element. Attributes map to XML attributes,
// text to character data, and children to child elements.
func ToXML(n *Node) string {
	return toXMLNode(n).OutputXML(true)
}

// FormatXML writes n as an XML document, preceded by an XML declaration.
func FormatXML(w io.Writer, n *Node) error {
	doc := &xmlquery.Node{Type: xmlquery.DocumentNode}

	decl := &xmlquery.Node{Type: xmlquery.DeclarationNode, Data: "xml"}
	xmlquery.AddAttr(decl, "version", "1.0")
	xmlquery.AddChild(doc, decl)
	xmlquery.AddChild(doc, toXMLNode(n))

	if _, err := io.WriteString(w, doc.OutputXML(false)); err != nil {
		return err
	}

	_, err := io.WriteString(w, "\n")

	return err
}

func toXMLNode(n *Node) *xmlquery.Node {
	elem := &xmlquery.Node{Type: xmlquery.ElementNode, Data: n.Tag}

	for key, value := range n.Attrs.All() {
		elem.Attr = append(elem.Attr, xmlquery.Attr{
			Name:  xml.Name{Local: key},
			Value: value,
		})
	}

	if n.Text != "" {
		xmlquery.AddChild(elem, &xmlquery.Node{
			Type: xmlquery.TextNode,
			Data: n.Text,
		})
	}

	for _, c := range n.Children {
		xmlquery.AddChild(elem, toXMLNode(c))
	}

	return elem
}

// ParseXML reads an XML document and converts its document element into a
// tree. Element names become tags (namespace prefixes are dropped),
// attributes keep their document order, and the trimmed character data
// directly inside an element becomes its text.
func ParseXML(r io.Reader) (*Node, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, ErrSyntax.Wrap(err)
	}

	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			return fromXMLNode(c), nil
		}
	}

	return nil, ErrStructure.Wrap(io.ErrUnexpectedEOF)
}

func fromXMLNode(x *xmlquery.Node) *Node {
	n := NewNode(x.Data)

	for _, a := range x.Attr {
		n.Attrs.Set(a.Name.Local, a.Value)
	}

	var text strings.Builder

	for c := x.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.ElementNode:
			n.Append(fromXMLNode(c))

		case xmlquery.TextNode, xmlquery.CharDataNode:
			text.WriteString(c.Data)
		}
	}

	n.Text = strings.TrimSpace(text.String())

	return n
}
