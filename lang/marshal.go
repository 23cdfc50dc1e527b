package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// TextKey is the reserved key under which a node's text is stored in its
// attribute mapping in the struct form.
const TextKey = "_TEXT"

// ToStruct converts n into generic nested maps and slices:
//
//	{tag: [attributes, child, child, ...]}
//
// where attributes is a map of the node's attributes, plus its text under
// [TextKey] when present, and each child is converted the same way.
func ToStruct(n *Node) map[string]any {
	return map[string]any{n.Tag: structBody(n)}
}

// ToStructChildren converts only the children of n, each as by [ToStruct].
func ToStructChildren(n *Node) []any {
	return structBody(n)[1:]
}

func structBody(n *Node) []any {
	attrs := make(map[string]any, len(n.Attrs)+1)
	for key, value := range n.Attrs.All() {
		attrs[key] = value
	}

	if n.Text != "" {
		attrs[TextKey] = n.Text
	}

	body := make([]any, 0, len(n.Children)+1)
	body = append(body, attrs)

	for _, c := range n.Children {
		body = append(body, ToStruct(c))
	}

	return body
}

// MarshalJSON implements json.Marshaler using the struct form.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(ToStruct(n))
}

// MarshalYAML implements yaml.BytesMarshaler using the struct form.
func (n *Node) MarshalYAML() ([]byte, error) {
	return yaml.Marshal(ToStruct(n))
}

// FormatJSON writes the struct form of n as JSON to the writer.
func FormatJSON(w io.Writer, n *Node, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(ToStruct(n), "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(ToStruct(n))
	}

	if err != nil {
		return ErrEncode.Wrap(err)
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

// FormatYAML writes the struct form of n as YAML to the writer.
func FormatYAML(ctx context.Context, w io.Writer, n *Node, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, ToStruct(n), opts...)
	if err != nil {
		return ErrEncode.Wrap(err)
	}

	_, err = fmt.Fprint(w, string(data))

	return err
}
