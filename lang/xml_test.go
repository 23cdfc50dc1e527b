package lang

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestXML_RoundTrip(t *testing.T) {
	inputs := map[string]string{
		"network": marshalInput,
		"escaped": `vm { desc = "a < b & c"; note { "x > y" } }`,
		"repeated": "mount /a; mount /b; mount /c;",
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			root := mustParseNode(t, input)

			got, err := ParseXML(strings.NewReader(ToXML(root)))
			if err != nil {
				t.Fatalf("ParseXML error: %v", err)
			}

			if diff := cmp.Diff(root, got); diff != "" {
				t.Errorf("tree mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormatXML(t *testing.T) {
	root := mustParseNode(t, `vm { name = a; disk x; }`, WithSingleRoot(true))

	var buf bytes.Buffer
	if err := FormatXML(&buf, root); err != nil {
		t.Fatalf("format error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{`<?xml version="1.0"?>`, `<vm name="a">`, `<disk>x</disk>`} {
		if !strings.Contains(out, want) {
			t.Errorf("XML output missing %q:\n%s", want, out)
		}
	}

	got, err := ParseXML(strings.NewReader(out))
	if err != nil {
		t.Fatalf("ParseXML error: %v", err)
	}

	if !got.Equal(root) {
		t.Errorf("tree changed:\nwant:\n%s\ngot:\n%s", root, got)
	}
}

func TestParseXML(t *testing.T) {
	input := `<?xml version="1.0"?>
<!-- comment -->
<domain type="kvm">
  <name>demo</name>
  <devices>
    <disk device="disk"><source file="/img.qcow2"/></disk>
    <script><![CDATA[echo "hi"]]></script>
  </devices>
</domain>`

	want := &Node{
		Tag:   "domain",
		Attrs: Attrs{{"type", "kvm"}},
		Children: []*Node{
			{Tag: "name", Text: "demo"},
			{
				Tag: "devices",
				Children: []*Node{
					{
						Tag:   "disk",
						Attrs: Attrs{{"device", "disk"}},
						Children: []*Node{{
							Tag:   "source",
							Attrs: Attrs{{"file", "/img.qcow2"}},
						}},
					},
					{Tag: "script", Text: `echo "hi"`},
				},
			},
		},
	}

	got, err := ParseXML(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseXML error: %v", err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestParseXML_Errors(t *testing.T) {
	if _, err := ParseXML(strings.NewReader("<a><b></a>")); !errors.Is(err, ErrSyntax) {
		t.Errorf("malformed XML: expected ErrSyntax, got %v", err)
	}

	if _, err := ParseXML(strings.NewReader(`<?xml version="1.0"?>`)); !errors.Is(err, ErrStructure) {
		t.Errorf("no element: expected ErrStructure, got %v", err)
	}
}
