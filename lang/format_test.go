package lang

import (
	"bytes"
	"strings"
	"testing"
)

func TestFormat_Node(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		opts []FormatOption
		want string
	}{
		{
			name: "empty leaf",
			node: &Node{Tag: "x11"},
			want: "x11;\n",
		},
		{
			name: "leaf with bare value",
			node: &Node{Tag: "disk", Text: "/var/lib/vm.qcow2"},
			want: "disk /var/lib/vm.qcow2;\n",
		},
		{
			name: "leaf with quoted value",
			node: &Node{Tag: "motd", Text: "hello world"},
			want: "motd \"hello world\";\n",
		},
		{
			name: "block with text, attributes, and children",
			node: &Node{
				Tag:   "vm",
				Text:  "a vm",
				Attrs: Attrs{{"name", "a"}, {"memory", "1024"}},
				Children: []*Node{
					{Tag: "disk", Text: "x"},
					{Tag: "net", Attrs: Attrs{{"bridge", "br0"}}},
				},
			},
			want: `vm {
    "a vm"
    name   = a
    memory = 1024
    disk x;
    net {
        bridge = br0
    }
}
`,
		},
		{
			name: "custom indent applies at every depth",
			node: &Node{
				Tag: "a",
				Children: []*Node{{
					Tag: "b",
					Children: []*Node{{
						Tag:   "c",
						Attrs: Attrs{{"k", "v"}},
					}},
				}},
			},
			opts: []FormatOption{WithIndent("\t")},
			want: "a {\n\tb {\n\t\tc {\n\t\t\tk = v\n\t\t}\n\t}\n}\n",
		},
		{
			name: "alignment counts runes",
			node: &Node{
				Tag:   "r",
				Attrs: Attrs{{"clé", "1"}, {"k", "2"}},
			},
			want: "r {\n    clé = 1\n    k   = 2\n}\n",
		},
		{
			name: "without root",
			node: &Node{
				Tag:   "root",
				Attrs: Attrs{{"mode", "nat"}},
				Children: []*Node{
					{Tag: "a"},
					{Tag: "b", Text: "x"},
				},
			},
			opts: []FormatOption{WithRoot(false)},
			want: "mode = nat\n\na;\n\nb x;\n",
		},
		{
			name: "without root and no attributes",
			node: &Node{
				Tag: "root",
				Children: []*Node{
					{Tag: "a"},
					{Tag: "b", Attrs: Attrs{{"k", "v"}}},
				},
			},
			opts: []FormatOption{WithRoot(false)},
			want: "a;\n\nb {\n    k = v\n}\n",
		},
		{
			name: "without root drops text",
			node: &Node{
				Tag:      "root",
				Text:     "banner",
				Children: []*Node{{Tag: "a"}},
			},
			opts: []FormatOption{WithRoot(false)},
			want: "a;\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Format(&buf, tt.node, tt.opts...); err != nil {
				t.Fatalf("format error: %v", err)
			}

			if got := buf.String(); got != tt.want {
				t.Errorf("format mismatch:\nwant: %q\ngot:  %q", tt.want, got)
			}
		})
	}
}

func TestFormat_Quoting(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"10.20.30.1", "10.20.30.1"},
		{"http://host:80/a,b", "http://host:80/a,b"},
		{"snake_case-name", "snake_case-name"},
		{"hello world", `"hello world"`},
		{"", `""`},
		{"a=b", `"a=b"`},
		{"{x}", `"{x}"`},
		{"semi;colon", `"semi;colon"`},
		{"//srv/share", `"//srv/share"`},
		{"/srv//share", "/srv//share"},
		{"/", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			if got := quote(tt.value); got != tt.want {
				t.Errorf("quote(%q) = %s, want %s", tt.value, got, tt.want)
			}
		})
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	inputs := []string{
		`network "mynet1name" {
    bridge.name = "br0"
    forward.mode = nat
    forward.nat.port { start = 1024 end = 65535 }
    ip {
        address = 10.20.30.1
        netmask = 255.255.255.0
        dhcp.range { start = 10.20.30.40 end = 10.20.30.254 }
    }
}`,
		`motd { "hello world" lang = en }
mount /a; mount /b;
x11;
description = "a long description"`,
		"vm { name = a; disk x; b = 2; net { bridge = br0 } }",
		`k = "//x"`,
		`tag "//srv/share";`,
	}

	for _, input := range inputs {
		t.Run(strings.Fields(input)[0], func(t *testing.T) {
			first := mustParseNode(t, input, WithIDMapper(MapIDToElem("name")))
			text := ToText(first, WithRoot(false))

			second := mustParseNode(t, text)
			if !first.Equal(second) {
				t.Fatalf("tree changed after round trip:\nfirst:\n%s\nsecond:\n%s",
					ToText(first), ToText(second))
			}

			if again := ToText(second, WithRoot(false)); again != text {
				t.Errorf("second format differs:\nfirst:\n%s\nsecond:\n%s", text, again)
			}
		})
	}
}

func TestDocument_Format(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  []Option
		want  string
	}{
		{
			name:  "wrapped",
			input: "a = 1\nb { c = 2 }\nd x;",
			want:  "a = 1\n\nb {\n    c = 2\n}\n\nd x;\n",
		},
		{
			name:  "single root",
			input: "b { c = 2 }",
			opts:  []Option{WithSingleRoot(true)},
			want:  "b {\n    c = 2\n}\n",
		},
		{
			name:  "unwrapped",
			input: "a x; b { c = 2 }",
			opts:  []Option{WithRootName("")},
			want:  "a x;\n\nb {\n    c = 2\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(t.Context(), tt.input, tt.opts...)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			var buf bytes.Buffer
			if err := doc.Format(&buf); err != nil {
				t.Fatalf("format error: %v", err)
			}

			if got := buf.String(); got != tt.want {
				t.Errorf("format mismatch:\nwant: %q\ngot:  %q", tt.want, got)
			}
		})
	}
}
