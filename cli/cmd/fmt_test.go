package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/elconf/lang"
)

// wrapped are the parse flags a command receives from kong by default.
var wrapped = ParseFlags{RootName: lang.DefaultRootName}

type runner interface {
	Run(ctx context.Context) error
}

// run executes cmd with its output captured.
func run(t *testing.T, cmd runner) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	err := cmd.Run(WithOutput(context.Background(), &buf))

	return buf.String(), err
}

func TestNative(t *testing.T) {
	const input = "vm a { cpu = 2; disk x }"

	tests := []struct {
		name   string
		flags  ParseFlags
		indent int
		want   string
	}{
		{
			name:   "ids discarded",
			flags:  wrapped,
			indent: 4,
			want:   "vm {\n    cpu = 2\n    disk x;\n}\n",
		},
		{
			name:   "id element",
			flags:  ParseFlags{RootName: "root", IDElem: "name"},
			indent: 4,
			want:   "vm {\n    cpu = 2\n    name a;\n    disk x;\n}\n",
		},
		{
			name:   "id attribute",
			flags:  ParseFlags{RootName: "root", IDAttr: "name"},
			indent: 2,
			want:   "vm {\n  cpu  = 2\n  name = a\n  disk x;\n}\n",
		},
		{
			name:   "tabs",
			flags:  ParseFlags{SingleRoot: true},
			indent: 0,
			want:   "vm {\n\tcpu = 2\n\tdisk x;\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "vm.conf", input)

			got, err := run(t, &Native{ParseFlags: tt.flags, Indent: tt.indent, Source: []string{path}})
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			if got != tt.want {
				t.Errorf("output mismatch:\nwant: %q\ngot:  %q", tt.want, got)
			}
		})
	}
}

func TestNative_SyntaxError(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.conf", "vm {\n  cpu = ;\n}")

	_, err := run(t, &Native{ParseFlags: wrapped, Indent: 4, Source: []string{path}})
	if !errors.Is(err, lang.ErrSyntax) {
		t.Fatalf("Run() error = %v, want ErrSyntax", err)
	}

	if !strings.HasPrefix(err.Error(), path+":2:") {
		t.Errorf("error %q does not name the file and line", err)
	}
}

func TestNative_Diff(t *testing.T) {
	path := writeFile(t, t.TempDir(), "vm.conf", "vm {\n    cpu = 2\n}\nx11 ;\n")

	got, err := run(t, &Native{ParseFlags: wrapped, Indent: 4, Diff: true, Source: []string{path}})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := "--- " + path + "\n+++ " + path + " (formatted)\n" +
		" vm {\n" +
		"     cpu = 2\n" +
		" }\n" +
		"-x11 ;\n" +
		"+\n" +
		"+x11;\n"
	if got != want {
		t.Errorf("diff mismatch:\nwant: %q\ngot:  %q", want, got)
	}

	formatted := writeFile(t, t.TempDir(), "ok.conf", "x11;\n")

	got, err = run(t, &Native{ParseFlags: wrapped, Indent: 4, Diff: true, Source: []string{formatted}})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got != "" {
		t.Errorf("diff of formatted input = %q, want empty", got)
	}
}

func TestNative_Write(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "vm.conf", "vm{cpu=2}")

	out, err := run(t, &Native{ParseFlags: wrapped, Indent: 4, Write: true, Source: []string{path}})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if out != "" {
		t.Errorf("--write printed %q", out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if want := "vm {\n    cpu = 2\n}\n"; string(data) != want {
		t.Errorf("rewritten file = %q, want %q", data, want)
	}

	other := writeFile(t, dir, "other.conf", "x;")

	_, err = run(t, &Native{ParseFlags: wrapped, Write: true, Source: []string{path, other}})
	if !errors.Is(err, ErrWriteOutput) {
		t.Errorf("--write with two sources: err = %v, want ErrWriteOutput", err)
	}
}

func TestJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "net.conf",
		"network { bridge.name = br0; ip { address = 10.0.0.1 } }")

	got, err := run(t, &JSON{ParseFlags: ParseFlags{SingleRoot: true}, Indent: 0, Source: []string{path}})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(got), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, got)
	}

	root, err := lang.ParseNode(context.Background(),
		"network { bridge.name = br0; ip { address = 10.0.0.1 } }",
		lang.WithSingleRoot(true))
	if err != nil {
		t.Fatal(err)
	}

	var want map[string]any
	if err := json.Unmarshal([]byte(mustJSON(t, root)), &want); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(want, decoded); diff != "" {
		t.Errorf("JSON mismatch (-want +got):\n%s", diff)
	}
}

func mustJSON(t *testing.T, n *lang.Node) string {
	t.Helper()

	var buf bytes.Buffer
	if err := lang.FormatJSON(&buf, n, 0); err != nil {
		t.Fatal(err)
	}

	return buf.String()
}

func TestJSON_Unwrapped(t *testing.T) {
	path := writeFile(t, t.TempDir(), "two.conf", "a x; b { c = 1 }")

	got, err := run(t, &JSON{ParseFlags: ParseFlags{}, Source: []string{path}})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) != 2 {
		t.Fatalf("want one JSON value per top-level node, got %q", got)
	}

	for _, line := range lines {
		if !json.Valid([]byte(line)) {
			t.Errorf("invalid JSON value %q", line)
		}
	}
}

func TestYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "vm.conf", "vm { name = a; disk x; }")

	got, err := run(t, &YAML{ParseFlags: ParseFlags{SingleRoot: true}, Indent: 2, Source: []string{path}})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for _, want := range []string{"vm:", "name: a", "disk: x"} {
		if !strings.Contains(got, want) {
			t.Errorf("YAML output missing %q:\n%s", want, got)
		}
	}

	path = writeFile(t, t.TempDir(), "two.conf", "a x; b y;")

	got, err = run(t, &YAML{ParseFlags: ParseFlags{}, Indent: 2, Source: []string{path}})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if strings.Count(got, "---\n") != 1 {
		t.Errorf("unwrapped YAML should hold two documents:\n%s", got)
	}
}

func TestXML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "vm.conf", `vm "a" { disk x; }`)

	got, err := run(t, &XML{
		ParseFlags: ParseFlags{SingleRoot: true, IDAttr: "name"},
		Source:     []string{path},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for _, want := range []string{`<?xml version="1.0"?>`, `<vm name="a">`, "<disk>x</disk>"} {
		if !strings.Contains(got, want) {
			t.Errorf("XML output missing %q:\n%s", want, got)
		}
	}

	back, err := lang.ParseXML(strings.NewReader(got))
	if err != nil {
		t.Fatalf("ParseXML() error = %v", err)
	}

	if back.Tag != "vm" || back.Child("disk") == nil {
		t.Errorf("XML did not round trip: %s", lang.ToText(back))
	}
}

func TestStruct(t *testing.T) {
	path := writeFile(t, t.TempDir(), "vm.conf", "vm { name = a }")

	got, err := run(t, &Struct{ParseFlags: wrapped, Source: []string{path}})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if want := "map[root:[map[vm:[map[name:a]]]]]\n"; got != want {
		t.Errorf("Struct output = %q, want %q", got, want)
	}

	got, err = run(t, &Struct{ParseFlags: wrapped, Children: true, Source: []string{path}})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if want := "[map[vm:[map[name:a]]]]\n"; got != want {
		t.Errorf("Struct --children output = %q, want %q", got, want)
	}
}
