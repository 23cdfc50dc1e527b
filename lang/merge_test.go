package lang

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMerge(t *testing.T) {
	tests := []struct {
		name   string
		base   string
		change string
		want   string
	}{
		{
			name:   "attribute overwrite",
			base:   `vm { cpu = 1; mem = 512 }`,
			change: `vm { mem = 1024 }`,
			want:   `vm { cpu = 1; mem = 1024 }`,
		},
		{
			name:   "attribute added",
			base:   `vm { cpu = 1 }`,
			change: `vm { mem = 1024 }`,
			want:   `vm { cpu = 1; mem = 1024 }`,
		},
		{
			name:   "recursive merge",
			base:   `vm { net { bridge = br0; mac = aa } }`,
			change: `vm { net { bridge = br1 } }`,
			want:   `vm { net { bridge = br1; mac = aa } }`,
		},
		{
			name:   "unmatched child appended",
			base:   `vm { disk a; }`,
			change: `vm { net { bridge = br0 } }`,
			want:   `vm { disk a; net { bridge = br0 } }`,
		},
		{
			name:   "first same-tag child receives the change",
			base:   `r { x; x; }`,
			change: `r { x { a = 1 } }`,
			want:   `r { x { a = 1 } x; }`,
		},
		{
			name:   "every same-tag change merges into the first match",
			base:   `r { x; x; }`,
			change: `r { x { a = 1 } x { b = 2 } }`,
			want:   `r { x { a = 1; b = 2 } x; }`,
		},
		{
			name:   "text is not merged",
			base:   `r { "keep" }`,
			change: `r { "drop" k = v }`,
			want:   `r { "keep" k = v }`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := mustParseNode(t, tt.base, WithSingleRoot(true))
			change := mustParseNode(t, tt.change, WithSingleRoot(true))
			want := mustParseNode(t, tt.want, WithSingleRoot(true))

			before := change.Clone()

			Merge(change, base)

			if diff := cmp.Diff(want, base); diff != "" {
				t.Errorf("merge mismatch (-want +got):\n%s", diff)
			}

			if diff := cmp.Diff(before, change); diff != "" {
				t.Errorf("change was modified (-before +after):\n%s", diff)
			}
		})
	}
}

func TestMerge_AppendsIndependentCopy(t *testing.T) {
	base := mustParseNode(t, `r {}`, WithSingleRoot(true))
	change := mustParseNode(t, `r { net { bridge = br0 } }`, WithSingleRoot(true))

	Merge(change, base)

	change.Child("net").Attrs.Set("bridge", "br9")

	if got, _ := base.Child("net").Attrs.Get("bridge"); got != "br0" {
		t.Errorf("base shares structure with change: bridge=%q", got)
	}
}

func TestExtend(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		defaults string
		want     string
	}{
		{
			name:     "missing tags appended",
			base:     `r { a = 1; disk x; }`,
			defaults: `r { disk y; net { bridge = br0 } }`,
			want:     `r { a = 1; disk x; net { bridge = br0 } }`,
		},
		{
			name:     "attributes and text untouched",
			base:     `r { "text" a = 1 }`,
			defaults: `r { "other" a = 2; b = 3 }`,
			want:     `r { "text" a = 1 }`,
		},
		{
			name:     "repeated default tag appended once",
			base:     `r {}`,
			defaults: `r { x 1; x 2; }`,
			want:     `r { x 1; }`,
		},
		{
			name:     "existing tag blocks every default of that tag",
			base:     `r { x 0; }`,
			defaults: `r { x 1; x 2; y 3; }`,
			want:     `r { x 0; y 3; }`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := mustParseNode(t, tt.base, WithSingleRoot(true))
			defaults := mustParseNode(t, tt.defaults, WithSingleRoot(true))
			want := mustParseNode(t, tt.want, WithSingleRoot(true))

			Extend(base, defaults)

			if diff := cmp.Diff(want, base); diff != "" {
				t.Errorf("extend mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
