package lang

import (
	"slices"
	"testing"
)

func TestPaths_PreOrder(t *testing.T) {
	m := Mapping(
		Entry{"a", Mapping(Entry{"b", Scalar("1")})},
		Entry{"c", Sequence(Scalar("x"))},
	)

	var got []string
	for p := range Paths(m) {
		got = append(got, p)
	}

	want := []string{"a", "a.b", "c", "c.0"}
	if !slices.Equal(got, want) {
		t.Errorf("Paths = %q, want %q", got, want)
	}
}

func TestPaths_EveryPathResolves(t *testing.T) {
	m := testModel()

	for p, v := range Paths(m) {
		if got := Resolve(m, p); got.String() != v.String() {
			t.Errorf("Resolve(%q) = %q, Paths yielded %q", p, got, v)
		}
	}
}

func TestSuggest(t *testing.T) {
	m := testModel()

	tests := []struct {
		name string
		path string
		want []string
	}{
		{"prefix of key", "MVPInstance.nam", []string{"MVPInstance.name"}},
		{"root", "chrt", []string{"chart"}},
		{"case insensitive", "mvpinstance", []string{"MVPInstance"}},
		{"resolves", "chart.name", nil},
		{"malformed", "a..b", nil},
		{"nothing close", "MVPInstance.zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Suggest(m, tt.path, 3)
			if tt.want == nil {
				if got != nil {
					t.Errorf("Suggest(%q) = %q, want nil", tt.path, got)
				}

				return
			}

			if !slices.Equal(got, tt.want) {
				t.Errorf("Suggest(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestSuggest_Limit(t *testing.T) {
	m := Mapping(
		Entry{"alpha", Scalar("")},
		Entry{"alps", Scalar("")},
		Entry{"also", Scalar("")},
	)

	if got := Suggest(m, "al", 2); len(got) != 2 {
		t.Errorf("Suggest limit 2 returned %d: %q", len(got), got)
	}
}
