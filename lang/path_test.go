package lang

import (
	"errors"
	"testing"
)

func testModel() Value {
	return Mapping(
		Entry{"MVPInstance", Mapping(
			Entry{"name", Scalar("SKA Mid")},
			Entry{"logo", Scalar("https://example.org/mid.png")},
		)},
		Entry{"KUBE_NAMESPACE", Scalar("integration")},
		Entry{"chart", Mapping(
			Entry{"name", Scalar("ska-mid")},
			Entry{"version", Scalar("0.4.0")},
			Entry{"dependencies", Sequence(
				Mapping(
					Entry{"name", Scalar("tango-base")},
					Entry{"version", Scalar("0.2.12")},
				),
				Mapping(
					Entry{"name", Scalar("tango-util")},
					Entry{"version", Scalar("0.2.8")},
				),
			)},
		)},
	)
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Path
		wantErr bool
	}{
		{"single segment", "KUBE_NAMESPACE", Path{"KUBE_NAMESPACE"}, false},
		{"nested", "MVPInstance.name", Path{"MVPInstance", "name"}, false},
		{"deep", "a.b.c.d", Path{"a", "b", "c", "d"}, false},
		{"whitespace kept", "  a.b ", Path{"  a", "b "}, false},
		{"empty", "", nil, true},
		{"blank segment", "   ", Path{"   "}, false},
		{"leading dot", ".a.b", nil, true},
		{"trailing dot", "a.b.", nil, true},
		{"double dot", "a..b", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePath(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParsePath(%q) = %v, want error", tt.input, got)
				}

				if !errors.Is(err, ErrMalformedPath) {
					t.Errorf("error %v does not match ErrMalformedPath", err)
				}

				return
			}

			if err != nil {
				t.Fatalf("ParsePath(%q) error: %v", tt.input, err)
			}

			if got.String() != tt.want.String() || len(got) != len(tt.want) {
				t.Errorf("ParsePath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolve_PresentPaths(t *testing.T) {
	m := testModel()

	tests := []struct {
		path string
		want string
	}{
		{"KUBE_NAMESPACE", "integration"},
		{"MVPInstance.name", "SKA Mid"},
		{"MVPInstance.logo", "https://example.org/mid.png"},
		{"chart.version", "0.4.0"},
		{"chart.dependencies.0.name", "tango-base"},
		{"chart.dependencies.1.version", "0.2.8"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := Resolve(m, tt.path)
			if got.Kind() != KindScalar {
				t.Fatalf("Resolve(%q) kind = %v, want scalar", tt.path, got.Kind())
			}

			if got.String() != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestResolve_AbsentPathsAreUndefined(t *testing.T) {
	m := testModel()

	for _, path := range []string{
		"missing",
		"MVPInstance.missing",
		"missing.name",
		"MVPInstance.name.deeper",
		"chart.dependencies.2.name",
		"chart.dependencies.x",
		"chart.dependencies.-1",
		".MVPInstance",
		"MVPInstance.",
		"",
	} {
		t.Run(path, func(t *testing.T) {
			got := Resolve(m, path)
			if got.IsDefined() {
				t.Errorf("Resolve(%q) = %v, want Undefined", path, got)
			}

			if got.String() != "" {
				t.Errorf("Undefined rendered as %q, want empty", got.String())
			}
		})
	}
}

func TestResolve_Container(t *testing.T) {
	got := Resolve(testModel(), "chart.dependencies")
	if got.Kind() != KindSequence || got.Len() != 2 {
		t.Fatalf("got %v (len %d), want sequence of 2", got.Kind(), got.Len())
	}
}

func TestLookup_PathError(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		segment string
		depth   int
		is      error
	}{
		{"missing root", "nope", "nope", 0, ErrKeyNotFound},
		{"missing child", "MVPInstance.nope", "nope", 1, ErrKeyNotFound},
		{"scalar has no members", "KUBE_NAMESPACE.x", "x", 1, ErrNotContainer},
		{"index range", "chart.dependencies.5", "5", 2, ErrIndexRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Lookup(testModel(), tt.path)
			if v.IsDefined() {
				t.Errorf("Lookup returned defined value %v", v)
			}

			var perr *PathError
			if !errors.As(err, &perr) {
				t.Fatalf("error %v is not a *PathError", err)
			}

			if perr.Segment != tt.segment {
				t.Errorf("Segment = %q, want %q", perr.Segment, tt.segment)
			}

			if perr.Depth != tt.depth {
				t.Errorf("Depth = %d, want %d", perr.Depth, tt.depth)
			}

			if perr.Path != tt.path {
				t.Errorf("Path = %q, want %q", perr.Path, tt.path)
			}

			if !errors.Is(err, tt.is) {
				t.Errorf("error %v does not match %v", err, tt.is)
			}
		})
	}
}

func TestPath_Resolve(t *testing.T) {
	p := Path{"chart", "name"}
	if got := p.Resolve(testModel()).String(); got != "ska-mid" {
		t.Errorf("Path.Resolve = %q, want %q", got, "ska-mid")
	}

	if got := (Path{}).Resolve(Scalar("root")).String(); got != "root" {
		t.Errorf("empty Path.Resolve = %q, want root value", got)
	}
}
