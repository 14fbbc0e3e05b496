package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func TestLoadYAML(t *testing.T) {
	const doc = `
log:
  level: debug
  pretty: false
log_caller: true
instance: ska-low
model:
  ratio: 0.5
count: 3
source: [a.html, b.html]
`

	res, err := loadYAML(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}

	cfg, ok := res.(config)
	if !ok {
		t.Fatalf("loadYAML returned %T", res)
	}

	tests := map[string]any{
		"log-level":   "debug",
		"log-pretty":  false,
		"log-caller":  true,
		"instance":    "ska-low",
		"model-ratio": "0.5",
		"count":       "3",
	}

	for key, want := range tests {
		if got := cfg[key]; got != want {
			t.Errorf("%s = %#v, want %#v", key, got, want)
		}
	}

	src, ok := cfg["source"].([]any)
	if !ok || len(src) != 2 || src[0] != "a.html" {
		t.Errorf("source = %#v", cfg["source"])
	}
}

func TestLoadYAML_EmptyOrInvalid(t *testing.T) {
	for name, doc := range map[string]string{
		"empty":   "",
		"invalid": "log: [unterminated",
		"scalar":  "just a string",
	} {
		t.Run(name, func(t *testing.T) {
			res, err := loadYAML(strings.NewReader(doc))
			if err != nil {
				t.Fatalf("loadYAML error = %v", err)
			}

			if cfg, ok := res.(config); !ok || len(cfg) != 0 {
				t.Errorf("loadYAML = %#v, want empty config", res)
			}
		})
	}
}

func TestConfig_ResolveFlags(t *testing.T) {
	var cli struct {
		LogLevel  string `name:"log-level"`
		Namespace string `name:"namespace"`
		Count     int    `name:"count"`
		Pretty    bool   `name:"pretty"`
	}

	res, err := loadYAML(strings.NewReader("log:\n  level: warn\nnamespace: dev\ncount: 4\npretty: true\n"))
	if err != nil {
		t.Fatal(err)
	}

	parser, err := kong.New(&cli, kong.Resolvers(res))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := parser.Parse([]string{"--namespace=cli"}); err != nil {
		t.Fatal(err)
	}

	if cli.LogLevel != "warn" || cli.Count != 4 || !cli.Pretty {
		t.Errorf("config values not applied: %+v", cli)
	}

	if cli.Namespace != "cli" {
		t.Errorf("namespace = %q, want command line value", cli.Namespace)
	}
}
