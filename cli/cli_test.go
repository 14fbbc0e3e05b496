package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/pagebind/log"
	"github.com/ardnew/pagebind/pkg"
)

// unsetenv clears key for the duration of the test.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")

	if err := os.Unsetenv(key); err != nil {
		t.Fatal(err)
	}
}

func TestRun_Render(t *testing.T) {
	prev := log.Default()
	t.Cleanup(func() { log.SetDefault(prev) })

	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, "cache"))
	t.Setenv("NAMESPACE", "from-env")
	unsetenv(t, "MVP")

	page := filepath.Join(home, "index.html")
	out := filepath.Join(home, "out.html")

	err := os.WriteFile(page, []byte(
		`<p id="x" class="templateText is-hidden">{MVPInstance.name} in {Namespace}</p>`,
	), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	// The configuration directory is fixed on first use.
	if err := mkdirAllRequired(); err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(pkg.ConfigDir(), home) {
		t.Skipf("configuration directory %s resolved outside the test home", pkg.ConfigDir())
	}

	err = os.WriteFile(configPath(baseConfig+".yaml"), []byte("instance: mvp-low\n"), 0o600)
	if err != nil {
		t.Fatal(err)
	}

	exit := func(code int) { t.Errorf("unexpected exit(%d)", code) }

	err = Run(context.Background(), exit,
		"--log-level=error", "-s", page, "render", "-o", out)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}

	if want := `<p id="x" class="templateText">SKA Low in from-env</p>`; !strings.Contains(string(data), want) {
		t.Errorf("output missing %q:\n%s", want, data)
	}

	err = Run(context.Background(), exit,
		"--log-level=error", "--instance=ska-mid", "--namespace=cli",
		"-s", page, "render", "-o", out)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	data, err = os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}

	if want := "SKA Mid in cli"; !strings.Contains(string(data), want) {
		t.Errorf("flags did not override config and env:\n%s", data)
	}
}

func TestRun_ParseError(t *testing.T) {
	prev := log.Default()
	t.Cleanup(func() { log.SetDefault(prev) })

	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, "cache"))

	err := Run(context.Background(), func(int) {}, "--log-level=error", "bogus")
	if err == nil {
		t.Error("Run() accepted an unknown command")
	}
}
