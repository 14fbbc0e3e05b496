package explore

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

func TestHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), BaseHistory)
	h := NewHistory(path)

	if err := h.Load(); err != nil {
		t.Fatalf("Load(missing) error = %v", err)
	}

	for _, entry := range []string{"Namespace", " ", "MVPInstance.name", "MVPInstance.name", "Namespace"} {
		if err := h.Write(entry); err != nil {
			t.Fatalf("Write(%q) error = %v", entry, err)
		}
	}

	want := []string{"MVPInstance.name", "Namespace"}
	if h.Len() != len(want) {
		t.Fatalf("Len = %d, want %d", h.Len(), len(want))
	}

	for i, w := range want {
		if got, err := h.Entry(i); err != nil || got != w {
			t.Errorf("Entry(%d) = %q, %v; want %q", i, got, err, w)
		}
	}

	if _, err := h.Entry(len(want)); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Entry(out of range) error = %v, want ErrOutOfBounds", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if string(data) != "MVPInstance.name\nNamespace\n" {
		t.Errorf("history file = %q", data)
	}

	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}

	if reloaded.Len() != len(want) {
		t.Errorf("reloaded Len = %d, want %d", reloaded.Len(), len(want))
	}
}

func TestHistory_InMemory(t *testing.T) {
	var h History

	if err := h.Write("Namespace"); err != nil {
		t.Fatal(err)
	}

	if got, _ := h.Entry(0); got != "Namespace" || h.Len() != 1 {
		t.Errorf("in-memory history = %q (len %d)", got, h.Len())
	}
}

func TestHistory_Trim(t *testing.T) {
	path := filepath.Join(t.TempDir(), BaseHistory)
	h := NewHistory(path)

	for i := range MaxHistory + 3 {
		if err := h.Write("ChartInfo.dependencies." + strconv.Itoa(i)); err != nil {
			t.Fatal(err)
		}
	}

	if h.Len() != MaxHistory {
		t.Fatalf("Len = %d, want %d", h.Len(), MaxHistory)
	}

	if got, _ := h.Entry(0); got != "ChartInfo.dependencies.3" {
		t.Errorf("oldest entry = %q, want ChartInfo.dependencies.3", got)
	}

	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}

	if reloaded.Len() != MaxHistory {
		t.Errorf("reloaded Len = %d, want %d", reloaded.Len(), MaxHistory)
	}

	if got, _ := reloaded.Entry(0); got != "ChartInfo.dependencies.3" {
		t.Errorf("reloaded oldest entry = %q", got)
	}
}
