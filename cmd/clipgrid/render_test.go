package main

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"clipgrid/internal/tile"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("Posters", statusOK, "3 captured", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "Posters:", "[OK] 3 captured")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("Posters", statusOK, "3 captured", true)
	if !strings.HasPrefix(got, ansiGreen) {
		t.Fatalf("expected green prefix, got %q", got)
	}
	if !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected reset suffix, got %q", got)
	}
}

func TestColorizeStatePerState(t *testing.T) {
	if got := colorizeState(tile.StateMounted, false); got != "mounted" {
		t.Fatalf("expected plain label, got %q", got)
	}
	if got := colorizeState(tile.StateMounted, true); !strings.HasPrefix(got, ansiGreen) {
		t.Fatalf("expected green mounted state, got %q", got)
	}
	if got := colorizeState(tile.StateReleasing, true); !strings.HasPrefix(got, ansiYellow) {
		t.Fatalf("expected yellow releasing state, got %q", got)
	}
	if got := colorizeState(tile.StateUnmounted, true); !strings.HasPrefix(got, ansiBlue) {
		t.Fatalf("expected blue unmounted state, got %q", got)
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatalf("expected non-file writer to disable color")
	}
}

func TestRenderSectionHeader(t *testing.T) {
	lines := renderSectionHeader("Session summary", false)
	if len(lines) != 2 {
		t.Fatalf("expected header and rule, got %d lines", len(lines))
	}
	if lines[0] != "== Session summary ==" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if len(lines[1]) != len(lines[0]) {
		t.Fatalf("rule length %d does not match header length %d", len(lines[1]), len(lines[0]))
	}
}
