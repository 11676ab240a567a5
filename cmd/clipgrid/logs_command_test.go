package main

import (
	"strings"
	"testing"

	"clipgrid/internal/testsupport"
)

func TestLogsShowsSimulationLines(t *testing.T) {
	env := setupCLITestEnv(t)

	store := testsupport.MustOpenStore(t, env.cfg)
	testsupport.SeedTiles(t, store, 3)

	if _, _, err := runCLI(t, []string{"simulate", "--profile", "dense"}, env.configPath); err != nil {
		t.Fatalf("simulate: %v", err)
	}

	out, _, err := runCLI(t, []string{"logs", "--lines", "200"}, env.configPath)
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	requireContains(t, out, "grid created")
}

func TestLogsLevelFilter(t *testing.T) {
	env := setupCLITestEnv(t)

	store := testsupport.MustOpenStore(t, env.cfg)
	testsupport.SeedTiles(t, store, 3)

	if _, _, err := runCLI(t, []string{"simulate", "--profile", "dense"}, env.configPath); err != nil {
		t.Fatalf("simulate: %v", err)
	}

	out, _, err := runCLI(t, []string{"logs", "--lines", "200", "--level", "warn"}, env.configPath)
	if err != nil {
		t.Fatalf("logs with level: %v", err)
	}
	if strings.Contains(out, " INFO ") || strings.Contains(out, " DEBUG ") {
		t.Fatalf("expected no info/debug lines at warn level, got:\n%s", out)
	}
}

func TestLogsWithoutLogFile(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"logs"}, env.configPath)
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	requireContains(t, out, "No log lines")
}
