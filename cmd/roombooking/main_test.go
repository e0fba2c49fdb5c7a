package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/roombooking/internal/config"
	"github.com/example/roombooking/internal/testfixtures"
)

var configEnv = []string{
	"ROOMS_HTTP_PORT",
	"ROOMS_DB_DRIVER",
	"ROOMS_DB_DSN",
	"ROOMS_JWT_SECRET",
	"ROOMS_CORS_ORIGINS",
	"ROOMS_PLAYGROUND",
	"ROOMS_COUNTRIES",
	"ROOMS_LOG_LEVEL",
}

// useDatabase points the CLI at a fresh SQLite file.
func useDatabase(t *testing.T) {
	t.Helper()
	for _, key := range configEnv {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("failed to unset %s: %v", key, err)
		}
	}
	t.Setenv("ROOMS_DB_DSN", filepath.Join(t.TempDir(), "cli.db"))
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return strings.TrimSpace(out.String()), err
}

func TestMigrateCommands(t *testing.T) {
	useDatabase(t)

	out, err := runCLI(t, "migrate", "current")
	if err != nil {
		t.Fatalf("migrate current returned error: %v", err)
	}
	if out != "base" {
		t.Fatalf("expected fresh database at base, got %q", out)
	}

	out, err = runCLI(t, "migrate", "up")
	if err != nil {
		t.Fatalf("migrate up returned error: %v", err)
	}
	if out != "af8e4f84b552" {
		t.Fatalf("expected head revision, got %q", out)
	}

	out, err = runCLI(t, "migrate", "history")
	if err != nil {
		t.Fatalf("migrate history returned error: %v", err)
	}
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 revisions, got %d: %q", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "1f5e47273894 -> af8e4f84b552 (current)") {
		t.Fatalf("unexpected newest entry: %q", lines[0])
	}
	if !strings.HasPrefix(lines[3], "<base> -> 3974dfade8f7") {
		t.Fatalf("unexpected oldest entry: %q", lines[3])
	}

	out, err = runCLI(t, "migrate", "down")
	if err != nil {
		t.Fatalf("migrate down returned error: %v", err)
	}
	if out != "1f5e47273894" {
		t.Fatalf("expected one step down, got %q", out)
	}

	out, err = runCLI(t, "migrate", "down", "base")
	if err != nil {
		t.Fatalf("migrate down base returned error: %v", err)
	}
	if out != "base" {
		t.Fatalf("expected base, got %q", out)
	}

	if _, err := runCLI(t, "migrate", "down"); err == nil {
		t.Fatalf("expected error when downgrading past base")
	}

	if _, err := runCLI(t, "migrate", "up", "deadbeef0000"); err == nil {
		t.Fatalf("expected error for unknown revision")
	}
}

func TestServeRequiresSecret(t *testing.T) {
	useDatabase(t)

	_, err := runCLI(t, "serve")
	if err == nil || !strings.Contains(err.Error(), "ROOMS_JWT_SECRET") {
		t.Fatalf("expected missing secret error, got %v", err)
	}
}

func TestConfigFlag(t *testing.T) {
	useDatabase(t)
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("http: [not, a, map]\n"), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, err := runCLI(t, "--config", path, "migrate", "current")
	if err == nil || !strings.Contains(err.Error(), "loading config") {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestNewHandler(t *testing.T) {
	store := testfixtures.NewStore(t)
	cfg := config.Default()
	cfg.Auth.JWTSecret = "secret"

	handler, err := newHandler(cfg, store, testfixtures.DiscardLogger())
	if err != nil {
		t.Fatalf("newHandler returned error: %v", err)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from /healthz, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	body := strings.NewReader(`{"query":"{ allLocations { id } }"}`)
	req := httptest.NewRequest(http.MethodPost, "/graphql", body)
	req.Header.Set("Content-Type", "application/json")
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"allLocations":[]`) {
		t.Fatalf("unexpected graphql response %d: %s", rec.Code, rec.Body.String())
	}
}
