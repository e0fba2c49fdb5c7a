package application

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/example/roombooking/internal/logging"
)

func TestDefaultLogger(t *testing.T) {
	t.Parallel()

	custom := slog.New(slog.NewTextHandler(io.Discard, nil))
	if got := defaultLogger(custom); got != custom {
		t.Fatalf("expected custom logger to be returned")
	}

	if got := defaultLogger(nil); got != slog.Default() {
		t.Fatalf("expected default logger when none provided")
	}
}

func TestServiceLogger_PrefersContextLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	requestLogger := slog.New(slog.NewJSONHandler(&buf, nil)).With("request_id", "req-1")
	ctx := logging.ContextWithLogger(context.Background(), requestLogger)

	serviceLogger(ctx, slog.New(slog.NewTextHandler(io.Discard, nil)), "LocationService", "CreateLocation").
		InfoContext(ctx, "hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to decode log entry: %v", err)
	}
	if entry["request_id"] != "req-1" || entry["service"] != "LocationService" || entry["operation"] != "CreateLocation" {
		t.Fatalf("unexpected log attributes: %v", entry)
	}
}

func TestLocationService_LogsErrorKind(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	svc := NewLocationServiceWithLogger(newUOWStub(newLocationRepoStub(activeLocation(1, "Lagos")), nil), nil, logger)

	_, _ = svc.CreateLocation(context.Background(), CreateLocationParams{
		Principal: adminPrincipal, Name: "lagos", Abbreviation: "LOS", Country: "Nigeria", TimeZone: "Africa/Lagos",
	})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to decode log entry: %v", err)
	}
	if entry["error_kind"] != "conflict" || entry["level"] != "ERROR" {
		t.Fatalf("unexpected log entry: %v", entry)
	}
}
