package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestProductionLoggerWritesJSONWithContext(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("production", &buf)

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
	ctx = context.WithValue(ctx, UserIDKey, "user-9")
	log.WithContext(ctx).Info("lead_converted", "leadId", "abc")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if entry["request_id"] != "req-1" || entry["user_id"] != "user-9" {
		t.Fatalf("expected context attributes, got %v", entry)
	}
	if entry["leadId"] != "abc" {
		t.Fatalf("expected leadId attribute, got %v", entry)
	}
}

func TestDevelopmentLoggerEnablesDebug(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("Development", &buf)
	log.Debug("visible")

	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("expected debug line in development, got %q", buf.String())
	}
}
