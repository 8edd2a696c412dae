package httpclient

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/PauloHFS/bizbloom/internal/logging"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logging.InitWithWriter(&buf, slog.LevelDebug)
	t.Cleanup(logging.Init)
	return &buf
}

func TestClientDo(t *testing.T) {
	buf := captureLogs(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer server.Close()

	c := New(Config{Name: "test", Timeout: time.Second})

	resp, err := c.Get(server.URL + "/ping")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusTeapot {
		t.Errorf("expected 418, got %d", resp.StatusCode)
	}

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected one JSON log line, got %q", buf.String())
	}
	if entry["http_client"] != "test" || entry["path"] != "/ping" {
		t.Errorf("unexpected log entry %v", entry)
	}
	if entry["level"] != "WARN" {
		t.Errorf("expected WARN for a 4xx response, got %v", entry["level"])
	}
}

func TestClientTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	if _, err := New(Config{Name: "closed", Timeout: time.Second}).Get(url); err == nil {
		t.Error("expected error for closed server")
	}
}
