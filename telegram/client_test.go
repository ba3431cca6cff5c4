package telegram

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"linksend/youtube"
)

// testConfig returns a client config pointed at the given test server,
// with send pacing disabled so tests run instantly.
func testConfig(serverURL string) *Config {
	cfg := DefaultConfig()
	cfg.Token = "test-token"
	cfg.ChatID = "42"
	cfg.BaseURL = serverURL
	cfg.SendInterval = 0
	return cfg
}

func TestNewClientNilConfig(t *testing.T) {
	client := New(nil)
	if client == nil {
		t.Fatal("expected client to be created with default config")
	}
	client.Close()
}

func TestClientSendMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/bottest-token/sendMessage" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.FormValue("chat_id"); got != "42" {
			t.Errorf("chat_id = %q, want %q", got, "42")
		}
		if got := r.FormValue("text"); got != "hello" {
			t.Errorf("text = %q, want %q", got, "hello")
		}
		w.Write([]byte(`{"ok":true,"result":{}}`))
	}))
	defer server.Close()

	client := New(testConfig(server.URL))
	defer client.Close()

	if err := client.SendMessage(context.Background(), "hello"); err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
}

func TestClientSendPhoto(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bottest-token/sendPhoto" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.FormValue("photo"); got != "https://i.ytimg.com/vi/x/hq.jpg" {
			t.Errorf("photo = %q, want thumbnail URL", got)
		}
		if got := r.FormValue("caption"); got != "the caption" {
			t.Errorf("caption = %q, want %q", got, "the caption")
		}
		w.Write([]byte(`{"ok":true,"result":{}}`))
	}))
	defer server.Close()

	client := New(testConfig(server.URL))
	defer client.Close()

	err := client.SendPhoto(context.Background(), "https://i.ytimg.com/vi/x/hq.jpg", "the caption")
	if err != nil {
		t.Fatalf("SendPhoto() error = %v", err)
	}
}

func TestNotifyRouting(t *testing.T) {
	tests := []struct {
		name     string
		video    *youtube.Video
		wantPath string
	}{
		{
			name:     "thumbnail present routes to sendPhoto",
			video:    &youtube.Video{ID: "a1", Title: "With Thumb", Thumbnail: "https://i.ytimg.com/vi/a1/hq.jpg"},
			wantPath: "/bottest-token/sendPhoto",
		},
		{
			name:     "no thumbnail routes to sendMessage",
			video:    &youtube.Video{ID: "a2", Title: "No Thumb"},
			wantPath: "/bottest-token/sendMessage",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			requests := 0
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				requests++
				gotPath = r.URL.Path
				w.Write([]byte(`{"ok":true}`))
			}))
			defer server.Close()

			client := New(testConfig(server.URL))
			defer client.Close()

			if err := client.Notify(context.Background(), tt.video); err != nil {
				t.Fatalf("Notify() error = %v", err)
			}
			if gotPath != tt.wantPath {
				t.Errorf("Notify() hit %q, want %q", gotPath, tt.wantPath)
			}
			if requests != 1 {
				t.Errorf("Notify() made %d requests, want 1", requests)
			}
		})
	}
}

func TestClientAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
	}))
	defer server.Close()

	client := New(testConfig(server.URL))
	defer client.Close()

	err := client.SendMessage(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error for ok=false response")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Code != 400 {
		t.Errorf("Code = %d, want 400", apiErr.Code)
	}
	if apiErr.Description != "Bad Request: chat not found" {
		t.Errorf("Description = %q, want chat not found", apiErr.Description)
	}
	if strings.Contains(err.Error(), "test-token") {
		t.Errorf("error string leaks the token: %q", err.Error())
	}
}

func TestClientNoEnvelopeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer server.Close()

	client := New(testConfig(server.URL))
	defer client.Close()

	err := client.SendMessage(context.Background(), "hello")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Code != http.StatusBadGateway {
		t.Errorf("Code = %d, want %d", apiErr.Code, http.StatusBadGateway)
	}
}

func TestClientSingleAttempt(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"ok":false,"error_code":500,"description":"internal"}`))
	}))
	defer server.Close()

	client := New(testConfig(server.URL))
	defer client.Close()

	if err := client.SendMessage(context.Background(), "hello"); err == nil {
		t.Fatal("expected error for failed send")
	}
	if requests != 1 {
		t.Errorf("failed send made %d requests, want exactly 1 (no retry)", requests)
	}
}

func TestClientSendPacing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.SendInterval = 50 * time.Millisecond
	client := New(cfg)
	defer client.Close()

	ctx := context.Background()

	// First send goes out immediately, the second one waits out the
	// configured spacing.
	start := time.Now()
	if err := client.SendMessage(ctx, "one"); err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	if err := client.SendMessage(ctx, "two"); err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	elapsed := time.Since(start)

	if elapsed < 45*time.Millisecond {
		t.Errorf("two sends took %v, want at least the 50ms spacing", elapsed)
	}
}

func TestClientContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := New(testConfig(server.URL))
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.SendMessage(ctx, "hello")
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
	if !strings.Contains(err.Error(), "context") {
		t.Errorf("expected context error, got: %v", err)
	}
}

func TestAPIErrorString(t *testing.T) {
	err := &APIError{Code: 403, Description: "Forbidden: bot was blocked by the user"}
	msg := err.Error()
	if !strings.Contains(msg, "403") {
		t.Errorf("expected '403' in message, got: %s", msg)
	}
	if !strings.Contains(msg, "blocked") {
		t.Errorf("expected description in message, got: %s", msg)
	}

	bare := &APIError{Code: 502}
	if got := bare.Error(); !strings.Contains(got, "502") {
		t.Errorf("expected '502' in message, got: %s", got)
	}
}
