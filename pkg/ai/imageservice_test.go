package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testConfig(imageURL string) Config {
	return Config{ImageAPIKey: "test-key", ImageAPIURL: imageURL}
}

func dataURLFor(b []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(b)
}

func TestEditImage_SynchronousResult(t *testing.T) {
	want := []byte("png-bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/edit" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Key test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatal(err)
		}
		if payload["prompt"] != "extract the man" {
			t.Errorf("unexpected prompt %v", payload["prompt"])
		}
		json.NewEncoder(w).Encode(map[string]any{
			"status": "completed",
			"images": []map[string]string{{"url": dataURLFor(want)}},
		})
	}))
	defer srv.Close()

	svc := NewImageService(testConfig(srv.URL))
	got, err := svc.EditImage(context.Background(), "extract the man", []string{"https://example.com/a.png"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != string(want) {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestGenerateImage_QueuedJobPolledToCompletion(t *testing.T) {
	old := pollInterval
	pollInterval = time.Millisecond
	defer func() { pollInterval = old }()

	want := []byte("generated")
	var polls int
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/generate", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]string{"status_url": srv.URL + "/status"})
	})
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		polls++
		if polls < 3 {
			json.NewEncoder(w).Encode(map[string]string{"status": "in_progress"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"status": "succeeded",
			"images": []map[string]string{{"url": dataURLFor(want)}},
		})
	})

	svc := NewImageService(testConfig(srv.URL))
	got, err := svc.GenerateImage(context.Background(), "a palm tree")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != string(want) {
		t.Errorf("expected %q, got %q", want, got)
	}
	if polls < 3 {
		t.Errorf("expected at least 3 polls, got %d", polls)
	}
}

func TestGenerateImage_QueuedJobFails(t *testing.T) {
	old := pollInterval
	pollInterval = time.Millisecond
	defer func() { pollInterval = old }()

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/generate", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]string{"status_url": srv.URL + "/status"})
	})
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "failed", "detail": "nsfw filter"})
	})

	svc := NewImageService(testConfig(srv.URL))
	_, err := svc.GenerateImage(context.Background(), "x")
	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ProviderError, got %v", err)
	}
	if !strings.Contains(perr.Message, "nsfw filter") {
		t.Errorf("expected detail in message, got %q", perr.Message)
	}
}

func TestGenerateImage_QuotaExhaustion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	svc := NewImageService(testConfig(srv.URL))
	_, err := svc.GenerateImage(context.Background(), "x")
	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ProviderError, got %v", err)
	}
	if !perr.Quota() {
		t.Errorf("expected quota error, got status %d", perr.Status)
	}
}

func TestGenerateImage_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	svc := NewImageService(testConfig(srv.URL))
	_, err := svc.GenerateImage(context.Background(), "x")
	var perr *ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ProviderError, got %v", err)
	}
}

func TestEditImage_HostedResultFetched(t *testing.T) {
	want := []byte("hosted-image")
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/edit", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status": "completed",
			"images": []map[string]string{{"url": srv.URL + "/files/out.png"}},
		})
	})
	mux.HandleFunc("/files/out.png", func(w http.ResponseWriter, r *http.Request) {
		w.Write(want)
	})

	svc := NewImageService(testConfig(srv.URL))
	got, err := svc.EditImage(context.Background(), "p", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != string(want) {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestEncodeDataURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "img.webp")
	if err := os.WriteFile(path, []byte{1, 2, 3}, 0644); err != nil {
		t.Fatal(err)
	}
	uri, err := EncodeDataURL(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(uri, "data:image/webp;base64,") {
		t.Errorf("unexpected prefix: %q", uri)
	}
	raw, err := decodeDataURLBytes(uri)
	if err != nil || string(raw) != string([]byte{1, 2, 3}) {
		t.Errorf("round trip failed: %v %v", raw, err)
	}
}
