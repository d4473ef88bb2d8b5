package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHoursAcceptsNumberStringAndNull(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		want    float64
		numeric bool
	}{
		{"number", `1.5`, 1.5, true},
		{"integer", `8`, 8, true},
		{"numeric string", `"2.25"`, 2.25, true},
		{"junk string", `"N/A"`, 0, false},
		{"empty string", `""`, 0, false},
		{"null", `null`, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var h Hours
			if err := json.Unmarshal([]byte(tt.json), &h); err != nil {
				t.Fatalf("unmarshal %s: %v", tt.json, err)
			}
			got, ok := h.Value()
			if ok != tt.numeric {
				t.Fatalf("Value() numeric = %v, want %v", ok, tt.numeric)
			}
			if ok && got != tt.want {
				t.Errorf("Value() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDoSurfacesBackendErrorVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "project is archived"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "tok")
	_, err := client.GetTimer(context.Background())
	if err == nil {
		t.Fatal("expected an error")
	}
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.Message != "project is archived" {
		t.Errorf("message: got %q, want backend text verbatim", apiErr.Message)
	}
}

func TestDoTreatsOkFalseAsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "session expired"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "tok")
	_, err := client.GetTimer(context.Background())
	if err == nil || err.Error() != "session expired" {
		t.Fatalf("got %v, want session expired", err)
	}
}

func TestConflictDetection(t *testing.T) {
	err := &APIError{StatusCode: http.StatusConflict, Message: "already running"}
	if !err.IsConflict() {
		t.Error("409 should report IsConflict")
	}
}

func TestAuthorizationAndContentTypeHeaders(t *testing.T) {
	var gotAuth, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "timer": nil})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret")
	_, _ = client.StartTimer(context.Background(), StartTimerRequest{Process: "ADMIN"})

	if gotAuth != "Bearer secret" {
		t.Errorf("Authorization: got %q", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type: got %q", gotContentType)
	}
}
