package openstreetmap

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(serverURL string) *Client {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClientWithBaseURL(logger, "nearby-test", serverURL+"/search")
}

func TestClient_Search(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantErr     bool
		wantMalform bool
		wantCount   int
	}{
		{
			name:      "single result",
			status:    http.StatusOK,
			body:      `[{"place_id":1,"lat":"26.4499","lon":"80.3319","display_name":"Kanpur, India","address":{"state_district":"Kanpur Nagar"}}]`,
			wantCount: 1,
		},
		{
			name:      "no results",
			status:    http.StatusOK,
			body:      `[]`,
			wantCount: 0,
		},
		{
			name:        "object instead of list",
			status:      http.StatusOK,
			body:        `{"error":"Unable to geocode"}`,
			wantErr:     true,
			wantMalform: true,
		},
		{
			name:    "server error",
			status:  http.StatusServiceUnavailable,
			body:    `overloaded`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotQuery, gotAgent string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotQuery = r.URL.Query().Get("q")
				gotAgent = r.Header.Get("User-Agent")
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer server.Close()

			client := newTestClient(server.URL)
			got, err := client.Search(context.Background(), "Kanpur", 1)

			if gotQuery != "Kanpur" {
				t.Errorf("query param q = %q, want %q", gotQuery, "Kanpur")
			}
			if gotAgent != "nearby-test" {
				t.Errorf("User-Agent = %q, want %q", gotAgent, "nearby-test")
			}

			if tt.wantErr {
				if err == nil {
					t.Fatal("Search() expected error but got none")
				}
				if errors.Is(err, ErrMalformedResponse) != tt.wantMalform {
					t.Errorf("errors.Is(err, ErrMalformedResponse) = %v, want %v", !tt.wantMalform, tt.wantMalform)
				}
				return
			}
			if err != nil {
				t.Fatalf("Search() unexpected error = %v", err)
			}
			if len(got) != tt.wantCount {
				t.Errorf("len(results) = %d, want %d", len(got), tt.wantCount)
			}
		})
	}
}

func TestClient_Search_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := newTestClient(server.URL)
	server.Close()

	_, err := client.Search(context.Background(), "Kanpur", 1)
	if err == nil {
		t.Fatal("Search() expected error for closed server")
	}
	if errors.Is(err, ErrMalformedResponse) {
		t.Errorf("transport error should not be reported as malformed: %v", err)
	}
}
