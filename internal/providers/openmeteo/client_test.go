package openmeteo

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Elevation(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    float64
		wantErr error
	}{
		{
			name:   "single point",
			status: http.StatusOK,
			body:   `{"elevation":[126.0]}`,
			want:   126,
		},
		{
			name:    "empty elevation list",
			status:  http.StatusOK,
			body:    `{"elevation":[]}`,
			wantErr: ErrNoElevation,
		},
		{
			name:   "bad request",
			status: http.StatusBadRequest,
			body:   `{"error":true,"reason":"Latitude must be in range of -90 to 90°."}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotLat, gotLon string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotLat = r.URL.Query().Get("latitude")
				gotLon = r.URL.Query().Get("longitude")
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer server.Close()

			client := NewClientWithBaseURL(slog.New(slog.NewTextHandler(io.Discard, nil)), "nearby-test", server.URL)
			got, err := client.Elevation(context.Background(), 26.4499, 80.3319)

			if gotLat != "26.4499" || gotLon != "80.3319" {
				t.Errorf("query = (%s, %s), want (26.4499, 80.3319)", gotLat, gotLon)
			}

			if tt.status != http.StatusOK || tt.wantErr != nil {
				if err == nil {
					t.Fatal("Elevation() expected error but got none")
				}
				if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
					t.Errorf("Elevation() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Elevation() unexpected error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Elevation() = %v, want %v", got, tt.want)
			}
		})
	}
}
