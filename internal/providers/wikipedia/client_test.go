package wikipedia

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
	return NewClientWithBaseURL(logger, "nearby-test", serverURL+"/api/rest_v1/page/summary/")
}

func TestClient_Summary(t *testing.T) {
	tests := []struct {
		name          string
		title         string
		status        int
		body          string
		wantPath      string
		wantErr       error
		wantAnyErr    bool
		wantExtract   string
		wantThumbnail string
	}{
		{
			name:          "article with thumbnail",
			title:         "Taj Mahal",
			status:        http.StatusOK,
			body:          `{"type":"standard","title":"Taj Mahal","extract":"The Taj Mahal is an ivory-white marble mausoleum.","thumbnail":{"source":"https://upload.wikimedia.org/taj.jpg","width":320,"height":213}}`,
			wantPath:      "/api/rest_v1/page/summary/Taj_Mahal",
			wantExtract:   "The Taj Mahal is an ivory-white marble mausoleum.",
			wantThumbnail: "https://upload.wikimedia.org/taj.jpg",
		},
		{
			name:        "article without thumbnail",
			title:       "Phool Bagh",
			status:      http.StatusOK,
			body:        `{"type":"standard","title":"Phool Bagh","extract":"A park in Kanpur."}`,
			wantPath:    "/api/rest_v1/page/summary/Phool_Bagh",
			wantExtract: "A park in Kanpur.",
		},
		{
			name:     "title needing escape",
			title:    "St. Mary's Church/Old",
			status:   http.StatusOK,
			body:     `{"type":"standard","title":"x","extract":""}`,
			wantPath: "/api/rest_v1/page/summary/St._Mary%27s_Church%2FOld",
		},
		{
			name:     "missing article",
			title:    "Nonexistent Place XYZ",
			status:   http.StatusNotFound,
			body:     `{"type":"https://mediawiki.org/wiki/HyperSwitch/errors/not_found"}`,
			wantPath: "/api/rest_v1/page/summary/Nonexistent_Place_XYZ",
			wantErr:  ErrPageNotFound,
		},
		{
			name:       "server error",
			title:      "Kanpur",
			status:     http.StatusInternalServerError,
			body:       `oops`,
			wantPath:   "/api/rest_v1/page/summary/Kanpur",
			wantAnyErr: true,
		},
		{
			name:       "undecodable body",
			title:      "Kanpur",
			status:     http.StatusOK,
			body:       `not json`,
			wantPath:   "/api/rest_v1/page/summary/Kanpur",
			wantAnyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.EscapedPath()
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer server.Close()

			got, err := newTestClient(server.URL).Summary(context.Background(), tt.title)

			if gotPath != tt.wantPath {
				t.Errorf("request path = %q, want %q", gotPath, tt.wantPath)
			}

			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Summary() error = %v, want %v", err, tt.wantErr)
				}
				return
			case tt.wantAnyErr:
				if err == nil {
					t.Fatal("Summary() expected error but got none")
				}
				return
			}

			if err != nil {
				t.Fatalf("Summary() unexpected error = %v", err)
			}
			if got.Extract != tt.wantExtract {
				t.Errorf("Extract = %q, want %q", got.Extract, tt.wantExtract)
			}
			if got.ThumbnailURL() != tt.wantThumbnail {
				t.Errorf("ThumbnailURL() = %q, want %q", got.ThumbnailURL(), tt.wantThumbnail)
			}
		})
	}
}

func TestClient_Summary_EmptyTitle(t *testing.T) {
	client := newTestClient("http://127.0.0.1:0")

	_, err := client.Summary(context.Background(), "   ")
	if !errors.Is(err, ErrPageNotFound) {
		t.Errorf("Summary(blank) error = %v, want ErrPageNotFound", err)
	}
}
