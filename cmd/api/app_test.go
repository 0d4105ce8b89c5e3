package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"nearby/internal/config"
	"nearby/internal/location"
	"nearby/internal/places"
	"nearby/internal/search"
	"nearby/internal/types"
)

// Mock services for testing

type mockGeocoder struct {
	location *types.Location
	err      error
}

func (m *mockGeocoder) Resolve(_ context.Context, query string) (*types.Location, error) {
	if strings.TrimSpace(query) == "" {
		return nil, location.ErrInputEmpty
	}
	return m.location, m.err
}

type mockSearch struct {
	mu     sync.Mutex
	result *search.Result
	err    error
	req    search.Request
	search func(ctx context.Context, req search.Request) (*search.Result, error)
}

func (m *mockSearch) Search(ctx context.Context, req search.Request) (*search.Result, error) {
	m.mu.Lock()
	m.req = req
	m.mu.Unlock()
	if m.search != nil {
		return m.search(ctx, req)
	}
	return m.result, m.err
}

func (m *mockSearch) SearchByName(ctx context.Context, _ string, req search.Request) (*search.Result, error) {
	return m.Search(ctx, req)
}

var kanpur = &types.Location{
	Coordinates: types.NewCoords(26.4499, 80.3319),
	Name:        "Kanpur, Uttar Pradesh, India",
}

func newTestApp(geocoder location.Geocoder, svc search.Service) *App {
	cfg := &config.Config{Server: config.ServerConfig{GinMode: gin.TestMode}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewApp(cfg, logger, geocoder, svc, search.NewSessions())
}

func get(app *App, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandlePing(t *testing.T) {
	rec := get(newTestApp(&mockGeocoder{}, &mockSearch{}), "/ping", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /ping = %d %s", rec.Code, rec.Body.String())
	}

	var got PingResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if got != (PingResponse{Message: "pong", ActiveSessions: 0}) {
		t.Errorf("GET /ping = %+v", got)
	}
}

func TestHandleGeocode(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		geocoder   *mockGeocoder
		wantStatus int
		wantBody   string
	}{
		{"found", "/geocode?q=Kanpur", &mockGeocoder{location: kanpur}, http.StatusOK, `"name":"Kanpur, Uttar Pradesh, India"`},
		{"empty input", "/geocode?q=+", &mockGeocoder{}, http.StatusBadRequest, "please enter a location"},
		{"not found", "/geocode?q=xyzzy", &mockGeocoder{err: location.ErrNotFound}, http.StatusNotFound, "location not found"},
		{"unavailable", "/geocode?q=Kanpur", &mockGeocoder{err: location.ErrServiceUnavailable}, http.StatusServiceUnavailable, "unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(newTestApp(tt.geocoder, &mockSearch{}), tt.target, nil)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body = %s, want it to contain %s", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestHandleSearch_Redirects(t *testing.T) {
	app := newTestApp(&mockGeocoder{location: kanpur}, &mockSearch{})

	rec := get(app, "/search?q=Kanpur&radius=5000&category=historic", nil)
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}

	loc, err := url.Parse(rec.Header().Get("Location"))
	if err != nil {
		t.Fatalf("bad Location header: %v", err)
	}
	if loc.Path != "/places" {
		t.Errorf("redirect path = %q, want /places", loc.Path)
	}
	q := loc.Query()
	if q.Get("lat") != "26.4499" || q.Get("lon") != "80.3319" || q.Get("radius") != "5000" || q.Get("category") != "historic" {
		t.Errorf("redirect query = %v", q)
	}
}

func TestHandleSearch_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		geocoder   *mockGeocoder
		wantStatus int
	}{
		{"empty query", "/search?q=", &mockGeocoder{}, http.StatusBadRequest},
		{"bad category", "/search?q=Kanpur&category=food", &mockGeocoder{location: kanpur}, http.StatusBadRequest},
		{"not found", "/search?q=xyzzy", &mockGeocoder{err: location.ErrNotFound}, http.StatusNotFound},
		{"unavailable", "/search?q=Kanpur", &mockGeocoder{err: location.ErrServiceUnavailable}, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(newTestApp(tt.geocoder, &mockSearch{}), tt.target, nil)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestHandlePlaces(t *testing.T) {
	okResult := &search.Result{
		Origin:       kanpur.Coordinates,
		RadiusMeters: 3000,
		Places: []types.EnrichedPlace{{
			Place:      types.NewPlace(7, types.NewCoords(26.46, 80.33), map[string]string{"name": "JK Temple"}),
			DistanceKm: 1.2,
		}},
	}
	degraded := &search.Result{
		Origin:       kanpur.Coordinates,
		RadiusMeters: 3000,
		Places:       []types.EnrichedPlace{},
		Degraded:     true,
		Notice:       places.DegradedNotice,
	}

	tests := []struct {
		name       string
		target     string
		svc        *mockSearch
		wantStatus int
		wantBody   string
	}{
		{"results", "/places?lat=26.4499&lon=80.3319", &mockSearch{result: okResult}, http.StatusOK, `"name":"JK Temple"`},
		{"degraded is still ok", "/places?lat=26.4499&lon=80.3319", &mockSearch{result: degraded}, http.StatusOK, places.DegradedNotice},
		{"missing coordinates", "/places?radius=100", &mockSearch{}, http.StatusBadRequest, "lat and lon are required"},
		{"bad sort", "/places?lat=1&lon=2&sort=random", &mockSearch{}, http.StatusBadRequest, "sort must be"},
		{"cancelled", "/places?lat=1&lon=2", &mockSearch{err: context.Canceled}, http.StatusServiceUnavailable, "could not be completed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(newTestApp(&mockGeocoder{}, tt.svc), tt.target, nil)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body = %s, want it to contain %s", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestHandlePlaces_DefaultRadius(t *testing.T) {
	svc := &mockSearch{result: &search.Result{Places: []types.EnrichedPlace{}}}
	get(newTestApp(&mockGeocoder{}, svc), "/places?lat=26.4499&lon=80.3319&radius=abc", nil)

	if svc.req.RadiusMeters != 3000 {
		t.Errorf("RadiusMeters = %d, want 3000", svc.req.RadiusMeters)
	}
	if svc.req.Sort != types.SortNearest || svc.req.Category != types.CategoryAll {
		t.Errorf("request = %+v, want nearest/all defaults", svc.req)
	}
}

func TestHandlePlaces_Superseded(t *testing.T) {
	started := make(chan struct{})
	svc := &mockSearch{}
	svc.search = func(ctx context.Context, req search.Request) (*search.Result, error) {
		if req.RadiusMeters == 1000 {
			close(started)
			<-ctx.Done()
			return nil, ctx.Err()
		}
		return &search.Result{Places: []types.EnrichedPlace{}}, nil
	}
	app := newTestApp(&mockGeocoder{}, svc)
	session := http.Header{}
	session.Set(HeaderSessionID, "tab-1")

	first := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		first <- get(app, "/places?lat=1&lon=2&radius=1000", session)
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("first search never started")
	}

	second := get(app, "/places?lat=1&lon=2&radius=2000", session)
	if second.Code != http.StatusOK {
		t.Errorf("second search status = %d, want 200", second.Code)
	}

	select {
	case rec := <-first:
		if rec.Code != http.StatusConflict {
			t.Errorf("first search status = %d, want 409", rec.Code)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("first search was not cancelled by the second")
	}
}

func TestHandleMarkers(t *testing.T) {
	svc := &mockSearch{result: &search.Result{
		Origin: kanpur.Coordinates,
		Places: []types.EnrichedPlace{{
			Place: types.NewPlace(7, types.NewCoords(26.46, 80.33), map[string]string{"name": "JK Temple"}),
		}},
	}}

	rec := get(newTestApp(&mockGeocoder{}, svc), "/places/markers?lat=26.4499&lon=80.3319", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/geo+json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &fc); err != nil {
		t.Fatalf("invalid GeoJSON: %v", err)
	}
	if fc.Type != "FeatureCollection" || len(fc.Features) != 2 {
		t.Fatalf("unexpected collection: %+v", fc)
	}
	if fc.Features[0].Properties["name"] != "You are here" {
		t.Errorf("first feature = %v, want origin marker", fc.Features[0].Properties)
	}
}

func TestRateLimitedRoutes(t *testing.T) {
	cfg := &config.Config{Server: config.ServerConfig{
		GinMode: gin.TestMode,
		Limit:   config.RateLimitConfig{Requests: 1, Interval: time.Hour},
	}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app := NewApp(cfg, logger, &mockGeocoder{}, &mockSearch{result: &search.Result{}}, search.NewSessions())

	if rec := get(app, "/places?lat=1&lon=2", nil); rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d", rec.Code)
	}
	if rec := get(app, "/places?lat=1&lon=2", nil); rec.Code != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want 429", rec.Code)
	}
	if rec := get(app, "/ping", nil); rec.Code != http.StatusOK {
		t.Errorf("/ping should not be rate limited, got %d", rec.Code)
	}
}

func TestWriteGeocodeError_Unknown(t *testing.T) {
	rec := get(newTestApp(&mockGeocoder{err: errors.New("boom")}, &mockSearch{}), "/geocode?q=x", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}
