package openmeteo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// API Docs: https://open-meteo.com/en/docs/elevation-api
// Sample request: https://api.open-meteo.com/v1/elevation?latitude=26.4499&longitude=80.3319
const (
	baseURL        = "https://api.open-meteo.com/v1/elevation"
	defaultTimeout = 10 * time.Second
)

// ErrNoElevation is returned when the response carries no value for the point
var ErrNoElevation = errors.New("no elevation returned")

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     *slog.Logger
}

func NewClient(logger *slog.Logger, userAgent string) *Client {
	return NewClientWithBaseURL(logger, userAgent, baseURL)
}

func NewClientWithBaseURL(logger *slog.Logger, userAgent, base string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    base,
		userAgent:  userAgent,
		logger:     logger.With("component", "openmeteo-client"),
	}
}

// Elevation returns the terrain height in meters at a single point
func (c *Client) Elevation(ctx context.Context, latitude, longitude float64) (float64, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return 0, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("failed to reach Open-Meteo", "error", err)
		return 0, fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("Open-Meteo returned error",
			"status_code", resp.StatusCode,
			"response_body", string(body),
		)
		return 0, fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp ElevationResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(apiResp.Elevation) == 0 {
		return 0, ErrNoElevation
	}

	return apiResp.Elevation[0], nil
}
