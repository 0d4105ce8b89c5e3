package overpass

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// API Docs: https://wiki.openstreetmap.org/wiki/Overpass_API
// Sample request: POST https://overpass-api.de/api/interpreter with data=[out:json];node["historic"](around:3000,26.45,80.33);out;
const (
	baseURL = "https://overpass-api.de/api/interpreter"

	// client timeout leaves room for the 25s server-side query timeout
	defaultTimeout = 35 * time.Second
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     *slog.Logger
}

func NewClient(logger *slog.Logger, userAgent string) *Client {
	return NewClientWithBaseURL(logger, userAgent, baseURL)
}

// NewClientWithBaseURL points the client at an alternative interpreter endpoint.
func NewClientWithBaseURL(logger *slog.Logger, userAgent, base string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    base,
		userAgent:  userAgent,
		logger:     logger.With("component", "overpass-client"),
	}
}

// Interpret submits a query to the interpreter. A non-2xx status, a body that
// cannot be decoded, or a runtime-error remark are all reported as errors.
func (c *Client) Interpret(ctx context.Context, query Query) (*InterpreterResponse, error) {
	ql := query.String()

	form := url.Values{}
	form.Set("data", ql)

	c.logger.Debug("submitting Overpass query",
		"url", c.baseURL,
		"query", ql,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("failed to reach Overpass interpreter", "error", err)
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("Overpass API returned error",
			"status_code", resp.StatusCode,
			"response_body", string(body),
		)
		return nil, fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp InterpreterResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		c.logger.Error("failed to decode Overpass response", "error", err)
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if strings.HasPrefix(apiResp.Remark, "runtime error") {
		c.logger.Error("Overpass query failed on the server", "remark", apiResp.Remark)
		return nil, fmt.Errorf("overpass runtime error: %s", apiResp.Remark)
	}

	c.logger.Debug("successfully fetched Overpass elements", "element_count", len(apiResp.Elements))

	return &apiResp, nil
}
