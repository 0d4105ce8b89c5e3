package wikipedia

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// API Docs: https://en.wikipedia.org/api/rest_v1/#/Page%20content/get_page_summary__title_
// Sample request: https://en.wikipedia.org/api/rest_v1/page/summary/Taj_Mahal
const (
	baseURL = "https://en.wikipedia.org/api/rest_v1/page/summary"
)

// ErrPageNotFound is returned when no article matches the title
var ErrPageNotFound = errors.New("wikipedia page not found")

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
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    strings.TrimRight(base, "/"),
		userAgent:  userAgent,
		logger:     logger.With("component", "wikipedia-client"),
	}
}

// Summary fetches the lead extract and thumbnail for an article title.
func (c *Client) Summary(ctx context.Context, title string) (*SummaryResponse, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: empty title", ErrPageNotFound)
	}

	endpoint := c.baseURL + "/" + url.PathEscape(strings.ReplaceAll(title, " ", "_"))

	c.logger.Debug("fetching Wikipedia summary",
		"url", endpoint,
		"title", title,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("failed to fetch Wikipedia summary", "error", err)
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode == http.StatusNotFound {
		c.logger.Debug("no Wikipedia article for title", "title", title)
		return nil, fmt.Errorf("%w: %q", ErrPageNotFound, title)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("Wikipedia API returned error",
			"status_code", resp.StatusCode,
			"response_body", string(body),
		)
		return nil, fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, string(body))
	}

	var summary SummaryResponse
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		c.logger.Error("failed to decode Wikipedia summary", "error", err)
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &summary, nil
}
