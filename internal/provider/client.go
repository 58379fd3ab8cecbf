package provider

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Options configures a Client.
type Options struct {
	BaseURL string
	APIKey  string
	Referer string
	Title   string
	// Timeout bounds each call. Zero leaves calls unbounded.
	Timeout time.Duration
}

// Client posts payloads to the generation endpoint.
type Client struct {
	httpClient *resty.Client
}

// NewClient creates a client with auth and metadata headers preset.
func NewClient(opts Options) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetAuthToken(opts.APIKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if opts.Referer != "" {
		httpClient.SetHeader("HTTP-Referer", opts.Referer)
	}
	if opts.Title != "" {
		httpClient.SetHeader("X-Title", opts.Title)
	}
	if opts.Timeout > 0 {
		httpClient.SetTimeout(opts.Timeout)
	}
	return &Client{httpClient: httpClient}
}

// Post sends payload to path and decodes the reply.
//
// Errors are one of *TransportError (no response), *ProviderError (non-2xx)
// or *MalformedBodyError (2xx that is not JSON).
func (c *Client) Post(ctx context.Context, path string, payload *Payload) (*Response, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		Post(path)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	body := resp.Body()
	if !resp.IsSuccess() {
		return nil, newProviderError(resp.StatusCode(), statusText(resp.StatusCode(), resp.Status()), body)
	}

	var out Response
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &MalformedBodyError{Status: resp.StatusCode(), Snippet: snippet(body), Err: err}
	}
	return &out, nil
}

// statusText strips the numeric code from an HTTP status line such as
// "401 Unauthorized".
func statusText(code int, status string) string {
	return strings.TrimSpace(strings.TrimPrefix(status, strconv.Itoa(code)))
}
