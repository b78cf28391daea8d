package teamleader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the production Teamleader API host.
const DefaultBaseURL = "https://www.teamleader.be"

// DefaultPageSize is the number of records the API returns per page on
// list endpoints.
const DefaultPageSize = 100

// Client talks to the Teamleader API. The credential pair is fixed for
// the lifetime of the client. Every method performs exactly one request
// per page of data; there is no shared mutable state between calls.
type Client struct {
	baseURL    string
	group      string
	secret     string
	httpClient *http.Client
	logger     zerolog.Logger
	pageSize   int
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API host, mainly for testing.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTimeout sets the per-request HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithPageSize overrides the pagination page size.
func WithPageSize(size int) Option {
	return func(c *Client) {
		if size > 0 {
			c.pageSize = size
		}
	}
}

// New creates a Teamleader client for the given API group and secret.
func New(group, secret string, logger zerolog.Logger, opts ...Option) *Client {
	client := &Client{
		baseURL:    DefaultBaseURL,
		group:      group,
		secret:     secret,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
		pageSize:   DefaultPageSize,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// do performs a single form-encoded POST to the named endpoint with
// the credentials merged in, and classifies the response. The fields
// must not contain the credential keys.
func (c *Client) do(ctx context.Context, endpoint string, fields Fields) (json.RawMessage, error) {
	if fields == nil {
		fields = Fields{}
	}
	for _, reserved := range []string{"api_group", "api_secret"} {
		if _, ok := fields[reserved]; ok {
			return nil, invalidInput(reserved, "field is reserved for credentials")
		}
	}

	form := fields.Clean().Values()
	form.Set("api_group", c.group)
	form.Set("api_secret", c.secret)

	requestURL := fmt.Sprintf("%s/api/%s.php", c.baseURL, endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("endpoint", endpoint).Msg("Calling Teamleader API")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		if !json.Valid(body) {
			return nil, fmt.Errorf("invalid JSON in response from %s", endpoint)
		}
		return json.RawMessage(body), nil
	case http.StatusUnauthorized:
		return nil, c.apiError(ErrUnauthorized, resp.StatusCode, body)
	case 505:
		// Teamleader overloads 505 for throttling.
		return nil, c.apiError(ErrRateLimitExceeded, resp.StatusCode, body)
	case http.StatusBadRequest:
		return nil, c.apiError(ErrBadRequest, resp.StatusCode, body)
	default:
		return nil, c.apiError(ErrUnknownAPI, resp.StatusCode, body)
	}
}

func (c *Client) apiError(kind error, status int, body []byte) error {
	err := &APIError{
		kind:       kind,
		StatusCode: status,
		Message:    extractReason(body),
		Body:       body,
	}
	c.logger.Debug().Int("status", status).Str("reason", err.Message).Msg("Teamleader API error")
	return err
}

// extractReason pulls the server-supplied reason string out of an
// error body, falling back to the raw text when the body is not the
// documented {"reason": ...} shape.
func extractReason(body []byte) string {
	var payload struct {
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Reason != "" {
		return payload.Reason
	}
	return strings.TrimSpace(string(body))
}

// decodeID decodes an endpoint response that is a bare numeric ID.
func decodeID(raw json.RawMessage) (int, error) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, fmt.Errorf("failed to parse ID from response: %w", err)
	}
	id, err := strconv.Atoi(n.String())
	if err != nil {
		return 0, fmt.Errorf("failed to parse ID from response: %w", err)
	}
	return id, nil
}
