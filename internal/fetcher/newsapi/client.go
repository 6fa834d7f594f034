package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"marketfetch/internal/gateway"
	"marketfetch/internal/httpx"
)

const baseURL = "https://newsapi.org/v2/everything"

// ErrMissingAPIKey is returned before any network I/O when the client was
// built without a key.
var ErrMissingAPIKey = errors.New("newsapi: missing API key")

// APIError carries an application-level error reported by NewsAPI in a body
// whose status field is not "ok".
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return "newsapi: " + e.Code + ": " + e.Message
	}
	return "newsapi: " + e.Message
}

// Source identifies the publication an article came from.
type Source struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Article is a direct projection of the upstream article object. Fields the
// upstream omits stay zero-valued rather than erroring.
type Article struct {
	Title       string    `json:"title"`
	Source      Source    `json:"source"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"publishedAt"`
	Description string    `json:"description"`
}

// Query parameterizes one everything-endpoint search. Zero-valued fields are
// omitted from the request and left to the upstream defaults.
type Query struct {
	Text     string
	Language string
	PageSize int
	SortBy   string
}

// JSONGetter issues one GET and returns the verified JSON body.
//
//go:generate mockgen -package=newsapi_test -destination=mock_gateway_test.go -source=client.go JSONGetter
type JSONGetter interface {
	GetJSON(ctx context.Context, rawURL string, params url.Values) (json.RawMessage, error)
}

// Client is a client for the NewsAPI everything endpoint.
type Client struct {
	baseURL string
	apiKey  string
	gateway JSONGetter
}

// Option is a configuration option for the NewsAPI client.
type Option func(*Client)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithGateway sets the request gateway used for outbound calls.
func WithGateway(g JSONGetter) Option {
	return func(c *Client) {
		c.gateway = g
	}
}

// NewClient creates a new NewsAPI client. An empty key leaves the client
// constructed but inert: every call reports ErrMissingAPIKey.
func NewClient(key string, options ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		apiKey:  key,
		gateway: gateway.New(httpx.New(10 * time.Second)),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

type searchResponse struct {
	Status       string    `json:"status"`
	TotalResults int       `json:"totalResults"`
	Articles     []Article `json:"articles"`
	Code         string    `json:"code"`
	Message      string    `json:"message"`
}

// Everything runs one free-text search and returns the articles in upstream
// order. A body whose status is not "ok" is an APIError even when the HTTP
// status was 200.
func (c *Client) Everything(ctx context.Context, q Query) ([]Article, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	params := url.Values{}
	params.Set("q", q.Text)
	params.Set("apiKey", c.apiKey)
	if q.Language != "" {
		params.Set("language", q.Language)
	}
	if q.PageSize > 0 {
		params.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	if q.SortBy != "" {
		params.Set("sortBy", q.SortBy)
	}

	raw, err := c.gateway.GetJSON(ctx, c.baseURL, params)
	if err != nil {
		return nil, err
	}

	var body searchResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}
	if body.Status != "ok" {
		msg := body.Message
		if msg == "" {
			msg = "unknown error"
		}
		return nil, &APIError{Code: body.Code, Message: msg}
	}
	if body.Articles == nil {
		return []Article{}, nil
	}
	return body.Articles, nil
}
