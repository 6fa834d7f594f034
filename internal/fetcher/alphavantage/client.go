package alphavantage

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

const baseURL = "https://www.alphavantage.co/query"

// ErrMissingAPIKey is returned before any network I/O when the client was
// built without a key.
var ErrMissingAPIKey = errors.New("alphavantage: missing API key")

// APIError carries an application-level error reported by Alpha Vantage in an
// otherwise successful response body.
type APIError struct {
	Message string
}

func (e *APIError) Error() string { return "alphavantage: " + e.Message }

// JSONGetter issues one GET and returns the verified JSON body.
//
//go:generate mockgen -package=alphavantage_test -destination=mock_gateway_test.go -source=client.go JSONGetter
type JSONGetter interface {
	GetJSON(ctx context.Context, rawURL string, params url.Values) (json.RawMessage, error)
}

// Client is a client for the Alpha Vantage query API.
type Client struct {
	// baseURL is the base URL for the API.
	baseURL string
	// apiKey authenticates every request; empty disables the client.
	apiKey string
	// gateway performs the outbound calls.
	gateway JSONGetter
}

// Option is a configuration option for the Alpha Vantage client.
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

// NewClient creates a new Alpha Vantage client. An empty key is allowed and
// leaves the client constructed but inert: every call reports ErrMissingAPIKey.
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

type quoteResponse struct {
	GlobalQuote  *globalQuote `json:"Global Quote"`
	ErrorMessage string       `json:"Error Message"`
}

type globalQuote struct {
	Symbol string `json:"01. symbol"`
	Price  string `json:"05. price"`
}

// GlobalQuote fetches the current price for a US equity symbol via the
// GLOBAL_QUOTE function.
func (c *Client) GlobalQuote(ctx context.Context, symbol string) (float64, error) {
	if c.apiKey == "" {
		return 0, ErrMissingAPIKey
	}

	params := url.Values{}
	params.Set("function", "GLOBAL_QUOTE")
	params.Set("symbol", symbol)
	params.Set("apikey", c.apiKey)

	raw, err := c.gateway.GetJSON(ctx, c.baseURL, params)
	if err != nil {
		return 0, err
	}

	var body quoteResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return 0, fmt.Errorf("decoding quote response: %w", err)
	}
	if body.ErrorMessage != "" {
		return 0, &APIError{Message: body.ErrorMessage}
	}
	if body.GlobalQuote == nil || body.GlobalQuote.Price == "" {
		return 0, fmt.Errorf("no quote for %q in response: %s", symbol, raw)
	}
	price, err := strconv.ParseFloat(body.GlobalQuote.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("price %q for %q is not numeric: %w", body.GlobalQuote.Price, symbol, err)
	}
	return price, nil
}
