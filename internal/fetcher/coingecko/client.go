package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"marketfetch/internal/gateway"
	"marketfetch/internal/httpx"
)

const baseURL = "https://api.coingecko.com/api/v3/simple/price"

// JSONGetter issues one GET and returns the verified JSON body.
//
//go:generate mockgen -package=coingecko_test -destination=mock_gateway_test.go -source=client.go JSONGetter
type JSONGetter interface {
	GetJSON(ctx context.Context, rawURL string, params url.Values) (json.RawMessage, error)
}

// Client is a client for the CoinGecko simple price API. No credential is
// required.
type Client struct {
	baseURL string
	gateway JSONGetter
}

// Option is a configuration option for the CoinGecko client.
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

// NewClient creates a new CoinGecko client.
func NewClient(options ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		gateway: gateway.New(httpx.New(10 * time.Second)),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// SimplePrice fetches the current price of one crypto asset in one target
// currency. The response is keyed by asset id, each value keyed by currency
// code; both levels must be present.
func (c *Client) SimplePrice(ctx context.Context, id, vsCurrency string) (float64, error) {
	params := url.Values{}
	params.Set("ids", id)
	params.Set("vs_currencies", vsCurrency)

	raw, err := c.gateway.GetJSON(ctx, c.baseURL, params)
	if err != nil {
		return 0, err
	}

	var body map[string]map[string]json.Number
	if err := json.Unmarshal(raw, &body); err != nil {
		return 0, fmt.Errorf("decoding price response: %w", err)
	}
	asset, ok := body[id]
	if !ok {
		return 0, fmt.Errorf("no entry for %q in response: %s", id, raw)
	}
	n, ok := asset[vsCurrency]
	if !ok {
		return 0, fmt.Errorf("no %s price for %q in response: %s", vsCurrency, id, raw)
	}
	price, err := n.Float64()
	if err != nil {
		return 0, fmt.Errorf("price %q for %q is not numeric: %w", n.String(), id, err)
	}
	return price, nil
}
