package fetcher

import (
	"context"
	"log"

	"github.com/guregu/null/v6"

	"marketfetch/internal/config"
	"marketfetch/internal/fetcher/alphavantage"
	"marketfetch/internal/fetcher/coingecko"
	"marketfetch/internal/fetcher/newsapi"
	"marketfetch/internal/fetcher/yahoo"
	"marketfetch/internal/gateway"
)

// Client is the market data client. Every operation issues exactly one
// blocking fetch and maps any failure — missing credential, transport
// problem, bad status, undecodable or mis-shaped body, upstream-reported
// error — to the operation's absent value after logging one diagnostic.
// Nothing panics and no error escapes to the caller.
//
// All fields are read-only after construction, so concurrent use needs no
// locking.
type Client struct {
	Equities EquityQuoter
	Stocks   yahoo.Backend
	Crypto   CryptoQuoter
	News     NewsSearcher

	vsCurrency   string
	newsDefaults newsapi.Query
	logger       *log.Logger
}

// New wires the real upstream clients from config. Missing credentials do not
// fail construction; they disable only the dependent operations.
func New(cfg config.Config, gw *gateway.Gateway) *Client {
	avOpts := []alphavantage.Option{alphavantage.WithGateway(gw)}
	if cfg.AlphaVantage.Endpoint != "" {
		avOpts = append(avOpts, alphavantage.WithBaseURL(cfg.AlphaVantage.Endpoint))
	}
	cgOpts := []coingecko.Option{coingecko.WithGateway(gw)}
	if cfg.CoinGecko.Endpoint != "" {
		cgOpts = append(cgOpts, coingecko.WithBaseURL(cfg.CoinGecko.Endpoint))
	}
	newsOpts := []newsapi.Option{newsapi.WithGateway(gw)}
	if cfg.News.Endpoint != "" {
		newsOpts = append(newsOpts, newsapi.WithBaseURL(cfg.News.Endpoint))
	}
	return &Client{
		Equities:   alphavantage.NewClient(cfg.AlphaVantage.APIKey, avOpts...),
		Stocks:     yahoo.NewYahooBackend(),
		Crypto:     coingecko.NewClient(cgOpts...),
		News:       newsapi.NewClient(cfg.News.APIKey, newsOpts...),
		vsCurrency: cfg.CoinGecko.VsCurrency,
		newsDefaults: newsapi.Query{
			Text:     cfg.News.Query,
			Language: cfg.News.Language,
			PageSize: cfg.News.PageSize,
			SortBy:   cfg.News.SortBy,
		},
		logger: log.Default(),
	}
}

func (c *Client) logf(format string, args ...any) {
	l := c.logger
	if l == nil {
		l = log.Default()
	}
	l.Printf(format, args...)
}

// USStockPrice returns the current price of a US equity, or an invalid Float
// when the quote could not be fetched.
func (c *Client) USStockPrice(ctx context.Context, symbol string) null.Float {
	price, err := c.Equities.GlobalQuote(ctx, symbol)
	if err != nil {
		c.logf("us stock price %s: %v", symbol, err)
		return null.Float{}
	}
	return null.FloatFrom(price)
}

// IndianStockPrice returns the current price of a second-market equity via
// the delegated library. Presence is explicit: a successfully fetched quote
// with a zero price is a valid zero, not absent.
func (c *Client) IndianStockPrice(_ context.Context, symbol string) null.Float {
	q, err := c.Stocks.Quote(symbol)
	if err != nil {
		c.logf("stock price %s: %v", symbol, err)
		return null.Float{}
	}
	if q == nil {
		c.logf("stock price %s: no quote returned", symbol)
		return null.Float{}
	}
	return null.FloatFrom(q.RegularMarketPrice)
}

// IndianStockHistory returns the historical bars for the requested window,
// time ascending as the library returns them, or nil when the fetch failed or
// produced no data.
func (c *Client) IndianStockHistory(_ context.Context, symbol string, q yahoo.HistoryQuery) []Bar {
	bars, err := c.Stocks.History(symbol, q)
	if err != nil {
		c.logf("stock history %s: %v", symbol, err)
		return nil
	}
	if len(bars) == 0 {
		c.logf("stock history %s: no data for the requested window", symbol)
		return nil
	}
	return bars
}

// CryptoPrice returns the current price of a crypto asset in vsCurrency,
// defaulting to the configured reference currency, or an invalid Float on
// any failure.
func (c *Client) CryptoPrice(ctx context.Context, id, vsCurrency string) null.Float {
	if vsCurrency == "" {
		vsCurrency = c.vsCurrency
	}
	if vsCurrency == "" {
		vsCurrency = "usd"
	}
	price, err := c.Crypto.SimplePrice(ctx, id, vsCurrency)
	if err != nil {
		c.logf("crypto price %s/%s: %v", id, vsCurrency, err)
		return null.Float{}
	}
	return null.FloatFrom(price)
}

// FinancialNews returns articles matching the query in upstream order.
// Unset query fields fall back to the configured defaults. This operation's
// absent value is an empty slice: callers only ever iterate the result.
func (c *Client) FinancialNews(ctx context.Context, q newsapi.Query) []Article {
	if q.Text == "" {
		q.Text = c.newsDefaults.Text
	}
	if q.Language == "" {
		q.Language = c.newsDefaults.Language
	}
	if q.PageSize <= 0 {
		q.PageSize = c.newsDefaults.PageSize
	}
	if q.SortBy == "" {
		q.SortBy = c.newsDefaults.SortBy
	}
	articles, err := c.News.Everything(ctx, q)
	if err != nil {
		c.logf("news %q: %v", q.Text, err)
		return []Article{}
	}
	return articles
}
