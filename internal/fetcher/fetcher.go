// Package fetcher aggregates four upstream market-data sources behind one
// best-effort client: US equity quotes, second-market equity quotes and
// history via the delegated Yahoo library, crypto quotes, and news search.
package fetcher

import (
	"context"

	"marketfetch/internal/fetcher/newsapi"
	"marketfetch/internal/fetcher/yahoo"
)

// Bar and Article are the normalized shapes the operations return. The
// source packages already produce exactly these, so alias rather than copy.
type (
	Bar     = yahoo.Bar
	Article = newsapi.Article
)

// EquityQuoter fetches a current US equity price.
type EquityQuoter interface {
	GlobalQuote(ctx context.Context, symbol string) (float64, error)
}

// CryptoQuoter fetches a current crypto price in a target currency.
type CryptoQuoter interface {
	SimplePrice(ctx context.Context, id, vsCurrency string) (float64, error)
}

// NewsSearcher runs one free-text news search.
type NewsSearcher interface {
	Everything(ctx context.Context, q newsapi.Query) ([]newsapi.Article, error)
}
