package yahoo

import (
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/quote"
	"github.com/shopspring/decimal"
)

// Quote is the delegated library's descriptive quote structure.
// Yahoo via piquette/finance-go is the only delegated backend and its quote
// already carries the fields we care about, so alias the type rather than
// copying it.
type Quote = finance.Quote

// Bar is one time bucket of a historical series. Prices stay as decimals,
// the way the library hands them back.
type Bar struct {
	Time   time.Time       `json:"time"`
	Open   decimal.Decimal `json:"open"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Close  decimal.Decimal `json:"close"`
	Volume int64           `json:"volume"`
}

// HistoryQuery selects a historical window. Explicit Start/End take
// precedence; Period is a relative window ("1d", "5d", "1mo", ... "max")
// used when either date is unset. Interval is the bar width ("1m", "1d", ...).
type HistoryQuery struct {
	Start    time.Time
	End      time.Time
	Period   string
	Interval string
}

// Backend is the delegated market-data library behind the second-market
// operations.
type Backend interface {
	Quote(symbol string) (*Quote, error)
	History(symbol string, q HistoryQuery) ([]Bar, error)
}

// YahooBackend fetches from Yahoo Finance via piquette/finance-go.
type YahooBackend struct{}

func NewYahooBackend() *YahooBackend {
	return &YahooBackend{}
}

func (y *YahooBackend) Quote(symbol string) (*Quote, error) {
	return quote.Get(symbol)
}

// History fetches time-ascending bars for the resolved window. The library's
// ordering is kept as-is; no re-aggregation happens here.
func (y *YahooBackend) History(symbol string, q HistoryQuery) ([]Bar, error) {
	start, end, interval, err := resolveWindow(q, time.Now())
	if err != nil {
		return nil, err
	}

	iter := chart.Get(&chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: interval,
	})

	var bars []Bar
	for iter.Next() {
		b := iter.Bar()
		bars = append(bars, Bar{
			Time:   time.Unix(int64(b.Timestamp), 0).UTC(),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: int64(b.Volume),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return bars, nil
}
