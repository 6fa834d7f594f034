package main

import (
    "context"
    "encoding/json"
    "flag"
    "fmt"
    "log"
    "os"
    "time"

    "github.com/guregu/null/v6"
    "golang.org/x/sync/errgroup"

    "marketfetch/internal/config"
    "marketfetch/internal/fetcher"
    "marketfetch/internal/fetcher/newsapi"
    "marketfetch/internal/fetcher/yahoo"
    "marketfetch/internal/gateway"
    "marketfetch/internal/httpx"
)

type report struct {
    USStock    null.Float        `json:"us_stock"`
    IndiaStock null.Float        `json:"india_stock"`
    History    []fetcher.Bar     `json:"history,omitempty"`
    Crypto     null.Float        `json:"crypto"`
    News       []fetcher.Article `json:"news"`
}

func main() {
    var usSymbol, inSymbol, period, interval, startStr, endStr string
    var cryptoID, vsCurrency, newsQuery, configPath string
    var pageSize, timeout int

    flag.StringVar(&usSymbol, "symbol", getenv("SYMBOL", "AAPL"), "US equity symbol")
    flag.StringVar(&inSymbol, "in-symbol", getenv("IN_SYMBOL", "RELIANCE.NS"), "NSE equity symbol")
    flag.StringVar(&period, "period", "1mo", "history period, used when -start/-end unset")
    flag.StringVar(&interval, "interval", "1d", "history bar interval")
    flag.StringVar(&startStr, "start", "", "history start date (YYYY-MM-DD)")
    flag.StringVar(&endStr, "end", "", "history end date (YYYY-MM-DD)")
    flag.StringVar(&cryptoID, "crypto", getenv("CRYPTO_ID", "bitcoin"), "CoinGecko asset id")
    flag.StringVar(&vsCurrency, "vs", "", "crypto target currency (default from config)")
    flag.StringVar(&newsQuery, "news-query", "", "news query (default from config)")
    flag.IntVar(&pageSize, "news-page-size", 0, "news page size (default from config)")
    flag.IntVar(&timeout, "timeout", 0, "request timeout seconds (default from config)")
    flag.StringVar(&configPath, "config", getenv("CONFIG_FILE", ""), "path to config.json (optional)")
    flag.Parse()

    cfg, err := config.Load(configPath)
    if err != nil { log.Fatalf("config: %v", err) }
    if timeout > 0 { cfg.Client.RequestTimeoutSec = timeout }
    if cfg.AlphaVantage.APIKey == "" {
        log.Println("warning: ALPHA_VANTAGE_API_KEY not set; US stock quotes disabled")
    }
    if cfg.News.APIKey == "" {
        log.Println("warning: NEWS_API_KEY not set; news disabled")
    }

    hq := yahoo.HistoryQuery{Period: period, Interval: interval}
    if startStr != "" && endStr != "" {
        hq.Start = mustDate(startStr)
        hq.End = mustDate(endStr)
    }

    httpClient := httpx.New(time.Duration(cfg.Client.RequestTimeoutSec) * time.Second)
    client := fetcher.New(cfg, gateway.New(httpClient))

    ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
    defer cancel()

    // Each operation is a single blocking call; the fan-out lives here in the
    // CLI, not in the library.
    var rep report
    g, ctx := errgroup.WithContext(ctx)
    g.Go(func() error { rep.USStock = client.USStockPrice(ctx, usSymbol); return nil })
    g.Go(func() error { rep.IndiaStock = client.IndianStockPrice(ctx, inSymbol); return nil })
    g.Go(func() error { rep.History = client.IndianStockHistory(ctx, inSymbol, hq); return nil })
    g.Go(func() error { rep.Crypto = client.CryptoPrice(ctx, cryptoID, vsCurrency); return nil })
    g.Go(func() error {
        rep.News = client.FinancialNews(ctx, newsapi.Query{Text: newsQuery, PageSize: pageSize})
        return nil
    })
    _ = g.Wait()

    b, _ := json.MarshalIndent(rep, "", "  ")
    fmt.Println(string(b))
}

func mustDate(s string) time.Time {
    t, err := time.Parse(time.DateOnly, s)
    if err != nil { log.Fatalf("bad date %q: %v", s, err) }
    return t
}

func getenv(key, def string) string { if v := os.Getenv(key); v != "" { return v }; return def }
