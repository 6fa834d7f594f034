package config

import (
    "encoding/json"
    "errors"
    "fmt"
    "os"
)

type Client struct {
    RequestTimeoutSec int `json:"request_timeout_sec"`
}

type AlphaVantage struct {
    APIKey   string `json:"api_key"`
    Endpoint string `json:"endpoint"`
}

type CoinGecko struct {
    Endpoint   string `json:"endpoint"`
    VsCurrency string `json:"vs_currency"`
}

type News struct {
    APIKey   string `json:"api_key"`
    Endpoint string `json:"endpoint"`
    Query    string `json:"query"`
    Language string `json:"language"`
    PageSize int    `json:"page_size"`
    SortBy   string `json:"sort_by"`
}

type Config struct {
    Client       Client       `json:"client"`
    AlphaVantage AlphaVantage `json:"alpha_vantage"`
    CoinGecko    CoinGecko    `json:"coingecko"`
    News         News         `json:"news"`
}

func Default() Config {
    return Config{
        Client: Client{RequestTimeoutSec: 10},
        AlphaVantage: AlphaVantage{
            Endpoint: "https://www.alphavantage.co/query",
        },
        CoinGecko: CoinGecko{
            Endpoint:   "https://api.coingecko.com/api/v3/simple/price",
            VsCurrency: "usd",
        },
        News: News{
            Endpoint: "https://newsapi.org/v2/everything",
            Query:    "stocks OR finance OR cryptocurrency",
            Language: "en",
            PageSize: 5,
            SortBy:   "publishedAt",
        },
    }
}

// Load reads JSON config from path. If path is empty or file does not exist,
// it returns defaults. Environment variables override select fields for secrecy.
// A missing API key is not an error; it only disables the operations that need it.
func Load(path string) (Config, error) {
    cfg := Default()
    if path == "" {
        if _, err := os.Stat("config.json"); err == nil {
            path = "config.json"
        }
    }
    if path != "" {
        b, err := os.ReadFile(path)
        if err != nil && !errors.Is(err, os.ErrNotExist) {
            return cfg, fmt.Errorf("read config: %w", err)
        }
        if err == nil {
            if err := json.Unmarshal(b, &cfg); err != nil {
                return cfg, fmt.Errorf("parse config: %w", err)
            }
        }
    }
    applyEnv(&cfg)
    return cfg, nil
}

func applyEnv(cfg *Config) {
    if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x > 0 { cfg.Client.RequestTimeoutSec = x }
    }
    if v := os.Getenv("ALPHA_VANTAGE_API_KEY"); v != "" { cfg.AlphaVantage.APIKey = v }
    if v := os.Getenv("ALPHA_VANTAGE_ENDPOINT"); v != "" { cfg.AlphaVantage.Endpoint = v }
    if v := os.Getenv("COINGECKO_ENDPOINT"); v != "" { cfg.CoinGecko.Endpoint = v }
    if v := os.Getenv("CRYPTO_VS_CURRENCY"); v != "" { cfg.CoinGecko.VsCurrency = v }
    if v := os.Getenv("NEWS_API_KEY"); v != "" { cfg.News.APIKey = v }
    if v := os.Getenv("NEWS_ENDPOINT"); v != "" { cfg.News.Endpoint = v }
    if v := os.Getenv("NEWS_QUERY"); v != "" { cfg.News.Query = v }
    if v := os.Getenv("NEWS_LANGUAGE"); v != "" { cfg.News.Language = v }
    if v := os.Getenv("NEWS_PAGE_SIZE"); v != "" {
        var x int; fmt.Sscanf(v, "%d", &x); if x > 0 { cfg.News.PageSize = x }
    }
    if v := os.Getenv("NEWS_SORT_BY"); v != "" { cfg.News.SortBy = v }
}
