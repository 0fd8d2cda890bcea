package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/camuig/clac/internal/config"
	"github.com/camuig/clac/internal/fetch"
	"github.com/camuig/clac/internal/logger"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

var symbolPattern = regexp.MustCompile(`^[A-Za-z0-9.-]{1,15}$`)

var (
	ErrInvalidSymbol = errors.New("invalid symbol format")
	ErrNotFound      = errors.New("quote not found")
)

type Quote struct {
	Symbol   string  `json:"symbol"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta *struct {
				Currency           string  `json:"currency"`
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
		} `json:"result"`
	} `json:"chart"`
}

type Client struct {
	fetch       *fetch.Client
	baseURL     string
	concurrency int
	logger      *logger.Logger
}

func NewClient(cfg *config.Config, log *logger.Logger) *Client {
	f := fetch.NewClient(cfg.YahooTimeout(), cfg.YahooRetryMaxElapsed(), log)
	f.Header.Set("User-Agent", userAgent)

	return &Client{
		fetch:       f,
		baseURL:     strings.TrimRight(cfg.Yahoo.BaseURL, "/"),
		concurrency: cfg.Yahoo.Concurrency,
		logger:      log,
	}
}

// ValidSymbol reports whether symbol looks like a Yahoo ticker (005930.KS, AAPL).
func ValidSymbol(symbol string) bool {
	return symbolPattern.MatchString(symbol)
}

// Quote returns the regular market price of symbol.
func (c *Client) Quote(ctx context.Context, symbol string) (Quote, error) {
	if !ValidSymbol(symbol) {
		return Quote{}, ErrInvalidSymbol
	}

	addr := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d", c.baseURL, url.PathEscape(symbol))

	var resp chartResponse
	if err := c.fetch.GetJSON(ctx, addr, &resp); err != nil {
		if fetch.StatusCode(err) == http.StatusNotFound {
			return Quote{}, ErrNotFound
		}
		return Quote{}, fmt.Errorf("fetch quote %s: %w", symbol, err)
	}

	if len(resp.Chart.Result) == 0 || resp.Chart.Result[0].Meta == nil {
		return Quote{}, ErrNotFound
	}
	meta := resp.Chart.Result[0].Meta
	if meta.RegularMarketPrice <= 0 {
		return Quote{}, ErrNotFound
	}

	return Quote{
		Symbol:   symbol,
		Price:    meta.RegularMarketPrice,
		Currency: meta.Currency,
	}, nil
}

// Quotes looks up several symbols concurrently. Results keep the input order;
// the first failure cancels the remaining lookups.
func (c *Client) Quotes(ctx context.Context, symbols []string) ([]Quote, error) {
	quotes := make([]Quote, len(symbols))

	g, ctx := errgroup.WithContext(ctx)
	if c.concurrency > 0 {
		g.SetLimit(c.concurrency)
	}

	for i, symbol := range symbols {
		g.Go(func() error {
			q, err := c.Quote(ctx, symbol)
			if err != nil {
				return fmt.Errorf("%s: %w", symbol, err)
			}
			quotes[i] = q
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return quotes, nil
}
