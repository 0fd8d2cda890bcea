package upbit

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/patrickmn/go-cache"
)

var marketPattern = regexp.MustCompile(`^KRW-[A-Z]{3,10}$`)

// ValidMarket reports whether market is a KRW market code such as KRW-BTC.
func ValidMarket(market string) bool {
	return marketPattern.MatchString(market)
}

// Ticker returns the last trade price of a KRW market.
func (c *Client) Ticker(ctx context.Context, market string) (Ticker, error) {
	if !ValidMarket(market) {
		return Ticker{}, ErrInvalidMarket
	}

	var rows []Ticker
	addr := c.baseURL + "/v1/ticker?markets=" + url.QueryEscape(market)
	if err := c.fetch.GetJSON(ctx, addr, &rows); err != nil {
		return Ticker{}, fmt.Errorf("fetch ticker %s: %w", market, err)
	}

	if len(rows) == 0 || rows[0].TradePrice <= 0 {
		return Ticker{}, ErrNotFound
	}

	t := rows[0]
	if t.Market == "" {
		t.Market = market
	}
	return t, nil
}

// Markets returns the KRW markets, served from cache while fresh.
func (c *Client) Markets(ctx context.Context) ([]Market, error) {
	if cached, ok := c.markets.Get(marketsKey); ok {
		return cached.([]Market), nil
	}
	return c.RefreshMarkets(ctx)
}

// RefreshMarkets fetches the market list from Upbit and replaces the cached copy.
func (c *Client) RefreshMarkets(ctx context.Context) ([]Market, error) {
	var all []Market
	if err := c.fetch.GetJSON(ctx, c.baseURL+"/v1/market/all?isDetails=false", &all); err != nil {
		return nil, fmt.Errorf("fetch markets: %w", err)
	}

	krw := make([]Market, 0, len(all))
	for _, m := range all {
		if strings.HasPrefix(m.Market, "KRW-") {
			krw = append(krw, m)
		}
	}

	c.markets.Set(marketsKey, krw, cache.DefaultExpiration)
	c.logger.Debug("upbit markets refreshed", "total", len(all), "krw", len(krw))
	return krw, nil
}
