package upbit

import (
	"strings"

	"github.com/patrickmn/go-cache"

	"github.com/camuig/clac/internal/config"
	"github.com/camuig/clac/internal/fetch"
	"github.com/camuig/clac/internal/logger"
)

const marketsKey = "krw-markets"

type Client struct {
	fetch   *fetch.Client
	baseURL string
	markets *cache.Cache
	logger  *logger.Logger
}

func NewClient(cfg *config.Config, log *logger.Logger) *Client {
	ttl := cfg.MarketsCacheTTL()
	return &Client{
		fetch:   fetch.NewClient(cfg.UpbitTimeout(), cfg.UpbitRetryMaxElapsed(), log),
		baseURL: strings.TrimRight(cfg.Upbit.BaseURL, "/"),
		markets: cache.New(ttl, 2*ttl),
		logger:  log,
	}
}
