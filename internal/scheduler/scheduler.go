package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/camuig/clac/internal/config"
	"github.com/camuig/clac/internal/logger"
	"github.com/camuig/clac/internal/upbit"
)

type marketRefresher interface {
	RefreshMarkets(ctx context.Context) ([]upbit.Market, error)
}

// Scheduler keeps the Upbit market list warm so the markets route rarely
// waits on the upstream.
type Scheduler struct {
	markets  marketRefresher
	interval time.Duration
	logger   *logger.Logger
}

func NewScheduler(upbitClient *upbit.Client, cfg *config.Config, log *logger.Logger) *Scheduler {
	return &Scheduler{
		markets:  upbitClient,
		interval: cfg.MarketsRefreshInterval(),
		logger:   log.With("component", "scheduler"),
	}
}

func (s *Scheduler) Run(ctx context.Context) {
	if s.interval <= 0 {
		s.logger.Info("market refresh disabled")
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("scheduler started", "interval", s.interval.String())

	// Run immediately on start
	s.runCycle(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.runCycle(ctx)
		}
	}
}

func (s *Scheduler) runCycle(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic in scheduler cycle", "panic", fmt.Sprint(r))
		}
	}()

	start := time.Now()
	markets, err := s.markets.RefreshMarkets(ctx)
	if err != nil {
		s.logger.Error("refresh upbit markets", "error", err)
		return
	}
	s.logger.Info("upbit markets refreshed", "count", len(markets), "duration", time.Since(start).String())
}
