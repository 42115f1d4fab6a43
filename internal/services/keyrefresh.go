package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// RefreshableKeys is the slice of the key resolver the refresher drives.
type RefreshableKeys interface {
	Refresh(ctx context.Context) error
}

// KeyRefresher keeps the identity provider's signing-cert cache warm on a
// fixed schedule so logins rarely pay for a synchronous fetch.
type KeyRefresher struct {
	keys     RefreshableKeys
	logger   *zap.Logger
	cron     *cron.Cron
	interval time.Duration
}

func NewKeyRefresher(keys RefreshableKeys, interval time.Duration, logger *zap.Logger) *KeyRefresher {
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	kr := &KeyRefresher{
		keys:     keys,
		logger:   logger,
		interval: interval,
		cron:     cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(interval.Seconds()))
	_, _ = kr.cron.AddFunc(schedule, kr.run)

	return kr
}

// Start primes the cache once and launches the cron scheduler.
func (kr *KeyRefresher) Start() {
	if kr == nil || kr.cron == nil {
		return
	}
	kr.run()
	kr.cron.Start()
	kr.logger.Info("signing key refresher started", zap.Duration("interval", kr.interval))
}

// Stop gracefully stops the scheduler.
func (kr *KeyRefresher) Stop(ctx context.Context) {
	if kr == nil || kr.cron == nil {
		return
	}
	stopCtx := kr.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	kr.logger.Info("signing key refresher stopped")
}

func (kr *KeyRefresher) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := kr.keys.Refresh(ctx); err != nil {
		kr.logger.Warn("signing key refresh failed", zap.Error(err))
	}
}
