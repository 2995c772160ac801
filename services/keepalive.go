package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultKeepAliveInterval = 10 * time.Minute
	DefaultPingRetries       = 3
	pingTimeout              = 10 * time.Second
)

// Pinger is satisfied by db.Database.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KeepAlive pings the database on a schedule so that hosted instances which
// pause when idle stay awake.
type KeepAlive struct {
	database   Pinger
	interval   time.Duration
	retryDelay time.Duration
	log        *zap.Logger

	mu       sync.RWMutex
	lastPing time.Time
	lastErr  error
}

func NewKeepAlive(database Pinger, interval time.Duration, log *zap.Logger) *KeepAlive {
	if interval <= 0 {
		interval = DefaultKeepAliveInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &KeepAlive{
		database:   database,
		interval:   interval,
		retryDelay: 5 * time.Second,
		log:        log,
	}
}

// Ping runs one lightweight query against the database.
func (k *KeepAlive) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	err := k.database.Ping(ctx)

	k.mu.Lock()
	k.lastPing, k.lastErr = time.Now(), err
	k.mu.Unlock()

	if err != nil {
		k.log.Warn("database keep-alive ping failed", zap.Error(err))
		return err
	}
	k.log.Debug("database keep-alive successful")
	return nil
}

// PingWithRetry tries up to maxRetries times, waiting between attempts.
func (k *KeepAlive) PingWithRetry(ctx context.Context, maxRetries int) error {
	if maxRetries < 1 {
		maxRetries = 1
	}
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err = k.Ping(ctx); err == nil {
			return nil
		}
		if attempt == maxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(k.retryDelay):
		}
	}
	k.log.Error("all keep-alive attempts failed", zap.Int("attempts", maxRetries), zap.Error(err))
	return fmt.Errorf("keep-alive failed after %d attempts: %w", maxRetries, err)
}

// Run pings immediately and then every interval until ctx is cancelled.
func (k *KeepAlive) Run(ctx context.Context) error {
	k.log.Info("keep-alive started", zap.Duration("interval", k.interval))
	RunEvery(ctx, k.interval, func(ctx context.Context) {
		_ = k.PingWithRetry(ctx, DefaultPingRetries)
	})
	k.log.Info("keep-alive stopped")
	return nil
}

// LastResult returns when the database was last pinged and the outcome.
func (k *KeepAlive) LastResult() (time.Time, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.lastPing, k.lastErr
}
