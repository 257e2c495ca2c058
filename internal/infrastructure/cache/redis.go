package cache

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"strings"
	"sync/atomic"
	"time"

	"jobtrack/internal/config"
	"jobtrack/internal/metrics"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultTTL = 600 * time.Second

var ErrUnavailable = errors.New("redis unavailable")

type Redis struct {
	client  *redis.Client
	logger  *zap.Logger
	metrics *metrics.Metrics
	ttl     time.Duration

	warnedUnavailable atomic.Bool
}

// NewRedis connects and pings once. When the ping fails the returned cache
// bypasses every call rather than failing requests.
func NewRedis(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger, m *metrics.Metrics) *Redis {
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "localhost"
	}
	port := strings.TrimSpace(cfg.Port)
	if port == "" {
		port = "6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unavailable, bypassing cache", zap.String("addr", net.JoinHostPort(host, port)), zap.Error(err))
		_ = client.Close()
		return &Redis{logger: logger, metrics: m, ttl: ttl}
	}

	logger.Info("redis connected", zap.String("addr", net.JoinHostPort(host, port)), zap.Duration("ttl", ttl))
	return NewFromClient(client, ttl, logger, m)
}

// NewFromClient wraps an existing client without pinging it.
func NewFromClient(client *redis.Client, ttl time.Duration, logger *zap.Logger, m *metrics.Metrics) *Redis {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Redis{client: client, logger: logger, metrics: m, ttl: ttl}
}

func (r *Redis) isUnavailable() bool {
	return r == nil || r.client == nil
}

func (r *Redis) warnUnavailableOnce(err error) {
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.logger.Warn("redis call failed, bypassing cache", zap.Error(err))
	}
}

func (r *Redis) Ping(ctx context.Context) error {
	if r.isUnavailable() {
		return ErrUnavailable
	}
	return r.client.Ping(ctx).Err()
}

func (r *Redis) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if r.isUnavailable() {
		r.metricsEvent("bypass")
		return false, nil
	}
	b, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.metricsEvent("miss")
			return false, nil
		}
		r.metricsEvent("error")
		r.warnUnavailableOnce(err)
		return false, err
	}
	if len(b) == 0 {
		r.metricsEvent("miss")
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		r.metricsEvent("error")
		return false, err
	}
	r.metricsEvent("hit")
	return true, nil
}

func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if r.isUnavailable() {
		return nil
	}
	if ttl <= 0 {
		ttl = r.ttl
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, key, b, ttl).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, keys ...string) error {
	if r.isUnavailable() || len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

func (r *Redis) Close() error {
	if r.isUnavailable() {
		return nil
	}
	return r.client.Close()
}

func (r *Redis) metricsEvent(result string) {
	if r == nil {
		return
	}
	r.metrics.CacheEvent(result)
}
