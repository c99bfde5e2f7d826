package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache keys
const (
	DashboardSummaryKey = "dashboard:summary"
	DebtSummaryKey      = "debts:customers:summary"
	DailySummaryKeyFmt  = "reports:daily:%s"
)

var client *redis.Client

// Init initializes the Redis connection. The cache degrades gracefully:
// when Redis is unavailable every read misses and every write is a no-op.
func Init(addr, password string) error {
	client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// Enabled reports whether a Redis connection was established at startup
func Enabled() bool {
	return client != nil
}

// Ping round-trips the Redis connection, for health reporting
func Ping(ctx context.Context) error {
	if client == nil {
		return fmt.Errorf("redis not configured")
	}
	return client.Ping(ctx).Err()
}

// Close releases the Redis connection if one was established
func Close() {
	if client != nil {
		client.Close()
		client = nil
	}
}

// GetDashboardSummary returns the cached dashboard summary if available
func GetDashboardSummary(ctx context.Context) ([]byte, bool) {
	return get(ctx, DashboardSummaryKey)
}

// CacheDashboardSummary caches the dashboard summary for 60 seconds
func CacheDashboardSummary(ctx context.Context, data []byte) {
	set(ctx, DashboardSummaryKey, data, 60*time.Second)
}

// GetDebtSummary returns the cached per-customer debt summary if available
func GetDebtSummary(ctx context.Context) ([]byte, bool) {
	return get(ctx, DebtSummaryKey)
}

// CacheDebtSummary caches the per-customer debt summary for 2 minutes
func CacheDebtSummary(ctx context.Context, data []byte) {
	set(ctx, DebtSummaryKey, data, 2*time.Minute)
}

// InvalidateDebtSummary drops the cached debt summary (called after any
// repayment or new debt so the summary never serves stale balances)
func InvalidateDebtSummary(ctx context.Context) {
	if client == nil {
		return
	}
	client.Del(ctx, DebtSummaryKey, DashboardSummaryKey)
}

// GetDailySummary returns the cached daily report for a date (YYYY-MM-DD)
func GetDailySummary(ctx context.Context, date string) ([]byte, bool) {
	return get(ctx, fmt.Sprintf(DailySummaryKeyFmt, date))
}

// CacheDailySummary caches a daily report for 5 minutes
func CacheDailySummary(ctx context.Context, date string, data []byte) {
	set(ctx, fmt.Sprintf(DailySummaryKeyFmt, date), data, 5*time.Minute)
}

func get(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func set(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}
