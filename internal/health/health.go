package health

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/cache"
)

// Component status values. "disabled" applies only to the cache, which is
// optional at startup.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
	StatusDisabled  = "disabled"
)

const probeTimeout = 2 * time.Second

// Checker probes the dependencies a request may touch. Postgres is
// required; Redis is optional because every cache read misses and every
// write no-ops when it is away.
type Checker struct {
	db *pgxpool.Pool
}

type Status struct {
	Status   string          `json:"status"`
	Database ComponentHealth `json:"database"`
	Cache    ComponentHealth `json:"cache"`
}

type ComponentHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

func NewChecker(db *pgxpool.Pool) *Checker {
	return &Checker{db: db}
}

func (c *Checker) Check(ctx context.Context) Status {
	dbHealth := c.checkDatabase(ctx)
	cacheHealth := checkCache(ctx)

	return Status{
		Status:   Overall(dbHealth, cacheHealth),
		Database: dbHealth,
		Cache:    cacheHealth,
	}
}

// Overall derives the service status from its components: down without
// Postgres, degraded when the cache is configured but unreachable.
func Overall(db, cache ComponentHealth) string {
	if db.Status != StatusHealthy {
		return StatusUnhealthy
	}
	if cache.Status == StatusUnhealthy {
		return StatusDegraded
	}
	return StatusHealthy
}

func (c *Checker) checkDatabase(ctx context.Context) ComponentHealth {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	start := time.Now()
	err := c.db.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	status := StatusHealthy
	if err != nil {
		status = StatusUnhealthy
	}
	return ComponentHealth{Status: status, ResponseTime: responseTime}
}

func checkCache(ctx context.Context) ComponentHealth {
	if !cache.Enabled() {
		return ComponentHealth{Status: StatusDisabled}
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	start := time.Now()
	err := cache.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	status := StatusHealthy
	if err != nil {
		status = StatusUnhealthy
	}
	return ComponentHealth{Status: status, ResponseTime: responseTime}
}
