package postgresql

import (
	"context"
	"time"
)

// HealthCheck represents database health information
type HealthCheck struct {
	Status       string        `json:"status"`
	ResponseTime time.Duration `json:"response_time"`
	ActiveConns  int32         `json:"active_connections"`
	IdleConns    int32         `json:"idle_connections"`
	MaxConns     int32         `json:"max_connections"`
	DatabaseName string        `json:"database_name"`
	Error        string        `json:"error,omitempty"`
}

// CheckHealth pings the database and reports pool usage.
func CheckHealth(ctx context.Context, db PostgreSQLClient) *HealthCheck {
	start := time.Now()

	health := &HealthCheck{DatabaseName: db.DatabaseName()}
	if stats := db.Stats(); stats != nil {
		health.ActiveConns = stats.AcquiredConns()
		health.IdleConns = stats.IdleConns()
		health.MaxConns = stats.MaxConns()
	}

	if err := db.Ping(ctx); err != nil {
		health.Status = "unhealthy"
		health.Error = err.Error()
		health.ResponseTime = time.Since(start)
		return health
	}

	health.Status = "healthy"
	health.ResponseTime = time.Since(start)
	return health
}
