package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Sessions  bool      `json:"sessions"`
	Prompts   bool      `json:"prompts"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor checks the backing stores once immediately, then
// every minute, keeping an in-memory snapshot for the /health endpoint.
func StartHealthMonitor(sessionClient, promptClient *redis.Client, mongoClient *mongo.Client) {
	probe := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		snapshot := HealthStatus{
			Sessions:  sessionClient.Ping(ctx).Err() == nil,
			Prompts:   promptClient.Ping(ctx).Err() == nil,
			Mongo:     mongoClient.Ping(ctx, nil) == nil,
			CheckedAt: time.Now(),
		}

		healthMu.Lock()
		currentHealth = snapshot
		healthMu.Unlock()
	}

	go func() {
		probe()
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			probe()
		}
	}()
}
