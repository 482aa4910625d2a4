// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"voicedesk/config"

	"github.com/go-redis/redis/v8"
)

var (
	// SessionCacheClient is the dedicated client for call-session storage.
	SessionCacheClient *redis.Client
	// PromptCacheClient is the dedicated client for rendered prompt audio URLs.
	PromptCacheClient *redis.Client
)

// InitSessionCache initializes the Redis client for call-session storage.
func InitSessionCache() {
	SessionCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := SessionCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Sessions): %v", err)
	}
}

// GetSessionCacheClient returns the Redis client for call-session storage.
func GetSessionCacheClient() *redis.Client {
	if SessionCacheClient == nil {
		InitSessionCache()
	}
	return SessionCacheClient
}

// InitPromptCache initializes the Redis client for prompt audio caching.
func InitPromptCache() {
	PromptCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisPromptCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := PromptCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Prompt Cache): %v", err)
	}
}

// GetPromptCacheClient returns the Redis client for prompt audio caching.
func GetPromptCacheClient() *redis.Client {
	if PromptCacheClient == nil {
		InitPromptCache()
	}
	return PromptCacheClient
}

// InitRedis initializes all Redis clients at startup.
func InitRedis() {
	InitSessionCache()
	InitPromptCache()
}
