package main

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"time"

	memorystore "cloud.google.com/go/redis/apiv1"
	"cloud.google.com/go/redis/apiv1/redispb"
	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "gocompare:"

// responseCache is an optional Redis layer over serialized upstream answers.
// A nil cache (Redis not configured) degrades every operation to a miss so
// request handling is identical with and without it.
type responseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// newResponseCache connects to Redis when REDIS_ADDR is configured. When the
// GCP Memorystore instance coordinates are also present the instance CA certs
// are fetched and used for TLS, matching how the managed instances are
// provisioned.
func newResponseCache(ctx context.Context, cfg Config) *responseCache {
	if cfg.RedisAddr == "" {
		logMessage(LogLevelInfo, "Response cache disabled (REDIS_ADDR not set)")
		return nil
	}

	options := &redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  4 * time.Second,
	}

	if cfg.ProjectID != "" && cfg.Region != "" && cfg.InstanceID != "" {
		if tlsConfig, err := memorystoreTLSConfig(ctx, cfg); err != nil {
			logMessage(LogLevelError, "Failed to load Memorystore CA certs: %v", err)
		} else {
			options.TLSConfig = tlsConfig
		}
	}

	client := redis.NewClient(options)
	if err := client.Ping(ctx).Err(); err != nil {
		logMessage(LogLevelWarning, "Failed to connect to Redis at %s: %v (continuing without cache hits)", cfg.RedisAddr, err)
	} else {
		logMessage(LogLevelInfo, "Connected to Redis at %s", cfg.RedisAddr)
	}

	return &responseCache{client: client, ttl: cfg.CacheTTL}
}

// memorystoreTLSConfig fetches the server CA certs of the configured
// Memorystore instance and builds a TLS config trusting them.
func memorystoreTLSConfig(ctx context.Context, cfg Config) (*tls.Config, error) {
	adminClient, err := memorystore.NewCloudRedisClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	req := &redispb.GetInstanceRequest{
		Name: fmt.Sprintf("projects/%s/locations/%s/instances/%s", cfg.ProjectID, cfg.Region, cfg.InstanceID),
	}
	instance, err := adminClient.GetInstance(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to get instance: %w", err)
	}

	caCerts := instance.GetServerCaCerts()
	if len(caCerts) == 0 {
		return nil, fmt.Errorf("instance exposes no CA certs")
	}

	caCertPool := x509.NewCertPool()
	caCertPool.AppendCertsFromPEM([]byte(caCerts[0].Cert))
	return &tls.Config{RootCAs: caCertPool}, nil
}

func (rc *responseCache) get(ctx context.Context, key string) ([]byte, bool) {
	if rc == nil || rc.client == nil {
		return nil, false
	}
	data, err := rc.client.Get(ctx, cacheKeyPrefix+key).Bytes()
	if err != nil || len(data) == 0 {
		return nil, false
	}
	return data, true
}

func (rc *responseCache) set(ctx context.Context, key string, data []byte) {
	if rc == nil || rc.client == nil {
		return
	}
	if err := rc.client.Set(ctx, cacheKeyPrefix+key, data, rc.ttl).Err(); err != nil {
		logMessage(LogLevelWarning, "Failed to write cache key %s: %v", key, err)
	}
}

func (rc *responseCache) healthy(ctx context.Context) bool {
	if rc == nil || rc.client == nil {
		return false
	}
	return rc.client.Ping(ctx).Err() == nil
}
