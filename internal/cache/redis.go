package cache

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Document snapshot cache. Every saved or recalculated document replaces its
// cached snapshot wholesale - snapshots are never merged field by field, so a
// cached document is always exactly what the server last persisted.

const (
	boqKeyFmt    = "boq:%d"
	reportKeyFmt = "cost_report:%d"

	snapshotTTL = 10 * time.Minute
)

var client *redis.Client

// Init connects to Redis. On failure the client stays nil and every cache
// operation becomes a no-op, so the server keeps working against the
// database alone.
func Init() error {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
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

// BOQKey returns the cache key for a BOQ snapshot.
func BOQKey(id int) string {
	return fmt.Sprintf(boqKeyFmt, id)
}

// ReportKey returns the cache key for a cost report snapshot.
func ReportKey(id int) string {
	return fmt.Sprintf(reportKeyFmt, id)
}

// GetSnapshot returns the cached snapshot for a document key.
func GetSnapshot(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// ReplaceSnapshot overwrites the cached snapshot for a document key.
func ReplaceSnapshot(ctx context.Context, key string, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, snapshotTTL)
}

// DropSnapshot removes a cached snapshot.
func DropSnapshot(ctx context.Context, key string) {
	if client == nil {
		return
	}
	client.Del(ctx, key)
}

// IsHealthy reports whether the Redis connection is working.
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}
