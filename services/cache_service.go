package services

import (
	"context"
	"crypto/rand"
	"strings"
	"sync"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/redis/go-redis/v9"

	"github.com/muhammadMilon/FruitPanda-sub001/config"
	"github.com/muhammadMilon/FruitPanda-sub001/structs"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
	redisCtx    = context.Background()
)

// CacheService provides Redis caching with connection pooling and retry logic.
// Cached values are JSON blobs of API responses; the database stays the source
// of truth.
type CacheService struct {
	logger *gecho.Logger
	config *structs.Config
	client *redis.Client
}

func NewCacheService(logger *gecho.Logger, cfg *structs.Config) *CacheService {
	return &CacheService{
		logger: logger,
		config: cfg,
		client: getRedisClient(),
	}
}

func getRedisClient() *redis.Client {
	redisOnce.Do(func() {
		cfg := config.GetConfig()
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Address,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,

			PoolSize:     cfg.Cache.PoolSize,
			MinIdleConns: cfg.Cache.MinIdleConns,

			DialTimeout:  cfg.Cache.DialTimeout,
			ReadTimeout:  cfg.Cache.ReadTimeout,
			WriteTimeout: cfg.Cache.WriteTimeout,
		})
	})
	return redisClient
}

func (cs *CacheService) Close() error {
	if redisClient != nil {
		return redisClient.Close()
	}
	return nil
}

func (cs *CacheService) Ping() error {
	return cs.client.Ping(redisCtx).Err()
}

// withRetry executes a Redis operation with exponential backoff and jitter.
func (cs *CacheService) withRetry(operation func() error, maxRetries int) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}

		lastErr = err

		if attempt == maxRetries {
			break
		}

		// Only retry on network errors, not on logical errors like key not found.
		if !isRetryableCacheError(err) {
			return err
		}

		maxBackoff := 2000 // ms
		base := 100

		backoff := base * (1 << attempt)
		backoff = min(backoff, maxBackoff)

		// add jitter +-50%
		jitterBytes := make([]byte, 4)
		if _, err := rand.Read(jitterBytes); err != nil {
			time.Sleep(time.Duration(backoff) * time.Millisecond)
			continue
		}
		jitter := int(uint32(jitterBytes[0])<<24 | uint32(jitterBytes[1])<<16 | uint32(jitterBytes[2])<<8 | uint32(jitterBytes[3]))
		jitter = jitter % (backoff/2 + 1)

		time.Sleep(time.Duration(backoff/2+jitter) * time.Millisecond)
	}

	return lastErr
}

func isRetryableCacheError(err error) bool {
	if err == nil {
		return false
	}
	if err == redis.Nil {
		return false
	}

	errStr := err.Error()
	retryableErrors := []string{
		"connection refused",
		"connection reset",
		"timeout",
		"broken pipe",
		"no such host",
		"network is unreachable",
	}
	for _, retryableErr := range retryableErrors {
		if strings.Contains(errStr, retryableErr) {
			return true
		}
	}
	return false
}

func (cs *CacheService) Set(key string, value any, ttl time.Duration) error {
	return cs.withRetry(func() error {
		return cs.client.Set(redisCtx, key, value, ttl).Err()
	}, 3)
}

// Get returns the cached value, or "" without error when the key is absent.
func (cs *CacheService) Get(key string) (string, error) {
	var result string

	err := cs.withRetry(func() error {
		val, err := cs.client.Get(redisCtx, key).Result()
		if err == redis.Nil {
			result = ""
			return nil
		}
		if err != nil {
			return err
		}
		result = val
		return nil
	}, 3)
	if err != nil {
		return "", err
	}

	return result, nil
}

func (cs *CacheService) Delete(key string) error {
	return cs.withRetry(func() error {
		return cs.client.Del(redisCtx, key).Err()
	}, 3)
}

// DeleteByPrefix removes every key under the given prefix. Used to invalidate
// per-customer listing caches after a write.
func (cs *CacheService) DeleteByPrefix(prefix string) error {
	return cs.withRetry(func() error {
		iter := cs.client.Scan(redisCtx, 0, prefix+"*", 100).Iterator()
		for iter.Next(redisCtx) {
			if err := cs.client.Del(redisCtx, iter.Val()).Err(); err != nil {
				return err
			}
		}
		return iter.Err()
	}, 3)
}
