package services

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"merchantdesk_server/structs"
	"merchantdesk_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CacheService provides Redis caching with retry logic. The order core uses
// it for promo campaign lookups and decrypted wallet credentials; both are
// read-mostly and tolerate short staleness.
type CacheService struct {
	logger *gecho.Logger
	config *structs.Config
	client *redis.Client
}

func NewCacheService(logger *gecho.Logger, cfg *structs.Config) *CacheService {
	return &CacheService{
		logger: logger,
		config: cfg,
		client: newRedisClient(cfg.Cache),
	}
}

func newRedisClient(cfg *structs.CacheConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,

		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdleConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		PoolTimeout:     cfg.PoolTimeout,
		ConnMaxIdleTime: cfg.IdleTimeout,

		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,

		MaxRetries:      cfg.MaxRetries,
		MinRetryBackoff: cfg.MinRetryBackoff,
		MaxRetryBackoff: cfg.MaxRetryBackoff,
	})
}

func (cs *CacheService) Close() error {
	return cs.client.Close()
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

		if !isRetryableCacheError(err) {
			return err
		}

		maxBackoff := 2000 // ms
		base := 100        // ms

		backoff := min(base*(1<<attempt), maxBackoff)

		jitterBytes := make([]byte, 4)
		if _, err := rand.Read(jitterBytes); err != nil {
			time.Sleep(time.Duration(backoff) * time.Millisecond)
			continue
		}
		jitter := int(uint32(jitterBytes[0])<<24 | uint32(jitterBytes[1])<<16 | uint32(jitterBytes[2])<<8 | uint32(jitterBytes[3]))
		jitter = jitter % (backoff/2 + 1)

		time.Sleep(time.Duration(backoff/2+jitter) * time.Millisecond)
	}

	return fmt.Errorf("redis operation failed after %d retries: %w", maxRetries, lastErr)
}

func isRetryableCacheError(err error) bool {
	if err == nil || err == redis.Nil {
		return false
	}

	errStr := err.Error()
	retryable := []string{
		"connection refused",
		"connection reset",
		"timeout",
		"broken pipe",
		"no such host",
		"network is unreachable",
	}
	for _, candidate := range retryable {
		if strings.Contains(errStr, candidate) {
			return true
		}
	}
	return false
}

// Set sets a key with TTL and automatic retry logic.
func (cs *CacheService) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return cs.withRetry(func() error {
		return cs.client.Set(ctx, key, value, ttl).Err()
	}, cs.config.Cache.MaxRetries)
}

// Get retrieves a key; a missing key returns "" with no error.
func (cs *CacheService) Get(ctx context.Context, key string) (string, error) {
	var result string

	err := cs.withRetry(func() error {
		val, err := cs.client.Get(ctx, key).Result()
		if err == redis.Nil {
			result = ""
			return nil
		}
		if err != nil {
			return err
		}
		result = val
		return nil
	}, cs.config.Cache.MaxRetries)
	if err != nil {
		return "", err
	}

	return result, nil
}

// Delete removes a key with automatic retry logic.
func (cs *CacheService) Delete(ctx context.Context, key string) error {
	return cs.withRetry(func() error {
		return cs.client.Del(ctx, key).Err()
	}, cs.config.Cache.MaxRetries)
}

// Ping tests the Redis connection.
func (cs *CacheService) Ping(ctx context.Context) error {
	return cs.withRetry(func() error {
		return cs.client.Ping(ctx).Err()
	}, cs.config.Cache.MaxRetries)
}

// ============================================================================
// Promo campaign caching
// ============================================================================

func promoKey(businessId uuid.UUID, code string) string {
	return fmt.Sprintf("promo:%s:%s", businessId, code)
}

// GetPromo returns a cached campaign, or nil on a miss.
func (cs *CacheService) GetPromo(ctx context.Context, businessId uuid.UUID, code string) (*tables.PromoCampaign, error) {
	promo, err := getJSON[tables.PromoCampaign](ctx, cs, promoKey(businessId, code))
	if err != nil {
		cs.logger.Warn("Failed to get promo from cache", gecho.Field("error", err), gecho.Field("code", code))
		return nil, err
	}
	return promo, nil
}

// SetPromo caches a campaign row.
func (cs *CacheService) SetPromo(ctx context.Context, promo *tables.PromoCampaign) error {
	return setJSON(ctx, cs, promoKey(promo.BusinessId, promo.Code), promo, cs.config.Cache.PromoTTL)
}

// ============================================================================
// Wallet credential caching
// ============================================================================

func walletKeyKey(businessId uuid.UUID, provider string) string {
	return fmt.Sprintf("walletkey:%s:%s", businessId, provider)
}

// GetWalletKey returns the cached decrypted credential, "" on a miss.
func (cs *CacheService) GetWalletKey(ctx context.Context, businessId uuid.UUID, provider string) (string, error) {
	return cs.Get(ctx, walletKeyKey(businessId, provider))
}

// SetWalletKey caches a decrypted credential with a bounded TTL.
func (cs *CacheService) SetWalletKey(ctx context.Context, businessId uuid.UUID, provider, key string) error {
	return cs.Set(ctx, walletKeyKey(businessId, provider), key, cs.config.Cache.CredentialTTL)
}

// InvalidateWalletKey drops a cached credential, for when the settings module
// rotates it.
func (cs *CacheService) InvalidateWalletKey(ctx context.Context, businessId uuid.UUID, provider string) error {
	return cs.Delete(ctx, walletKeyKey(businessId, provider))
}

// ============================================================================
// Rate limiting
// ============================================================================

// IncrementRateLimit bumps the request counter for an (ip, endpoint) pair and
// returns the new count. The window expiry is set on first increment only.
func (cs *CacheService) IncrementRateLimit(ctx context.Context, ip, endpoint string, window time.Duration) (int, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", ip, endpoint)
	var count int64

	err := cs.withRetry(func() error {
		val, err := cs.client.Incr(ctx, key).Result()
		if err != nil {
			return err
		}
		count = val

		if val == 1 {
			return cs.client.Expire(ctx, key, window).Err()
		}
		return nil
	}, cs.config.Cache.MaxRetries)
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

// ============================================================================
// Helpers
// ============================================================================

func setJSON[T any](ctx context.Context, cs *CacheService, key string, value T, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return cs.Set(ctx, key, data, ttl)
}

func getJSON[T any](ctx context.Context, cs *CacheService, key string) (*T, error) {
	val, err := cs.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if val == "" {
		return nil, nil // not in cache
	}

	var result T
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		return nil, err
	}

	return &result, nil
}
