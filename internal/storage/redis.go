package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"resume-match-go/internal/config"
	"resume-match-go/internal/constants"
	"resume-match-go/internal/logger"
	"resume-match-go/internal/tracing"
	"resume-match-go/internal/types"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a key is not found in Redis.
// It wraps the underlying redis.Nil error for abstraction.
var ErrNotFound = redis.Nil

// Redis wraps the Redis client
type Redis struct {
	Client *redis.Client
	config *config.RedisConfig
}

// NewRedisAdapter 创建Redis连接
func NewRedisAdapter(cfg *config.RedisConfig) (*Redis, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis config cannot be nil")
	}
	if cfg.Address == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	opt := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,

		// 连接池设置
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,

		// 超时设置
		DialTimeout:  time.Duration(cfg.DialTimeoutSeconds) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,

		// 重试设置
		MaxRetries:      cfg.MaxRetries,
		MinRetryBackoff: time.Duration(cfg.MinRetryBackoffMS) * time.Millisecond,
		MaxRetryBackoff: time.Duration(cfg.MaxRetryBackoffMS) * time.Millisecond,

		// 连接生命周期
		ConnMaxLifetime: time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute,
		ConnMaxIdleTime: time.Duration(cfg.ConnMaxIdleTimeMinutes) * time.Minute,
	}

	client := redis.NewClient(opt)

	// 添加OpenTelemetry钩子，记录Redis操作
	if err := redisotel.InstrumentTracing(client); err != nil {
		return nil, fmt.Errorf("failed to instrument Redis with OpenTelemetry: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Address, err)
	}

	return &Redis{Client: client, config: cfg}, nil
}

// Close 关闭Redis连接
func (r *Redis) Close() error {
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}

// SetTaxonomyVersion 记录当前加载的词表版本标记，供运维排查用
func (r *Redis) SetTaxonomyVersion(ctx context.Context, version string) error {
	return r.Client.Set(ctx, constants.KeyTaxonomyVersion, version, 0).Err()
}

// GetTaxonomyVersion 读取词表版本标记
func (r *Redis) GetTaxonomyVersion(ctx context.Context) (string, error) {
	version, err := r.Client.Get(ctx, constants.KeyTaxonomyVersion).Result()
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return version, err
}

// RedisResultCache 基于Redis的匹配结果缓存，实现 matcher.ResultCache。
// 结果JSON编码存储；相同键的并发写后写胜出即可（结果确定性保证正确）。
type RedisResultCache struct {
	redis *Redis
}

// NewRedisResultCache 创建Redis匹配结果缓存
func NewRedisResultCache(r *Redis) *RedisResultCache {
	return &RedisResultCache{redis: r}
}

// Get 按输入哈希取缓存结果，未命中返回 (nil, nil)
func (c *RedisResultCache) Get(ctx context.Context, key string) (*types.MatchResult, error) {
	data, err := c.redis.Client.Get(ctx, c.formatKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("读取匹配结果缓存失败: %w", err)
	}
	var result types.MatchResult
	if err := json.Unmarshal(data, &result); err != nil {
		// 损坏的缓存条目当作未命中
		return nil, nil
	}
	logger.Debug().Str("key", tracing.SafeRedisKey(c.formatKey(key))).Msg("匹配结果缓存命中")
	return &result, nil
}

// Set 写入结果并设置过期时间
func (c *RedisResultCache) Set(ctx context.Context, key string, result *types.MatchResult, ttl time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("编码匹配结果失败: %w", err)
	}
	if ttl <= 0 {
		ttl = constants.DefaultMatchCacheTTL
	}
	if err := c.redis.Client.Set(ctx, c.formatKey(key), data, ttl).Err(); err != nil {
		return fmt.Errorf("写入匹配结果缓存失败: %w", err)
	}
	return nil
}

func (c *RedisResultCache) formatKey(inputHash string) string {
	return fmt.Sprintf(constants.KeyMatchResult, inputHash)
}
