package matcher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"resume-match-go/internal/types"
)

// ResultCache 匹配结果缓存接口。
// 打分是纯函数，相同输入的结果可以安全复用；写入按键原子，
// 相同键的并发写采用后写胜出即可，不需要跨键加锁。
type ResultCache interface {
	// Get 按键取缓存结果，未命中返回 (nil, nil)
	Get(ctx context.Context, key string) (*types.MatchResult, error)
	// Set 写入结果并设置过期时间
	Set(ctx context.Context, key string, result *types.MatchResult, ttl time.Duration) error
}

// CacheKey 对打分输入做规范化编码后取SHA-256，作为缓存键。
// profile/posting/weights 任一字段变化都会产生不同的键。
func CacheKey(profile *types.CandidateProfile, posting *types.JobPosting, weights types.MatchWeights) string {
	h := sha256.New()
	enc := json.NewEncoder(h)
	// 纯结构体编码是确定性的；编码失败只可能是不可序列化类型，这里不会出现
	_ = enc.Encode(profile)
	_ = enc.Encode(posting)
	_ = enc.Encode(weights)
	return hex.EncodeToString(h.Sum(nil))
}
