package matcher

import (
	"context"
	"runtime"
	"sync"

	"resume-match-go/internal/logger"
	"resume-match-go/internal/types"
)

// BatchScorer 批量打分：对N个岗位的打分互相独立，
// 用固定大小的工作协程池分片处理，而不是按请求无界起协程。
type BatchScorer struct {
	scorer  *Scorer
	workers int
}

// NewBatchScorer 创建批量打分器。workers<=0时取CPU核数。
func NewBatchScorer(scorer *Scorer, workers int) *BatchScorer {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &BatchScorer{scorer: scorer, workers: workers}
}

// ScoreAll 对同一候选人并发打分所有岗位。
// 权重只校验一次；单个岗位打分失败不会中断整批，
// 对应位置跳过并记录日志。结果保持输入顺序，供排序时的平局稳定性使用。
func (b *BatchScorer) ScoreAll(ctx context.Context, profile *types.CandidateProfile, postings []types.JobPosting, weights types.MatchWeights) ([]types.MatchResult, error) {
	normalized, err := NormalizeWeights(weights)
	if err != nil {
		return nil, err
	}
	if len(postings) == 0 {
		return nil, nil
	}

	type indexed struct {
		idx    int
		result *types.MatchResult
	}

	jobs := make(chan int)
	out := make(chan indexed, len(postings))

	workers := b.workers
	if workers > len(postings) {
		workers = len(postings)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				result, err := b.scorer.Score(ctx, profile, &postings[idx], normalized)
				if err != nil {
					logger.Warn().Err(err).Str("posting_id", postings[idx].ID).Msg("批量打分中单个岗位失败，跳过")
					continue
				}
				out <- indexed{idx: idx, result: result}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range postings {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()
	close(out)

	byIndex := make([]*types.MatchResult, len(postings))
	for item := range out {
		byIndex[item.idx] = item.result
	}

	results := make([]types.MatchResult, 0, len(postings))
	for _, r := range byIndex {
		if r != nil {
			results = append(results, *r)
		}
	}
	return results, ctx.Err()
}
