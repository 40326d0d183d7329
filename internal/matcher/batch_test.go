package matcher_test

import (
	"context"
	"fmt"
	"testing"

	"resume-match-go/internal/matcher"
	"resume-match-go/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makePostings(n int) []types.JobPosting {
	postings := make([]types.JobPosting, 0, n)
	for i := 0; i < n; i++ {
		postings = append(postings, types.JobPosting{
			ID:             fmt.Sprintf("p%d", i),
			Title:          fmt.Sprintf("Job %d", i),
			RequiredSkills: []string{"Python"},
			// 要求年限随序号递增，分数随之单调变化
			MinExperienceYears: float64(i + 1),
		})
	}
	return postings
}

func TestScoreAllKeepsInputOrder(t *testing.T) {
	b := matcher.NewBatchScorer(matcher.NewScorer(nil, 0), 4)
	postings := makePostings(20)

	results, err := b.ScoreAll(context.Background(), testProfile(), postings, matcher.DefaultWeights())
	require.NoError(t, err)
	require.Len(t, results, 20)

	for i, r := range results {
		assert.Equal(t, postings[i].ID, r.PostingID)
	}
}

// 并发批量打分与逐个串行打分必须得到相同结果
func TestScoreAllMatchesSequentialScoring(t *testing.T) {
	scorer := matcher.NewScorer(nil, 0)
	b := matcher.NewBatchScorer(scorer, 8)
	postings := makePostings(10)

	batch, err := b.ScoreAll(context.Background(), testProfile(), postings, matcher.DefaultWeights())
	require.NoError(t, err)

	for i := range postings {
		single, err := scorer.Score(context.Background(), testProfile(), &postings[i], matcher.DefaultWeights())
		require.NoError(t, err)
		assert.Equal(t, *single, batch[i])
	}
}

func TestScoreAllEmptyPostings(t *testing.T) {
	b := matcher.NewBatchScorer(matcher.NewScorer(nil, 0), 4)
	results, err := b.ScoreAll(context.Background(), testProfile(), nil, matcher.DefaultWeights())
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestScoreAllInvalidWeights(t *testing.T) {
	b := matcher.NewBatchScorer(matcher.NewScorer(nil, 0), 4)
	_, err := b.ScoreAll(context.Background(), testProfile(), makePostings(3),
		types.MatchWeights{SkillWeight: -1, EducationWeight: 2})
	assert.ErrorIs(t, err, matcher.ErrInvalidWeights)
}

// 工作协程数大于岗位数时也应正常收敛
func TestScoreAllMoreWorkersThanPostings(t *testing.T) {
	b := matcher.NewBatchScorer(matcher.NewScorer(nil, 0), 64)
	results, err := b.ScoreAll(context.Background(), testProfile(), makePostings(2), matcher.DefaultWeights())
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestScoreAllCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := matcher.NewBatchScorer(matcher.NewScorer(nil, 0), 4)
	_, err := b.ScoreAll(ctx, testProfile(), makePostings(50), matcher.DefaultWeights())
	assert.ErrorIs(t, err, context.Canceled)
}
