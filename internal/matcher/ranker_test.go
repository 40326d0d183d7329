package matcher_test

import (
	"fmt"
	"testing"

	"resume-match-go/internal/constants"
	"resume-match-go/internal/matcher"
	"resume-match-go/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resultsWithScores(scores ...float64) []types.MatchResult {
	out := make([]types.MatchResult, 0, len(scores))
	for i, s := range scores {
		out = append(out, types.MatchResult{
			PostingID:    fmt.Sprintf("p%d", i),
			OverallScore: s,
		})
	}
	return out
}

func TestRankSortsDescending(t *testing.T) {
	page := matcher.Rank(resultsWithScores(40, 90, 70), 1, 10)

	require.Len(t, page.Results, 3)
	assert.Equal(t, "p1", page.Results[0].PostingID)
	assert.Equal(t, "p2", page.Results[1].PostingID)
	assert.Equal(t, "p0", page.Results[2].PostingID)
	assert.Equal(t, 3, page.TotalCount)
	assert.Equal(t, 1, page.TotalPages)
}

// 同分结果必须保持输入顺序（稳定排序）
func TestRankStableOnTies(t *testing.T) {
	results := resultsWithScores(80, 80, 80, 90)
	page := matcher.Rank(results, 1, 10)

	require.Len(t, page.Results, 4)
	assert.Equal(t, "p3", page.Results[0].PostingID)
	assert.Equal(t, "p0", page.Results[1].PostingID)
	assert.Equal(t, "p1", page.Results[2].PostingID)
	assert.Equal(t, "p2", page.Results[3].PostingID)

	// 重复排序不重排
	again := matcher.Rank(results, 1, 10)
	assert.Equal(t, page, again)
}

func TestRankDoesNotMutateInput(t *testing.T) {
	results := resultsWithScores(10, 90, 50)
	matcher.Rank(results, 1, 10)

	assert.Equal(t, "p0", results[0].PostingID)
	assert.Equal(t, "p1", results[1].PostingID)
	assert.Equal(t, "p2", results[2].PostingID)
}

func TestRankPagination(t *testing.T) {
	results := resultsWithScores(10, 20, 30, 40, 50, 60, 70)

	page := matcher.Rank(results, 2, 3)
	require.Len(t, page.Results, 3)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 3, page.TotalPages)
	assert.InDelta(t, 40.0, page.Results[0].OverallScore, 0.001)
	assert.InDelta(t, 20.0, page.Results[2].OverallScore, 0.001)

	last := matcher.Rank(results, 3, 3)
	require.Len(t, last.Results, 1)
	assert.InDelta(t, 10.0, last.Results[0].OverallScore, 0.001)
}

// 越界分页参数收敛到合法范围而不是报错
func TestRankClampsOutOfRangePages(t *testing.T) {
	results := resultsWithScores(10, 20, 30)

	below := matcher.Rank(results, -5, 2)
	assert.Equal(t, 1, below.Page)
	require.Len(t, below.Results, 2)

	beyond := matcher.Rank(results, 99, 2)
	assert.Equal(t, 2, beyond.Page)
	require.Len(t, beyond.Results, 1)
}

func TestRankClampsPageSize(t *testing.T) {
	results := resultsWithScores(10, 20, 30)

	defaulted := matcher.Rank(results, 1, 0)
	assert.Equal(t, constants.DefaultPageSize, defaulted.PageSize)

	capped := matcher.Rank(results, 1, constants.MaxPageSize*10)
	assert.Equal(t, constants.MaxPageSize, capped.PageSize)
}

func TestRankEmptyResults(t *testing.T) {
	page := matcher.Rank(nil, 1, 10)
	assert.Empty(t, page.Results)
	assert.Equal(t, 0, page.TotalCount)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 1, page.Page)
}
