package handler_test

import (
	"context"
	"fmt"
	"testing"

	"resume-match-go/internal/api/handler"
	"resume-match-go/internal/config"
	"resume-match-go/internal/matcher"
	"resume-match-go/internal/processor"
	"resume-match-go/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resumeText = `Jane Doe
jane.doe@example.com
Location: Dubai, UAE

Work Experience
2016 - 2022 Senior Backend Engineer, Acme Corp
Built Python services with strong communication across teams.

Education
2012 - 2016 Bachelor of Computer Science

Skills
Python, Communication
`

func newMatchHandler(t *testing.T) *handler.MatchHandler {
	t.Helper()
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	pipeline, err := processor.New(context.Background(), cfg)
	require.NoError(t, err)

	scorer := matcher.NewScorer(nil, 0)
	batch := matcher.NewBatchScorer(scorer, 4)
	return handler.NewMatchHandler(cfg, pipeline, scorer, batch, nil)
}

func TestHandleMatchInlinePosting(t *testing.T) {
	h := newMatchHandler(t)
	resp, err := h.HandleMatch(context.Background(), &handler.MatchRequest{
		ResumeText: resumeText,
		Posting: &types.JobPosting{
			ID:                 "p1",
			Title:              "Backend Engineer",
			RequiredSkills:     []string{"Python", "Communication"},
			Location:           "Dubai",
			MinExperienceYears: 5,
		},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Result)

	assert.InDelta(t, 100.0, resp.Result.SubScores.Skills, 0.001)
	assert.InDelta(t, 100.0, resp.Result.SubScores.Experience, 0.001)
	assert.InDelta(t, 100.0, resp.Result.SubScores.Education, 0.001)
	assert.InDelta(t, 100.0, resp.Result.SubScores.Location, 0.001)
	assert.False(t, resp.TooShort)
	assert.Equal(t, "jane.doe@example.com", resp.Profile.Contact.Email)
}

func TestHandleMatchMissingText(t *testing.T) {
	h := newMatchHandler(t)
	_, err := h.HandleMatch(context.Background(), &handler.MatchRequest{
		Posting: &types.JobPosting{Title: "Job"},
	})
	assert.ErrorIs(t, err, handler.ErrResumeTextRequired)
}

func TestHandleMatchMissingPosting(t *testing.T) {
	h := newMatchHandler(t)
	_, err := h.HandleMatch(context.Background(), &handler.MatchRequest{ResumeText: resumeText})
	assert.ErrorIs(t, err, handler.ErrPostingRequired)
}

// 未配置岗位存储时按ID查岗位应返回不可用错误
func TestHandleMatchStoreUnavailable(t *testing.T) {
	h := newMatchHandler(t)
	_, err := h.HandleMatch(context.Background(), &handler.MatchRequest{
		ResumeText: resumeText,
		PostingID:  "p1",
	})
	assert.ErrorIs(t, err, handler.ErrStoreUnavailable)
}

func TestHandleMatchInvalidWeights(t *testing.T) {
	h := newMatchHandler(t)
	_, err := h.HandleMatch(context.Background(), &handler.MatchRequest{
		ResumeText: resumeText,
		Posting:    &types.JobPosting{Title: "Job"},
		Weights:    &types.MatchWeights{SkillWeight: -1, EducationWeight: 2},
	})
	assert.ErrorIs(t, err, matcher.ErrInvalidWeights)
}

// 过短文本仍然打分，但响应中带 too_short 标记
func TestHandleMatchTooShortText(t *testing.T) {
	h := newMatchHandler(t)
	resp, err := h.HandleMatch(context.Background(), &handler.MatchRequest{
		ResumeText: "Python developer from Dubai",
		Posting: &types.JobPosting{
			Title:          "Backend Engineer",
			RequiredSkills: []string{"Python"},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.TooShort)
	assert.InDelta(t, 100.0, resp.Result.SubScores.Skills, 0.001)
}

func TestHandleRankInlinePostings(t *testing.T) {
	h := newMatchHandler(t)

	postings := make([]types.JobPosting, 0, 5)
	for i := 0; i < 5; i++ {
		postings = append(postings, types.JobPosting{
			ID:    fmt.Sprintf("p%d", i),
			Title: fmt.Sprintf("Job %d", i),
			// 要求年限递增，匹配分随之递减
			RequiredSkills:     []string{"Python"},
			MinExperienceYears: float64((i + 1) * 4),
		})
	}

	resp, err := h.HandleRank(context.Background(), &handler.RankRequest{
		ResumeText: resumeText,
		Postings:   postings,
		Page:       1,
		PageSize:   3,
	})
	require.NoError(t, err)

	assert.Equal(t, 5, resp.TotalCount)
	assert.Equal(t, 2, resp.TotalPages)
	require.Len(t, resp.Results, 3)
	// 要求最低的岗位得分最高，应排第一
	assert.Equal(t, "p0", resp.Results[0].PostingID)
	for i := 1; i < len(resp.Results); i++ {
		assert.GreaterOrEqual(t, resp.Results[i-1].OverallScore, resp.Results[i].OverallScore)
	}
}

func TestHandleRankNoPostings(t *testing.T) {
	h := newMatchHandler(t)
	_, err := h.HandleRank(context.Background(), &handler.RankRequest{ResumeText: resumeText})
	assert.ErrorIs(t, err, handler.ErrPostingRequired)
}

func TestHandleRankPostingIDsWithoutStore(t *testing.T) {
	h := newMatchHandler(t)
	_, err := h.HandleRank(context.Background(), &handler.RankRequest{
		ResumeText: resumeText,
		PostingIDs: []string{"p1", "p2"},
	})
	assert.ErrorIs(t, err, handler.ErrStoreUnavailable)
}

// 相同请求重复排序必须得到相同的页面
func TestHandleRankDeterministic(t *testing.T) {
	h := newMatchHandler(t)
	req := &handler.RankRequest{
		ResumeText: resumeText,
		Postings: []types.JobPosting{
			{ID: "a", Title: "A", RequiredSkills: []string{"Python"}},
			{ID: "b", Title: "B", RequiredSkills: []string{"Python"}},
			{ID: "c", Title: "C", RequiredSkills: []string{"Rust"}},
		},
	}
	first, err := h.HandleRank(context.Background(), req)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		again, err := h.HandleRank(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
