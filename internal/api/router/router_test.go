package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"resume-match-go/internal/api/handler"
	"resume-match-go/internal/api/router"
	"resume-match-go/internal/config"
	"resume-match-go/internal/matcher"
	"resume-match-go/internal/processor"
	"resume-match-go/internal/types"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/ut"
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

func newTestServer(t *testing.T, apiKey string) *server.Hertz {
	t.Helper()
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	cfg.Server.APIKey = apiKey

	pipeline, err := processor.New(context.Background(), cfg)
	require.NoError(t, err)

	scorer := matcher.NewScorer(nil, 0)
	batch := matcher.NewBatchScorer(scorer, 4)

	h := server.Default()
	router.RegisterRoutes(h, cfg,
		handler.NewParseHandler(cfg, pipeline),
		handler.NewMatchHandler(cfg, pipeline, scorer, batch, nil),
		handler.NewPostingHandler(nil),
	)
	return h
}

func jsonBody(t *testing.T, v any) *ut.Body {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return &ut.Body{Body: bytes.NewReader(data), Len: len(data)}
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestServer(t, "")
	resp := ut.PerformRequest(h.Engine, "GET", "/api/v1/health", nil)
	assert.Equal(t, 200, resp.Code)
	assert.Contains(t, string(resp.Result().Body()), "ok")
}

func TestMatchEndpoint(t *testing.T) {
	h := newTestServer(t, "")
	body := jsonBody(t, handler.MatchRequest{
		ResumeText: resumeText,
		Posting: &types.JobPosting{
			ID:             "p1",
			Title:          "Backend Engineer",
			RequiredSkills: []string{"Python", "Communication"},
			Location:       "Dubai",
		},
	})

	resp := ut.PerformRequest(h.Engine, "POST", "/api/v1/match", body,
		ut.Header{Key: "Content-Type", Value: "application/json"})
	require.Equal(t, 200, resp.Code)

	var parsed handler.MatchResponse
	require.NoError(t, json.Unmarshal(resp.Result().Body(), &parsed))
	require.NotNil(t, parsed.Result)
	assert.InDelta(t, 100.0, parsed.Result.SubScores.Skills, 0.001)
}

// 缺少简历文本的请求返回400
func TestMatchEndpointBadRequest(t *testing.T) {
	h := newTestServer(t, "")
	body := jsonBody(t, handler.MatchRequest{
		Posting: &types.JobPosting{Title: "Job"},
	})

	resp := ut.PerformRequest(h.Engine, "POST", "/api/v1/match", body,
		ut.Header{Key: "Content-Type", Value: "application/json"})
	assert.Equal(t, 400, resp.Code)
}

func TestRankEndpoint(t *testing.T) {
	h := newTestServer(t, "")
	body := jsonBody(t, handler.RankRequest{
		ResumeText: resumeText,
		Postings: []types.JobPosting{
			{ID: "a", Title: "A", RequiredSkills: []string{"Python"}},
			{ID: "b", Title: "B", RequiredSkills: []string{"Rust"}},
		},
	})

	resp := ut.PerformRequest(h.Engine, "POST", "/api/v1/match/rank", body,
		ut.Header{Key: "Content-Type", Value: "application/json"})
	require.Equal(t, 200, resp.Code)

	var parsed handler.RankResponse
	require.NoError(t, json.Unmarshal(resp.Result().Body(), &parsed))
	require.Len(t, parsed.Results, 2)
	assert.Equal(t, "a", parsed.Results[0].PostingID)
	assert.Equal(t, 2, parsed.TotalCount)
}

// 配置API Key后，业务接口缺少 X-API-Key 返回401，健康检查不受影响
func TestAPIKeyMiddleware(t *testing.T) {
	h := newTestServer(t, "secret-key")

	health := ut.PerformRequest(h.Engine, "GET", "/api/v1/health", nil)
	assert.Equal(t, 200, health.Code)

	body := jsonBody(t, handler.MatchRequest{
		ResumeText: resumeText,
		Posting:    &types.JobPosting{Title: "Job"},
	})
	denied := ut.PerformRequest(h.Engine, "POST", "/api/v1/match", body,
		ut.Header{Key: "Content-Type", Value: "application/json"})
	assert.Equal(t, 401, denied.Code)

	body = jsonBody(t, handler.MatchRequest{
		ResumeText: resumeText,
		Posting:    &types.JobPosting{Title: "Job"},
	})
	allowed := ut.PerformRequest(h.Engine, "POST", "/api/v1/match", body,
		ut.Header{Key: "Content-Type", Value: "application/json"},
		ut.Header{Key: "X-API-Key", Value: "secret-key"})
	assert.Equal(t, 200, allowed.Code)
}

// 未配置岗位存储时，岗位管理接口返回503
func TestPostingEndpointsWithoutStore(t *testing.T) {
	h := newTestServer(t, "")
	body := jsonBody(t, types.JobPosting{Title: "Backend Engineer"})

	resp := ut.PerformRequest(h.Engine, "POST", "/api/v1/postings", body,
		ut.Header{Key: "Content-Type", Value: "application/json"})
	assert.Equal(t, 503, resp.Code)
}
