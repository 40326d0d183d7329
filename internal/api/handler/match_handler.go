package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"resume-match-go/internal/config"
	"resume-match-go/internal/logger"
	"resume-match-go/internal/matcher"
	"resume-match-go/internal/processor"
	"resume-match-go/internal/storage"
	"resume-match-go/internal/tracing"
	"resume-match-go/internal/types"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// tracer 匹配接口的span来源
var tracer = otel.Tracer("resume-match-go/internal/api/handler")

var (
	// ErrResumeTextRequired 请求中缺少简历文本
	ErrResumeTextRequired = errors.New("缺少简历文本")
	// ErrPostingRequired 请求中既没有内联岗位也没有岗位ID
	ErrPostingRequired = errors.New("缺少岗位信息")
	// ErrPostingNotFound 按ID查询不到岗位
	ErrPostingNotFound = errors.New("岗位不存在")
	// ErrStoreUnavailable 按ID查岗位但岗位存储未配置
	ErrStoreUnavailable = errors.New("岗位存储不可用")
)

// MatchHandler 匹配打分处理器，组合解析管线与打分器
type MatchHandler struct {
	cfg      *config.Config
	pipeline *processor.Pipeline
	scorer   *matcher.Scorer
	batch    *matcher.BatchScorer
	// postings 可为nil，此时只支持内联岗位
	postings *storage.JobPostingStore
}

// NewMatchHandler 创建匹配打分处理器
func NewMatchHandler(cfg *config.Config, pipeline *processor.Pipeline, scorer *matcher.Scorer, batch *matcher.BatchScorer, postings *storage.JobPostingStore) *MatchHandler {
	return &MatchHandler{
		cfg:      cfg,
		pipeline: pipeline,
		scorer:   scorer,
		batch:    batch,
		postings: postings,
	}
}

// MatchRequest 单岗位匹配请求。
// Posting 与 PostingID 二选一，同时提供时内联岗位优先。
// Weights 为空时使用配置中的默认权重。
type MatchRequest struct {
	ResumeText string              `json:"resume_text"`
	Posting    *types.JobPosting   `json:"posting,omitempty"`
	PostingID  string              `json:"posting_id,omitempty"`
	Weights    *types.MatchWeights `json:"weights,omitempty"`
}

// MatchResponse 单岗位匹配响应
type MatchResponse struct {
	Result *types.MatchResult `json:"result"`
	// TooShort 简历文本过短，分数可信度较低
	TooShort bool                   `json:"too_short,omitempty"`
	Profile  types.CandidateProfile `json:"profile"`
}

// HandleMatch 处理单岗位匹配请求
func (h *MatchHandler) HandleMatch(ctx context.Context, req *MatchRequest) (*MatchResponse, error) {
	if strings.TrimSpace(req.ResumeText) == "" {
		return nil, ErrResumeTextRequired
	}

	posting, err := h.resolvePosting(ctx, req.Posting, req.PostingID)
	if err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "match.score",
		trace.WithAttributes(attribute.String("posting_id", posting.ID)))
	defer span.End()

	logger.Debug().
		Str("resume_snippet", tracing.SafeResumeContent(req.ResumeText)).
		Msg("开始单岗位匹配")

	parsed := h.pipeline.ParseText(req.ResumeText)
	span.SetAttributes(attribute.String("candidate_email",
		tracing.SafeAttributeValue("candidate_email", parsed.Profile.Contact.Email, tracing.DefaultMaxLength)))
	weights := h.weightsOrDefault(req.Weights)

	result, err := h.scorer.Score(ctx, &parsed.Profile, posting, weights)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("posting_id", posting.ID).
		Float64("overall_score", result.OverallScore).
		Msg("单岗位匹配完成")

	return &MatchResponse{
		Result:   result,
		TooShort: parsed.Extracted.TooShort,
		Profile:  parsed.Profile,
	}, nil
}

// RankRequest 多岗位排序请求。
// Postings 与 PostingIDs 可以混用，内联岗位排在ID岗位之前。
type RankRequest struct {
	ResumeText string              `json:"resume_text"`
	Postings   []types.JobPosting  `json:"postings,omitempty"`
	PostingIDs []string            `json:"posting_ids,omitempty"`
	Weights    *types.MatchWeights `json:"weights,omitempty"`
	Page       int                 `json:"page,omitempty"`
	PageSize   int                 `json:"page_size,omitempty"`
}

// RankResponse 多岗位排序响应
type RankResponse struct {
	types.RankedPage
	// TooShort 简历文本过短，分数可信度较低
	TooShort bool `json:"too_short,omitempty"`
}

// HandleRank 处理多岗位排序请求：解析一次简历，
// 并发打分所有岗位，按总分降序分页返回。
func (h *MatchHandler) HandleRank(ctx context.Context, req *RankRequest) (*RankResponse, error) {
	if strings.TrimSpace(req.ResumeText) == "" {
		return nil, ErrResumeTextRequired
	}

	postings := append([]types.JobPosting{}, req.Postings...)
	if len(req.PostingIDs) > 0 {
		if h.postings == nil {
			return nil, ErrStoreUnavailable
		}
		stored, err := h.postings.GetMany(ctx, req.PostingIDs)
		if err != nil {
			return nil, err
		}
		postings = append(postings, stored...)
	}
	if len(postings) == 0 {
		return nil, ErrPostingRequired
	}

	ctx, span := tracer.Start(ctx, "match.rank",
		trace.WithAttributes(attribute.Int("postings", len(postings))))
	defer span.End()

	parsed := h.pipeline.ParseText(req.ResumeText)
	weights := h.weightsOrDefault(req.Weights)

	results, err := h.batch.ScoreAll(ctx, &parsed.Profile, postings, weights)
	if err != nil {
		return nil, err
	}

	page := matcher.Rank(results, req.Page, req.PageSize)

	logger.Info().
		Int("postings", len(postings)).
		Int("scored", page.TotalCount).
		Int("page", page.Page).
		Msg("多岗位排序完成")

	return &RankResponse{
		RankedPage: page,
		TooShort:   parsed.Extracted.TooShort,
	}, nil
}

// resolvePosting 解析岗位来源：内联岗位优先，其次按ID查库
func (h *MatchHandler) resolvePosting(ctx context.Context, inline *types.JobPosting, postingID string) (*types.JobPosting, error) {
	if inline != nil {
		return inline, nil
	}
	if postingID == "" {
		return nil, ErrPostingRequired
	}
	if h.postings == nil {
		return nil, ErrStoreUnavailable
	}
	posting, err := h.postings.Get(ctx, postingID)
	if err != nil {
		return nil, err
	}
	if posting == nil {
		return nil, fmt.Errorf("%w: %s", ErrPostingNotFound, postingID)
	}
	return posting, nil
}

func (h *MatchHandler) weightsOrDefault(w *types.MatchWeights) types.MatchWeights {
	if w != nil {
		return *w
	}
	skill, education, experience, location := h.cfg.DefaultWeights()
	return types.MatchWeights{
		SkillWeight:      skill,
		EducationWeight:  education,
		ExperienceWeight: experience,
		LocationWeight:   location,
	}
}

