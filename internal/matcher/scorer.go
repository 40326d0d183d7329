package matcher

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"resume-match-go/internal/constants"
	"resume-match-go/internal/logger"
	"resume-match-go/internal/taxonomy"
	"resume-match-go/internal/types"
)

// ErrInvalidWeights 权重在归一化尝试后仍不合法（含负值或全零）
var ErrInvalidWeights = errors.New("打分权重不合法")

// Scorer 候选人与岗位的加权多因子匹配打分器。
// Score 是纯函数：相同输入总是产生逐位相同的结果。
type Scorer struct {
	cache    ResultCache
	cacheTTL time.Duration
}

// NewScorer 创建打分器。cache可为nil，此时每次都重新计算。
func NewScorer(cache ResultCache, cacheTTL time.Duration) *Scorer {
	if cacheTTL <= 0 {
		cacheTTL = constants.DefaultMatchCacheTTL
	}
	return &Scorer{cache: cache, cacheTTL: cacheTTL}
}

// DefaultWeights 默认打分权重
func DefaultWeights() types.MatchWeights {
	return types.MatchWeights{
		SkillWeight:      constants.DefaultSkillWeight,
		EducationWeight:  constants.DefaultEducationWeight,
		ExperienceWeight: constants.DefaultExperienceWeight,
		LocationWeight:   constants.DefaultLocationWeight,
	}
}

// NormalizeWeights 校验并归一化权重：
// 全零视为未提供，返回默认权重；负值或归一化后仍偏离1.0返回错误。
func NormalizeWeights(w types.MatchWeights) (types.MatchWeights, error) {
	if w.SkillWeight < 0 || w.EducationWeight < 0 || w.ExperienceWeight < 0 || w.LocationWeight < 0 {
		return types.MatchWeights{}, fmt.Errorf("%w: 权重不能为负", ErrInvalidWeights)
	}
	sum := w.Sum()
	if sum == 0 {
		return DefaultWeights(), nil
	}
	normalized := types.MatchWeights{
		SkillWeight:      w.SkillWeight / sum,
		EducationWeight:  w.EducationWeight / sum,
		ExperienceWeight: w.ExperienceWeight / sum,
		LocationWeight:   w.LocationWeight / sum,
	}
	if math.Abs(normalized.Sum()-1.0) > constants.WeightSumTolerance {
		return types.MatchWeights{}, fmt.Errorf("%w: 归一化后权重之和为%.4f", ErrInvalidWeights, normalized.Sum())
	}
	return normalized, nil
}

// Score 计算加权匹配分。结果创建后不再修改；重新打分产生新结果。
func (s *Scorer) Score(ctx context.Context, profile *types.CandidateProfile, posting *types.JobPosting, weights types.MatchWeights) (*types.MatchResult, error) {
	normalized, err := NormalizeWeights(weights)
	if err != nil {
		return nil, err
	}

	var cacheKey string
	if s.cache != nil {
		cacheKey = CacheKey(profile, posting, normalized)
		if cached, err := s.cache.Get(ctx, cacheKey); err != nil {
			// 缓存故障降级为直接计算
			logger.Warn().Err(err).Msg("读取匹配结果缓存失败，直接计算")
		} else if cached != nil {
			return cached, nil
		}
	}

	skillsScore, matched, missing := scoreSkills(profile, posting)
	sub := types.SubScores{
		Skills:     skillsScore,
		Experience: scoreExperience(profile, posting),
		Education:  scoreEducation(profile),
		Location:   scoreLocation(profile, posting),
	}

	overall := sub.Skills*normalized.SkillWeight +
		sub.Education*normalized.EducationWeight +
		sub.Experience*normalized.ExperienceWeight +
		sub.Location*normalized.LocationWeight
	overall = clamp(overall, 0, 100)

	result := &types.MatchResult{
		PostingID:     posting.ID,
		OverallScore:  overall,
		SubScores:     sub,
		MatchedSkills: matched,
		MissingSkills: missing,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, result, s.cacheTTL); err != nil {
			logger.Warn().Err(err).Msg("写入匹配结果缓存失败")
		}
	}
	return result, nil
}

// scoreSkills 技能子分：岗位要求技能在候选人技能中的命中比例。
// 岗位没有任何要求技能时视为满分（避免除零的退化情形）。
func scoreSkills(profile *types.CandidateProfile, posting *types.JobPosting) (score float64, matched, missing []string) {
	matched = []string{}
	missing = []string{}
	if len(posting.RequiredSkills) == 0 {
		return 100, matched, missing
	}

	for _, required := range posting.RequiredSkills {
		if profileHasSkill(profile, required) {
			matched = append(matched, required)
		} else {
			missing = append(missing, required)
		}
	}
	return 100 * float64(len(matched)) / float64(len(posting.RequiredSkills)), matched, missing
}

// profileHasSkill 按词表等价规则（词边界/子串/单复数）判断候选人
// 是否具备某项要求技能
func profileHasSkill(profile *types.CandidateProfile, required string) bool {
	for _, skill := range profile.Skills {
		if strings.EqualFold(skill.Name, required) {
			return true
		}
		if taxonomy.MatchSkillName(skill.Name, required) || taxonomy.MatchSkillName(required, skill.Name) {
			return true
		}
	}
	return false
}

// scoreExperience 经验子分：候选人年限与要求年限之比，封顶100，
// 超出要求不加分也不扣分。岗位未声明要求时给予入门级基准分。
func scoreExperience(profile *types.CandidateProfile, posting *types.JobPosting) float64 {
	if posting.MinExperienceYears <= 0 {
		return constants.NeutralExperienceScore
	}
	score := 100 * profile.TotalExperienceYears / posting.MinExperienceYears
	return clamp(score, 0, 100)
}

// scoreEducation 教育子分：阶梯函数，有条目满分，
// 有章节无条目给部分分，否则零分
func scoreEducation(profile *types.CandidateProfile) float64 {
	if len(profile.Education) > 0 {
		return 100
	}
	if profile.HasEducationSection {
		return constants.PartialEducationScore
	}
	return 0
}

// scoreLocation 地点子分：大小写不敏感的互相包含判断
func scoreLocation(profile *types.CandidateProfile, posting *types.JobPosting) float64 {
	cand := strings.ToLower(strings.TrimSpace(profile.Location))
	want := strings.ToLower(strings.TrimSpace(posting.Location))
	if cand == "" || want == "" {
		return 0
	}
	if strings.Contains(cand, want) || strings.Contains(want, cand) {
		return 100
	}
	return 0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
