package taxonomy

import (
	"strings"

	"resume-match-go/internal/keywords"
	"resume-match-go/internal/types"
)

// 分层置信度：证据越强置信度越高，且各层之间单调有序。
// 取代原先随机赋值的占位实现，保证同一输入总是得到相同输出。
const (
	// ConfidenceExact 规范技能名在文本中按词边界完整出现
	ConfidenceExact = 1.0
	// ConfidenceSubstring 技能名与文本片段互为子串
	ConfidenceSubstring = 0.75
	// ConfidencePlural 仅在去除尾部s的单复数变换后匹配
	ConfidencePlural = 0.6
	// ConfidenceUnverified 词表兜底路径（关键词提取）的默认置信度
	ConfidenceUnverified = 0.4
)

// Matcher 把文本映射到规范技能词表上
type Matcher struct {
	taxonomy *Taxonomy
	keywords *keywords.Extractor
}

// NewMatcher 创建技能匹配器。keywords 用于词表不可用时的兜底路径。
func NewMatcher(tax *Taxonomy, kw *keywords.Extractor) *Matcher {
	return &Matcher{taxonomy: tax, keywords: kw}
}

// Match 在文本中识别词表技能。
// 每个规范技能按置信度从高到低依次尝试：词边界完整匹配、
// 子串包含、单复数变换；同一技能只保留置信度最高的一次识别。
// 词表为空或没有任何命中时回退到关键词提取，类别标记为 unverified。
func (m *Matcher) Match(text string) []types.SkillMention {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	lower := strings.ToLower(text)

	var mentions []types.SkillMention
	if !m.taxonomy.Empty() {
		for _, entry := range m.taxonomy.Entries() {
			confidence, ok := matchSkill(lower, strings.ToLower(entry.Name))
			if !ok {
				continue
			}
			mentions = append(mentions, types.SkillMention{
				Name:       entry.Name,
				Category:   entry.Category,
				Confidence: confidence,
			})
		}
	}

	if len(mentions) == 0 && m.keywords != nil {
		mentions = m.fallback(text)
	}
	return mentions
}

// MatchSkillName 判断单个技能名是否与文本等价（供打分器复用）。
// 等价规则与 Match 一致：词边界、子串、单复数。
func MatchSkillName(haystack, skill string) bool {
	_, ok := matchSkill(strings.ToLower(haystack), strings.ToLower(skill))
	return ok
}

// matchSkill 按置信度层级测试技能与文本的匹配
func matchSkill(textLower, skillLower string) (float64, bool) {
	if skillLower == "" {
		return 0, false
	}

	// (a) 词边界完整匹配
	if containsPhrase(textLower, skillLower) {
		return ConfidenceExact, true
	}

	// (b) 子串包含（任一方向）。
	// 为避免 "go" 命中 "strong" 这类误报，短于3字符的一方不参与子串层。
	if len(skillLower) >= 3 {
		if strings.Contains(skillLower, " ") && strings.Contains(textLower, skillLower) {
			return ConfidenceSubstring, true
		}
		for _, tok := range strings.Fields(textLower) {
			tok = strings.Trim(tok, ".,;:()[]")
			if len(tok) < 3 {
				continue
			}
			if strings.Contains(tok, skillLower) || strings.Contains(skillLower, tok) {
				return ConfidenceSubstring, true
			}
		}
	}

	// (c) 尾部s单复数变换
	if containsPhrase(textLower, skillLower+"s") {
		return ConfidencePlural, true
	}
	if strings.HasSuffix(skillLower, "s") && containsPhrase(textLower, strings.TrimSuffix(skillLower, "s")) {
		return ConfidencePlural, true
	}

	return 0, false
}

// containsPhrase 词边界包含判断。
// 技能名中的非字母数字字符（如 c++、node.js）按字面匹配。
func containsPhrase(s, phrase string) bool {
	idx := 0
	for idx <= len(s)-len(phrase) {
		i := strings.Index(s[idx:], phrase)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(phrase)
		leftOK := start == 0 || !isAlnum(s[start-1])
		rightOK := end == len(s) || !isAlnum(s[end])
		if leftOK && rightOK {
			return true
		}
		idx = start + 1
	}
	return false
}

func isAlnum(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

// fallback 词表不可用时的兜底路径：关键词提取结果作为
// 未验证技能，置信度统一压到较低档位。
func (m *Matcher) fallback(text string) []types.SkillMention {
	terms := m.keywords.ExtractKeywords(text, 0)
	seen := make(map[string]bool, len(terms))
	mentions := make([]types.SkillMention, 0, len(terms))
	for _, term := range terms {
		key := strings.ToLower(term)
		if seen[key] {
			continue
		}
		seen[key] = true
		mentions = append(mentions, types.SkillMention{
			Name:       term,
			Category:   types.CategoryUnverified,
			Confidence: ConfidenceUnverified,
		})
	}
	return mentions
}
