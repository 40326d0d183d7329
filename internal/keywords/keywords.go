package keywords

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"resume-match-go/internal/constants"
	"resume-match-go/internal/logger"
)

// stopWords 固定停用词表
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "as": true, "is": true, "are": true,
	"was": true, "were": true, "be": true, "been": true, "being": true,
	"have": true, "has": true, "had": true, "do": true, "does": true, "did": true,
	"will": true, "would": true, "could": true, "should": true, "may": true,
	"might": true, "can": true, "this": true, "that": true, "these": true,
	"those": true, "i": true, "my": true, "me": true, "we": true, "our": true,
	"you": true, "your": true, "he": true, "she": true, "it": true, "they": true,
	"them": true, "their": true, "its": true, "his": true, "her": true,
	"not": true, "no": true, "so": true, "if": true, "then": true, "than": true,
	"too": true, "very": true, "also": true, "such": true, "into": true,
	"about": true, "over": true, "under": true, "after": true, "before": true,
	"between": true, "through": true, "during": true, "while": true,
	"other": true, "some": true, "any": true, "all": true, "each": true,
	"more": true, "most": true, "both": true, "using": true, "used": true,
	"use": true, "etc": true, "including": true, "like": true, "well": true,
	"strong": true, "various": true, "年": true,
}

var (
	// tokenPattern 词边界分词，保留 +/#/./- 等技术名称常见符号
	tokenPattern = regexp.MustCompile(`[A-Za-z][A-Za-z0-9+#.\-]*[A-Za-z0-9+#]|[A-Za-z]`)

	// skillCuePattern 技能提示语，捕获其后的短语
	skillCuePattern = regexp.MustCompile(
		`(?i)(?:experience with|experienced in|proficient in|proficiency in|knowledge of|skilled in|expertise in|familiar with|working with)\s+([A-Za-z][A-Za-z0-9+#.\-]*(?:\s+[A-Za-z][A-Za-z0-9+#.\-]*){0,2})`)

	// camelCasePattern 驼峰形式的技术词，例如 JavaScript、PostgreSQL
	camelCasePattern = regexp.MustCompile(`^[A-Z][a-z]+[A-Z][A-Za-z]*$`)
)

// Extractor 规则+统计混合的关键词提取器
type Extractor struct {
	maxDefault int
}

// New 创建关键词提取器。maxDefault<=0时使用默认上限。
func New(maxDefault int) *Extractor {
	if maxDefault <= 0 {
		maxDefault = constants.DefaultMaxKeywords
	}
	return &Extractor{maxDefault: maxDefault}
}

// ExtractKeywords 提取排序后的候选关键词列表：规则路径与统计路径
// 取并集，大小写不敏感去重，截断到maxKeywords。
// 任何内部错误都产生空列表并记录日志，从不向上抛出。
func (e *Extractor) ExtractKeywords(text string, maxKeywords int) (result []string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("关键词提取内部错误，返回空列表")
			result = nil
		}
	}()

	if maxKeywords <= 0 {
		maxKeywords = e.maxDefault
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}

	ruleBased := e.ruleBased(text)
	statistical := e.statistical(text)

	// 并集：规则路径优先（短语形状更可靠），统计路径补充
	merged := append(append([]string{}, ruleBased...), statistical...)
	return dedupeAndTruncate(merged, maxKeywords)
}

// candidate 候选关键词及其出现频次
type candidate struct {
	text  string
	count int
	// phrase 多词短语或技术形状的词
	phrase bool
}

// ruleBased 规则路径：停用词过滤 + 技术词形状识别 + 技能提示语短语，
// 按频次排序，短语优先于已被短语覆盖的单词。
func (e *Extractor) ruleBased(text string) []string {
	counts := make(map[string]*candidate)
	bump := func(term string, phrase bool) {
		key := strings.ToLower(term)
		if c, ok := counts[key]; ok {
			c.count++
			if phrase {
				c.phrase = true
			}
			return
		}
		counts[key] = &candidate{text: term, count: 1, phrase: phrase}
	}

	// 技能提示语之后的短语
	for _, m := range skillCuePattern.FindAllStringSubmatch(text, -1) {
		phrase := trimStopWordEdges(m[1])
		if phrase != "" {
			bump(phrase, true)
		}
	}

	tokens := tokenPattern.FindAllString(text, -1)
	for i, tok := range tokens {
		lower := strings.ToLower(tok)
		if stopWords[lower] || len(lower) < 2 {
			continue
		}
		bump(tok, isTechnicalShape(tok))

		// 相邻驼峰/技术词组成的双词短语，例如 "Apache Kafka"
		if i+1 < len(tokens) {
			next := tokens[i+1]
			if isCapitalized(tok) && isCapitalized(next) && !stopWords[strings.ToLower(next)] {
				bump(tok+" "+next, true)
			}
		}
	}

	ordered := make([]*candidate, 0, len(counts))
	for _, c := range counts {
		ordered = append(ordered, c)
	}
	// 短语优先，其次频次，最后按字典序保证确定性
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].phrase != ordered[j].phrase {
			return ordered[i].phrase
		}
		if ordered[i].count != ordered[j].count {
			return ordered[i].count > ordered[j].count
		}
		return strings.ToLower(ordered[i].text) < strings.ToLower(ordered[j].text)
	})

	var selected []string
	for _, c := range ordered {
		if coveredBySelected(c.text, selected) {
			continue
		}
		selected = append(selected, c.text)
	}
	return selected
}

// isTechnicalShape 判断词是否具有技术名称的形状：
// 驼峰、连字符、点分（X.Y）、以+或#结尾
func isTechnicalShape(tok string) bool {
	if camelCasePattern.MatchString(tok) {
		return true
	}
	if strings.Contains(tok, "-") || strings.Contains(tok, ".") {
		return true
	}
	if strings.HasSuffix(tok, "+") || strings.HasSuffix(tok, "#") {
		return true
	}
	return false
}

func isCapitalized(tok string) bool {
	return len(tok) > 1 && tok[0] >= 'A' && tok[0] <= 'Z'
}

// trimStopWordEdges 去掉短语首尾的停用词
func trimStopWordEdges(phrase string) string {
	words := strings.Fields(phrase)
	for len(words) > 0 && stopWords[strings.ToLower(words[0])] {
		words = words[1:]
	}
	for len(words) > 0 && stopWords[strings.ToLower(words[len(words)-1])] {
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}

// coveredBySelected 判断候选词是否已是某个入选短语的组成部分
func coveredBySelected(term string, selected []string) bool {
	lower := strings.ToLower(term)
	for _, s := range selected {
		sl := strings.ToLower(s)
		if sl == lower {
			return true
		}
		if strings.Contains(sl, lower) && len(sl) > len(lower) {
			return true
		}
	}
	return false
}

// dedupeAndTruncate 大小写不敏感去重（保留先出现的写法）并截断
func dedupeAndTruncate(terms []string, max int) []string {
	seen := make(map[string]bool, len(terms))
	var out []string
	for _, t := range terms {
		key := strings.ToLower(strings.TrimSpace(t))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
		if len(out) >= max {
			break
		}
	}
	return out
}

// String 调试用
func (c *candidate) String() string {
	return fmt.Sprintf("%s(%d)", c.text, c.count)
}
