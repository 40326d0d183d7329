package segmenter

import (
	"sort"
	"strings"

	"resume-match-go/internal/types"
)

// sectionAliases 每种章节类型的标题别名集合（全部小写）。
// 同一行命中多个别名时取最长的（最具体的）。
var sectionAliases = map[types.SectionType][]string{
	types.SectionContact: {
		"contact", "contact information", "contact info",
		"personal details", "personal information",
	},
	types.SectionSummary: {
		"summary", "professional summary", "profile", "objective",
		"career objective", "about me",
	},
	types.SectionEducation: {
		"education", "educational background", "academic background",
		"academics", "qualifications",
	},
	types.SectionExperience: {
		"experience", "work experience", "employment history",
		"work history", "professional experience", "career history",
	},
	types.SectionSkills: {
		"skills", "technical skills", "key skills", "core competencies",
		"skills & abilities",
	},
	types.SectionCertifications: {
		"certifications", "certificates", "licenses",
		"professional certifications",
	},
	types.SectionLanguages: {
		"languages", "language proficiency",
	},
	types.SectionOther: {
		"projects", "interests", "hobbies", "references", "awards",
		"additional information",
	},
}

// sectionOrder 固定的章节类型遍历顺序。
// 别名等长打平时顺序靠前的类型胜出，保证相同输入的分类结果稳定。
var sectionOrder = []types.SectionType{
	types.SectionContact,
	types.SectionSummary,
	types.SectionEducation,
	types.SectionExperience,
	types.SectionSkills,
	types.SectionCertifications,
	types.SectionLanguages,
	types.SectionOther,
}

// maxHeadingLength 超过该长度的行不视为标题候选
const maxHeadingLength = 60

// headingMatch 一次标题命中
type headingMatch struct {
	sectionType types.SectionType
	alias       string
	// offset 标题行在全文中的字节偏移
	offset int
	// contentStart 标题行结束（含换行）后的位置
	contentStart int
}

// Segmenter 基于标题识别的简历章节切分器
type Segmenter struct{}

// New 创建章节切分器
func New() *Segmenter {
	return &Segmenter{}
}

// Segment 将简历全文切分为有序章节。
// 相邻标题之间（以及最后一个标题到文本末尾）的内容归属前一个标题。
// 未命中任何标题时整个文本作为 FULL_TEXT 兜底章节返回。
func (s *Segmenter) Segment(text string) types.SectionMap {
	matches := findHeadings(text)
	if len(matches) == 0 {
		return types.SectionMap{Sections: []types.Section{{
			Type:    types.SectionFullText,
			Content: text,
		}}}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].offset < matches[j].offset
	})

	sections := make([]types.Section, 0, len(matches))
	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1].offset
		}
		content := strings.TrimSpace(text[m.contentStart:end])
		sections = append(sections, types.Section{
			Type:    m.sectionType,
			Heading: m.alias,
			Offset:  m.offset,
			Content: content,
		})
	}
	return types.SectionMap{Sections: sections}
}

// findHeadings 逐行扫描标题。每种章节类型只保留最先出现的命中，
// 同一行多个别名命中时保留最长的别名。
func findHeadings(text string) []headingMatch {
	seen := make(map[types.SectionType]bool)
	var matches []headingMatch

	offset := 0
	for _, line := range strings.SplitAfter(text, "\n") {
		lineStart := offset
		offset += len(line)

		if t, alias, ok := matchHeadingLine(line); ok && !seen[t] {
			seen[t] = true
			matches = append(matches, headingMatch{
				sectionType:  t,
				alias:        alias,
				offset:       lineStart,
				contentStart: lineStart + len(line),
			})
		}
	}
	return matches
}

// matchHeadingLine 判断单行是否为章节标题。
// 标题候选行要求较短且不像正文句子；别名按词边界包含匹配，
// 同一行命中多个别名时取最长的（最具体的），等长时按 sectionOrder 取先。
func matchHeadingLine(line string) (types.SectionType, string, bool) {
	normalized := strings.TrimSpace(line)
	normalized = strings.TrimSuffix(normalized, ":")
	normalized = strings.TrimSpace(normalized)
	if normalized == "" || len(normalized) > maxHeadingLength {
		return "", "", false
	}
	// 以句号结尾的行视为正文
	if strings.HasSuffix(normalized, ".") || strings.HasSuffix(normalized, ",") {
		return "", "", false
	}
	lower := strings.ToLower(normalized)

	var (
		bestType  types.SectionType
		bestAlias string
		found     bool
	)
	for _, sectionType := range sectionOrder {
		for _, alias := range sectionAliases[sectionType] {
			if !containsWord(lower, alias) {
				continue
			}
			if !found || len(alias) > len(bestAlias) {
				bestType = sectionType
				bestAlias = alias
				found = true
			}
		}
	}
	return bestType, bestAlias, found
}

// containsWord 判断s是否按词边界包含phrase
func containsWord(s, phrase string) bool {
	idx := 0
	for {
		i := strings.Index(s[idx:], phrase)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(phrase)
		leftOK := start == 0 || !isWordChar(s[start-1])
		rightOK := end == len(s) || !isWordChar(s[end])
		if leftOK && rightOK {
			return true
		}
		idx = start + 1
		if idx >= len(s) {
			return false
		}
	}
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
