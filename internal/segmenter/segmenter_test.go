package segmenter_test

import (
	"testing"

	"resume-match-go/internal/segmenter"
	"resume-match-go/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `John Smith
john.smith@example.com

Professional Summary
Backend engineer with a focus on distributed systems.

Work Experience
2018 - 2022 Senior Engineer at Acme Corp
Built payment services in Go.

Education
2014 - 2018 Bachelor of Computer Science, State University

Skills
Go, Python, Docker, Kubernetes
`

func TestSegmentBasicSections(t *testing.T) {
	s := segmenter.New()
	result := s.Segment(sampleResume)

	require.True(t, result.Has(types.SectionSummary))
	require.True(t, result.Has(types.SectionExperience))
	require.True(t, result.Has(types.SectionEducation))
	require.True(t, result.Has(types.SectionSkills))

	exp, _ := result.Get(types.SectionExperience)
	assert.Contains(t, exp, "Senior Engineer at Acme Corp")
	assert.NotContains(t, exp, "Bachelor of Computer Science")

	edu, _ := result.Get(types.SectionEducation)
	assert.Contains(t, edu, "Bachelor of Computer Science")

	skills, _ := result.Get(types.SectionSkills)
	assert.Contains(t, skills, "Kubernetes")
}

func TestSegmentSectionsAreOrderedAndNonOverlapping(t *testing.T) {
	s := segmenter.New()
	result := s.Segment(sampleResume)

	require.NotEmpty(t, result.Sections)
	for i := 1; i < len(result.Sections); i++ {
		assert.Greater(t, result.Sections[i].Offset, result.Sections[i-1].Offset)
	}
}

// 同一行命中多个别名时应选择最长（最具体）的那个
func TestSegmentPrefersLongerAlias(t *testing.T) {
	s := segmenter.New()
	result := s.Segment("Work Experience\nBuilt things.\n")

	require.Len(t, result.Sections, 1)
	assert.Equal(t, types.SectionExperience, result.Sections[0].Type)
	assert.Equal(t, "work experience", result.Sections[0].Heading)
}

func TestSegmentHeadingWithColon(t *testing.T) {
	s := segmenter.New()
	result := s.Segment("Skills:\nGo, Python\n")

	content, ok := result.Get(types.SectionSkills)
	require.True(t, ok)
	assert.Equal(t, "Go, Python", content)
}

// 没有任何可识别标题时整体作为 FULL_TEXT 兜底返回
func TestSegmentFallbackFullText(t *testing.T) {
	s := segmenter.New()
	text := "just a plain paragraph without any resume headings at all"
	result := s.Segment(text)

	require.Len(t, result.Sections, 1)
	assert.Equal(t, types.SectionFullText, result.Sections[0].Type)
	assert.Equal(t, text, result.Sections[0].Content)
}

// 正文长句中出现的章节词不应被当成标题
func TestSegmentIgnoresBodySentences(t *testing.T) {
	s := segmenter.New()
	result := s.Segment("I have ten years of experience building large systems and my education was great, it shaped my whole career and taught me a lot.\n")

	require.Len(t, result.Sections, 1)
	assert.Equal(t, types.SectionFullText, result.Sections[0].Type)
}

// 同类型标题出现多次时只保留第一个
func TestSegmentKeepsFirstHeadingPerType(t *testing.T) {
	s := segmenter.New()
	result := s.Segment("Experience\nfirst block\n\nWork History\nsecond block\n")

	count := 0
	for _, sec := range result.Sections {
		if sec.Type == types.SectionExperience {
			count++
		}
	}
	assert.Equal(t, 1, count)

	content, _ := result.Get(types.SectionExperience)
	assert.Contains(t, content, "first block")
	assert.Contains(t, content, "Work History")
}

func TestSegmentEmptyInput(t *testing.T) {
	s := segmenter.New()
	result := s.Segment("")

	require.Len(t, result.Sections, 1)
	assert.Equal(t, types.SectionFullText, result.Sections[0].Type)
}

// 一行命中两个等长别名时分类结果固定：
// "Education Languages" 中 education 和 languages 都是9个字符，
// 按固定遍历顺序始终判为教育章节，重复切分不会漂移。
func TestSegmentEqualLengthAliasTieIsStable(t *testing.T) {
	s := segmenter.New()
	text := "Education Languages\n2012 - 2016 Bachelor of Science\n"

	first := s.Segment(text)
	require.Len(t, first.Sections, 1)
	assert.Equal(t, types.SectionEducation, first.Sections[0].Type)

	for i := 0; i < 200; i++ {
		assert.Equal(t, first, s.Segment(text))
	}
}

// 同一输入重复切分应得到完全相同的结果
func TestSegmentDeterministic(t *testing.T) {
	s := segmenter.New()
	first := s.Segment(sampleResume)
	second := s.Segment(sampleResume)
	assert.Equal(t, first, second)
}
