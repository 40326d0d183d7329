package processor

import (
	"context"
	"fmt"
	"strings"

	"resume-match-go/internal/config"
	"resume-match-go/internal/extractor"
	"resume-match-go/internal/keywords"
	"resume-match-go/internal/logger"
	"resume-match-go/internal/profile"
	"resume-match-go/internal/segmenter"
	"resume-match-go/internal/taxonomy"
	"resume-match-go/internal/types"
)

// Components 聚合管线的各功能组件，便于集中管理和测试替换
type Components struct {
	Extractor *extractor.TextExtractor
	Segmenter *segmenter.Segmenter
	Keywords  *keywords.Extractor
	Skills    *taxonomy.Matcher
	Builder   *profile.Builder
}

// ParseResult 一次简历解析的完整结果。
// 每次调用产生全新的结果对象，调用之间没有共享可变状态，
// 可以安全地跨工作协程并行解析。
type ParseResult struct {
	Extracted types.ExtractedText    `json:"extracted"`
	Sections  types.SectionMap       `json:"sections"`
	Keywords  []string               `json:"keywords"`
	Profile   types.CandidateProfile `json:"profile"`
}

// Pipeline 简历解析管线：提取 → 章节切分 → 关键词/技能识别 → 画像组装。
// 词表在构建时一次性加载，之后只读。
type Pipeline struct {
	components    Components
	maxKeywords   int
	minTextLength int
}

// New 构建解析管线。词表不可用会中止构建（不可恢复）；
// 其余任何单步失败在运行期都只产生降级结果，不会使整批失败。
func New(ctx context.Context, cfg *config.Config) (*Pipeline, error) {
	tax, err := taxonomy.NewProvider(cfg.Taxonomy.FilePath).Load()
	if err != nil {
		return nil, NewTaxonomyError(err.Error())
	}

	textExtractor, err := extractor.New(ctx, cfg.Extractor)
	if err != nil {
		return nil, &PipelineError{Op: "extractor_init", BaseErr: ErrExtractorInitFailed, Detail: err.Error()}
	}

	kw := keywords.New(cfg.Matcher.MaxKeywords)

	return &Pipeline{
		components: Components{
			Extractor: textExtractor,
			Segmenter: segmenter.New(),
			Keywords:  kw,
			Skills:    taxonomy.NewMatcher(tax, kw),
			Builder:   profile.NewBuilder(),
		},
		maxKeywords:   cfg.Matcher.MaxKeywords,
		minTextLength: cfg.Extractor.MinTextLength,
	}, nil
}

// NewWithComponents 用现成组件构建管线，测试用
func NewWithComponents(components Components, maxKeywords, minTextLength int) *Pipeline {
	return &Pipeline{components: components, maxKeywords: maxKeywords, minTextLength: minTextLength}
}

// ParseFile 解析简历文件。
// 仅扩展名不受支持时返回错误；提取失败产生空文本的降级结果。
func (p *Pipeline) ParseFile(ctx context.Context, path string, ext string) (*ParseResult, error) {
	extracted, err := p.components.Extractor.Extract(ctx, path, ext)
	if err != nil {
		return nil, fmt.Errorf("提取分发失败: %w", err)
	}
	result := p.ParseText(extracted.Text)
	result.Extracted = extracted
	return result, nil
}

// ParseText 解析已提取的简历文本。
// 同一文本两次解析产生完全相同的画像（路径中没有隐藏的随机性）。
// 过短文本与文件路径一样置 TooShort 标记。
func (p *Pipeline) ParseText(text string) *ParseResult {
	length := len([]rune(text))
	extracted := types.ExtractedText{
		Text:     text,
		Length:   length,
		TooShort: length > 0 && length < p.minTextLength,
	}

	if strings.TrimSpace(text) == "" {
		logger.Debug().Msg("输入文本为空，返回空画像")
		return &ParseResult{
			Extracted: extracted,
			Sections:  types.SectionMap{},
			Profile:   types.CandidateProfile{Skills: []types.SkillMention{}},
		}
	}

	sections := p.components.Segmenter.Segment(text)
	terms := p.components.Keywords.ExtractKeywords(text, p.maxKeywords)
	mentions := p.components.Skills.Match(text)
	candidateProfile := p.components.Builder.Build(text, sections, mentions)

	return &ParseResult{
		Extracted: extracted,
		Sections:  sections,
		Keywords:  terms,
		Profile:   candidateProfile,
	}
}
