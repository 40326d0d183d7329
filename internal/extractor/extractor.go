package extractor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"resume-match-go/internal/config"
	"resume-match-go/internal/logger"
	"resume-match-go/internal/types"
)

// 提取阶段的基础错误类型
var (
	// ErrUnsupportedFormat 不支持的文件扩展名，在分发阶段直接拒绝
	ErrUnsupportedFormat = errors.New("不支持的文件格式")
	// ErrFileTooLarge 文件超过解析前大小上限
	ErrFileTooLarge = errors.New("文件超过大小上限")
	// ErrExtractionFailed I/O或解析失败，产生空文本结果
	ErrExtractionFailed = errors.New("文本提取失败")
)

// TextExtractor 按扩展名分发的简历文本提取器。
// 除不支持的扩展名外，任何I/O或解析失败都产生空文本的
// ExtractedText 而非错误返回：提取失败是可上报的正常结果。
type TextExtractor struct {
	pdf           *EinoPDFExtractor
	maxFileSize   int64
	minTextLength int
	timeout       time.Duration
}

// New 创建文本提取器。PDF解析器在此一次性初始化。
func New(ctx context.Context, cfg config.ExtractorConfig) (*TextExtractor, error) {
	pdfExtractor, err := NewEinoPDFExtractor(ctx)
	if err != nil {
		return nil, fmt.Errorf("初始化PDF解析器失败: %w", err)
	}

	maxSize := cfg.MaxFileSizeBytes
	if maxSize <= 0 {
		maxSize = 10 << 20
	}
	minLen := cfg.MinTextLength
	if minLen <= 0 {
		minLen = 100
	}

	return &TextExtractor{
		pdf:           pdfExtractor,
		maxFileSize:   maxSize,
		minTextLength: minLen,
		timeout:       config.GetDuration(cfg.ExtractTimeout, 30*time.Second),
	}, nil
}

// Extract 从文件提取纯文本。
// 返回的error仅在扩展名不受支持时非nil；其余失败记录在
// ExtractedText.Err 中并返回空文本。
func (e *TextExtractor) Extract(ctx context.Context, path string, extension string) (types.ExtractedText, error) {
	ext := strings.ToLower(strings.TrimPrefix(extension, "."))

	switch ext {
	case "pdf", "doc", "docx", "txt":
	default:
		return types.ExtractedText{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, extension)
	}

	// 解析前检查文件大小，避免无界解析工作
	info, err := os.Stat(path)
	if err != nil {
		return e.failed(path, fmt.Errorf("%w: %v", ErrExtractionFailed, err)), nil
	}
	if info.Size() > e.maxFileSize {
		return e.failed(path, fmt.Errorf("%w: %d字节 > 上限%d字节", ErrFileTooLarge, info.Size(), e.maxFileSize)), nil
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var text string
	switch ext {
	case "pdf":
		text, err = e.pdf.ExtractText(ctx, path)
	case "docx":
		text, err = extractDOCX(path)
	case "doc":
		text, err = extractLegacyDoc(path)
	case "txt":
		var data []byte
		data, err = os.ReadFile(path)
		text = string(data)
	}
	if err != nil {
		return e.failed(path, fmt.Errorf("%w: %v", ErrExtractionFailed, err)), nil
	}

	return e.result(text), nil
}

// result 构造提取结果并标记过短文本
func (e *TextExtractor) result(text string) types.ExtractedText {
	length := utf8.RuneCountInString(text)
	return types.ExtractedText{
		Text:     text,
		Length:   length,
		TooShort: length > 0 && length < e.minTextLength,
	}
}

func (e *TextExtractor) failed(path string, err error) types.ExtractedText {
	logger.Warn().Err(err).Str("path", path).Msg("文本提取失败，返回空结果")
	return types.ExtractedText{Err: err}
}
