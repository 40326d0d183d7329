package extractor

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"resume-match-go/internal/logger"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoParser "github.com/cloudwego/eino/components/document/parser"
)

// EinoPDFExtractor 使用 Eino PDF Parser 提取PDF文本
type EinoPDFExtractor struct {
	parser *pdf.PDFParser
}

// NewEinoPDFExtractor 初始化 Eino PDF 文本提取器。
// 配置为不按页面分割，以获取整个文档的连续文本。
func NewEinoPDFExtractor(ctx context.Context) (*EinoPDFExtractor, error) {
	p, err := pdf.NewPDFParser(ctx, &pdf.Config{
		ToPages: false, // 获取整个PDF的文本作为单个字符串
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Eino PDF parser: %w", err)
	}
	return &EinoPDFExtractor{parser: p}, nil
}

// ExtractText 从PDF文件路径提取完整的纯文本内容
func (e *EinoPDFExtractor) ExtractText(ctx context.Context, filePath string) (string, error) {
	startTime := time.Now()

	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("打开PDF文件失败 %s: %w", filePath, err)
	}
	defer file.Close()

	docs, err := e.parser.Parse(ctx, file,
		einoParser.WithURI(filePath),
	)
	if err != nil {
		return "", fmt.Errorf("eino PDF parser failed for %s: %w", filePath, err)
	}
	if len(docs) == 0 {
		return "", fmt.Errorf("eino PDF parser returned no documents for %s", filePath)
	}

	// 合并所有文档的内容（以防返回了多个）
	var sb strings.Builder
	for i, doc := range docs {
		sb.WriteString(doc.Content)
		if i < len(docs)-1 {
			sb.WriteString("\n\n")
		}
	}

	logger.Debug().
		Str("path", filePath).
		Int("chars", sb.Len()).
		Dur("elapsed", time.Since(startTime)).
		Msg("PDF文本提取完成")

	return sb.String(), nil
}
