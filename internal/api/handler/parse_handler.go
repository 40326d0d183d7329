package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"resume-match-go/internal/config"
	"resume-match-go/internal/extractor"
	"resume-match-go/internal/logger"
	"resume-match-go/internal/processor"
	"resume-match-go/internal/tracing"
	"resume-match-go/internal/types"

	"github.com/google/uuid"
)

// ErrFileRequired 请求中缺少简历文件
var ErrFileRequired = errors.New("缺少简历文件")

// ParseHandler 简历解析处理器，负责协调上传文件的解析流程
type ParseHandler struct {
	cfg      *config.Config
	pipeline *processor.Pipeline
}

// NewParseHandler 创建简历解析处理器
func NewParseHandler(cfg *config.Config, pipeline *processor.Pipeline) *ParseHandler {
	return &ParseHandler{cfg: cfg, pipeline: pipeline}
}

// ResumeParseResponse 简历解析响应
type ResumeParseResponse struct {
	DocumentID string                 `json:"document_id"`
	TextLength int                    `json:"text_length"`
	// TooShort 提取文本过短，画像可信度较低
	TooShort bool   `json:"too_short,omitempty"`
	Warning  string `json:"warning,omitempty"`
	Keywords []string               `json:"keywords"`
	Sections types.SectionMap       `json:"sections"`
	Profile  types.CandidateProfile `json:"profile"`
}

// HandleResumeParse 处理简历上传解析请求。
// 文件先落到临时目录再交给提取器，解析完成后删除。
func (h *ParseHandler) HandleResumeParse(ctx context.Context, reader io.Reader, fileSize int64, filename string) (*ResumeParseResponse, error) {
	if reader == nil {
		return nil, ErrFileRequired
	}
	if fileSize > h.cfg.Extractor.MaxFileSizeBytes {
		return nil, fmt.Errorf("%w: %d字节超过上限%d字节",
			extractor.ErrFileTooLarge, fileSize, h.cfg.Extractor.MaxFileSizeBytes)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".pdf"
	}

	documentID := uuid.NewString()

	tmpFile, err := os.CreateTemp("", "resume-*"+ext)
	if err != nil {
		return nil, fmt.Errorf("创建临时文件失败: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmpFile, reader); err != nil {
		tmpFile.Close()
		return nil, fmt.Errorf("写入临时文件失败: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return nil, fmt.Errorf("关闭临时文件失败: %w", err)
	}

	result, err := h.pipeline.ParseFile(ctx, tmpPath, ext)
	if err != nil {
		return nil, err
	}

	resp := &ResumeParseResponse{
		DocumentID: documentID,
		TextLength: result.Extracted.Length,
		TooShort:   result.Extracted.TooShort,
		Keywords:   result.Keywords,
		Sections:   result.Sections,
		Profile:    result.Profile,
	}
	if result.Extracted.Err != nil {
		resp.Warning = result.Extracted.Err.Error()
	}

	logger.Info().
		Str("document_id", documentID).
		Str("filename", filename).
		Int("text_length", result.Extracted.Length).
		Bool("too_short", result.Extracted.TooShort).
		Int("skills", len(result.Profile.Skills)).
		Str("email", tracing.MaskPII(result.Profile.Contact.Email)).
		Msg("简历解析完成")

	return resp, nil
}
