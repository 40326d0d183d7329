package processor

import (
	"errors"
	"fmt"
)

// 定义基础错误类型
var (
	// ErrTaxonomyUnavailable 词表加载失败，属于不可恢复的启动错误
	ErrTaxonomyUnavailable = errors.New("技能词表不可用")
	// ErrExtractorInitFailed 文本提取器初始化失败
	ErrExtractorInitFailed = errors.New("文本提取器初始化失败")
	// ErrParseTextFailed 简历文本解析失败
	ErrParseTextFailed = errors.New("简历文本解析失败")
)

// PipelineError 包含详细上下文的管线错误
type PipelineError struct {
	DocumentID string
	Op         string
	BaseErr    error
	Detail     string
}

func (e *PipelineError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (操作:%s, 文档:%s): %s", e.BaseErr, e.Op, e.DocumentID, e.Detail)
	}
	return fmt.Sprintf("%s (操作:%s, 文档:%s)", e.BaseErr, e.Op, e.DocumentID)
}

func (e *PipelineError) Unwrap() error {
	return e.BaseErr
}

// Is 实现 errors.Is 接口以支持错误比较
func (e *PipelineError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

// NewTaxonomyError 词表错误构造函数
func NewTaxonomyError(detail string) error {
	return &PipelineError{
		Op:      "taxonomy_load",
		BaseErr: ErrTaxonomyUnavailable,
		Detail:  detail,
	}
}

// NewParseError 解析错误构造函数
func NewParseError(documentID, detail string) error {
	return &PipelineError{
		DocumentID: documentID,
		Op:         "parse",
		BaseErr:    ErrParseTextFailed,
		Detail:     detail,
	}
}
