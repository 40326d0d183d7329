package handler

import (
	"context"
	"errors"
	"fmt"

	"resume-match-go/internal/logger"
	"resume-match-go/internal/storage"
	"resume-match-go/internal/types"

	"github.com/google/uuid"
)

// ErrPostingTitleRequired 岗位标题不能为空
var ErrPostingTitleRequired = errors.New("岗位标题不能为空")

// PostingHandler 岗位管理处理器
type PostingHandler struct {
	store *storage.JobPostingStore
}

// NewPostingHandler 创建岗位管理处理器。store为nil时所有操作返回不可用错误。
func NewPostingHandler(store *storage.JobPostingStore) *PostingHandler {
	return &PostingHandler{store: store}
}

// HandleUpsertPosting 写入或更新岗位，ID为空时自动生成
func (h *PostingHandler) HandleUpsertPosting(ctx context.Context, posting types.JobPosting) (*types.JobPosting, error) {
	if h.store == nil {
		return nil, ErrStoreUnavailable
	}
	if posting.Title == "" {
		return nil, ErrPostingTitleRequired
	}
	if posting.ID == "" {
		posting.ID = uuid.NewString()
	}
	if err := h.store.Upsert(ctx, posting); err != nil {
		return nil, err
	}
	logger.Info().Str("posting_id", posting.ID).Str("title", posting.Title).Msg("岗位写入完成")
	return &posting, nil
}

// HandleGetPosting 按ID查询岗位
func (h *PostingHandler) HandleGetPosting(ctx context.Context, postingID string) (*types.JobPosting, error) {
	if h.store == nil {
		return nil, ErrStoreUnavailable
	}
	posting, err := h.store.Get(ctx, postingID)
	if err != nil {
		return nil, err
	}
	if posting == nil {
		return nil, fmt.Errorf("%w: %s", ErrPostingNotFound, postingID)
	}
	return posting, nil
}

// HandleListPostings 按创建时间倒序分页列出岗位
func (h *PostingHandler) HandleListPostings(ctx context.Context, offset, limit int) ([]types.JobPosting, error) {
	if h.store == nil {
		return nil, ErrStoreUnavailable
	}
	return h.store.List(ctx, offset, limit)
}
