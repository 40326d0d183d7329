package router

import (
	"context"
	"errors"
	"strconv"

	"resume-match-go/internal/api/handler"
	"resume-match-go/internal/config"
	"resume-match-go/internal/extractor"
	"resume-match-go/internal/matcher"
	"resume-match-go/internal/types"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/keyauth"
)

// RegisterRoutes 注册 API 路由。
// 配置了API Key时，除健康检查外的所有路由要求 X-API-Key 请求头。
func RegisterRoutes(h *server.Hertz, cfg *config.Config,
	parseHandler *handler.ParseHandler,
	matchHandler *handler.MatchHandler,
	postingHandler *handler.PostingHandler,
) {
	h.GET("/api/v1/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})

	api := h.Group("/api/v1")
	if cfg.Server.APIKey != "" {
		api.Use(keyauth.New(
			keyauth.WithKeyLookUp("header:X-API-Key", ""),
			keyauth.WithValidator(func(c context.Context, ctx *app.RequestContext, key string) (bool, error) {
				return key == cfg.Server.APIKey, nil
			}),
			keyauth.WithErrorHandler(func(c context.Context, ctx *app.RequestContext, err error) {
				ctx.AbortWithStatusJSON(consts.StatusUnauthorized, utils.H{"error": "无效的API Key"})
			}),
		))
	}

	api.POST("/resume/parse", func(c context.Context, ctx *app.RequestContext) {
		fileHeader, err := ctx.FormFile("file")
		if err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "文件未找到"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "打开文件失败"})
			return
		}
		defer file.Close()

		resp, err := parseHandler.HandleResumeParse(c, file, fileHeader.Size, fileHeader.Filename)
		if err != nil {
			ctx.JSON(parseStatusCode(err), utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	api.POST("/match", func(c context.Context, ctx *app.RequestContext) {
		var req handler.MatchRequest
		if err := ctx.BindJSON(&req); err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体解析失败"})
			return
		}
		resp, err := matchHandler.HandleMatch(c, &req)
		if err != nil {
			ctx.JSON(matchStatusCode(err), utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	api.POST("/match/rank", func(c context.Context, ctx *app.RequestContext) {
		var req handler.RankRequest
		if err := ctx.BindJSON(&req); err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体解析失败"})
			return
		}
		resp, err := matchHandler.HandleRank(c, &req)
		if err != nil {
			ctx.JSON(matchStatusCode(err), utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	api.POST("/postings", func(c context.Context, ctx *app.RequestContext) {
		var posting types.JobPosting
		if err := ctx.BindJSON(&posting); err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体解析失败"})
			return
		}
		resp, err := postingHandler.HandleUpsertPosting(c, posting)
		if err != nil {
			ctx.JSON(matchStatusCode(err), utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	api.GET("/postings", func(c context.Context, ctx *app.RequestContext) {
		offset, _ := strconv.Atoi(ctx.Query("offset"))
		limit, _ := strconv.Atoi(ctx.Query("limit"))
		postings, err := postingHandler.HandleListPostings(c, offset, limit)
		if err != nil {
			ctx.JSON(matchStatusCode(err), utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, utils.H{"postings": postings})
	})

	api.GET("/postings/:id", func(c context.Context, ctx *app.RequestContext) {
		posting, err := postingHandler.HandleGetPosting(c, ctx.Param("id"))
		if err != nil {
			ctx.JSON(matchStatusCode(err), utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, posting)
	})
}

// parseStatusCode 解析类错误到HTTP状态码的映射
func parseStatusCode(err error) int {
	switch {
	case errors.Is(err, extractor.ErrUnsupportedFormat):
		return consts.StatusUnsupportedMediaType
	case errors.Is(err, extractor.ErrFileTooLarge):
		return consts.StatusRequestEntityTooLarge
	case errors.Is(err, handler.ErrFileRequired):
		return consts.StatusBadRequest
	default:
		return consts.StatusInternalServerError
	}
}

// matchStatusCode 匹配类错误到HTTP状态码的映射
func matchStatusCode(err error) int {
	switch {
	case errors.Is(err, handler.ErrResumeTextRequired),
		errors.Is(err, handler.ErrPostingRequired),
		errors.Is(err, handler.ErrPostingTitleRequired),
		errors.Is(err, matcher.ErrInvalidWeights):
		return consts.StatusBadRequest
	case errors.Is(err, handler.ErrPostingNotFound):
		return consts.StatusNotFound
	case errors.Is(err, handler.ErrStoreUnavailable):
		return consts.StatusServiceUnavailable
	default:
		return consts.StatusInternalServerError
	}
}
