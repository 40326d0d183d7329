package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"resume-match-go/internal/api/handler"
	"resume-match-go/internal/api/router"
	"resume-match-go/internal/config"
	"resume-match-go/internal/constants"
	appLogger "resume-match-go/internal/logger"
	"resume-match-go/internal/matcher"
	"resume-match-go/internal/processor"
	"resume-match-go/internal/storage"
	"resume-match-go/internal/tracing"

	"github.com/cloudwego/hertz/pkg/app/server"
	glog "github.com/cloudwego/hertz/pkg/common/hlog"
	hertzadapter "github.com/hertz-contrib/logger/zerolog"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"
	"github.com/spf13/pflag"
)

func main() {
	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "", "配置文件路径")
	pflag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("加载配置失败")
	}

	appLogger.Init(appLogger.Config{
		Level:        cfg.Logger.Level,
		Format:       cfg.Logger.Format,
		TimeFormat:   cfg.Logger.TimeFormat,
		ReportCaller: cfg.Logger.ReportCaller,
	})
	glog.SetLogger(hertzadapter.From(appLogger.Logger))
	appLogger.Info().Msg("配置加载成功")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracing, err := tracing.InitProvider(ctx, tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		Endpoint:    cfg.Tracing.Endpoint,
		ServiceName: cfg.Tracing.ServiceName,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		appLogger.Fatal().Err(err).Msg("初始化链路追踪失败")
	}
	defer func() {
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelShutdown()
		if err := shutdownTracing(shutdownCtx); err != nil {
			appLogger.Warn().Err(err).Msg("关闭链路追踪失败")
		}
	}()

	// Redis与MySQL都是可选依赖：连不上时降级运行，
	// 缓存关闭、岗位只支持请求内联。
	var resultCache matcher.ResultCache
	redisAdapter, err := storage.NewRedisAdapter(&cfg.Redis)
	if err != nil {
		appLogger.Warn().Err(err).Msg("Redis不可用，匹配结果缓存已禁用")
	} else {
		defer redisAdapter.Close()
		resultCache = storage.NewRedisResultCache(redisAdapter)
		appLogger.Info().Str("address", cfg.Redis.Address).Msg("Redis连接成功")
	}

	var postingStore *storage.JobPostingStore
	mysqlAdapter, err := storage.NewMySQLAdapter(&cfg.MySQL)
	if err != nil {
		appLogger.Warn().Err(err).Msg("MySQL不可用，岗位存储已禁用")
	} else {
		defer mysqlAdapter.Close()
		postingStore = storage.NewJobPostingStore(mysqlAdapter)
		appLogger.Info().Str("host", cfg.MySQL.Host).Msg("MySQL连接成功")
	}

	pipeline, err := processor.New(ctx, cfg)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("初始化解析管线失败")
	}
	appLogger.Info().Msg("解析管线初始化成功")

	if redisAdapter != nil {
		version := cfg.Taxonomy.FilePath
		if version == "" {
			version = "builtin"
		}
		if previous, err := redisAdapter.GetTaxonomyVersion(ctx); err != nil {
			appLogger.Warn().Err(err).Msg("读取词表版本失败")
		} else if previous != "" && previous != version {
			appLogger.Warn().Str("previous", previous).Str("current", version).
				Msg("词表版本发生变化，历史匹配缓存可能基于旧词表")
		}
		if err := redisAdapter.SetTaxonomyVersion(ctx, version); err != nil {
			appLogger.Warn().Err(err).Msg("记录词表版本失败")
		}
	}

	cacheTTL := config.GetDuration(cfg.Matcher.CacheTTL, constants.DefaultMatchCacheTTL)
	scorer := matcher.NewScorer(resultCache, cacheTTL)
	batch := matcher.NewBatchScorer(scorer, cfg.Matcher.BatchWorkers)

	parseHandler := handler.NewParseHandler(cfg, pipeline)
	matchHandler := handler.NewMatchHandler(cfg, pipeline, scorer, batch, postingStore)
	postingHandler := handler.NewPostingHandler(postingStore)

	var h *server.Hertz
	if cfg.Tracing.Enabled {
		tracer, tracerCfg := hertztracing.NewServerTracer()
		h = server.New(
			server.WithHostPorts(cfg.Server.Address),
			server.WithHandleMethodNotAllowed(true),
			tracer,
		)
		h.Use(hertztracing.ServerMiddleware(tracerCfg))
	} else {
		h = server.New(
			server.WithHostPorts(cfg.Server.Address),
			server.WithHandleMethodNotAllowed(true),
		)
	}

	router.RegisterRoutes(h, cfg, parseHandler, matchHandler, postingHandler)
	appLogger.Info().Str("address", cfg.Server.Address).Msg("HTTP路由注册成功，服务器启动中")

	go func() {
		if err := h.Run(); err != nil {
			appLogger.Fatal().Err(err).Msg("启动HTTP服务器失败")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info().Msg("接收到终止信号，正在优雅退出...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := h.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("服务器关闭失败")
	}
	appLogger.Info().Msg("优雅退出完成")
}
