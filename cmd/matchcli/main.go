package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"resume-match-go/internal/config"
	"resume-match-go/internal/constants"
	appLogger "resume-match-go/internal/logger"
	"resume-match-go/internal/matcher"
	"resume-match-go/internal/processor"
	"resume-match-go/internal/types"

	"github.com/spf13/pflag"
)

// 命令行参数定义
var (
	configPath  = pflag.StringP("config", "c", "", "配置文件路径")
	command     = pflag.String("cmd", "parse", "执行的命令: parse=解析简历, match=对岗位打分, rank=多岗位排序")
	resumePath  = pflag.String("resume", "", "简历文件路径 (pdf/docx/doc/txt)")
	postingPath = pflag.String("posting", "", "岗位JSON文件路径，match时为单个对象，rank时为数组")
	page        = pflag.Int("page", 1, "rank结果页码")
	pageSize    = pflag.Int("page-size", constants.DefaultPageSize, "rank每页条数")
)

func main() {
	pflag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fail("加载配置失败: %v", err)
	}
	appLogger.Init(appLogger.Config{Level: "warn", Format: "pretty"})

	ctx := context.Background()
	pipeline, err := processor.New(ctx, cfg)
	if err != nil {
		fail("初始化解析管线失败: %v", err)
	}

	switch *command {
	case "parse":
		handleParse(ctx, pipeline)
	case "match":
		handleMatch(ctx, cfg, pipeline)
	case "rank":
		handleRank(ctx, cfg, pipeline)
	default:
		fmt.Printf("错误: 未知命令 '%s'。支持的命令: parse, match, rank\n", *command)
		pflag.Usage()
		os.Exit(1)
	}
}

func handleParse(ctx context.Context, pipeline *processor.Pipeline) {
	result := parseResume(ctx, pipeline)
	printJSON(result)
}

func handleMatch(ctx context.Context, cfg *config.Config, pipeline *processor.Pipeline) {
	var posting types.JobPosting
	loadJSON(*postingPath, &posting)

	parsed := parseResume(ctx, pipeline)
	scorer := matcher.NewScorer(nil, 0)
	result, err := scorer.Score(ctx, &parsed.Profile, &posting, defaultWeights(cfg))
	if err != nil {
		fail("打分失败: %v", err)
	}
	printJSON(result)
}

func handleRank(ctx context.Context, cfg *config.Config, pipeline *processor.Pipeline) {
	var postings []types.JobPosting
	loadJSON(*postingPath, &postings)

	parsed := parseResume(ctx, pipeline)
	batch := matcher.NewBatchScorer(matcher.NewScorer(nil, 0), cfg.Matcher.BatchWorkers)
	results, err := batch.ScoreAll(ctx, &parsed.Profile, postings, defaultWeights(cfg))
	if err != nil {
		fail("批量打分失败: %v", err)
	}
	printJSON(matcher.Rank(results, *page, *pageSize))
}

func parseResume(ctx context.Context, pipeline *processor.Pipeline) *processor.ParseResult {
	if *resumePath == "" {
		fail("必须通过 --resume 指定简历文件")
	}
	ext := strings.ToLower(filepath.Ext(*resumePath))
	result, err := pipeline.ParseFile(ctx, *resumePath, ext)
	if err != nil {
		fail("解析简历失败: %v", err)
	}
	if result.Extracted.Err != nil {
		fmt.Fprintf(os.Stderr, "警告: 文本提取降级: %v\n", result.Extracted.Err)
	}
	if result.Extracted.TooShort {
		fmt.Fprintln(os.Stderr, "警告: 提取文本过短，结果可信度较低")
	}
	return result
}

func defaultWeights(cfg *config.Config) types.MatchWeights {
	skill, education, experience, location := cfg.DefaultWeights()
	return types.MatchWeights{
		SkillWeight:      skill,
		EducationWeight:  education,
		ExperienceWeight: experience,
		LocationWeight:   location,
	}
}

func loadJSON(path string, v any) {
	if path == "" {
		fail("必须通过 --posting 指定岗位JSON文件")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		fail("读取岗位文件失败: %v", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		fail("解析岗位JSON失败: %v", err)
	}
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fail("编码输出失败: %v", err)
	}
	fmt.Println(string(data))
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
