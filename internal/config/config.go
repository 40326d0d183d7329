package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"resume-match-go/internal/constants"

	"gopkg.in/yaml.v3"
)

// RedisConfig Redis连接配置
type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	// 连接池设置
	PoolSize     int `yaml:"pool_size"`
	MinIdleConns int `yaml:"min_idle_conns"`
	// 超时设置
	DialTimeoutSeconds  int `yaml:"dial_timeout_seconds"`
	ReadTimeoutSeconds  int `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int `yaml:"write_timeout_seconds"`
	// 重试设置
	MaxRetries        int `yaml:"max_retries"`
	MinRetryBackoffMS int `yaml:"min_retry_backoff_ms"`
	MaxRetryBackoffMS int `yaml:"max_retry_backoff_ms"`
	// 连接生命周期
	ConnMaxLifetimeMinutes int `yaml:"conn_max_lifetime_minutes"`
	ConnMaxIdleTimeMinutes int `yaml:"conn_max_idle_time_minutes"`
}

// MySQLConfig MySQL连接配置
type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	// 连接池设置
	MaxIdleConns int `yaml:"max_idle_conns"`
	MaxOpenConns int `yaml:"max_open_conns"`
	// 连接生命周期
	ConnMaxLifetimeMinutes int `yaml:"conn_max_lifetime_minutes"`
	ConnMaxIdleTimeMinutes int `yaml:"conn_max_idle_time_minutes"`
	// 超时设置
	ConnectTimeoutSeconds int `yaml:"connect_timeout_seconds"`
	ReadTimeoutSeconds    int `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds   int `yaml:"write_timeout_seconds"`
	// GORM日志级别(1-4)
	LogLevel int `yaml:"log_level"`
}

// ServerConfig HTTP服务器配置
type ServerConfig struct {
	Address string `yaml:"address"` // 例如 ":8080"
	// APIKey 非空时启用keyauth中间件校验
	APIKey string `yaml:"api_key,omitempty"`
}

// ExtractorConfig 文本提取配置
type ExtractorConfig struct {
	// MaxFileSizeBytes 解析前的文件大小上限
	MaxFileSizeBytes int64 `yaml:"max_file_size_bytes"`
	// MinTextLength 低于该长度的提取结果标记为 too_short
	MinTextLength int `yaml:"min_text_length"`
	// ExtractTimeout 单个文件的提取超时，例如 "30s"
	ExtractTimeout string `yaml:"extract_timeout"`
}

// MatcherConfig 匹配打分配置
type MatcherConfig struct {
	// Weights 默认打分权重，可被单次请求覆盖
	SkillWeight      float64 `yaml:"skill_weight"`
	EducationWeight  float64 `yaml:"education_weight"`
	ExperienceWeight float64 `yaml:"experience_weight"`
	LocationWeight   float64 `yaml:"location_weight"`
	// CacheTTL 匹配结果缓存过期时间，例如 "1h"；空值禁用缓存
	CacheTTL string `yaml:"cache_ttl"`
	// BatchWorkers 批量打分工作协程数，0表示使用CPU核数
	BatchWorkers int `yaml:"batch_workers"`
	// MaxKeywords 关键词提取返回数量上限
	MaxKeywords int `yaml:"max_keywords"`
}

// TaxonomyConfig 技能词表配置
type TaxonomyConfig struct {
	// FilePath 词表YAML文件路径；为空时使用内置默认词表
	FilePath string `yaml:"file_path"`
}

// TracingConfig 链路追踪配置
type TracingConfig struct {
	Enabled bool `yaml:"enabled"`
	// Endpoint OTLP gRPC collector地址，例如 "localhost:4317"
	Endpoint    string `yaml:"endpoint"`
	ServiceName string `yaml:"service_name"`
	// SampleRatio 采样率 [0,1]
	SampleRatio float64 `yaml:"sample_ratio"`
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level        string `yaml:"level"`         // debug, info, warn, error
	Format       string `yaml:"format"`        // json, pretty
	TimeFormat   string `yaml:"time_format"`   // 时间格式
	ReportCaller bool   `yaml:"report_caller"` // 是否报告调用位置
}

// Config 应用程序配置
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Redis     RedisConfig     `yaml:"redis"`
	MySQL     MySQLConfig     `yaml:"mysql"`
	Extractor ExtractorConfig `yaml:"extractor"`
	Matcher   MatcherConfig   `yaml:"matcher"`
	Taxonomy  TaxonomyConfig  `yaml:"taxonomy"`
	Tracing   TracingConfig   `yaml:"tracing"`
	Logger    LoggerConfig    `yaml:"logger"`
}

// LoadConfig 从文件加载配置。
// configPath为空时在常见位置查找；测试环境下找不到文件时返回默认配置。
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		searchPaths := []string{
			"config.yaml",
			"./config.yaml",
			"../config.yaml",
			"../../config.yaml",
			filepath.Join(os.Getenv("HOME"), ".resume-match", "config.yaml"),
		}

		if execPath, err := os.Executable(); err == nil {
			execDir := filepath.Dir(execPath)
			searchPaths = append(searchPaths,
				filepath.Join(execDir, "config.yaml"),
				filepath.Join(execDir, "..", "config.yaml"),
			)
		}

		for _, path := range searchPaths {
			if _, err := os.Stat(path); err == nil {
				configPath = path
				break
			}
		}

		if configPath == "" {
			if inTestEnv() {
				return createDefaultConfig(), nil
			}
			configPath = "config.yaml"
		}
	}

	if _, err := os.Stat(configPath); err != nil {
		if inTestEnv() {
			return createDefaultConfig(), nil
		}
		return nil, fmt.Errorf("配置文件不存在: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	config := createDefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 环境变量覆盖
	if v := os.Getenv("RESUME_MATCH_API_KEY"); v != "" {
		config.Server.APIKey = v
	}
	if v := os.Getenv("RESUME_MATCH_REDIS_ADDR"); v != "" {
		config.Redis.Address = v
	}
	if v := os.Getenv("RESUME_MATCH_MYSQL_HOST"); v != "" {
		config.MySQL.Host = v
	}
	if v := os.Getenv("RESUME_MATCH_TAXONOMY"); v != "" {
		config.Taxonomy.FilePath = v
	}

	if config.Server.Address == "" {
		config.Server.Address = ":8080"
	}

	return config, nil
}

// inTestEnv 粗略判断是否运行在 go test 下
func inTestEnv() bool {
	for _, arg := range os.Args {
		if strings.Contains(arg, "test") {
			return true
		}
	}
	return false
}

// createDefaultConfig 创建默认配置，也用于测试环境
func createDefaultConfig() *Config {
	config := &Config{}

	config.Server.Address = ":8080"

	config.Redis.Address = "localhost:6379"
	config.Redis.PoolSize = 10
	config.Redis.MinIdleConns = 2
	config.Redis.DialTimeoutSeconds = 5
	config.Redis.ReadTimeoutSeconds = 3
	config.Redis.WriteTimeoutSeconds = 3
	config.Redis.MaxRetries = 3
	config.Redis.MinRetryBackoffMS = 8
	config.Redis.MaxRetryBackoffMS = 512
	config.Redis.ConnMaxLifetimeMinutes = 60
	config.Redis.ConnMaxIdleTimeMinutes = 30

	config.MySQL.Host = "localhost"
	config.MySQL.Port = 3306
	config.MySQL.Username = "root"
	config.MySQL.Password = "password"
	config.MySQL.Database = "resume_match"
	config.MySQL.MaxIdleConns = 10
	config.MySQL.MaxOpenConns = 100
	config.MySQL.ConnMaxLifetimeMinutes = 60
	config.MySQL.ConnMaxIdleTimeMinutes = 30
	config.MySQL.ConnectTimeoutSeconds = 10
	config.MySQL.ReadTimeoutSeconds = 30
	config.MySQL.WriteTimeoutSeconds = 30
	config.MySQL.LogLevel = 4

	config.Extractor.MaxFileSizeBytes = constants.MaxResumeFileSize
	config.Extractor.MinTextLength = constants.MinTextLength
	config.Extractor.ExtractTimeout = "30s"

	config.Matcher.SkillWeight = constants.DefaultSkillWeight
	config.Matcher.EducationWeight = constants.DefaultEducationWeight
	config.Matcher.ExperienceWeight = constants.DefaultExperienceWeight
	config.Matcher.LocationWeight = constants.DefaultLocationWeight
	config.Matcher.CacheTTL = "1h"
	config.Matcher.MaxKeywords = constants.DefaultMaxKeywords

	config.Tracing.Enabled = false
	config.Tracing.Endpoint = "localhost:4317"
	config.Tracing.ServiceName = "resume-match"
	config.Tracing.SampleRatio = 0.1

	config.Logger.Level = "info"
	config.Logger.Format = "pretty"
	config.Logger.TimeFormat = "2006-01-02 15:04:05"
	config.Logger.ReportCaller = true

	return config
}

// DefaultWeights 返回配置中的默认打分权重
func (c *Config) DefaultWeights() (skill, education, experience, location float64) {
	return c.Matcher.SkillWeight, c.Matcher.EducationWeight,
		c.Matcher.ExperienceWeight, c.Matcher.LocationWeight
}

// GetDuration utility to parse duration strings from config
func GetDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	if durationStr == "" {
		return defaultDuration
	}
	d, err := time.ParseDuration(durationStr)
	if err != nil {
		return defaultDuration
	}
	return d
}
