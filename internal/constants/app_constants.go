package constants

import "time"

const (
	// DefaultSkillWeight 技能维度默认权重
	DefaultSkillWeight = 0.5
	// DefaultEducationWeight 教育维度默认权重
	DefaultEducationWeight = 0.15
	// DefaultExperienceWeight 经验维度默认权重
	DefaultExperienceWeight = 0.25
	// DefaultLocationWeight 地点维度默认权重
	DefaultLocationWeight = 0.1

	// WeightSumTolerance 归一化后权重之和与1.0之间允许的误差
	WeightSumTolerance = 0.01

	// MinTextLength 低于该字符数的提取文本会被标记为 TooShort
	MinTextLength = 100
	// MaxResumeFileSize 解析前的文件大小上限，避免无界解析工作
	MaxResumeFileSize = 10 << 20 // 10MB

	// DefaultMaxKeywords 关键词提取默认返回数量上限
	DefaultMaxKeywords = 30

	// DefaultPageSize 排序结果默认分页大小
	DefaultPageSize = 10
	// MaxPageSize 分页大小上限
	MaxPageSize = 100

	// DefaultMatchCacheTTL 匹配结果缓存默认过期时间
	DefaultMatchCacheTTL = 1 * time.Hour

	// NeutralExperienceScore 岗位未声明最低经验年限时授予的基准经验分
	NeutralExperienceScore = 100.0
	// PartialEducationScore 检测到教育章节但未解析出条目时的教育分
	PartialEducationScore = 40.0
)
