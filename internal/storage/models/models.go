package models

import (
	"encoding/json"
	"time"

	"resume-match-go/internal/types"

	"gorm.io/datatypes"
)

// JobPosting 岗位表模型
type JobPosting struct {
	PostingID   string `gorm:"column:posting_id;primaryKey;type:varchar(36)"`
	Title       string `gorm:"column:title;type:varchar(255);not null"`
	Description string `gorm:"column:description;type:text"`
	// RequiredSkills 要求技能列表，JSON数组编码
	RequiredSkills     datatypes.JSON `gorm:"column:required_skills;type:json"`
	Location           string         `gorm:"column:location;type:varchar(255)"`
	MinExperienceYears float64        `gorm:"column:min_experience_years;default:0"`
	SalaryMin          int            `gorm:"column:salary_min;default:0"`
	SalaryMax          int            `gorm:"column:salary_max;default:0"`
	CreatedAt          time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName 指定表名
func (JobPosting) TableName() string {
	return "job_postings"
}

// ToDomain 转换为领域类型
func (m *JobPosting) ToDomain() types.JobPosting {
	var skills []string
	if len(m.RequiredSkills) > 0 {
		// 解析失败时保持空列表，打分器按退化情形处理
		_ = json.Unmarshal(m.RequiredSkills, &skills)
	}
	return types.JobPosting{
		ID:                 m.PostingID,
		Title:              m.Title,
		Description:        m.Description,
		RequiredSkills:     skills,
		Location:           m.Location,
		MinExperienceYears: m.MinExperienceYears,
		SalaryMin:          m.SalaryMin,
		SalaryMax:          m.SalaryMax,
	}
}

// FromDomain 由领域类型构建表模型
func FromDomain(p types.JobPosting) JobPosting {
	return JobPosting{
		PostingID:          p.ID,
		Title:              p.Title,
		Description:        p.Description,
		RequiredSkills:     SkillsToJSON(p.RequiredSkills),
		Location:           p.Location,
		MinExperienceYears: p.MinExperienceYears,
		SalaryMin:          p.SalaryMin,
		SalaryMax:          p.SalaryMax,
	}
}

// SkillsToJSON 辅助函数: 将技能列表转换为JSON列值
func SkillsToJSON(skills []string) datatypes.JSON {
	if len(skills) == 0 {
		return datatypes.JSON("[]")
	}
	data, err := json.Marshal(skills)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(data)
}
