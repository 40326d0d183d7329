package types

// SectionType 表示简历章节类型
type SectionType string

const (
	// SectionContact 联系方式章节
	SectionContact SectionType = "CONTACT"
	// SectionSummary 个人简介章节
	SectionSummary SectionType = "SUMMARY"
	// SectionEducation 教育经历章节
	SectionEducation SectionType = "EDUCATION"
	// SectionExperience 工作经历章节
	SectionExperience SectionType = "EXPERIENCE"
	// SectionSkills 技能章节
	SectionSkills SectionType = "SKILLS"
	// SectionCertifications 证书章节
	SectionCertifications SectionType = "CERTIFICATIONS"
	// SectionLanguages 语言能力章节
	SectionLanguages SectionType = "LANGUAGES"
	// SectionOther 其他内容章节
	SectionOther SectionType = "OTHER"
	// SectionFullText 完整文本（未能识别任何章节标题时的兜底章节）
	SectionFullText SectionType = "FULL_TEXT"
)

// SkillCategory 技能分类
type SkillCategory string

const (
	// CategoryTechnical 技术技能
	CategoryTechnical SkillCategory = "technical"
	// CategorySoft 软技能
	CategorySoft SkillCategory = "soft"
	// CategoryBusiness 业务技能
	CategoryBusiness SkillCategory = "business"
	// CategoryUnverified 未经词表验证的技能（来自关键词提取兜底路径）
	CategoryUnverified SkillCategory = "unverified"
)

// ExtractedText 文本提取结果。
// 提取失败不是致命错误：失败时 Text 为空字符串，Err 记录原因。
type ExtractedText struct {
	Text string `json:"text"`
	// Length 是 Text 的字符数（rune计数）
	Length int `json:"length"`
	// TooShort 文本长度低于最小阈值时置位，解析仍然继续但结果置信度较低
	TooShort bool `json:"too_short,omitempty"`
	// Err 提取过程中遇到的非致命错误
	Err error `json:"-"`
}

// Section 简历中的一个章节片段
type Section struct {
	Type SectionType `json:"type"`
	// Heading 文本中实际匹配到的标题
	Heading string `json:"heading"`
	// Offset 标题在全文中的字符偏移
	Offset int `json:"offset"`
	// Content 标题之后、下一个标题之前的正文
	Content string `json:"content"`
}

// SectionMap 有序的章节集合，按照在原文中出现的位置排列。
// 各章节互不重叠；未被任何标题覆盖的文本不会出现在结果中。
type SectionMap struct {
	Sections []Section `json:"sections"`
}

// Get 返回指定类型的章节内容，未找到时返回空字符串和false
func (m *SectionMap) Get(t SectionType) (string, bool) {
	for _, s := range m.Sections {
		if s.Type == t {
			return s.Content, true
		}
	}
	return "", false
}

// Has 判断指定类型的章节是否存在
func (m *SectionMap) Has(t SectionType) bool {
	_, ok := m.Get(t)
	return ok
}

// SkillMention 一次技能识别结果
type SkillMention struct {
	// Name 词表中的规范名称，作为去重键
	Name     string        `json:"name"`
	Category SkillCategory `json:"category"`
	// Confidence 置信度，范围 [0,1]，随文本证据强度单调不减
	Confidence float64 `json:"confidence"`
}

// ContactInfo 联系方式
type ContactInfo struct {
	Email string   `json:"email,omitempty"`
	Phone string   `json:"phone,omitempty"`
	URLs  []string `json:"urls,omitempty"`
}

// EducationEntry 一条教育经历
type EducationEntry struct {
	Raw string `json:"raw"`
	// Degree 识别到的学位关键词（如 bachelor, master），可能为空
	Degree string `json:"degree,omitempty"`
}

// ExperienceEntry 一条工作经历
type ExperienceEntry struct {
	Raw   string `json:"raw"`
	Title string `json:"title,omitempty"`
	// Years 该段经历覆盖的年数，无法识别时为0
	Years float64 `json:"years,omitempty"`
}

// CandidateProfile 归一化后的候选人画像。构建完成后不再修改。
type CandidateProfile struct {
	Contact    ContactInfo      `json:"contact"`
	Skills     []SkillMention   `json:"skills"`
	Education  []EducationEntry `json:"education"`
	Experience []ExperienceEntry `json:"experience"`
	Languages  []string         `json:"languages,omitempty"`
	Location   string           `json:"location,omitempty"`
	// TotalExperienceYears 各段工作经历年数之和
	TotalExperienceYears float64 `json:"total_experience_years"`
	// HasEducationSection 原文中是否检测到教育章节（即使没有解析出条目）
	HasEducationSection bool `json:"has_education_section,omitempty"`
}

// JobPosting 岗位描述，由调用方提供，匹配核心只读不写
type JobPosting struct {
	ID             string   `json:"id,omitempty"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	RequiredSkills []string `json:"required_skills"`
	Location       string   `json:"location,omitempty"`
	// MinExperienceYears 最低经验年限要求，0表示未声明
	MinExperienceYears float64 `json:"min_experience_years,omitempty"`
	SalaryMin          int     `json:"salary_min,omitempty"`
	SalaryMax          int     `json:"salary_max,omitempty"`
}

// SubScores 各维度子分数，范围均为 [0,100]
type SubScores struct {
	Skills     float64 `json:"skills"`
	Experience float64 `json:"experience"`
	Education  float64 `json:"education"`
	Location   float64 `json:"location"`
}

// MatchResult 一次 (候选人, 岗位) 匹配的结果。创建后不再修改，
// 重新打分会产生新的 MatchResult。
type MatchResult struct {
	PostingID string `json:"posting_id,omitempty"`
	// OverallScore 加权总分，范围 [0,100]
	OverallScore  float64   `json:"overall_score"`
	SubScores     SubScores `json:"sub_scores"`
	MatchedSkills []string  `json:"matched_skills"`
	MissingSkills []string  `json:"missing_skills"`
}

// MatchWeights 打分权重，四项之和应为1.0；不满足时打分前会被归一化
type MatchWeights struct {
	SkillWeight      float64 `json:"skill_weight" yaml:"skill_weight"`
	EducationWeight  float64 `json:"education_weight" yaml:"education_weight"`
	ExperienceWeight float64 `json:"experience_weight" yaml:"experience_weight"`
	LocationWeight   float64 `json:"location_weight" yaml:"location_weight"`
}

// Sum 返回四项权重之和
func (w MatchWeights) Sum() float64 {
	return w.SkillWeight + w.EducationWeight + w.ExperienceWeight + w.LocationWeight
}

// RankedPage 分页后的排序结果
type RankedPage struct {
	Results    []MatchResult `json:"results"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalCount int           `json:"total_count"`
	TotalPages int           `json:"total_pages"`
}
