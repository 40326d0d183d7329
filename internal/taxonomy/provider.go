package taxonomy

import (
	"fmt"
	"os"

	"resume-match-go/internal/types"

	"gopkg.in/yaml.v3"
)

// Taxonomy 规范化的技能词表，按类别组织。
// 启动时加载一次，之后只读，多读者并发安全。
type Taxonomy struct {
	Technical []string `yaml:"technical"`
	Soft      []string `yaml:"soft"`
	Business  []string `yaml:"business"`
}

// Empty 词表是否为空
func (t *Taxonomy) Empty() bool {
	return t == nil || len(t.Technical)+len(t.Soft)+len(t.Business) == 0
}

// Entries 按类别展开所有规范技能名
func (t *Taxonomy) Entries() []Entry {
	if t == nil {
		return nil
	}
	out := make([]Entry, 0, len(t.Technical)+len(t.Soft)+len(t.Business))
	for _, name := range t.Technical {
		out = append(out, Entry{Name: name, Category: types.CategoryTechnical})
	}
	for _, name := range t.Soft {
		out = append(out, Entry{Name: name, Category: types.CategorySoft})
	}
	for _, name := range t.Business {
		out = append(out, Entry{Name: name, Category: types.CategoryBusiness})
	}
	return out
}

// Entry 词表中的一个规范技能
type Entry struct {
	Name     string
	Category types.SkillCategory
}

// Provider 只读词表提供者接口。实现需保证 Load 返回的词表
// 在进程生命周期内不再变化。
type Provider interface {
	// Load 加载词表。词表不可用属于不可恢复的启动错误。
	Load() (*Taxonomy, error)
}

// FileProvider 从YAML文件加载词表
type FileProvider struct {
	Path string
}

// Load 实现 Provider 接口
func (p *FileProvider) Load() (*Taxonomy, error) {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, fmt.Errorf("读取词表文件失败 %s: %w", p.Path, err)
	}
	var tax Taxonomy
	if err := yaml.Unmarshal(data, &tax); err != nil {
		return nil, fmt.Errorf("解析词表文件失败 %s: %w", p.Path, err)
	}
	if tax.Empty() {
		return nil, fmt.Errorf("词表文件 %s 为空", p.Path)
	}
	return &tax, nil
}

// BuiltinProvider 返回编译进二进制的默认词表
type BuiltinProvider struct{}

// Load 实现 Provider 接口
func (p *BuiltinProvider) Load() (*Taxonomy, error) {
	return defaultTaxonomy(), nil
}

// NewProvider 根据配置选择词表来源：路径非空用文件，否则用内置词表
func NewProvider(filePath string) Provider {
	if filePath != "" {
		return &FileProvider{Path: filePath}
	}
	return &BuiltinProvider{}
}

// defaultTaxonomy 内置默认词表
func defaultTaxonomy() *Taxonomy {
	return &Taxonomy{
		Technical: []string{
			"Python", "Java", "JavaScript", "TypeScript", "Go", "C++", "C#",
			"Ruby", "PHP", "Swift", "Kotlin", "Rust", "Scala", "SQL",
			"HTML", "CSS", "React", "Angular", "Vue", "Node.js",
			"Django", "Flask", "Spring", "Docker", "Kubernetes",
			"AWS", "Azure", "GCP", "Git", "Jenkins", "Terraform", "Linux",
			"MongoDB", "PostgreSQL", "MySQL", "Redis", "Kafka", "RabbitMQ",
			"Elasticsearch", "GraphQL", "REST API", "Microservices",
			"Machine Learning", "Deep Learning", "Data Analysis",
			"TensorFlow", "PyTorch", "Pandas", "NumPy", "Spark", "Hadoop",
			"CI/CD", "DevOps",
		},
		Soft: []string{
			"Communication", "Leadership", "Teamwork", "Problem Solving",
			"Time Management", "Adaptability", "Creativity",
			"Critical Thinking", "Collaboration", "Presentation",
			"Negotiation", "Mentoring", "Conflict Resolution",
			"Decision Making", "Attention to Detail",
		},
		Business: []string{
			"Project Management", "Product Management", "Business Analysis",
			"Marketing", "Sales", "Finance", "Accounting", "Strategy",
			"Operations", "Customer Service", "Agile", "Scrum",
			"Stakeholder Management", "Budgeting", "Risk Management",
		},
	}
}
