package profile

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"resume-match-go/internal/types"
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?\d[\d\-. ()]{6,18}\d`)
	urlPattern   = regexp.MustCompile(`(?:https?://|www\.)[^\s,;]+|(?:linkedin\.com|github\.com)/[^\s,;]+`)

	// dateRangePattern 识别经历条目起始的年份区间，
	// 例如 "2018 - 2022"、"Jan 2020 – Present"
	dateRangePattern = regexp.MustCompile(
		`(?i)(?:(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+)?((?:19|20)\d{2})\s*(?:[-–—~]|to)\s*(?:(?:(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+)?((?:19|20)\d{2})|present|current|now|至今)`)

	// degreePattern 教育条目起始的学位关键词
	degreePattern = regexp.MustCompile(
		`(?i)\b(bachelor|master|phd|doctorate|mba|b\.?sc?|m\.?sc?|b\.?a|m\.?a|b\.?e|m\.?e|diploma|associate)\b`)

	// locationLabelPattern 带标签的地点行
	locationLabelPattern = regexp.MustCompile(`(?im)^\s*(?:location|address|city|所在地)\s*[:：]\s*(.+)$`)
)

// knownLanguages 语言章节识别用的常见语言名
var knownLanguages = map[string]string{
	"english": "English", "chinese": "Chinese", "mandarin": "Mandarin",
	"cantonese": "Cantonese", "spanish": "Spanish", "french": "French",
	"german": "German", "arabic": "Arabic", "hindi": "Hindi",
	"russian": "Russian", "portuguese": "Portuguese", "japanese": "Japanese",
	"korean": "Korean", "italian": "Italian", "dutch": "Dutch",
	"turkish": "Turkish", "urdu": "Urdu",
}

// Builder 把章节切分结果和技能识别结果组装为候选人画像
type Builder struct{}

// NewBuilder 创建画像构建器
func NewBuilder() *Builder {
	return &Builder{}
}

// Build 构建候选人画像。联系方式从全文提取（联系信息常落在
// 已识别章节之外）；教育和工作经历从各自章节提取，章节缺失
// 时相应列表为空，下游打分按"零证据"处理而非错误。
func (b *Builder) Build(fullText string, sections types.SectionMap, skills []types.SkillMention) types.CandidateProfile {
	eduText, _ := sections.Get(types.SectionEducation)
	expText, _ := sections.Get(types.SectionExperience)
	langText, _ := sections.Get(types.SectionLanguages)

	experience := parseExperience(expText)
	total := 0.0
	for _, e := range experience {
		total += e.Years
	}

	return types.CandidateProfile{
		Contact:              extractContact(fullText),
		Skills:               DedupeSkills(skills),
		Education:            parseEducation(eduText),
		Experience:           experience,
		Languages:            parseLanguages(langText),
		Location:             extractLocation(fullText),
		TotalExperienceYears: total,
		HasEducationSection:  sections.Has(types.SectionEducation),
	}
}

// DedupeSkills 按规范名去重，同名保留置信度最高的一条；
// 结果按置信度降序、同置信度按名称排序，保证输出确定。
func DedupeSkills(skills []types.SkillMention) []types.SkillMention {
	best := make(map[string]types.SkillMention, len(skills))
	for _, s := range skills {
		key := strings.ToLower(s.Name)
		if cur, ok := best[key]; !ok || s.Confidence > cur.Confidence {
			best[key] = s
		}
	}
	out := make([]types.SkillMention, 0, len(best))
	for _, s := range best {
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// extractContact 从全文提取邮箱、电话和链接
func extractContact(text string) types.ContactInfo {
	contact := types.ContactInfo{}
	if m := emailPattern.FindString(text); m != "" {
		contact.Email = m
	}
	if m := findPhone(text); m != "" {
		contact.Phone = m
	}
	if urls := urlPattern.FindAllString(text, -1); len(urls) > 0 {
		seen := make(map[string]bool, len(urls))
		for _, u := range urls {
			u = strings.TrimRight(u, ".,;)")
			if !seen[u] {
				seen[u] = true
				contact.URLs = append(contact.URLs, u)
			}
		}
	}
	return contact
}

// findPhone 查找首个至少包含7位数字的电话样式片段
func findPhone(text string) string {
	for _, m := range phonePattern.FindAllString(text, -1) {
		digits := 0
		for _, r := range m {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		// 过滤掉年份区间等非电话数字串
		if digits >= 7 && !dateRangePattern.MatchString(m) {
			return strings.TrimSpace(m)
		}
	}
	return ""
}

// extractLocation 提取带标签的地点行
func extractLocation(text string) string {
	if m := locationLabelPattern.FindStringSubmatch(text); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// parseEducation 从教育章节切出条目。
// 每个条目从含学位关键词或年份区间的行开始。
func parseEducation(sectionText string) []types.EducationEntry {
	var entries []types.EducationEntry
	for _, block := range splitEntries(sectionText, func(line string) bool {
		return degreePattern.MatchString(line) || dateRangePattern.MatchString(line)
	}) {
		entry := types.EducationEntry{Raw: block}
		if m := degreePattern.FindString(block); m != "" {
			entry.Degree = strings.ToLower(strings.ReplaceAll(m, ".", ""))
		}
		entries = append(entries, entry)
	}
	return entries
}

// parseExperience 从经历章节切出条目并估算每段年数。
// 每个条目从可识别的年份区间行开始。
func parseExperience(sectionText string) []types.ExperienceEntry {
	var entries []types.ExperienceEntry
	for _, block := range splitEntries(sectionText, func(line string) bool {
		return dateRangePattern.MatchString(line)
	}) {
		entry := types.ExperienceEntry{Raw: block}
		entry.Years = rangeYears(block)

		// 标题取区间行去掉日期后的剩余文字，否则取下一行
		lines := strings.Split(block, "\n")
		first := dateRangePattern.ReplaceAllString(lines[0], "")
		first = strings.Trim(first, " \t-–—|,")
		if first != "" {
			entry.Title = first
		} else if len(lines) > 1 {
			entry.Title = strings.TrimSpace(lines[1])
		}
		entries = append(entries, entry)
	}
	return entries
}

// splitEntries 按条目起始行把章节文本切成块
func splitEntries(text string, isStart func(string) bool) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	var blocks []string
	var current []string
	for _, line := range lines {
		if isStart(line) && len(current) > 0 {
			blocks = append(blocks, strings.TrimSpace(strings.Join(current, "\n")))
			current = current[:0]
		}
		if isStart(line) || len(current) > 0 {
			current = append(current, line)
		}
	}
	if len(current) > 0 {
		blocks = append(blocks, strings.TrimSpace(strings.Join(current, "\n")))
	}
	return blocks
}

// rangeYears 计算块内首个年份区间覆盖的年数。
// "present" 等开放区间以当前年份收尾。
func rangeYears(block string) float64 {
	m := dateRangePattern.FindStringSubmatch(block)
	if len(m) == 0 {
		return 0
	}
	start := atoiSafe(m[1])
	end := time.Now().Year()
	if len(m) > 2 && m[2] != "" {
		end = atoiSafe(m[2])
	}
	if start == 0 || end < start {
		return 0
	}
	return float64(end - start)
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}

// parseLanguages 从语言章节识别语言名
func parseLanguages(sectionText string) []string {
	if strings.TrimSpace(sectionText) == "" {
		return nil
	}
	var out []string
	seen := make(map[string]bool)
	for _, field := range strings.FieldsFunc(sectionText, func(r rune) bool {
		return r == ',' || r == '\n' || r == ';' || r == '、' || r == '|'
	}) {
		word := strings.ToLower(strings.TrimSpace(strings.SplitN(field, "(", 2)[0]))
		word = strings.TrimSuffix(word, ":")
		for key, canonical := range knownLanguages {
			if strings.Contains(word, key) && !seen[canonical] {
				seen[canonical] = true
				out = append(out, canonical)
			}
		}
	}
	sort.Strings(out)
	return out
}
