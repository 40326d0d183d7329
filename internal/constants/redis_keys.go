package constants

// Redis Key 前缀和格式常量
// 统一命名规范: app:{module}:{entity}:{unique_id}
const (
	// AppPrefix 是所有Redis Key的统一应用前缀
	AppPrefix = "app"

	// MatchModulePrefix 匹配模块
	MatchModulePrefix = "match"
	// TaxonomyModulePrefix 技能词表模块
	TaxonomyModulePrefix = "taxonomy"

	// EntityResult 匹配结果实体
	EntityResult = "result"
	// EntityVersion 词表版本实体
	EntityVersion = "version"

	// KeyMatchResult 匹配结果缓存 (STRING, JSON编码)
	// 格式: app:match:result:{inputHash}
	KeyMatchResult = AppPrefix + ":" + MatchModulePrefix + ":" + EntityResult + ":%s"

	// KeyTaxonomyVersion 当前加载的词表版本标记 (STRING)
	// 格式: app:taxonomy:version
	KeyTaxonomyVersion = AppPrefix + ":" + TaxonomyModulePrefix + ":" + EntityVersion
)
