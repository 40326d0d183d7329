package keywords

import (
	"hash/fnv"
	"math"
	"math/rand"
	"sort"
	"strings"
)

const (
	// perturbationCount 合成扰动文档数量（加上原文构成对照语料）
	perturbationCount = 9
	// dropRatio 每个扰动文档随机丢弃的词占比
	dropRatio = 0.2
	// maxNGram 候选词组的最大长度
	maxNGram = 3
	// statisticalLimit 统计路径返回的候选数量上限
	statisticalLimit = 20
)

// statistical 统计路径：对输入生成确定性的扰动文档语料，
// 在其上做 TF-IDF 加权，返回权重最高的1~3词序列。
// 随机源由输入文本哈希播种，同一文本总是得到相同结果。
func (e *Extractor) statistical(text string) []string {
	tokens := normalizedTokens(text)
	if len(tokens) < 2 {
		return nil
	}

	corpus := buildPerturbationCorpus(tokens)

	// 候选词组来自原文
	termFreq := ngramCounts(tokens)

	// 文档频次：候选词组在多少个扰动文档中出现
	docFreq := make(map[string]int, len(termFreq))
	for _, doc := range corpus {
		present := ngramCounts(doc)
		for term := range present {
			if _, ok := termFreq[term]; ok {
				docFreq[term]++
			}
		}
	}

	type weighted struct {
		term   string
		weight float64
	}
	n := float64(len(corpus))
	ranked := make([]weighted, 0, len(termFreq))
	for term, tf := range termFreq {
		idf := math.Log(n / (1.0 + float64(docFreq[term])))
		w := float64(tf) * (idf + 1e-9)
		// 多词短语稍作加权，偏好更具体的序列
		w *= 1.0 + 0.25*float64(strings.Count(term, " "))
		ranked = append(ranked, weighted{term: term, weight: w})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].weight != ranked[j].weight {
			return ranked[i].weight > ranked[j].weight
		}
		return ranked[i].term < ranked[j].term
	})

	limit := statisticalLimit
	if limit > len(ranked) {
		limit = len(ranked)
	}
	out := make([]string, 0, limit)
	for _, r := range ranked[:limit] {
		out = append(out, r.term)
	}
	return out
}

// buildPerturbationCorpus 由原词序列生成对照语料：
// 原文 + perturbationCount 个各丢弃约 dropRatio 词的扰动副本。
func buildPerturbationCorpus(tokens []string) [][]string {
	seed := fnv.New64a()
	for _, t := range tokens {
		seed.Write([]byte(t))
		seed.Write([]byte{0})
	}
	rng := rand.New(rand.NewSource(int64(seed.Sum64())))

	corpus := make([][]string, 0, perturbationCount+1)
	corpus = append(corpus, tokens)
	for i := 0; i < perturbationCount; i++ {
		doc := make([]string, 0, len(tokens))
		for _, t := range tokens {
			if rng.Float64() < dropRatio {
				continue
			}
			doc = append(doc, t)
		}
		corpus = append(corpus, doc)
	}
	return corpus
}

// normalizedTokens 小写分词并去除停用词
func normalizedTokens(text string) []string {
	raw := tokenPattern.FindAllString(text, -1)
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		lower := strings.ToLower(t)
		if stopWords[lower] || len(lower) < 2 {
			continue
		}
		out = append(out, lower)
	}
	return out
}

// ngramCounts 统计1~maxNGram词序列的出现次数
func ngramCounts(tokens []string) map[string]int {
	counts := make(map[string]int)
	for i := range tokens {
		for n := 1; n <= maxNGram && i+n <= len(tokens); n++ {
			counts[strings.Join(tokens[i:i+n], " ")]++
		}
	}
	return counts
}
