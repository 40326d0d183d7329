package matcher

import (
	"sort"

	"resume-match-go/internal/constants"
	"resume-match-go/internal/types"
)

// Rank 按总分降序排序并分页。
// 使用稳定排序：同分结果保持输入顺序（插入序即平局顺序，
// 重复调用不会重排）。越界的页码收敛到 [1, totalPages] 而非报错。
func Rank(results []types.MatchResult, page, pageSize int) types.RankedPage {
	sorted := make([]types.MatchResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OverallScore > sorted[j].OverallScore
	})

	if pageSize <= 0 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}

	total := len(sorted)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return types.RankedPage{
		Results:    sorted[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		TotalPages: totalPages,
	}
}
