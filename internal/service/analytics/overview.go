package analytics

import (
	"sort"

	"sintascope/internal/model"
)

// DefaultOverviewTopN 概览默认展示的机构数
const DefaultOverviewTopN = 15

// OverviewResult 机构概览
type OverviewResult struct {
	Affiliation    model.Affiliation   `json:"affiliation"`
	Found          bool                `json:"found"`
	Total          int                 `json:"total"`
	Top10Threshold *float64            `json:"top10Threshold"`
	Top            []model.Affiliation `json:"top"`
}

// Overview 机构排名摘要与前 topN 名机构
func Overview(ds *model.ClusterDataset, affiliation string, topN int) OverviewResult {
	if topN <= 0 {
		topN = DefaultOverviewTopN
	}
	res := OverviewResult{Top: []model.Affiliation{}}
	if ds == nil {
		return res
	}

	res.Total = len(ds.Affiliations)
	res.Top10Threshold = ds.Top10Threshold
	res.Top = TopAffiliations(ds.Affiliations, topN)
	res.Affiliation, res.Found = ds.Affiliation(affiliation)
	return res
}

// AffiliationNames 机构名按字母序排列（去重）
func AffiliationNames(affiliations []model.Affiliation) []string {
	seen := make(map[string]struct{}, len(affiliations))
	names := make([]string, 0, len(affiliations))
	for _, a := range affiliations {
		if _, ok := seen[a.Name]; ok {
			continue
		}
		seen[a.Name] = struct{}{}
		names = append(names, a.Name)
	}
	sort.Strings(names)
	return names
}

// DefaultAffiliation preferred 在 names 中的下标，不存在时为 0
func DefaultAffiliation(names []string, preferred string) int {
	for i, n := range names {
		if n == preferred {
			return i
		}
	}
	return 0
}

// DefaultCompareTarget 默认对比对象：preferred 的前一个（最小为 0）
func DefaultCompareTarget(names []string, preferred string) int {
	idx := DefaultAffiliation(names, preferred) - 1
	if idx < 0 {
		return 0
	}
	return idx
}
