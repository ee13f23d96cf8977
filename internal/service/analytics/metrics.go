package analytics

import (
	"math"
	"sort"
	"strings"

	"sintascope/internal/model"
)

// DefaultMetricsTopN 指标画像默认条数
const DefaultMetricsTopN = 15

// ProfileOptions 指标画像参数
type ProfileOptions struct {
	TopN   int    // <=0 使用 DefaultMetricsTopN
	Filter string // 代码或名称包含该文本（大小写不敏感），空串不过滤
}

// ProfileRow 单个指标的画像
type ProfileRow struct {
	model.MetricsDetail
	ClusterCategory model.Category `json:"clusterCategory,omitempty"`
	OverallShare    float64        `json:"overallShare"`
	RecentRatio     *float64       `json:"recentRatio"` // overallTotal <= 0 时为 nil
}

// Profile 机构的 metrics detail 画像
type Profile struct {
	Affiliation  string       `json:"affiliation"`
	Found        bool         `json:"found"`
	Indicators   int          `json:"indicators"`
	TotalOverall float64      `json:"totalOverall"`
	Total3yr     float64      `json:"total3yr"`
	RecentRatio  *float64     `json:"recentRatio"` // 百分比，TotalOverall <= 0 时为 nil
	TopOverall   []ProfileRow `json:"topOverall"`
	RecentTop    []ProfileRow `json:"recentTop"`
	Filtered     []ProfileRow `json:"filtered"`
}

// MetricsProfile 汇总机构在 metrics detail 中的各项指标
// codeCategories 来自 cluster 明细表（可为 nil），用于给指标代码补上分类
func MetricsProfile(rows []model.MetricsDetail, affiliation string, codeCategories map[string]model.Category, opts ProfileOptions) Profile {
	topN := opts.TopN
	if topN <= 0 {
		topN = DefaultMetricsTopN
	}

	key := model.NormalizeAffiliationKey(affiliation)
	p := Profile{
		Affiliation: affiliation,
		TopOverall:  []ProfileRow{},
		RecentTop:   []ProfileRow{},
		Filtered:    []ProfileRow{},
	}

	var own []model.MetricsDetail
	for _, r := range rows {
		if r.Affiliation == key {
			own = append(own, r)
		}
	}
	if len(own) == 0 {
		return p
	}

	p.Found = true
	p.Indicators = len(own)
	for _, r := range own {
		p.TotalOverall += r.OverallTotal
		p.Total3yr += r.ThreeYearTotal
	}
	if p.TotalOverall > 0 {
		p.RecentRatio = floatPtr(p.Total3yr / p.TotalOverall * 100)
	}

	denom := math.Max(p.TotalOverall, 1)
	profiled := make([]ProfileRow, len(own))
	for i, r := range own {
		pr := ProfileRow{
			MetricsDetail:   r,
			ClusterCategory: codeCategories[r.Code],
			OverallShare:    r.OverallTotal / denom,
		}
		if r.OverallTotal > 0 {
			pr.RecentRatio = floatPtr(r.ThreeYearTotal / r.OverallTotal)
		}
		profiled[i] = pr
	}

	top := make([]ProfileRow, len(profiled))
	copy(top, profiled)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].OverallTotal > top[j].OverallTotal
	})
	p.TopOverall = truncateRows(top, topN)

	recent := make([]ProfileRow, 0, len(profiled))
	for _, r := range profiled {
		if r.ThreeYearTotal > 0 {
			recent = append(recent, r)
		}
	}
	sort.SliceStable(recent, func(i, j int) bool {
		return ratioOf(recent[i]) > ratioOf(recent[j])
	})
	p.RecentTop = truncateRows(recent, topN)

	p.Filtered = filterRows(profiled, opts.Filter)

	return p
}

// ratioOf 3yr>0 但 overall<=0 的行没有比例，排在最后
func ratioOf(r ProfileRow) float64 {
	if r.RecentRatio == nil {
		return math.Inf(-1)
	}
	return *r.RecentRatio
}

func truncateRows(rows []ProfileRow, n int) []ProfileRow {
	if n > 0 && n < len(rows) {
		return rows[:n]
	}
	return rows
}

func filterRows(rows []ProfileRow, text string) []ProfileRow {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return rows
	}
	out := make([]ProfileRow, 0)
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Code), text) || strings.Contains(strings.ToLower(r.Name), text) {
			out = append(out, r)
		}
	}
	return out
}
