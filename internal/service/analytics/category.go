package analytics

import (
	"sort"

	"sintascope/internal/model"
)

// AggregateCategories 按 (机构, 分类) 汇总 total，生成稠密矩阵
// 未映射分类的行被剔除并计入 Dropped
func AggregateCategories(details []model.IndicatorDetail) *model.CategoryMatrix {
	categories := model.Categories()
	m := &model.CategoryMatrix{
		Affiliations: []string{},
		Categories:   categories,
		Totals:       make(map[string][]float64),
	}

	for _, d := range details {
		row, ok := m.Totals[d.Affiliation]
		if !ok {
			row = make([]float64, len(categories))
			m.Totals[d.Affiliation] = row
			m.Affiliations = append(m.Affiliations, d.Affiliation)
		}

		idx := d.Category.Index()
		if idx < 0 {
			m.Dropped++
			if m.DroppedByRaw == nil {
				m.DroppedByRaw = make(map[string]int)
			}
			m.DroppedByRaw[d.RawCategory]++
			continue
		}
		row[idx] += d.Total
	}

	return m
}

// CategoryShare 单个分类在机构总分中的占比
type CategoryShare struct {
	Category     model.Category `json:"category"`
	Total        float64        `json:"total"`
	SharePercent *float64       `json:"sharePercent"` // 机构总分为 0 时为 nil
}

// CategoryBreakdown 机构的分类构成（按展示顺序）；机构不在矩阵中时返回 false
func CategoryBreakdown(m *model.CategoryMatrix, affiliation string) ([]CategoryShare, bool) {
	row, ok := m.Row(affiliation)
	if !ok {
		return nil, false
	}

	sum := 0.0
	for _, v := range row {
		sum += v
	}

	out := make([]CategoryShare, len(m.Categories))
	for i, c := range m.Categories {
		out[i] = CategoryShare{Category: c, Total: row[i]}
		if sum != 0 {
			out[i].SharePercent = floatPtr(row[i] / sum * 100)
		}
	}
	return out, true
}

// CategoryRank 某分类下的机构排名
type CategoryRank struct {
	Affiliation    string  `json:"affiliation"`
	Total          float64 `json:"total"`
	RankInCategory int     `json:"rankInCategory"`
}

// CategoryRanking 某分类下各机构得分排名
// 同分并列取最小名次（1,2,2,4），输出按得分降序、同分按矩阵行顺序，截取前 topN（<=0 为全部）
func CategoryRanking(m *model.CategoryMatrix, category model.Category, topN int) []CategoryRank {
	if m == nil || !category.Valid() {
		return []CategoryRank{}
	}

	out := make([]CategoryRank, 0, len(m.Affiliations))
	for _, aff := range m.Affiliations {
		out = append(out, CategoryRank{
			Affiliation: aff,
			Total:       m.Cell(aff, category),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total > out[j].Total
	})

	for i := range out {
		if i > 0 && out[i].Total == out[i-1].Total {
			out[i].RankInCategory = out[i-1].RankInCategory
		} else {
			out[i].RankInCategory = i + 1
		}
	}

	if topN > 0 && topN < len(out) {
		out = out[:topN]
	}
	return out
}
