package analytics

import (
	"math"
	"sort"

	"sintascope/internal/model"
)

// ComparisonRow 两个机构在同一指标代码上的对比
type ComparisonRow struct {
	Code          string   `json:"code"`
	Name          string   `json:"name"`
	Category      string   `json:"category"` // 优先取 A 的 area
	ScoreSelected float64  `json:"scoreSelected"`
	ScoreCompare  float64  `json:"scoreCompare"`
	DiffAbs       float64  `json:"diffAbs"`
	DiffPct       *float64 `json:"diffPct"` // ScoreCompare 为 0 时为 nil
}

// ComparisonSummary A 高于 / 低于 / 等于 B 的指标数
type ComparisonSummary struct {
	Higher int `json:"higher"`
	Lower  int `json:"lower"`
	Equal  int `json:"equal"`
}

// Compare 以指标代码做全外连接比较 A（selected）与 B（compare）
// 机构名按大写匹配；单侧缺失的分数按 0 计；单侧重复代码取首次出现；输出按代码升序
func Compare(rows []model.MetricsDetail, affiliationA, affiliationB string, field model.ScoreField) []ComparisonRow {
	keyA := model.NormalizeAffiliationKey(affiliationA)
	keyB := model.NormalizeAffiliationKey(affiliationB)

	sideA := indexByCode(rows, keyA)
	sideB := indexByCode(rows, keyB)

	codes := make([]string, 0, len(sideA)+len(sideB))
	for code := range sideA {
		codes = append(codes, code)
	}
	for code := range sideB {
		if _, ok := sideA[code]; !ok {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)

	out := make([]ComparisonRow, 0, len(codes))
	for _, code := range codes {
		a, inA := sideA[code]
		b, inB := sideB[code]

		row := ComparisonRow{Code: code}
		if inA {
			row.ScoreSelected = a.Score(field)
			row.Name = a.Name
			row.Category = a.Area
		}
		if inB {
			row.ScoreCompare = b.Score(field)
			if row.Name == "" {
				row.Name = b.Name
			}
			if row.Category == "" {
				row.Category = b.Area
			}
		}

		row.DiffAbs = row.ScoreSelected - row.ScoreCompare
		if row.ScoreCompare != 0 {
			row.DiffPct = floatPtr(row.DiffAbs / row.ScoreCompare * 100)
		}
		out = append(out, row)
	}
	return out
}

func indexByCode(rows []model.MetricsDetail, affiliation string) map[string]model.MetricsDetail {
	out := make(map[string]model.MetricsDetail)
	if affiliation == "" {
		return out
	}
	for _, r := range rows {
		if r.Affiliation != affiliation {
			continue
		}
		if _, ok := out[r.Code]; ok {
			continue
		}
		out[r.Code] = r
	}
	return out
}

// FilterByCategory 保留分类在 categories 中的行；categories 为空时原样返回
func FilterByCategory(rows []ComparisonRow, categories []string) []ComparisonRow {
	if len(categories) == 0 {
		return rows
	}
	keep := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		keep[c] = struct{}{}
	}
	out := make([]ComparisonRow, 0, len(rows))
	for _, r := range rows {
		if _, ok := keep[r.Category]; ok {
			out = append(out, r)
		}
	}
	return out
}

// Summarize 统计 A 高于 / 低于 / 等于 B 的行数
func Summarize(rows []ComparisonRow) ComparisonSummary {
	var s ComparisonSummary
	for _, r := range rows {
		switch {
		case r.DiffAbs > 0:
			s.Higher++
		case r.DiffAbs < 0:
			s.Lower++
		default:
			s.Equal++
		}
	}
	return s
}

// TopByAbsDiff 按 |DiffAbs| 降序排序，同值按代码升序，截取前 n 行（n<=0 为全部）
func TopByAbsDiff(rows []ComparisonRow, n int) []ComparisonRow {
	out := make([]ComparisonRow, len(rows))
	copy(out, rows)

	sort.SliceStable(out, func(i, j int) bool {
		ai, aj := math.Abs(out[i].DiffAbs), math.Abs(out[j].DiffAbs)
		if ai != aj {
			return ai > aj
		}
		return out[i].Code < out[j].Code
	})

	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// CompareRequest 对比参数
type CompareRequest struct {
	AffiliationA string
	AffiliationB string
	Field        model.ScoreField
	Categories   []string
	TopN         int
}

// ComparisonView 对比视图：Summary 基于过滤后、截断前的全部行
type ComparisonView struct {
	AffiliationA string            `json:"affiliationA"`
	AffiliationB string            `json:"affiliationB"`
	Field        model.ScoreField  `json:"field"`
	Summary      ComparisonSummary `json:"summary"`
	TotalRows    int               `json:"totalRows"`
	Rows         []ComparisonRow   `json:"rows"`
}

// CompareView 对比 → 分类过滤 → 统计 → 按差值截断
func CompareView(rows []model.MetricsDetail, req CompareRequest) ComparisonView {
	all := FilterByCategory(Compare(rows, req.AffiliationA, req.AffiliationB, req.Field), req.Categories)
	return ComparisonView{
		AffiliationA: req.AffiliationA,
		AffiliationB: req.AffiliationB,
		Field:        req.Field,
		Summary:      Summarize(all),
		TotalRows:    len(all),
		Rows:         TopByAbsDiff(all, req.TopN),
	}
}
