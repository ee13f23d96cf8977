package model

import "strings"

// MetricsDetail metrics_details 表的一行
type MetricsDetail struct {
	Affiliation    string  `json:"affiliation"` // 统一大写
	Code           string  `json:"code"`
	Name           string  `json:"name"`
	Area           string  `json:"area"`
	Weight         float64 `json:"weight"`
	OverallValue   float64 `json:"overallValue"`
	OverallTotal   float64 `json:"overallTotal"`
	ThreeYearValue float64 `json:"threeYearValue"`
	ThreeYearTotal float64 `json:"threeYearTotal"`
}

// MetricsDataset metrics detail 工作簿加载结果（加载后只读）
type MetricsDataset struct {
	ID         string          `json:"id"`
	SourceName string          `json:"sourceName"`
	SheetName  string          `json:"sheetName"`
	Rows       []MetricsDetail `json:"-"`
	Areas      []string        `json:"areas"`
	Report     LoadReport      `json:"report"`
}

// ScoreField 对比时选用的分数字段
type ScoreField string

const (
	ScoreOverallTotal ScoreField = "overall_total"
	Score3yrTotal     ScoreField = "3yr_total"
	ScoreOverallValue ScoreField = "overall_value"
)

// ParseScoreField 解析分数字段，空串默认 overall_total
func ParseScoreField(s string) (ScoreField, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "overall_total", "sinta_v3_overall_total":
		return ScoreOverallTotal, true
	case "3yr_total", "sinta_v3_3yr_total":
		return Score3yrTotal, true
	case "overall_value", "sinta_v3_overall_value":
		return ScoreOverallValue, true
	default:
		return "", false
	}
}

// Score 取出指定字段的值
func (m MetricsDetail) Score(field ScoreField) float64 {
	switch field {
	case Score3yrTotal:
		return m.ThreeYearTotal
	case ScoreOverallValue:
		return m.OverallValue
	default:
		return m.OverallTotal
	}
}

// NormalizeAffiliationKey metrics 数据集中的机构名按大写匹配
func NormalizeAffiliationKey(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
