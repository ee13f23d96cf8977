package analytics

import (
	"sort"

	"sintascope/internal/model"
)

// DefaultLeverageTopK 高杠杆指标默认条数
const DefaultLeverageTopK = 30

// LeverageItem 高杠杆指标
type LeverageItem struct {
	model.IndicatorDetail
	PotentialGain float64 `json:"potentialGain"` // weight × (1 − value)，不做截断
}

// HighLeverage 计算机构各指标的潜在增益并降序排列，同值保持输入顺序
// value > 1 时增益为负，自然排到末尾；机构无数据时返回空切片
func HighLeverage(details []model.IndicatorDetail, affiliation string, topK int) []LeverageItem {
	if topK <= 0 {
		topK = DefaultLeverageTopK
	}

	items := make([]LeverageItem, 0)
	for _, d := range details {
		if d.Affiliation != affiliation {
			continue
		}
		items = append(items, LeverageItem{
			IndicatorDetail: d,
			PotentialGain:   PotentialGain(d.Weight, d.Value),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PotentialGain > items[j].PotentialGain
	})

	if len(items) > topK {
		items = items[:topK]
	}
	return items
}

// PotentialGain weight × (1 − value)
func PotentialGain(weight, value float64) float64 {
	return weight * (1 - value)
}
