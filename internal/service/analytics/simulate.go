package analytics

import (
	"errors"
	"math"

	"sintascope/internal/model"
)

// ErrInvalidDelta 模拟增量为负数或 NaN
var ErrInvalidDelta = errors.New("simulation delta must be a non-negative number")

// MaxSimulatedValue 模拟后 value 的上限
const MaxSimulatedValue = 1.0

// SimulatedIndicator 单个指标的模拟结果
type SimulatedIndicator struct {
	Code     string         `json:"code"`
	Name     string         `json:"name,omitempty"`
	Category model.Category `json:"category"`
	Weight   float64        `json:"weight"`
	Value    float64        `json:"value"`
	ValueSim float64        `json:"valueSim"`
	Total    float64        `json:"total"`
	TotalSim float64        `json:"totalSim"`
	Selected bool           `json:"selected"`
}

// SimulatedCategory 分类层面的模拟汇总
type SimulatedCategory struct {
	Category       model.Category `json:"category"`
	OriginalTotal  float64        `json:"originalTotal"`
	SimulatedTotal float64        `json:"simulatedTotal"`
	Change         float64        `json:"change"`
	ChangePercent  *float64       `json:"changePercent"` // OriginalTotal <= 0 时为 nil
}

// SimulationResult 模拟结果；机构无数据时 Categories 为空
type SimulationResult struct {
	Affiliation string               `json:"affiliation"`
	Delta       float64              `json:"delta"`
	Selected    []model.Category     `json:"selected"`
	Categories  []SimulatedCategory  `json:"categories"`
	Indicators  []SimulatedIndicator `json:"indicators"`
}

// TotalChange 全部分类变化之和
func (r SimulationResult) TotalChange() float64 {
	sum := 0.0
	for _, c := range r.Categories {
		sum += c.Change
	}
	return sum
}

// Simulate 将选中分类下所有指标的 value 提高 delta（上限 1.0），重算 weight × value
// 未选中分类的指标保持源 total，因此变化恒为 0；空选择等价于全部变化为 0
// 结果包含全部六个分类（按展示顺序），未映射分类的指标不参与
func Simulate(details []model.IndicatorDetail, affiliation string, selected []model.Category, delta float64) (SimulationResult, error) {
	if math.IsNaN(delta) || delta < 0 {
		return SimulationResult{}, ErrInvalidDelta
	}

	result := SimulationResult{
		Affiliation: affiliation,
		Delta:       delta,
		Selected:    dedupeCategories(selected),
		Categories:  []SimulatedCategory{},
		Indicators:  []SimulatedIndicator{},
	}

	chosen := make(map[model.Category]bool, len(result.Selected))
	for _, c := range result.Selected {
		chosen[c] = true
	}

	categories := model.Categories()
	original := make([]float64, len(categories))
	simulated := make([]float64, len(categories))
	found := false

	for _, d := range details {
		if d.Affiliation != affiliation {
			continue
		}
		found = true

		idx := d.Category.Index()
		if idx < 0 {
			continue
		}

		ind := SimulatedIndicator{
			Code:     d.Code,
			Name:     d.Name,
			Category: d.Category,
			Weight:   d.Weight,
			Value:    d.Value,
			ValueSim: d.Value,
			Total:    d.Total,
			TotalSim: d.Total,
		}
		if chosen[d.Category] {
			ind.Selected = true
			ind.ValueSim = math.Min(MaxSimulatedValue, d.Value+delta)
			ind.TotalSim = d.Weight * ind.ValueSim
		}
		result.Indicators = append(result.Indicators, ind)

		original[idx] += ind.Total
		simulated[idx] += ind.TotalSim
	}

	if !found {
		return result, nil
	}

	for i, c := range categories {
		sc := SimulatedCategory{
			Category:       c,
			OriginalTotal:  original[i],
			SimulatedTotal: simulated[i],
			Change:         simulated[i] - original[i],
		}
		if sc.OriginalTotal > 0 {
			sc.ChangePercent = floatPtr(sc.Change / sc.OriginalTotal * 100)
		}
		result.Categories = append(result.Categories, sc)
	}

	return result, nil
}

func dedupeCategories(in []model.Category) []model.Category {
	seen := make(map[model.Category]struct{}, len(in))
	out := make([]model.Category, 0, len(in))
	for _, c := range in {
		if !c.Valid() {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
