package model

// CategoryMatrix 机构 × 分类 汇总矩阵（稠密，缺失组合为 0）
type CategoryMatrix struct {
	Affiliations []string             `json:"affiliations"` // 首次出现顺序
	Categories   []Category           `json:"categories"`
	Totals       map[string][]float64 `json:"totals"`  // 与 Categories 对齐
	Dropped      int                  `json:"dropped"` // 未映射分类被剔除的行数
	DroppedByRaw map[string]int       `json:"droppedByRaw,omitempty"`
}

// Has 矩阵中是否存在该机构
func (m *CategoryMatrix) Has(affiliation string) bool {
	if m == nil {
		return false
	}
	_, ok := m.Totals[affiliation]
	return ok
}

// Row 返回机构在各分类上的汇总（按 Categories 顺序）
func (m *CategoryMatrix) Row(affiliation string) ([]float64, bool) {
	if m == nil {
		return nil, false
	}
	row, ok := m.Totals[affiliation]
	return row, ok
}

// Cell 返回单个单元格，不存在时为 0
func (m *CategoryMatrix) Cell(affiliation string, c Category) float64 {
	row, ok := m.Row(affiliation)
	if !ok {
		return 0
	}
	for i, cat := range m.Categories {
		if cat == c {
			return row[i]
		}
	}
	return 0
}

// Total 机构全部分类之和
func (m *CategoryMatrix) Total(affiliation string) float64 {
	row, _ := m.Row(affiliation)
	sum := 0.0
	for _, v := range row {
		sum += v
	}
	return sum
}
