package model

// Affiliation 机构（afiliasi 表的一行）
type Affiliation struct {
	Name         string  `json:"name"`
	ScoreOverall float64 `json:"scoreOverall"`
	Score3yr     float64 `json:"score3yr"`

	// 以下为派生字段，加载时计算一次
	RankOverall int      `json:"rankOverall"`
	GapToTop10  *float64 `json:"gapToTop10"` // 不足 10 个机构时为 nil
}

// IndicatorDetail 指标明细（detail_kode 表的一行）
type IndicatorDetail struct {
	Affiliation string   `json:"affiliation"`
	Code        string   `json:"code"`
	Name        string   `json:"name,omitempty"`
	RawCategory string   `json:"rawCategory"`
	Category    Category `json:"category"` // 未映射时为空
	Weight      float64  `json:"weight"`
	Value       float64  `json:"value"`
	Total       float64  `json:"total"` // 源数据给出，加载时不重算
}

// Mapped 分类是否映射成功
func (d IndicatorDetail) Mapped() bool {
	return d.Category != ""
}

// ClusterDataset cluster 工作簿加载结果（加载后只读）
type ClusterDataset struct {
	ID             string            `json:"id"`
	SourceName     string            `json:"sourceName"`
	Affiliations   []Affiliation     `json:"affiliations"` // 按 RankOverall 排序
	Details        []IndicatorDetail `json:"-"`
	Top10Threshold *float64          `json:"top10Threshold"`
	Matrix         *CategoryMatrix   `json:"-"`
	Report         LoadReport        `json:"report"`

	byName map[string]int
}

// IndexAffiliations 建立名称索引，加载完成后调用一次
func (d *ClusterDataset) IndexAffiliations() {
	d.byName = make(map[string]int, len(d.Affiliations))
	for i, a := range d.Affiliations {
		d.byName[a.Name] = i
	}
}

// Affiliation 按名称查找机构
func (d *ClusterDataset) Affiliation(name string) (Affiliation, bool) {
	if d.byName == nil {
		for _, a := range d.Affiliations {
			if a.Name == name {
				return a, true
			}
		}
		return Affiliation{}, false
	}
	i, ok := d.byName[name]
	if !ok {
		return Affiliation{}, false
	}
	return d.Affiliations[i], true
}

// CodeCategories 指标代码 -> 分类（同一代码出现多个分类时取首次出现）
func (d *ClusterDataset) CodeCategories() map[string]Category {
	out := make(map[string]Category)
	for _, r := range d.Details {
		if _, ok := out[r.Code]; ok {
			continue
		}
		out[r.Code] = r.Category
	}
	return out
}
