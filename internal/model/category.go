package model

import "strings"

// Category 指标分类（cluster 数据集 kategori_score 映射后的展示标签）
type Category string

const (
	CategoryPublication      Category = "Publication"
	CategoryResearch         Category = "Research"
	CategoryCommunityService Category = "Community Service"
	CategoryHKI              Category = "HKI"
	CategorySDM              Category = "SDM"
	CategoryKelembagaan      Category = "Kelembagaan"
)

// categoryLabels 原始分类代码 -> 展示标签
var categoryLabels = map[string]Category{
	"Score in Publication":       CategoryPublication,
	"Score in HKI":               CategoryHKI,
	"Score in Research":          CategoryResearch,
	"Score in Community Service": CategoryCommunityService,
	"Score in SDM":               CategorySDM,
	"Score in Kelembagaan":       CategoryKelembagaan,
}

// categoryOrder 固定展示顺序
var categoryOrder = []Category{
	CategoryPublication,
	CategoryResearch,
	CategoryCommunityService,
	CategoryHKI,
	CategorySDM,
	CategoryKelembagaan,
}

// MapCategory 将原始分类代码映射为展示标签，未知代码返回 false
func MapCategory(raw string) (Category, bool) {
	c, ok := categoryLabels[strings.TrimSpace(raw)]
	return c, ok
}

// Categories 按展示顺序返回全部分类（返回副本）
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// ParseCategory 解析展示标签（大小写不敏感）
func ParseCategory(label string) (Category, bool) {
	label = strings.TrimSpace(label)
	for _, c := range categoryOrder {
		if strings.EqualFold(string(c), label) {
			return c, true
		}
	}
	return "", false
}

// Index 返回分类在展示顺序中的位置，未知分类返回 -1
func (c Category) Index() int {
	for i, v := range categoryOrder {
		if v == c {
			return i
		}
	}
	return -1
}

// Valid 是否为已知分类
func (c Category) Valid() bool {
	return c.Index() >= 0
}
