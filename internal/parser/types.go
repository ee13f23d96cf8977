package parser

import "sintascope/internal/model"

// Field 规范化后的列标识
type Field string

const (
	FieldAffiliationName Field = "nama_afiliasi"
	FieldScoreOverall    Field = "sinta_score_overall"
	FieldScore3yr        Field = "sinta_score_3yr"

	FieldCode        Field = "kode"
	FieldName        Field = "nama"
	FieldRawCategory Field = "kategori_score"
	FieldWeight      Field = "weight"
	FieldValue       Field = "value"
	FieldTotal       Field = "total"

	FieldMDAffiliation  Field = "affiliation_name"
	FieldMDCode         Field = "code"
	FieldMDName         Field = "name"
	FieldMDArea         Field = "area"
	FieldOverallValue   Field = "sinta_v3_overall_value"
	FieldOverallTotal   Field = "sinta_v3_overall_total"
	FieldThreeYearValue Field = "sinta_v3_3yr_value"
	FieldThreeYearTotal Field = "sinta_v3_3yr_total"
)

// ColumnSpec 单列定义：别名均为 NormalizeKey 之后的形式
type ColumnSpec struct {
	Field    Field
	Aliases  []string
	Required bool
}

// SheetSchema 表结构定义
type SheetSchema struct {
	Type            model.SheetType
	Keys            []string // 可接受的 sheet 名（规范化后）
	FallbackToFirst bool     // 名称未命中时退回第一个 sheet
	Columns         []ColumnSpec
}

// AffiliationSchema afiliasi 表
var AffiliationSchema = SheetSchema{
	Type: model.SheetTypeAffiliation,
	Keys: []string{"afiliasi", "affiliation", "affiliations"},
	Columns: []ColumnSpec{
		{Field: FieldAffiliationName, Aliases: []string{"nama_afiliasi", "affiliation_name", "afiliasi"}, Required: true},
		{Field: FieldScoreOverall, Aliases: []string{"sinta_score_overall", "score_overall"}, Required: true},
		{Field: FieldScore3yr, Aliases: []string{"sinta_score_3yr", "score_3yr"}, Required: true},
	},
}

// DetailSchema detail_kode 表
var DetailSchema = SheetSchema{
	Type: model.SheetTypeDetail,
	Keys: []string{"detail_kode", "detail_code", "detailkode"},
	Columns: []ColumnSpec{
		{Field: FieldAffiliationName, Aliases: []string{"nama_afiliasi", "affiliation_name"}, Required: true},
		{Field: FieldCode, Aliases: []string{"kode", "code"}, Required: true},
		{Field: FieldName, Aliases: []string{"nama", "name", "nama_indikator"}},
		{Field: FieldRawCategory, Aliases: []string{"kategori_score", "category_score"}, Required: true},
		{Field: FieldWeight, Aliases: []string{"weight", "bobot"}, Required: true},
		{Field: FieldValue, Aliases: []string{"value", "nilai"}, Required: true},
		{Field: FieldTotal, Aliases: []string{"total"}, Required: true},
	},
}

// MetricsSchema metrics_details 表
var MetricsSchema = SheetSchema{
	Type:            model.SheetTypeMetricsDetail,
	Keys:            []string{"metrics_details", "metrics_detail"},
	FallbackToFirst: true,
	Columns: []ColumnSpec{
		{Field: FieldMDAffiliation, Aliases: []string{"affiliation_name", "nama_afiliasi"}, Required: true},
		{Field: FieldMDCode, Aliases: []string{"code", "kode"}, Required: true},
		{Field: FieldMDName, Aliases: []string{"name", "nama"}},
		{Field: FieldMDArea, Aliases: []string{"area"}, Required: true},
		{Field: FieldWeight, Aliases: []string{"weight", "bobot"}, Required: true},
		{Field: FieldOverallValue, Aliases: []string{"sinta_v3_overall_value"}, Required: true},
		{Field: FieldOverallTotal, Aliases: []string{"sinta_v3_overall_total"}, Required: true},
		{Field: FieldThreeYearValue, Aliases: []string{"sinta_v3_3yr_value"}, Required: true},
		{Field: FieldThreeYearTotal, Aliases: []string{"sinta_v3_3yr_total"}, Required: true},
	},
}
