package model

// SheetType 工作表角色
type SheetType string

const (
	SheetTypeUnknown       SheetType = "unknown"
	SheetTypeAffiliation   SheetType = "afiliasi"
	SheetTypeDetail        SheetType = "detail_kode"
	SheetTypeMetricsDetail SheetType = "metrics_details"
)

// SheetRecognition 单个 sheet 的识别结果
type SheetRecognition struct {
	SheetName     string    `json:"sheetName"`
	Type          SheetType `json:"type"`
	Fallback      bool      `json:"fallback"` // 未按名称命中，退回首个 sheet
	MissingFields []string  `json:"missingFields,omitempty"`
}

// CellIssue 无法解析的单元格
type CellIssue struct {
	Sheet  string `json:"sheet"`
	Row    int    `json:"row"`
	Column string `json:"column"`
	Raw    string `json:"raw"`
}

// LoadReport 加载报告（数据质量可见性）
type LoadReport struct {
	Sheets               []SheetRecognition `json:"sheets"`
	Rows                 map[SheetType]int  `json:"rows"`
	SkippedRows          int                `json:"skippedRows"`          // 机构名为空
	DuplicateAffiliation int                `json:"duplicateAffiliation"` // 重复机构名（保留首个）
	UnmappedCategoryRows int                `json:"unmappedCategoryRows"`
	UnmappedCategories   map[string]int     `json:"unmappedCategories,omitempty"`
	CellIssues           []CellIssue        `json:"cellIssues,omitempty"`
}

// NewLoadReport 创建空报告
func NewLoadReport() LoadReport {
	return LoadReport{
		Sheets: []SheetRecognition{},
		Rows:   make(map[SheetType]int),
	}
}
