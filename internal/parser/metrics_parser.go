package parser

import (
	"sort"

	"github.com/xuri/excelize/v2"

	"sintascope/internal/model"
)

// MetricsParser Sinta Metrics Detail 工作簿解析器
type MetricsParser struct {
	file       *excelize.File
	recognizer *SheetRecognizer
}

// NewMetricsParser 创建 metrics detail 解析器
func NewMetricsParser(file *excelize.File) *MetricsParser {
	return &MetricsParser{
		file:       file,
		recognizer: NewSheetRecognizer(),
	}
}

// Parse 解析 metrics_details 表；表名不存在时退回第一个 sheet
func (p *MetricsParser) Parse() (*model.MetricsDataset, error) {
	if p.file == nil {
		return nil, ErrNoFileLoaded
	}

	report := model.NewLoadReport()
	sheet, err := p.recognizer.Recognize(p.file.GetSheetList(), MetricsSchema)
	if err != nil {
		return nil, err
	}
	report.Sheets = append(report.Sheets, sheet)

	t, err := readTable(p.file, sheet.SheetName, MetricsSchema, &report)
	if err != nil {
		return nil, err
	}

	rows := make([]model.MetricsDetail, 0, len(t.rows))
	areas := make(map[string]struct{})
	t.each(func(r rowReader) {
		if r.Empty() {
			return
		}
		aff := model.NormalizeAffiliationKey(r.String(FieldMDAffiliation))
		if aff == "" {
			report.SkippedRows++
			return
		}
		area := r.String(FieldMDArea)
		if area != "" {
			areas[area] = struct{}{}
		}
		rows = append(rows, model.MetricsDetail{
			Affiliation:    aff,
			Code:           r.String(FieldMDCode),
			Name:           r.String(FieldMDName),
			Area:           area,
			Weight:         r.Float(FieldWeight),
			OverallValue:   r.Float(FieldOverallValue),
			OverallTotal:   r.Float(FieldOverallTotal),
			ThreeYearValue: r.Float(FieldThreeYearValue),
			ThreeYearTotal: r.Float(FieldThreeYearTotal),
		})
	})
	report.Rows[model.SheetTypeMetricsDetail] = len(rows)

	areaList := make([]string, 0, len(areas))
	for a := range areas {
		areaList = append(areaList, a)
	}
	sort.Strings(areaList)

	return &model.MetricsDataset{
		SheetName: sheet.SheetName,
		Rows:      rows,
		Areas:     areaList,
		Report:    report,
	}, nil
}
