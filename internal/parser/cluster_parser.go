package parser

import (
	"github.com/xuri/excelize/v2"

	"sintascope/internal/model"
)

// ClusterTables cluster 工作簿解析结果（未排名）
type ClusterTables struct {
	Affiliations []model.Affiliation
	Details      []model.IndicatorDetail
	Report       model.LoadReport
}

// ClusterParser Sinta Metric Cluster 工作簿解析器
type ClusterParser struct {
	file       *excelize.File
	recognizer *SheetRecognizer
}

// NewClusterParser 创建 cluster 解析器
func NewClusterParser(file *excelize.File) *ClusterParser {
	return &ClusterParser{
		file:       file,
		recognizer: NewSheetRecognizer(),
	}
}

// Parse 解析 afiliasi 与 detail_kode 两张表，任一缺失即失败
func (p *ClusterParser) Parse() (*ClusterTables, error) {
	if p.file == nil {
		return nil, ErrNoFileLoaded
	}

	report := model.NewLoadReport()
	sheets := p.file.GetSheetList()

	afSheet, err := p.recognizer.Recognize(sheets, AffiliationSchema)
	if err != nil {
		return nil, err
	}
	detailSheet, err := p.recognizer.Recognize(sheets, DetailSchema)
	if err != nil {
		return nil, err
	}
	report.Sheets = append(report.Sheets, afSheet, detailSheet)

	afTable, err := readTable(p.file, afSheet.SheetName, AffiliationSchema, &report)
	if err != nil {
		return nil, err
	}
	detailTable, err := readTable(p.file, detailSheet.SheetName, DetailSchema, &report)
	if err != nil {
		return nil, err
	}

	affiliations := p.parseAffiliations(afTable, &report)
	details := p.parseDetails(detailTable, &report)

	report.Rows[model.SheetTypeAffiliation] = len(affiliations)
	report.Rows[model.SheetTypeDetail] = len(details)

	return &ClusterTables{
		Affiliations: affiliations,
		Details:      details,
		Report:       report,
	}, nil
}

func (p *ClusterParser) parseAffiliations(t *sheetTable, report *model.LoadReport) []model.Affiliation {
	seen := make(map[string]struct{})
	out := make([]model.Affiliation, 0, len(t.rows))

	t.each(func(r rowReader) {
		if r.Empty() {
			return
		}
		name := r.String(FieldAffiliationName)
		if name == "" {
			report.SkippedRows++
			return
		}
		if _, dup := seen[name]; dup {
			report.DuplicateAffiliation++
			return
		}
		seen[name] = struct{}{}

		out = append(out, model.Affiliation{
			Name:         name,
			ScoreOverall: r.Float(FieldScoreOverall),
			Score3yr:     r.Float(FieldScore3yr),
		})
	})
	return out
}

func (p *ClusterParser) parseDetails(t *sheetTable, report *model.LoadReport) []model.IndicatorDetail {
	out := make([]model.IndicatorDetail, 0, len(t.rows))

	t.each(func(r rowReader) {
		if r.Empty() {
			return
		}
		name := r.String(FieldAffiliationName)
		if name == "" {
			report.SkippedRows++
			return
		}

		raw := r.String(FieldRawCategory)
		category, ok := model.MapCategory(raw)
		if !ok {
			report.UnmappedCategoryRows++
			if report.UnmappedCategories == nil {
				report.UnmappedCategories = make(map[string]int)
			}
			report.UnmappedCategories[raw]++
		}

		out = append(out, model.IndicatorDetail{
			Affiliation: name,
			Code:        r.String(FieldCode),
			Name:        r.String(FieldName),
			RawCategory: raw,
			Category:    category,
			Weight:      r.Float(FieldWeight),
			Value:       r.Float(FieldValue),
			Total:       r.Float(FieldTotal),
		})
	})
	return out
}
