package parser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"sintascope/internal/model"
)

// sheetTable 按 schema 读取后的表
type sheetTable struct {
	name     string
	mappings map[Field]int
	rows     [][]string
	report   *model.LoadReport
}

// readTable 读取 sheet：首行为表头，校验必需列
func readTable(f *excelize.File, sheetName string, schema SheetSchema, report *model.LoadReport) (*sheetTable, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}

	var headers []string
	if len(rows) > 0 {
		headers = rows[0]
	}

	mapper := NewFieldMapper(schema)
	mappings, missing := mapper.Map(headers)
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Sheet: sheetName, Missing: missing}
	}

	var data [][]string
	if len(rows) > 1 {
		data = rows[1:]
	}

	return &sheetTable{
		name:     sheetName,
		mappings: mappings,
		rows:     data,
		report:   report,
	}, nil
}

// each 遍历数据行，rowNo 为 Excel 行号（从 2 开始）
func (t *sheetTable) each(fn func(r rowReader)) {
	for i, row := range t.rows {
		fn(rowReader{table: t, row: row, rowNo: i + 2})
	}
}

type rowReader struct {
	table *sheetTable
	row   []string
	rowNo int
}

// String 读取文本列，列不存在或越界时为空串
func (r rowReader) String(field Field) string {
	idx, ok := r.table.mappings[field]
	if !ok || idx >= len(r.row) {
		return ""
	}
	return strings.TrimSpace(r.row[idx])
}

// Float 读取数值列，无法解析时记为 0 并写入报告
func (r rowReader) Float(field Field) float64 {
	raw := r.String(field)
	v, ok := ParseNumber(raw)
	if !ok {
		r.table.report.CellIssues = append(r.table.report.CellIssues, model.CellIssue{
			Sheet:  r.table.name,
			Row:    r.rowNo,
			Column: string(field),
			Raw:    raw,
		})
	}
	return v
}

// Empty 整行是否为空
func (r rowReader) Empty() bool {
	for _, c := range r.row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
