package parser

import (
	"errors"
	"fmt"
	"strings"

	"sintascope/internal/model"
)

// ErrNoFileLoaded 未加载工作簿
var ErrNoFileLoaded = errors.New("no workbook loaded")

// SheetNotFoundError 必需的 sheet 不存在
type SheetNotFoundError struct {
	Want      model.SheetType
	Available []string
}

func (e *SheetNotFoundError) Error() string {
	return fmt.Sprintf("sheet %q not found (available: %s)", e.Want, strings.Join(e.Available, ", "))
}

// MissingColumnsError 必需列缺失
type MissingColumnsError struct {
	Sheet   string
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("sheet %q is missing required columns: %s", e.Sheet, strings.Join(e.Missing, ", "))
}

// IsSchemaError 是否为结构性错误（sheet/列缺失）
func IsSchemaError(err error) bool {
	var sheetErr *SheetNotFoundError
	var colErr *MissingColumnsError
	return errors.As(err, &sheetErr) || errors.As(err, &colErr)
}
