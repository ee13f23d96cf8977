package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ErrInvalidWorkbook 内容不是可读取的 xlsx
var ErrInvalidWorkbook = errors.New("invalid excel workbook")

// OpenWorkbook 打开 Excel 工作簿
func OpenWorkbook(reader io.Reader) (*excelize.File, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWorkbook, err)
	}
	return f, nil
}

// OpenWorkbookBytes 从内存内容打开工作簿
func OpenWorkbookBytes(content []byte) (*excelize.File, error) {
	return OpenWorkbook(bytes.NewReader(content))
}
