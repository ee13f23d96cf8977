package parser

import (
	"sintascope/internal/model"
)

// SheetRecognizer 按已知名称定位工作表
type SheetRecognizer struct{}

// NewSheetRecognizer 创建识别器
func NewSheetRecognizer() *SheetRecognizer {
	return &SheetRecognizer{}
}

// Recognize 从 sheet 列表中找到 schema 对应的工作表
// 名称按 NormalizeKey 比较；未命中时仅在 schema 允许的情况下退回第一个 sheet
func (r *SheetRecognizer) Recognize(sheets []string, schema SheetSchema) (model.SheetRecognition, error) {
	for _, name := range sheets {
		if ContainsKey(schema.Keys, NormalizeKey(name)) {
			return model.SheetRecognition{
				SheetName: name,
				Type:      schema.Type,
			}, nil
		}
	}

	if schema.FallbackToFirst && len(sheets) > 0 {
		return model.SheetRecognition{
			SheetName: sheets[0],
			Type:      schema.Type,
			Fallback:  true,
		}, nil
	}

	return model.SheetRecognition{}, &SheetNotFoundError{
		Want:      schema.Type,
		Available: append([]string(nil), sheets...),
	}
}
