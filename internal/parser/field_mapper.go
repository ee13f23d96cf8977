package parser

// FieldMapper 表头 -> 字段映射器
type FieldMapper struct {
	schema SheetSchema
}

// NewFieldMapper 创建字段映射器
func NewFieldMapper(schema SheetSchema) *FieldMapper {
	return &FieldMapper{schema: schema}
}

// Map 返回字段到列索引的映射，以及缺失的必需字段
// 同一字段匹配多列时取最左侧一列
func (m *FieldMapper) Map(headers []string) (map[Field]int, []string) {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = NormalizeKey(h)
	}

	mappings := make(map[Field]int)
	var missing []string
	for _, col := range m.schema.Columns {
		idx := findColumn(normalized, col.Aliases)
		if idx < 0 {
			if col.Required {
				missing = append(missing, string(col.Field))
			}
			continue
		}
		mappings[col.Field] = idx
	}
	return mappings, missing
}

func findColumn(normalized []string, aliases []string) int {
	for idx, col := range normalized {
		if col == "" {
			continue
		}
		if ContainsKey(aliases, col) {
			return idx
		}
	}
	return -1
}
