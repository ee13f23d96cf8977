package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var separatorRe = regexp.MustCompile(`[\s\-]+`)

// NormalizeKey 规范化 sheet 名/列名：去首尾空白、小写，空白与连字符折叠为下划线
// "Nama Afiliasi" -> "nama_afiliasi"
func NormalizeKey(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ToLower(name)
	name = separatorRe.ReplaceAllString(name, "_")
	return strings.Trim(name, "_")
}

// ParseNumber 解析数值单元格
// 空串视为 0；千分位逗号会被去除；仅含一个逗号且其后不是三位数字时按小数逗号处理
// NaN、Inf 等非有限值视为无法解析
func ParseNumber(raw string) (float64, bool) {
	val := strings.TrimSpace(raw)
	if val == "" || val == "-" {
		return 0, true
	}
	val = strings.ReplaceAll(val, " ", "")

	if strings.Contains(val, ",") {
		if strings.Contains(val, ".") {
			val = strings.ReplaceAll(val, ",", "")
		} else if idx := strings.Index(val, ","); strings.Count(val, ",") == 1 && len(val)-idx-1 != 3 {
			val = val[:idx] + "." + val[idx+1:]
		} else {
			val = strings.ReplaceAll(val, ",", "")
		}
	}

	f, err := strconv.ParseFloat(val, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ContainsKey 检查规范化后的 key 是否在候选列表中
func ContainsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
