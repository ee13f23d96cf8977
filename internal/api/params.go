package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// queryTop 解析 ?top=，缺省或非法时返回 def；0 表示全部
func queryTop(c *gin.Context, def int) (int, bool) {
	raw := c.Query("top")
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
