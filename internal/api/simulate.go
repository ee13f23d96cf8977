package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"sintascope/internal/model"
	"sintascope/internal/service/analytics"
)

// SimulateRequest 模拟请求
type SimulateRequest struct {
	Affiliation string   `json:"affiliation" binding:"required"`
	Categories  []string `json:"categories"`
	Delta       *float64 `json:"delta"` // 缺省使用配置值
}

// Simulate 分类提升模拟
// POST /api/simulate
func (h *Handler) Simulate(c *gin.Context) {
	var req SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	if len(req.Categories) == 0 {
		badRequest(c, "select at least one category")
		return
	}

	selected := make([]model.Category, 0, len(req.Categories))
	for _, raw := range req.Categories {
		cat, ok := model.ParseCategory(raw)
		if !ok {
			badRequest(c, fmt.Sprintf("unknown category %q", raw))
			return
		}
		selected = append(selected, cat)
	}

	delta := h.analysis.SimulationDelta
	if req.Delta != nil {
		delta = *req.Delta
	}

	ds, aff, ok := h.clusterAffiliation(c, req.Affiliation)
	if !ok {
		return
	}

	res, err := analytics.Simulate(ds.Details, aff.Name, selected, delta)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":      res,
		"totalChange": res.TotalChange(),
	})
}
