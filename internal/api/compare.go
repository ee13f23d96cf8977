package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"sintascope/internal/model"
	"sintascope/internal/service/analytics"
)

// CompareRequest 对比请求
type CompareRequest struct {
	AffiliationA string   `json:"affiliationA" binding:"required"`
	AffiliationB string   `json:"affiliationB" binding:"required"`
	Field        string   `json:"field"`
	Categories   []string `json:"categories"`
	Top          *int     `json:"top"`
}

// bindCompare 解析请求并取当前 metrics 数据集
func (h *Handler) bindCompare(c *gin.Context, defaultTop int) ([]model.MetricsDetail, analytics.CompareRequest, bool) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return nil, analytics.CompareRequest{}, false
	}

	field, ok := model.ParseScoreField(req.Field)
	if !ok {
		badRequest(c, fmt.Sprintf("unknown score field %q", req.Field))
		return nil, analytics.CompareRequest{}, false
	}

	top := defaultTop
	if req.Top != nil {
		if *req.Top < 0 {
			badRequest(c, "invalid top")
			return nil, analytics.CompareRequest{}, false
		}
		top = *req.Top
	}

	ds, err := h.store.Metrics()
	if err != nil {
		h.fail(c, err)
		return nil, analytics.CompareRequest{}, false
	}

	return ds.Rows, analytics.CompareRequest{
		AffiliationA: req.AffiliationA,
		AffiliationB: req.AffiliationB,
		Field:        field,
		Categories:   req.Categories,
		TopN:         top,
	}, true
}

// Compare 两个机构逐指标对比
// POST /api/compare
func (h *Handler) Compare(c *gin.Context) {
	rows, req, ok := h.bindCompare(c, h.analysis.CompareTopN)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, analytics.CompareView(rows, req))
}

// ExportCompare 导出对比结果（默认导出全部行）
// POST /api/compare/export
func (h *Handler) ExportCompare(c *gin.Context) {
	rows, req, ok := h.bindCompare(c, 0)
	if !ok {
		return
	}

	f, err := h.exporter.ExportComparison(analytics.CompareView(rows, req))
	if err != nil {
		h.fail(c, fmt.Errorf("failed to export comparison: %w", err))
		return
	}
	defer f.Close()

	c.Header("Content-Disposition", buildExportContentDisposition(req.AffiliationA, req.AffiliationB))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		h.fail(c, fmt.Errorf("failed to write export: %w", err))
		return
	}
}

func buildExportContentDisposition(a, b string) string {
	name := fmt.Sprintf("compare-%s-vs-%s.xlsx", a, b)
	ascii := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		default:
			return '_'
		}
	}, name)
	return fmt.Sprintf("attachment; filename=\"%s\"; filename*=UTF-8''%s", ascii, url.PathEscape(name))
}
