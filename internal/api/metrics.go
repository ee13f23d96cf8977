package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"sintascope/internal/model"
	"sintascope/internal/service/analytics"
)

// GetMetricsProfile 机构的 metrics detail 画像
// GET /api/affiliations/:name/metrics?top=&q=
func (h *Handler) GetMetricsProfile(c *gin.Context) {
	top, ok := queryTop(c, h.analysis.MetricsTopN)
	if !ok {
		badRequest(c, "invalid top")
		return
	}

	md, err := h.store.Metrics()
	if err != nil {
		h.fail(c, err)
		return
	}

	// cluster 数据集可选，用于给指标代码补分类
	var codeCategories map[string]model.Category
	if ds, err := h.store.Cluster(); err == nil {
		codeCategories = ds.CodeCategories()
	}

	profile := analytics.MetricsProfile(md.Rows, c.Param("name"), codeCategories, analytics.ProfileOptions{
		TopN:   top,
		Filter: c.Query("q"),
	})
	if !profile.Found {
		h.fail(c, fmt.Errorf("%w: %s", errAffiliationNotFound, c.Param("name")))
		return
	}
	c.JSON(http.StatusOK, profile)
}
