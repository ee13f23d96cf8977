package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"sintascope/internal/model"
	"sintascope/internal/service/analytics"
)

// clusterAffiliation 取当前 cluster 数据集与路径中的机构
func (h *Handler) clusterAffiliation(c *gin.Context, name string) (*model.ClusterDataset, model.Affiliation, bool) {
	ds, err := h.store.Cluster()
	if err != nil {
		h.fail(c, err)
		return nil, model.Affiliation{}, false
	}
	aff, ok := ds.Affiliation(name)
	if !ok {
		h.fail(c, fmt.Errorf("%w: %s", errAffiliationNotFound, name))
		return nil, model.Affiliation{}, false
	}
	return ds, aff, true
}

// AffiliationsResponse 机构列表与默认选择
type AffiliationsResponse struct {
	Names         []string `json:"names"`
	DefaultIndex  int      `json:"defaultIndex"`
	CompareIndex  int      `json:"compareIndex"`
	Default       string   `json:"default,omitempty"`
	CompareTarget string   `json:"compareTarget,omitempty"`
}

// ListAffiliations 机构列表（字母序）
// GET /api/affiliations
func (h *Handler) ListAffiliations(c *gin.Context) {
	ds, err := h.store.Cluster()
	if err != nil {
		h.fail(c, err)
		return
	}

	names := analytics.AffiliationNames(ds.Affiliations)
	resp := AffiliationsResponse{
		Names:        names,
		DefaultIndex: analytics.DefaultAffiliation(names, h.analysis.DefaultAffiliation),
		CompareIndex: analytics.DefaultCompareTarget(names, h.analysis.DefaultAffiliation),
	}
	if len(names) > 0 {
		resp.Default = names[resp.DefaultIndex]
		resp.CompareTarget = names[resp.CompareIndex]
	}
	c.JSON(http.StatusOK, resp)
}

// GetOverview 机构概览
// GET /api/overview?affiliation=&top=
func (h *Handler) GetOverview(c *gin.Context) {
	top, ok := queryTop(c, h.analysis.OverviewTopN)
	if !ok {
		badRequest(c, "invalid top")
		return
	}

	ds, err := h.store.Cluster()
	if err != nil {
		h.fail(c, err)
		return
	}

	name := c.Query("affiliation")
	if name == "" {
		names := analytics.AffiliationNames(ds.Affiliations)
		if len(names) > 0 {
			name = names[analytics.DefaultAffiliation(names, h.analysis.DefaultAffiliation)]
		}
	}

	res := analytics.Overview(ds, name, top)
	if !res.Found {
		h.fail(c, fmt.Errorf("%w: %s", errAffiliationNotFound, name))
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetRanking 全部机构排名
// GET /api/ranking?top=
func (h *Handler) GetRanking(c *gin.Context) {
	top, ok := queryTop(c, h.analysis.RankingTopN)
	if !ok {
		badRequest(c, "invalid top")
		return
	}

	ds, err := h.store.Cluster()
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":          len(ds.Affiliations),
		"top10Threshold": ds.Top10Threshold,
		"items":          analytics.TopAffiliations(ds.Affiliations, top),
	})
}

// GetCategoryBreakdown 机构的分类构成
// GET /api/affiliations/:name/categories
func (h *Handler) GetCategoryBreakdown(c *gin.Context) {
	ds, aff, ok := h.clusterAffiliation(c, c.Param("name"))
	if !ok {
		return
	}

	// 机构可能只出现在 afiliasi 表中，没有明细
	hasDetails := ds.Matrix.Has(aff.Name)
	var shares []analytics.CategoryShare
	if hasDetails {
		shares, _ = analytics.CategoryBreakdown(ds.Matrix, aff.Name)
	} else {
		shares = make([]analytics.CategoryShare, 0, len(model.Categories()))
		for _, cat := range model.Categories() {
			shares = append(shares, analytics.CategoryShare{Category: cat})
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"affiliation": aff.Name,
		"hasDetails":  hasDetails,
		"total":       ds.Matrix.Total(aff.Name),
		"categories":  shares,
		"dropped":     ds.Matrix.Dropped,
	})
}

// GetCategoryRanking 某分类下的机构排名
// GET /api/categories/:category/ranking?top=
func (h *Handler) GetCategoryRanking(c *gin.Context) {
	top, ok := queryTop(c, h.analysis.CategoryTopN)
	if !ok {
		badRequest(c, "invalid top")
		return
	}

	cat, ok := model.ParseCategory(c.Param("category"))
	if !ok {
		h.fail(c, fmt.Errorf("%w: %s", errCategoryNotFound, c.Param("category")))
		return
	}

	ds, err := h.store.Cluster()
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": cat,
		"items":    analytics.CategoryRanking(ds.Matrix, cat, top),
	})
}

// GetLeverage 高杠杆指标
// GET /api/affiliations/:name/leverage?top=
func (h *Handler) GetLeverage(c *gin.Context) {
	top, ok := queryTop(c, h.analysis.LeverageTopK)
	if !ok {
		badRequest(c, "invalid top")
		return
	}

	ds, aff, ok := h.clusterAffiliation(c, c.Param("name"))
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"affiliation": aff.Name,
		"items":       analytics.HighLeverage(ds.Details, aff.Name, top),
	})
}
