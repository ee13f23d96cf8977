// Package api HTTP 接口（gin）
package api

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"sintascope/internal/config"
	"sintascope/internal/logging"
	"sintascope/internal/service/dataset"
	"sintascope/internal/service/excel"
	"sintascope/internal/service/store"
)

// MaxUploadBytes 上传工作簿大小上限
const MaxUploadBytes = 64 << 20

// Handler API 处理器
type Handler struct {
	store     *store.MemoryStore
	loader    *dataset.Loader
	exporter  *excel.Exporter
	analysis  config.AnalysisConfig
	logger    logging.Logger
	uploads   *rate.Limiter // nil 表示不限制
	maxUpload int64
}

// NewHandler 创建 API 处理器
func NewHandler(st *store.MemoryStore, loader *dataset.Loader, analysis config.AnalysisConfig, logger logging.Logger) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{
		store:     st,
		loader:    loader,
		exporter:  excel.NewExporter(),
		analysis:  analysis,
		logger:    logger.Named("api"),
		maxUpload: MaxUploadBytes,
	}
}

// WithUploadLimit 限制上传频率；limit<=0 时不限制
func (h *Handler) WithUploadLimit(limit rate.Limit, burst int) *Handler {
	if limit <= 0 {
		h.uploads = nil
		return h
	}
	if burst <= 0 {
		burst = 1
	}
	h.uploads = rate.NewLimiter(limit, burst)
	return h
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 数据集上传
	uploads := router.Group("/datasets", h.limitUploads)
	uploads.POST("/cluster", h.UploadCluster)
	uploads.POST("/metrics", h.UploadMetrics)
	router.DELETE("/datasets", h.ClearDatasets)
	router.DELETE("/datasets/:kind", h.ClearDatasets)

	// 机构与排名
	router.GET("/affiliations", h.ListAffiliations)
	router.GET("/overview", h.GetOverview)
	router.GET("/ranking", h.GetRanking)

	// 分类
	router.GET("/affiliations/:name/categories", h.GetCategoryBreakdown)
	router.GET("/categories/:category/ranking", h.GetCategoryRanking)

	// 高杠杆指标与模拟
	router.GET("/affiliations/:name/leverage", h.GetLeverage)
	router.POST("/simulate", h.Simulate)

	// 机构对比
	router.POST("/compare", h.Compare)
	router.POST("/compare/export", h.ExportCompare)

	// metrics detail 画像
	router.GET("/affiliations/:name/metrics", h.GetMetricsProfile)
}
