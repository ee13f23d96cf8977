package api

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"sintascope/internal/logging"
	"sintascope/internal/service/dataset"
)

// limitUploads 超出上传频率时返回 429
func (h *Handler) limitUploads(c *gin.Context) {
	if h.uploads != nil && !h.uploads.Allow() {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many uploads, retry later"})
		return
	}
	c.Next()
}

// readUpload 读取 multipart 中的 file 字段
func (h *Handler) readUpload(c *gin.Context) (dataset.Source, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": fmt.Sprintf("upload exceeds %d bytes", tooLarge.Limit),
			})
			return dataset.Source{}, false
		}
		badRequest(c, "missing upload field \"file\"")
		return dataset.Source{}, false
	}
	if ext := strings.ToLower(filepath.Ext(fh.Filename)); ext != ".xlsx" && ext != ".xlsm" {
		badRequest(c, fmt.Sprintf("unsupported file type %q, expected .xlsx", ext))
		return dataset.Source{}, false
	}

	f, err := fh.Open()
	if err != nil {
		badRequest(c, "failed to open upload")
		return dataset.Source{}, false
	}
	defer f.Close()

	src, err := dataset.SourceFromReader(filepath.Base(fh.Filename), f)
	if err != nil {
		badRequest(c, err.Error())
		return dataset.Source{}, false
	}
	return src, true
}

// UploadCluster 上传 cluster 工作簿并设为当前数据集
// POST /api/datasets/cluster
func (h *Handler) UploadCluster(c *gin.Context) {
	ticket := h.store.BeginCluster()
	src, ok := h.readUpload(c)
	if !ok {
		return
	}

	ds, err := h.loader.LoadCluster(c.Request.Context(), src)
	if err != nil {
		h.fail(c, err)
		return
	}
	active := h.store.CommitCluster(ticket, ds)
	h.logger.Info("cluster dataset loaded",
		logging.String("id", ds.ID),
		logging.Bool("active", active),
		logging.String("source", ds.SourceName),
		logging.Int("affiliations", len(ds.Affiliations)),
		logging.Int("details", len(ds.Details)),
		logging.Int("dropped", ds.Matrix.Dropped))

	c.JSON(http.StatusOK, gin.H{
		"id":           ds.ID,
		"active":       active,
		"sourceName":   ds.SourceName,
		"affiliations": len(ds.Affiliations),
		"details":      len(ds.Details),
		"report":       ds.Report,
	})
}

// UploadMetrics 上传 metrics detail 工作簿并设为当前数据集
// POST /api/datasets/metrics
func (h *Handler) UploadMetrics(c *gin.Context) {
	ticket := h.store.BeginMetrics()
	src, ok := h.readUpload(c)
	if !ok {
		return
	}

	ds, err := h.loader.LoadMetrics(c.Request.Context(), src)
	if err != nil {
		h.fail(c, err)
		return
	}
	active := h.store.CommitMetrics(ticket, ds)
	h.logger.Info("metrics dataset loaded",
		logging.String("id", ds.ID),
		logging.Bool("active", active),
		logging.String("source", ds.SourceName),
		logging.String("sheet", ds.SheetName),
		logging.Int("rows", len(ds.Rows)))

	c.JSON(http.StatusOK, gin.H{
		"id":         ds.ID,
		"active":     active,
		"sourceName": ds.SourceName,
		"sheetName":  ds.SheetName,
		"rows":       len(ds.Rows),
		"areas":      ds.Areas,
		"report":     ds.Report,
	})
}

// ClearDatasets 卸载数据集并清空加载缓存
// DELETE /api/datasets
// DELETE /api/datasets/:kind
func (h *Handler) ClearDatasets(c *gin.Context) {
	switch kind := dataset.Kind(c.Param("kind")); kind {
	case "":
		h.store.Clear()
		h.loader.Purge()
	case dataset.KindCluster:
		h.store.ClearCluster()
		h.loader.Invalidate(kind)
	case dataset.KindMetrics:
		h.store.ClearMetrics()
		h.loader.Invalidate(kind)
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown dataset kind %q", kind)})
		return
	}

	h.logger.Info("datasets cleared", logging.String("kind", c.Param("kind")))
	c.Status(http.StatusNoContent)
}
