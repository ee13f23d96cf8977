package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sintascope/internal/model"
)

// DatasetStatus 单个数据集状态
type DatasetStatus struct {
	Loaded     bool              `json:"loaded"`
	ID         string            `json:"id,omitempty"`
	SourceName string            `json:"sourceName,omitempty"`
	LoadedAt   string            `json:"loadedAt,omitempty"`
	Rows       int               `json:"rows"`
	Report     *model.LoadReport `json:"report,omitempty"`
}

// StatusResponse 系统状态响应
type StatusResponse struct {
	Cluster DatasetStatus `json:"cluster"`
	Metrics DatasetStatus `json:"metrics"`
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	snap := h.store.Snapshot()

	var resp StatusResponse
	if ds := snap.Cluster; ds != nil {
		resp.Cluster = DatasetStatus{
			Loaded:     true,
			ID:         ds.ID,
			SourceName: ds.SourceName,
			LoadedAt:   snap.ClusterAt.Format(time.RFC3339),
			Rows:       len(ds.Details),
			Report:     &ds.Report,
		}
	}
	if ds := snap.Metrics; ds != nil {
		resp.Metrics = DatasetStatus{
			Loaded:     true,
			ID:         ds.ID,
			SourceName: ds.SourceName,
			LoadedAt:   snap.MetricsAt.Format(time.RFC3339),
			Rows:       len(ds.Rows),
			Report:     &ds.Report,
		}
	}

	c.JSON(http.StatusOK, resp)
}
