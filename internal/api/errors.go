package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sintascope/internal/logging"
	"sintascope/internal/parser"
	"sintascope/internal/service/analytics"
	"sintascope/internal/service/store"
)

var (
	errAffiliationNotFound = errors.New("affiliation not found")
	errCategoryNotFound    = errors.New("category not found")
)

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// fail 按错误类型返回状态码
func (h *Handler) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrClusterNotLoaded), errors.Is(err, store.ErrMetricsNotLoaded):
		status = http.StatusConflict
	case errors.Is(err, errAffiliationNotFound), errors.Is(err, errCategoryNotFound):
		status = http.StatusNotFound
	case parser.IsSchemaError(err):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, parser.ErrInvalidWorkbook), errors.Is(err, analytics.ErrInvalidDelta):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("request failed",
			logging.String("path", c.FullPath()),
			logging.Err(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
