package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zvrva/flightops/internal/domain"
	"go.uber.org/zap"
)

// respondData writes the success envelope. Extra top-level siblings such as
// message ride alongside data.
func respondData(c *gin.Context, status int, data any, extra gin.H) {
	body := gin.H{"success": true, "data": data}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}

func respondMessage(c *gin.Context, status int, message string, extra gin.H) {
	body := gin.H{"success": true, "message": message}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}

// respondError maps the domain sentinels to HTTP statuses and surfaces the
// error message verbatim under the error key.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalid):
		status = http.StatusBadRequest
	default:
		zap.S().Errorw("request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}

func respondBadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": msg})
}

func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondBadRequest(c, "Invalid ID format")
		return 0, false
	}
	return id, true
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

func parseTime(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
