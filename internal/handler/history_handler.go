package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"

	apperrors "timerdash/internal/errors"
	"timerdash/internal/history"
)

type HistoryHandler struct {
	fs             afero.Fs
	logPath        string
	separatorWidth int
}

func NewHistoryHandler(fs afero.Fs, logPath string, separatorWidth int) *HistoryHandler {
	return &HistoryHandler{fs: fs, logPath: logPath, separatorWidth: separatorWidth}
}

// Get serves ?view=grouped (default), raw, or groups (structured).
func (h *HistoryHandler) Get(c *gin.Context) {
	text, err := history.ReadLog(h.fs, h.logPath)
	if err != nil {
		writeError(c, apperrors.Internal("failed to read history"))
		return
	}

	switch view := c.DefaultQuery("view", "grouped"); view {
	case "grouped":
		c.JSON(http.StatusOK, gin.H{"lines": history.Build(text, h.separatorWidth).Grouped})
	case "raw":
		c.JSON(http.StatusOK, gin.H{"lines": history.Build(text, h.separatorWidth).Raw})
	case "groups":
		c.JSON(http.StatusOK, history.Reconstruct(history.SplitLines(text)))
	default:
		writeError(c, apperrors.BadRequest("invalid_view", "view must be one of grouped, raw, groups"))
	}
}
