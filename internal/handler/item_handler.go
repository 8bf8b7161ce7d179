package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "timerdash/internal/errors"
	"timerdash/internal/service"
)

type ItemHandler struct {
	manager *service.TimeManager
}

type addTimerRequest struct {
	DurationSeconds int    `json:"durationSeconds"`
	Name            string `json:"name"`
}

type addStopwatchRequest struct {
	Name string `json:"name"`
}

func NewItemHandler(manager *service.TimeManager) *ItemHandler {
	return &ItemHandler{manager: manager}
}

func (h *ItemHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.manager.Snapshot())
}

func (h *ItemHandler) AddTimer(c *gin.Context) {
	var req addTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperrors.BadRequest("invalid_json", "invalid request body"))
		return
	}
	if req.DurationSeconds <= 0 {
		writeError(c, apperrors.BadRequest("invalid_duration", "durationSeconds must be positive"))
		return
	}

	item, _ := h.manager.AddTimer(req.DurationSeconds, req.Name)
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

func (h *ItemHandler) AddStopwatch(c *gin.Context) {
	var req addStopwatchRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, apperrors.BadRequest("invalid_json", "invalid request body"))
			return
		}
	}

	item := h.manager.AddStopwatch(req.Name)
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

func (h *ItemHandler) Toggle(c *gin.Context) {
	h.act(c, h.manager.Toggle, "item is finished")
}

func (h *ItemHandler) Reset(c *gin.Context) {
	h.act(c, h.manager.Reset, "")
}

func (h *ItemHandler) Lap(c *gin.Context) {
	h.act(c, h.manager.Lap, "item is not a running stopwatch")
}

func (h *ItemHandler) Remove(c *gin.Context) {
	id := c.Param("id")
	if !h.manager.Remove(id) {
		writeError(c, apperrors.NotFound("item_not_found", "item not found", id))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ItemHandler) ToggleAll(c *gin.Context) {
	paused := h.manager.ToggleAllPause()
	c.JSON(http.StatusOK, gin.H{"paused": paused, "items": h.manager.Snapshot()})
}

func (h *ItemHandler) LapActive(c *gin.Context) {
	if !h.manager.LapMostRecentActive() {
		writeError(c, apperrors.Unchanged("no_running_stopwatch", "no stopwatch is running"))
		return
	}
	c.JSON(http.StatusOK, h.manager.Snapshot())
}

// act runs a per-item operation. A false result is a 404 when the item does
// not exist and a 409 when it exists but was in the wrong state.
func (h *ItemHandler) act(c *gin.Context, op func(id string) bool, unchanged string) {
	id := c.Param("id")
	if op(id) {
		c.JSON(http.StatusOK, h.manager.Snapshot())
		return
	}
	if !h.exists(id) || unchanged == "" {
		writeError(c, apperrors.NotFound("item_not_found", "item not found", id))
		return
	}
	writeError(c, apperrors.Unchanged("item_unchanged", unchanged))
}

func (h *ItemHandler) exists(id string) bool {
	for _, item := range h.manager.Snapshot().Items() {
		if item.ID == id {
			return true
		}
	}
	return false
}
