package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wutsk/labreserve/internal/domain"
)

// AuditLog exposes the persisted action trail for admin inspection.
type AuditLog interface {
	ListRecent(ctx context.Context, limit int) ([]domain.ActionLogEntry, error)
}

type ActionHandler struct {
	audit AuditLog
}

type actionResponse struct {
	ID          int64  `json:"id"`
	RequesterID string `json:"requester_id"`
	Action      string `json:"action"`
	StationID   string `json:"station_id"`
	Timestamp   string `json:"timestamp"`
}

func NewActionHandler(audit AuditLog) *ActionHandler {
	return &ActionHandler{audit: audit}
}

func (h *ActionHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
}

func (h *ActionHandler) list(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	entries, err := h.audit.ListRecent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]actionResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, actionResponse{
			ID:          e.ID,
			RequesterID: e.RequesterID,
			Action:      e.Action,
			StationID:   e.StationID,
			Timestamp:   e.Timestamp.UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	c.JSON(http.StatusOK, out)
}
