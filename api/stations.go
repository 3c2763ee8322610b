package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/wutsk/labreserve/internal/kafka"
	"github.com/wutsk/labreserve/internal/power"
	"github.com/wutsk/labreserve/internal/service/reservation"
	"go.uber.org/zap"
)

// PowerController is the out-of-band management controller boundary.
type PowerController interface {
	Do(ctx context.Context, stationID, action string) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type StationHandler struct {
	reservations reservation.ReservationUseCase
	power        PowerController
	producer     Producer
	auditTopic   string
	logger       *zap.Logger
}

type powerRequest struct {
	Action string `json:"action"`
}

func NewStationHandler(reservations reservation.ReservationUseCase, powerClient PowerController, producer Producer, auditTopic string, logger *zap.Logger) *StationHandler {
	return &StationHandler{
		reservations: reservations,
		power:        powerClient,
		producer:     producer,
		auditTopic:   auditTopic,
		logger:       logger,
	}
}

func (h *StationHandler) Register(router *gin.RouterGroup) {
	router.GET("/:id/schedule", h.schedule)
	router.POST("/:id/power", h.powerAction)
}

func (h *StationHandler) schedule(c *gin.Context) {
	stationID := c.Param("id")
	date, err := time.ParseInLocation("2006-01-02", c.Query("date"), time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required as YYYY-MM-DD"})
		return
	}

	bookings, err := h.reservations.DaySchedule(c.Request.Context(), stationID, date)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]reservationResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, toResponse(&bookings[i]))
	}
	c.JSON(http.StatusOK, out)
}

// powerAction drives the station's management controller directly, outside
// any reservation. Authentication happens upstream; the requester identity
// arrives in a header and is audited.
func (h *StationHandler) powerAction(c *gin.Context) {
	stationID := c.Param("id")

	var req powerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !power.ValidAction(req.Action) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid action"})
		return
	}

	if err := h.power.Do(c.Request.Context(), stationID, req.Action); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	h.audit(c, stationID, req.Action)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *StationHandler) audit(c *gin.Context, stationID, action string) {
	if h.producer == nil || h.auditTopic == "" {
		return
	}
	event := kafka.ActionEvent{
		EventID:     uuid.NewString(),
		Type:        kafka.EventPowerAction,
		RequesterID: c.GetHeader("X-Requester-ID"),
		Action:      action,
		StationID:   stationID,
		OccurredAt:  time.Now().UTC(),
	}
	if err := h.producer.Publish(c.Request.Context(), h.auditTopic, stationID, event); err != nil {
		h.logger.Warn("failed to publish power action event",
			zap.String("station_id", stationID), zap.Error(err))
	}
}
