package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wutsk/labreserve/internal/domain"
	"github.com/wutsk/labreserve/internal/service/reservation"
)

type ReservationHandler struct {
	service reservation.ReservationUseCase
}

type reservationResponse struct {
	BookingID       int64   `json:"booking_id"`
	JobID           int64   `json:"job_id"`
	RequesterID     string  `json:"requester_id"`
	StationID       string  `json:"station_id"`
	StartDate       string  `json:"start_date"`
	StartTime       string  `json:"start_time"`
	DurationMinutes int     `json:"duration_minutes"`
	OperatingSystem string  `json:"operating_system"`
	SubSystem       *string `json:"sub_system,omitempty"`
}

func NewReservationHandler(service reservation.ReservationUseCase) *ReservationHandler {
	return &ReservationHandler{service: service}
}

func (h *ReservationHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.DELETE("/:id", h.cancel)
	router.GET("/overlap", h.overlap)
}

func (h *ReservationHandler) create(c *gin.Context) {
	var input reservation.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toResponse(booking))
}

func (h *ReservationHandler) cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	deleted, err := h.service.Cancel(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

func (h *ReservationHandler) overlap(c *gin.Context) {
	stationID := c.Query("station_id")
	date, dateErr := time.ParseInLocation("2006-01-02", c.Query("date"), time.UTC)
	startMinute, startErr := domain.ParseClock(c.Query("start"))
	duration, durErr := strconv.Atoi(c.Query("duration"))
	if stationID == "" || dateErr != nil || startErr != nil || durErr != nil || duration <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "station_id, date, start and duration are required"})
		return
	}

	booking, err := h.service.FindOverlap(c.Request.Context(), reservation.OverlapQuery{
		StationID:       stationID,
		Date:            date,
		StartMinute:     startMinute,
		DurationMinutes: duration,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	if booking == nil {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, toResponse(booking))
}

func toResponse(b *domain.Booking) reservationResponse {
	return reservationResponse{
		BookingID:       b.ID,
		JobID:           b.JobID,
		RequesterID:     b.RequesterID,
		StationID:       b.StationID,
		StartDate:       b.StartDate.Format("2006-01-02"),
		StartTime:       domain.FormatClock(b.StartMinute),
		DurationMinutes: b.DurationMinutes,
		OperatingSystem: b.OperatingSystem,
		SubSystem:       b.SubSystem,
	}
}

// writeError maps the domain error taxonomy onto HTTP statuses so callers can
// tell field errors, conflicts and downstream failures apart.
func writeError(c *gin.Context, err error) {
	var (
		validationErr *domain.ValidationError
		conflictErr   *domain.ConflictError
		schedulingErr *domain.SchedulingError
	)
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error(), "fields": validationErr.Fields})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{"error": conflictErr.Error(), "conflict": toResponse(conflictErr.Existing)})
	case errors.As(err, &schedulingErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": schedulingErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
