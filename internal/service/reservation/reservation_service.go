package reservation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/wutsk/labreserve/internal/domain"
	"github.com/wutsk/labreserve/internal/kafka"
	"github.com/wutsk/labreserve/internal/locks"
	"github.com/wutsk/labreserve/internal/repository"
	"github.com/wutsk/labreserve/internal/scheduler"
	"go.uber.org/zap"
)

type ReservationUseCase interface {
	Create(ctx context.Context, input CreateInput) (*domain.Booking, error)
	Cancel(ctx context.Context, id int64) (bool, error)
	FindOverlap(ctx context.Context, query OverlapQuery) (*domain.Booking, error)
	DaySchedule(ctx context.Context, stationID string, date time.Time) ([]domain.Booking, error)
}

// JobScheduler is the external time-based job scheduler boundary.
type JobScheduler interface {
	Schedule(ctx context.Context, req scheduler.JobRequest) (int64, error)
	Cancel(ctx context.Context, jobID int64) (bool, error)
}

type Cache interface {
	GetDaySchedule(ctx context.Context, stationID string, date time.Time) ([]domain.Booking, error)
	SetDaySchedule(ctx context.Context, stationID string, date time.Time, bookings []domain.Booking) error
	InvalidateDaySchedule(ctx context.Context, stationID string, date time.Time) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// Service orchestrates booking creation and cancellation. All mutations for
// one station run under that station's lock, so two concurrent requests for
// overlapping windows cannot both pass the conflict check.
type Service struct {
	store    repository.ScheduleRepository
	jobs     JobScheduler
	cache    Cache
	producer Producer
	locks    *locks.KeyedMutex
	topic    string
	logger   *zap.Logger
}

type CreateInput struct {
	RequesterID     string `json:"requester_id"`
	StationID       string `json:"station_id"`
	StartDate       string `json:"start_date"` // 2006-01-02
	StartTime       string `json:"start_time"` // HH:MM
	DurationMinutes int    `json:"duration_minutes"`
	OperatingSystem string `json:"operating_system"`
	SubSystem       string `json:"sub_system"` // empty means no secondary image
}

type OverlapQuery struct {
	StationID       string
	Date            time.Time
	StartMinute     int
	DurationMinutes int
}

func NewService(
	store repository.ScheduleRepository,
	jobs JobScheduler,
	cache Cache,
	producer Producer,
	topic string,
	logger *zap.Logger,
) *Service {
	return &Service{
		store:    store,
		jobs:     jobs,
		cache:    cache,
		producer: producer,
		locks:    locks.NewKeyedMutex(),
		topic:    topic,
		logger:   logger,
	}
}

// Create runs the reservation saga: validate, check for an overlapping
// booking, schedule the external power-on job, persist the row. A storage
// failure after the job exists triggers a compensating cancel so no power
// action survives without a matching booking.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Booking, error) {
	booking, err := buildBooking(input)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(booking.StationID)
	defer unlock()

	existing, err := s.store.FindOverlapping(ctx, booking.StationID, booking.StartDate, booking.StartMinute, booking.DurationMinutes)
	if err == nil {
		return nil, &domain.ConflictError{Existing: existing}
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, &domain.StorageError{Op: "find overlapping", Err: err}
	}

	jobID, err := s.jobs.Schedule(ctx, scheduler.JobRequest{
		StationID: booking.StationID,
		RunAt:     booking.StartsAt(),
		Selector:  booking.Selector(),
	})
	if err != nil {
		return nil, err
	}
	booking.JobID = jobID

	if err := s.store.Create(ctx, booking); err != nil {
		if _, cancelErr := s.jobs.Cancel(ctx, jobID); cancelErr != nil {
			s.logger.Error("orphaned power-on job requires manual cleanup",
				zap.Int64("job_id", jobID),
				zap.String("station_id", booking.StationID),
				zap.NamedError("store_error", err),
				zap.NamedError("cancel_error", cancelErr))
			s.publish(ctx, kafka.EventReconciliationRequired, booking)
		} else {
			s.logger.Warn("booking write failed, power-on job cancelled",
				zap.Int64("job_id", jobID), zap.String("station_id", booking.StationID))
		}
		return nil, &domain.StorageError{Op: "create booking", Err: err}
	}

	if s.cache != nil {
		_ = s.cache.InvalidateDaySchedule(ctx, booking.StationID, booking.StartDate)
	}
	s.publish(ctx, kafka.EventReservationCreated, booking)
	return booking, nil
}

// Cancel deletes a booking and removes its scheduled job. A missing booking
// is reported as (false, nil). Job cancellation failures are logged and never
// block the delete; only a storage failure propagates.
func (s *Service) Cancel(ctx context.Context, id int64) (bool, error) {
	booking, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, &domain.StorageError{Op: "get booking", Err: err}
	}

	unlock := s.locks.Lock(booking.StationID)
	defer unlock()

	removed, err := s.jobs.Cancel(ctx, booking.JobID)
	if err != nil {
		s.logger.Warn("power-on job cancellation failed, deleting booking anyway",
			zap.Int64("job_id", booking.JobID), zap.Error(err))
	} else if !removed {
		s.logger.Info("power-on job already gone",
			zap.Int64("job_id", booking.JobID), zap.Int64("booking_id", id))
	}

	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return false, &domain.StorageError{Op: "delete booking", Err: err}
	}
	if deleted {
		if s.cache != nil {
			_ = s.cache.InvalidateDaySchedule(ctx, booking.StationID, booking.StartDate)
		}
		s.publish(ctx, kafka.EventReservationCancelled, booking)
	}
	return deleted, nil
}

// FindOverlap reports the booking colliding with the given window, or nil.
func (s *Service) FindOverlap(ctx context.Context, query OverlapQuery) (*domain.Booking, error) {
	booking, err := s.store.FindOverlapping(ctx, query.StationID, query.Date, query.StartMinute, query.DurationMinutes)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, &domain.StorageError{Op: "find overlapping", Err: err}
	}
	return booking, nil
}

// DaySchedule lists a station's bookings for one date, cache-aside.
func (s *Service) DaySchedule(ctx context.Context, stationID string, date time.Time) ([]domain.Booking, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetDaySchedule(ctx, stationID, date); err == nil && cached != nil {
			return cached, nil
		}
	}

	bookings, err := s.store.ListByStationDate(ctx, stationID, date)
	if err != nil {
		return nil, &domain.StorageError{Op: "list schedule", Err: err}
	}
	if s.cache != nil && len(bookings) > 0 {
		_ = s.cache.SetDaySchedule(ctx, stationID, date, bookings)
	}
	return bookings, nil
}

func buildBooking(input CreateInput) (*domain.Booking, error) {
	var fields []string

	if input.RequesterID == "" {
		fields = append(fields, "requester_id")
	}
	if input.StationID == "" {
		fields = append(fields, "station_id")
	}
	if input.OperatingSystem == "" {
		fields = append(fields, "operating_system")
	}

	startDate, err := time.ParseInLocation("2006-01-02", input.StartDate, time.UTC)
	if err != nil {
		fields = append(fields, "start_date")
	}

	startMinute, err := domain.ParseClock(input.StartTime)
	if err != nil {
		fields = append(fields, "start_time")
	}

	if input.DurationMinutes <= 0 {
		fields = append(fields, "duration_minutes")
	} else if startMinute+input.DurationMinutes > domain.MinutesPerDay {
		// Overlap detection compares same-date windows only, so a window may
		// not cross midnight.
		fields = append(fields, "duration_minutes")
	}

	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}

	booking := &domain.Booking{
		RequesterID:     input.RequesterID,
		StationID:       input.StationID,
		StartDate:       startDate,
		StartMinute:     startMinute,
		DurationMinutes: input.DurationMinutes,
		OperatingSystem: input.OperatingSystem,
	}
	if input.SubSystem != "" {
		sub := input.SubSystem
		booking.SubSystem = &sub
	}
	return booking, nil
}

func (s *Service) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.topic == "" {
		return
	}
	event := kafka.ReservationEvent{
		EventID:     uuid.NewString(),
		Type:        eventType,
		BookingID:   booking.ID,
		RequesterID: booking.RequesterID,
		StationID:   booking.StationID,
		StartDate:   booking.StartDate.Format("2006-01-02"),
		StartTime:   domain.FormatClock(booking.StartMinute),
		Duration:    booking.DurationMinutes,
		JobID:       booking.JobID,
		OccurredAt:  time.Now().UTC(),
	}
	if err := s.producer.Publish(ctx, s.topic, booking.StationID, event); err != nil {
		s.logger.Warn("failed to publish reservation event",
			zap.String("type", eventType), zap.Error(err))
	}
}

var _ ReservationUseCase = (*Service)(nil)
