package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wutsk/labreserve/internal/domain"
)

type ScheduleRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) (bool, error)
	FindOverlapping(ctx context.Context, stationID string, date time.Time, startMinute, durationMinutes int) (*domain.Booking, error)
	ListByStationDate(ctx context.Context, stationID string, date time.Time) ([]domain.Booking, error)
	PurgeEndedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type PGScheduleRepository struct {
	db *pgxpool.Pool
}

func NewScheduleRepository(db *pgxpool.Pool) ScheduleRepository {
	return &PGScheduleRepository{db: db}
}

const bookingColumns = `id, requester_id, station_id, start_date, start_minute, duration_minutes, operating_system, sub_system, job_id, created_at`

func (r *PGScheduleRepository) Create(ctx context.Context, b *domain.Booking) error {
	return r.db.QueryRow(ctx, `INSERT INTO bookings (requester_id, station_id, start_date, start_minute, duration_minutes, operating_system, sub_system, job_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`,
		b.RequesterID, b.StationID, b.StartDate, b.StartMinute, b.DurationMinutes, b.OperatingSystem, b.SubSystem, b.JobID).
		Scan(&b.ID, &b.CreatedAt)
}

func (r *PGScheduleRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *PGScheduleRepository) Delete(ctx context.Context, id int64) (bool, error) {
	cmd, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

// FindOverlapping returns one booking on the same station and date whose
// half-open window intersects [startMinute, startMinute+durationMinutes),
// or domain.ErrNotFound. Touching endpoints do not intersect. Windows
// compare as integer minutes: TIME arithmetic wraps modulo 24h, which would
// let a window ending exactly at midnight slip past the predicate.
func (r *PGScheduleRepository) FindOverlapping(ctx context.Context, stationID string, date time.Time, startMinute, durationMinutes int) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings
		WHERE station_id=$1 AND start_date=$2
		  AND start_minute < $3
		  AND start_minute + duration_minutes > $4
		ORDER BY start_minute
		LIMIT 1`,
		stationID, date, startMinute+durationMinutes, startMinute)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *PGScheduleRepository) ListByStationDate(ctx context.Context, stationID string, date time.Time) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings
		WHERE station_id=$1 AND start_date=$2
		ORDER BY start_minute`, stationID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

// PurgeEndedBefore removes bookings whose windows ended before cutoff. Their
// jobs have long fired, so no scheduler cancellation is involved.
func (r *PGScheduleRepository) PurgeEndedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	cmd, err := r.db.Exec(ctx, `DELETE FROM bookings
		WHERE start_date + make_interval(mins => start_minute + duration_minutes) < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.RequesterID, &b.StationID, &b.StartDate, &b.StartMinute, &b.DurationMinutes, &b.OperatingSystem, &b.SubSystem, &b.JobID, &b.CreatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

var _ ScheduleRepository = (*PGScheduleRepository)(nil)
