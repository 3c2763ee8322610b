package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wutsk/labreserve/internal/domain"
)

type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.ActionLogEntry) error
	ListRecent(ctx context.Context, limit int) ([]domain.ActionLogEntry, error)
}

type PGAuditRepository struct {
	db *pgxpool.Pool
}

func NewAuditRepository(db *pgxpool.Pool) AuditRepository {
	return &PGAuditRepository{db: db}
}

func (r *PGAuditRepository) Insert(ctx context.Context, entry *domain.ActionLogEntry) error {
	return r.db.QueryRow(ctx, `INSERT INTO actions (requester_id, action, station_id)
		VALUES ($1, $2, $3)
		RETURNING id, timestamp`, entry.RequesterID, entry.Action, entry.StationID).
		Scan(&entry.ID, &entry.Timestamp)
}

func (r *PGAuditRepository) ListRecent(ctx context.Context, limit int) ([]domain.ActionLogEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(ctx, `SELECT id, requester_id, action, station_id, timestamp FROM actions
		ORDER BY timestamp DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.ActionLogEntry
	for rows.Next() {
		var e domain.ActionLogEntry
		if err := rows.Scan(&e.ID, &e.RequesterID, &e.Action, &e.StationID, &e.Timestamp); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

var _ AuditRepository = (*PGAuditRepository)(nil)
