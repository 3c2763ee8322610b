package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wutsk/labreserve/internal/domain"
)

type CatalogRepository interface {
	ListOperatingSystems(ctx context.Context) ([]domain.OperatingSystem, error)
}

type PGCatalogRepository struct {
	db *pgxpool.Pool
}

func NewCatalogRepository(db *pgxpool.Pool) CatalogRepository {
	return &PGCatalogRepository{db: db}
}

func (r *PGCatalogRepository) ListOperatingSystems(ctx context.Context) ([]domain.OperatingSystem, error) {
	rows, err := r.db.Query(ctx, `SELECT id, code, name FROM operating_systems ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var systems []domain.OperatingSystem
	byID := make(map[int64]int)
	for rows.Next() {
		var os domain.OperatingSystem
		if err := rows.Scan(&os.ID, &os.Code, &os.Name); err != nil {
			return nil, err
		}
		byID[os.ID] = len(systems)
		systems = append(systems, os)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	subRows, err := r.db.Query(ctx, `SELECT id, code, name, operating_system_id FROM sub_systems ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer subRows.Close()

	for subRows.Next() {
		var sub domain.SubSystem
		if err := subRows.Scan(&sub.ID, &sub.Code, &sub.Name, &sub.OperatingSystemID); err != nil {
			return nil, err
		}
		if idx, ok := byID[sub.OperatingSystemID]; ok {
			systems[idx].SubSystems = append(systems[idx].SubSystems, sub)
		}
	}
	return systems, subRows.Err()
}

var _ CatalogRepository = (*PGCatalogRepository)(nil)
