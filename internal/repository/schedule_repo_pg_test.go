package repository

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewScheduleRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewScheduleRepository(pool)
	assert.NotNil(t, repo)
}

func TestNewCatalogRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewCatalogRepository(pool)
	assert.NotNil(t, repo)
}

func TestNewAuditRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewAuditRepository(pool)
	assert.NotNil(t, repo)
}
