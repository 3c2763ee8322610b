package catalog

import (
	"context"

	"github.com/wutsk/labreserve/internal/domain"
	"github.com/wutsk/labreserve/internal/repository"
)

type CatalogUseCase interface {
	ListSystems(ctx context.Context) ([]domain.OperatingSystem, error)
}

type Cache interface {
	GetCatalog(ctx context.Context) ([]domain.OperatingSystem, error)
	SetCatalog(ctx context.Context, systems []domain.OperatingSystem) error
}

// Service serves the boot image catalog (operating systems and their
// sub-systems) with cache-aside reads. The catalog changes rarely.
type Service struct {
	repo  repository.CatalogRepository
	cache Cache
}

func NewService(repo repository.CatalogRepository, cache Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

func (s *Service) ListSystems(ctx context.Context) ([]domain.OperatingSystem, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetCatalog(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	systems, err := s.repo.ListOperatingSystems(ctx)
	if err != nil {
		return nil, &domain.StorageError{Op: "list systems", Err: err}
	}
	if s.cache != nil {
		_ = s.cache.SetCatalog(ctx, systems)
	}
	return systems, nil
}

var _ CatalogUseCase = (*Service)(nil)
