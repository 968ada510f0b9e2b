package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sweetshop/inventory-api/internal/core/domain"
	"github.com/sweetshop/inventory-api/internal/core/ports"
)

type CatalogService struct {
	repo ports.SweetRepository
	log  zerolog.Logger
}

func NewCatalogService(repo ports.SweetRepository, log zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, log: log}
}

func (s *CatalogService) Create(ctx context.Context, draft domain.SweetDraft) (*domain.Sweet, error) {
	sweet, err := domain.NewSweet(draft)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &sweet)
	if err != nil {
		return nil, fmt.Errorf("create sweet: %w", err)
	}

	s.log.Info().Str("sweet_id", created.ID).Str("name", created.Name).Msg("sweet created")
	return created, nil
}

func (s *CatalogService) List(ctx context.Context) ([]domain.Sweet, error) {
	return s.Search(ctx, domain.SweetFilter{})
}

// Search returns every sweet matching filter. No match is an empty slice,
// never an error.
func (s *CatalogService) Search(ctx context.Context, filter domain.SweetFilter) ([]domain.Sweet, error) {
	filter.Name = strings.TrimSpace(filter.Name)

	sweets, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find sweets: %w", err)
	}
	if sweets == nil {
		sweets = []domain.Sweet{}
	}
	return sweets, nil
}

// Update validates the merged record before writing; a patch that would
// break an invariant is rejected as a whole. Only the patched fields are
// written, so a purchase landing between the read and the write survives.
func (s *CatalogService) Update(ctx context.Context, id string, patch domain.SweetPatch) (*domain.Sweet, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update sweet: %w", err)
	}

	merged, err := domain.ApplyPatch(*existing, patch)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, patch.Narrow(merged))
	if err != nil {
		return nil, fmt.Errorf("update sweet: %w", err)
	}

	s.log.Info().Str("sweet_id", updated.ID).Msg("sweet updated")
	return updated, nil
}

func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete sweet: %w", err)
	}
	s.log.Info().Str("sweet_id", id).Msg("sweet deleted")
	return nil
}
