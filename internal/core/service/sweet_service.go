package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/mithaighar/sweetshop-api/internal/api/metrics"
	"github.com/mithaighar/sweetshop-api/internal/core/domain"
	"github.com/mithaighar/sweetshop-api/internal/core/ports"
)

// CatalogCache abstracts the catalog cache (Redis). Only the unfiltered
// listing is cached; any mutation invalidates it.
type CatalogCache interface {
	Get(ctx context.Context) ([]domain.Sweet, bool, error)
	Set(ctx context.Context, sweets []domain.Sweet) error
	Invalidate(ctx context.Context) error
}

// SweetService implements the inventory use cases.
type SweetService struct {
	repo  ports.SweetRepository
	cache CatalogCache
	log   zerolog.Logger
}

func NewSweetService(repo ports.SweetRepository, cache CatalogCache, log zerolog.Logger) *SweetService {
	return &SweetService{repo: repo, cache: cache, log: log}
}

// List returns the whole catalog, served from cache when warm. Cache
// failures are logged and fall through to the store.
func (s *SweetService) List(ctx context.Context) ([]domain.Sweet, error) {
	if s.cache != nil {
		sweets, ok, err := s.cache.Get(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("catalog cache read failed, falling back to store")
		} else if ok {
			metrics.CatalogCacheTotal.WithLabelValues("hit").Inc()
			return sweets, nil
		} else {
			metrics.CatalogCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	sweets, err := s.repo.List(ctx, ports.ListSweetsFilter{})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, sweets); err != nil {
			s.log.Warn().Err(err).Msg("catalog cache write failed")
		}
	}
	return sweets, nil
}

// Search returns the items matching filter. An empty filter is equivalent
// to List.
func (s *SweetService) Search(ctx context.Context, filter ports.ListSweetsFilter) ([]domain.Sweet, error) {
	if filter.IsZero() {
		return s.List(ctx)
	}
	return s.repo.List(ctx, filter)
}

// Add persists a new catalog entry.
func (s *SweetService) Add(ctx context.Context, input ports.AddSweetInput) (*domain.Sweet, error) {
	if input.Name == "" || !domain.ValidCategory(input.Category) || input.Price <= 0 || input.Quantity < 0 {
		return nil, domain.NewValidationError("invalid sweet")
	}

	created, err := s.repo.Create(ctx, &domain.Sweet{
		Name:     input.Name,
		Category: input.Category,
		Price:    input.Price,
		Quantity: input.Quantity,
	})
	if err != nil {
		return nil, err
	}

	metrics.SweetsCreatedTotal.WithLabelValues(created.Category).Inc()
	s.log.Info().Str("sweet_id", created.ID).Str("name", created.Name).Msg("sweet added")
	s.invalidateCatalog(ctx)
	return created, nil
}

// Update applies a partial update. A malformed id is treated the same as a
// missing sweet.
func (s *SweetService) Update(ctx context.Context, id string, patch ports.SweetPatch) (*domain.Sweet, error) {
	if !domain.IsValidID(id) {
		return nil, domain.ErrSweetNotFound
	}
	if patch.IsZero() {
		return s.repo.FindByID(ctx, id)
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("sweet_id", id).Msg("sweet updated")
	s.invalidateCatalog(ctx)
	return updated, nil
}

// Remove deletes a catalog entry.
func (s *SweetService) Remove(ctx context.Context, id string) error {
	if !domain.IsValidID(id) {
		return domain.ErrSweetNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("sweet_id", id).Msg("sweet deleted")
	s.invalidateCatalog(ctx)
	return nil
}

// Purchase decreases stock by qty. Preconditions are checked in order:
// positive quantity, id format, existence, sufficiency. The decrement itself
// is a single conditional store operation, so two concurrent purchases can
// never drive the quantity negative; the loser of the race gets the same
// insufficient-stock outcome as a failed pre-check.
func (s *SweetService) Purchase(ctx context.Context, id string, qty int) (*domain.Sweet, error) {
	if qty <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if !domain.IsValidID(id) {
		return nil, domain.ErrSweetNotFound
	}

	sweet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sweet.Quantity < qty {
		metrics.StockConflictsTotal.Inc()
		return nil, domain.ErrInsufficientStock
	}

	updated, err := s.repo.DecrementStock(ctx, id, qty)
	if err != nil {
		if errors.Is(err, domain.ErrSweetNotFound) {
			// The sweet existed a moment ago: a concurrent purchase drained
			// the stock between the check and the write.
			metrics.StockConflictsTotal.Inc()
			return nil, domain.ErrInsufficientStock
		}
		return nil, err
	}

	metrics.PurchasesTotal.WithLabelValues(updated.Category).Inc()
	s.log.Info().Str("sweet_id", id).Int("quantity", qty).Int("remaining", updated.Quantity).Msg("sweet purchased")
	s.invalidateCatalog(ctx)
	return updated, nil
}

// Restock increases stock by qty with no upper bound. Same precondition
// ordering as Purchase.
func (s *SweetService) Restock(ctx context.Context, id string, qty int) (*domain.Sweet, error) {
	if qty <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if !domain.IsValidID(id) {
		return nil, domain.ErrSweetNotFound
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	updated, err := s.repo.IncrementStock(ctx, id, qty)
	if err != nil {
		return nil, err
	}

	metrics.RestocksTotal.WithLabelValues(updated.Category).Inc()
	s.log.Info().Str("sweet_id", id).Int("quantity", qty).Int("stock", updated.Quantity).Msg("sweet restocked")
	s.invalidateCatalog(ctx)
	return updated, nil
}

func (s *SweetService) invalidateCatalog(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("catalog cache invalidation failed")
	}
}
