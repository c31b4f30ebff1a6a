package ports

import (
	"context"

	"github.com/mithaighar/sweetshop-api/internal/core/domain"
)

// ListSweetsFilter carries the optional search criteria. All set fields are
// combined conjunctively; price bounds are inclusive.
type ListSweetsFilter struct {
	Name     string   // case-insensitive substring match
	Category string   // exact match
	MinPrice *float64 // price >= MinPrice
	MaxPrice *float64 // price <= MaxPrice
}

// IsZero reports whether no filter criteria are set.
func (f ListSweetsFilter) IsZero() bool {
	return f.Name == "" && f.Category == "" && f.MinPrice == nil && f.MaxPrice == nil
}

// SweetPatch holds the optional fields of a partial update. Nil means
// "leave unchanged".
type SweetPatch struct {
	Name     *string
	Category *string
	Price    *float64
	Quantity *int
}

// IsZero reports whether the patch carries no changes.
func (p SweetPatch) IsZero() bool {
	return p.Name == nil && p.Category == nil && p.Price == nil && p.Quantity == nil
}

// SweetRepository defines persistence operations for the sweet catalog.
type SweetRepository interface {
	Create(ctx context.Context, sweet *domain.Sweet) (*domain.Sweet, error)
	FindByID(ctx context.Context, id string) (*domain.Sweet, error)
	List(ctx context.Context, filter ListSweetsFilter) ([]domain.Sweet, error)
	Update(ctx context.Context, id string, patch SweetPatch) (*domain.Sweet, error)
	Delete(ctx context.Context, id string) error

	// DecrementStock atomically decreases quantity by qty, but only when the
	// current quantity is at least qty. Returns domain.ErrSweetNotFound when
	// no document satisfied the condition; the caller decides whether that
	// means a missing sweet or insufficient stock.
	DecrementStock(ctx context.Context, id string, qty int) (*domain.Sweet, error)

	// IncrementStock atomically increases quantity by qty with no upper bound.
	IncrementStock(ctx context.Context, id string, qty int) (*domain.Sweet, error)
}
