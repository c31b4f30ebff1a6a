package ports

import (
	"context"

	"github.com/mithaighar/sweetshop-api/internal/core/domain"
)

// AddSweetInput carries a complete sweet definition. The transport layer has
// already validated shape; business invariants are re-checked by the service.
type AddSweetInput struct {
	Name     string
	Category string
	Price    float64
	Quantity int
}

// SweetService defines the inventory use cases.
type SweetService interface {
	// List returns the whole catalog in store order.
	List(ctx context.Context) ([]domain.Sweet, error)
	// Search returns the items matching filter; an empty filter is
	// equivalent to List.
	Search(ctx context.Context, filter ListSweetsFilter) ([]domain.Sweet, error)
	Add(ctx context.Context, input AddSweetInput) (*domain.Sweet, error)
	Update(ctx context.Context, id string, patch SweetPatch) (*domain.Sweet, error)
	Remove(ctx context.Context, id string) error
	// Purchase decreases stock by qty; Restock increases it. Both reject
	// non-positive quantities before touching the store.
	Purchase(ctx context.Context, id string, qty int) (*domain.Sweet, error)
	Restock(ctx context.Context, id string, qty int) (*domain.Sweet, error)
}
