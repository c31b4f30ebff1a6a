package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/mithaighar/sweetshop-api/internal/core/domain"
	"github.com/mithaighar/sweetshop-api/internal/core/ports"
)

const (
	idKaju  = "64a1f0c2e3b4a5d6c7e8f901"
	idLaddu = "64a1f0c2e3b4a5d6c7e8f902"
	idGhost = "64a1f0c2e3b4a5d6c7e8f9ff"
)

type stubSweetRepo struct {
	mu     sync.Mutex
	sweets map[string]*domain.Sweet
	calls  []string

	lastFilter ports.ListSweetsFilter
}

func newStubSweetRepo(seed ...domain.Sweet) *stubSweetRepo {
	r := &stubSweetRepo{sweets: make(map[string]*domain.Sweet)}
	for i := range seed {
		s := seed[i]
		r.sweets[s.ID] = &s
	}
	return r
}

func (r *stubSweetRepo) record(call string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
}

func (r *stubSweetRepo) Create(_ context.Context, sweet *domain.Sweet) (*domain.Sweet, error) {
	r.record("Create")
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.sweets {
		if existing.Name == sweet.Name {
			return nil, domain.ErrDuplicateSweet
		}
	}
	created := *sweet
	created.ID = idKaju
	r.sweets[created.ID] = &created
	clone := created
	return &clone, nil
}

func (r *stubSweetRepo) FindByID(_ context.Context, id string) (*domain.Sweet, error) {
	r.record("FindByID")
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sweets[id]; ok {
		clone := *s
		return &clone, nil
	}
	return nil, domain.ErrSweetNotFound
}

func (r *stubSweetRepo) List(_ context.Context, filter ports.ListSweetsFilter) ([]domain.Sweet, error) {
	r.record("List")
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastFilter = filter
	out := make([]domain.Sweet, 0, len(r.sweets))
	for _, s := range r.sweets {
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubSweetRepo) Update(_ context.Context, id string, patch ports.SweetPatch) (*domain.Sweet, error) {
	r.record("Update")
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sweets[id]
	if !ok {
		return nil, domain.ErrSweetNotFound
	}
	if patch.Name != nil {
		s.Name = *patch.Name
	}
	if patch.Category != nil {
		s.Category = *patch.Category
	}
	if patch.Price != nil {
		s.Price = *patch.Price
	}
	if patch.Quantity != nil {
		s.Quantity = *patch.Quantity
	}
	clone := *s
	return &clone, nil
}

func (r *stubSweetRepo) Delete(_ context.Context, id string) error {
	r.record("Delete")
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sweets[id]; !ok {
		return domain.ErrSweetNotFound
	}
	delete(r.sweets, id)
	return nil
}

func (r *stubSweetRepo) DecrementStock(_ context.Context, id string, qty int) (*domain.Sweet, error) {
	r.record("DecrementStock")
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sweets[id]
	if !ok || s.Quantity < qty {
		// Mirrors the store: the conditional update matched no document.
		return nil, domain.ErrSweetNotFound
	}
	s.Quantity -= qty
	clone := *s
	return &clone, nil
}

func (r *stubSweetRepo) IncrementStock(_ context.Context, id string, qty int) (*domain.Sweet, error) {
	r.record("IncrementStock")
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sweets[id]
	if !ok {
		return nil, domain.ErrSweetNotFound
	}
	s.Quantity += qty
	clone := *s
	return &clone, nil
}

type stubCache struct {
	data        []domain.Sweet
	warm        bool
	sets        int
	invalidated int
}

func (c *stubCache) Get(_ context.Context) ([]domain.Sweet, bool, error) {
	if !c.warm {
		return nil, false, nil
	}
	return c.data, true, nil
}

func (c *stubCache) Set(_ context.Context, sweets []domain.Sweet) error {
	c.data = sweets
	c.warm = true
	c.sets++
	return nil
}

func (c *stubCache) Invalidate(_ context.Context) error {
	c.data = nil
	c.warm = false
	c.invalidated++
	return nil
}

func newSweetService(repo ports.SweetRepository, cache CatalogCache) *SweetService {
	return NewSweetService(repo, cache, zerolog.Nop())
}

func kajuKatli(qty int) domain.Sweet {
	return domain.Sweet{ID: idKaju, Name: "Kaju Katli", Category: domain.CategoryBarfi, Price: 50, Quantity: qty}
}

func TestSweetService_Purchase_Success(t *testing.T) {
	repo := newStubSweetRepo(kajuKatli(10))
	svc := newSweetService(repo, nil)

	updated, err := svc.Purchase(context.Background(), idKaju, 2)
	if err != nil {
		t.Fatalf("purchase failed: %v", err)
	}
	if updated.Quantity != 8 {
		t.Fatalf("expected quantity 8, got %d", updated.Quantity)
	}
}

func TestSweetService_Purchase_InsufficientStock(t *testing.T) {
	repo := newStubSweetRepo(kajuKatli(10))
	svc := newSweetService(repo, nil)

	if _, err := svc.Purchase(context.Background(), idKaju, 20); !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	sweet, _ := repo.FindByID(context.Background(), idKaju)
	if sweet.Quantity != 10 {
		t.Fatalf("quantity changed on failed purchase: %d", sweet.Quantity)
	}
}

// An invalid quantity must fail before any store access.
func TestSweetService_Purchase_InvalidQuantity(t *testing.T) {
	repo := newStubSweetRepo(kajuKatli(10))
	svc := newSweetService(repo, nil)

	for _, qty := range []int{0, -3} {
		if _, err := svc.Purchase(context.Background(), idKaju, qty); !errors.Is(err, domain.ErrInvalidQuantity) {
			t.Fatalf("qty %d: expected ErrInvalidQuantity, got %v", qty, err)
		}
	}
	if len(repo.calls) != 0 {
		t.Fatalf("store accessed on invalid quantity: %v", repo.calls)
	}
}

func TestSweetService_Purchase_MalformedID(t *testing.T) {
	repo := newStubSweetRepo()
	svc := newSweetService(repo, nil)

	if _, err := svc.Purchase(context.Background(), "not-a-valid-id", 1); !errors.Is(err, domain.ErrSweetNotFound) {
		t.Fatalf("expected ErrSweetNotFound, got %v", err)
	}
	if len(repo.calls) != 0 {
		t.Fatalf("store accessed on malformed id: %v", repo.calls)
	}
}

func TestSweetService_Purchase_Missing(t *testing.T) {
	svc := newSweetService(newStubSweetRepo(), nil)

	if _, err := svc.Purchase(context.Background(), idGhost, 1); !errors.Is(err, domain.ErrSweetNotFound) {
		t.Fatalf("expected ErrSweetNotFound, got %v", err)
	}
}

// Two concurrent purchases whose combined quantity exceeds stock must not
// both succeed: the conditional decrement makes the loser of the race see
// insufficient stock.
func TestSweetService_Purchase_Concurrent(t *testing.T) {
	repo := newStubSweetRepo(kajuKatli(10))
	svc := newSweetService(repo, nil)

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Purchase(context.Background(), idKaju, 6)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, insufficient int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientStock):
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || insufficient != 1 {
		t.Fatalf("expected exactly one success and one conflict, got %d/%d", ok, insufficient)
	}

	sweet, _ := repo.FindByID(context.Background(), idKaju)
	if sweet.Quantity != 4 {
		t.Fatalf("expected final quantity 4, got %d", sweet.Quantity)
	}
}

func TestSweetService_Restock_Success(t *testing.T) {
	repo := newStubSweetRepo(kajuKatli(10))
	svc := newSweetService(repo, nil)

	updated, err := svc.Restock(context.Background(), idKaju, 5)
	if err != nil {
		t.Fatalf("restock failed: %v", err)
	}
	if updated.Quantity != 15 {
		t.Fatalf("expected quantity 15, got %d", updated.Quantity)
	}
}

func TestSweetService_Restock_InvalidQuantity(t *testing.T) {
	repo := newStubSweetRepo(kajuKatli(10))
	svc := newSweetService(repo, nil)

	if _, err := svc.Restock(context.Background(), idKaju, 0); !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if len(repo.calls) != 0 {
		t.Fatalf("store accessed on invalid quantity: %v", repo.calls)
	}
}

// Malformed and well-formed-but-absent ids both surface as not-found.
func TestSweetService_Update_NotFound(t *testing.T) {
	svc := newSweetService(newStubSweetRepo(), nil)

	name := "Rasgulla"
	for _, id := range []string{"123", idGhost} {
		if _, err := svc.Update(context.Background(), id, ports.SweetPatch{Name: &name}); !errors.Is(err, domain.ErrSweetNotFound) {
			t.Fatalf("id %q: expected ErrSweetNotFound, got %v", id, err)
		}
	}
}

func TestSweetService_Update_Partial(t *testing.T) {
	repo := newStubSweetRepo(kajuKatli(10))
	svc := newSweetService(repo, nil)

	price := 75.0
	updated, err := svc.Update(context.Background(), idKaju, ports.SweetPatch{Price: &price})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Price != 75 {
		t.Fatalf("expected price 75, got %v", updated.Price)
	}
	if updated.Name != "Kaju Katli" || updated.Quantity != 10 {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}

func TestSweetService_Add_Duplicate(t *testing.T) {
	repo := newStubSweetRepo(kajuKatli(10))
	svc := newSweetService(repo, nil)

	_, err := svc.Add(context.Background(), ports.AddSweetInput{
		Name: "Kaju Katli", Category: domain.CategoryBarfi, Price: 50, Quantity: 5,
	})
	if !errors.Is(err, domain.ErrDuplicateSweet) {
		t.Fatalf("expected ErrDuplicateSweet, got %v", err)
	}
}

func TestSweetService_Remove(t *testing.T) {
	repo := newStubSweetRepo(kajuKatli(10))
	svc := newSweetService(repo, nil)

	if err := svc.Remove(context.Background(), idKaju); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := svc.Remove(context.Background(), idKaju); !errors.Is(err, domain.ErrSweetNotFound) {
		t.Fatalf("expected ErrSweetNotFound, got %v", err)
	}
	if err := svc.Remove(context.Background(), "short"); !errors.Is(err, domain.ErrSweetNotFound) {
		t.Fatalf("malformed id: expected ErrSweetNotFound, got %v", err)
	}
}

func TestSweetService_Search_EmptyFilterEqualsList(t *testing.T) {
	repo := newStubSweetRepo(kajuKatli(10), domain.Sweet{
		ID: idLaddu, Name: "Motichoor Laddu", Category: domain.CategoryLaddu, Price: 20, Quantity: 50,
	})
	svc := newSweetService(repo, nil)

	all, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	found, err := svc.Search(context.Background(), ports.ListSweetsFilter{})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(all) != 2 || len(found) != 2 {
		t.Fatalf("expected both calls to return 2 items, got %d and %d", len(all), len(found))
	}
}

func TestSweetService_Search_FilterPassedToStore(t *testing.T) {
	repo := newStubSweetRepo(kajuKatli(10))
	svc := newSweetService(repo, nil)

	min := 100.0
	filter := ports.ListSweetsFilter{Name: "kaju", Category: domain.CategoryBarfi, MinPrice: &min}
	if _, err := svc.Search(context.Background(), filter); err != nil {
		t.Fatalf("search failed: %v", err)
	}

	got := repo.lastFilter
	if got.Name != "kaju" || got.Category != domain.CategoryBarfi {
		t.Fatalf("filter not forwarded: %+v", got)
	}
	if got.MinPrice == nil || *got.MinPrice != 100 || got.MaxPrice != nil {
		t.Fatalf("price bounds not forwarded: %+v", got)
	}
}

func TestSweetService_List_Cache(t *testing.T) {
	repo := newStubSweetRepo(kajuKatli(10))
	cache := &stubCache{}
	svc := newSweetService(repo, cache)

	// Cold cache: store hit plus a cache fill.
	if _, err := svc.List(context.Background()); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("expected cache fill, sets=%d", cache.sets)
	}

	// Warm cache: no further store access.
	storeCalls := len(repo.calls)
	sweets, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(repo.calls) != storeCalls {
		t.Fatalf("store accessed despite warm cache")
	}
	if len(sweets) != 1 {
		t.Fatalf("expected 1 cached sweet, got %d", len(sweets))
	}
}

func TestSweetService_Mutations_InvalidateCache(t *testing.T) {
	repo := newStubSweetRepo(kajuKatli(10))
	cache := &stubCache{}
	svc := newSweetService(repo, cache)

	if _, err := svc.Purchase(context.Background(), idKaju, 1); err != nil {
		t.Fatalf("purchase failed: %v", err)
	}
	if _, err := svc.Restock(context.Background(), idKaju, 1); err != nil {
		t.Fatalf("restock failed: %v", err)
	}
	if err := svc.Remove(context.Background(), idKaju); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if cache.invalidated != 3 {
		t.Fatalf("expected 3 invalidations, got %d", cache.invalidated)
	}
}
