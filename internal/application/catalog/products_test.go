package catalog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	app "github.com/mohammadpnp/product-importer/internal/application/catalog"
	domain "github.com/mohammadpnp/product-importer/internal/domain/catalog"
)

type fakeProductRepo struct {
	products map[int64]*domain.Product
	nextID   int64
	listErr  error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[int64]*domain.Product)}
}

func (f *fakeProductRepo) seed(p domain.Product) *domain.Product {
	f.nextID++
	p.ID = f.nextID
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	f.products[p.ID] = &p
	return &p
}

func (f *fakeProductRepo) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.Product, 0, len(f.products))
	for id := int64(1); id <= f.nextID; id++ {
		p, ok := f.products[id]
		if !ok {
			continue
		}
		if filter.SKU != "" && domain.NormalizeSKU(p.SKU) != domain.NormalizeSKU(filter.SKU) {
			continue
		}
		if filter.Active != nil && p.Active != *filter.Active {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeProductRepo) FindByNormalizedSKU(ctx context.Context, sku string) (*domain.Product, error) {
	key := domain.NormalizeSKU(sku)
	for _, p := range f.products {
		if domain.NormalizeSKU(p.SKU) == key {
			copied := *p
			return &copied, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (f *fakeProductRepo) Insert(ctx context.Context, product *domain.Product) error {
	if _, err := f.FindByNormalizedSKU(ctx, product.SKU); err == nil {
		return domain.ErrDuplicateSKU
	}
	f.nextID++
	product.ID = f.nextID
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	copied := *product
	f.products[product.ID] = &copied
	return nil
}

func (f *fakeProductRepo) Update(ctx context.Context, product *domain.Product) error {
	if _, ok := f.products[product.ID]; !ok {
		return domain.ErrProductNotFound
	}
	copied := *product
	f.products[product.ID] = &copied
	return nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(f.products, id)
	return nil
}

func TestProductServiceCreate(t *testing.T) {
	t.Parallel()

	repo := newFakeProductRepo()
	events := &fakeEventPublisher{}
	svc := app.NewProductService(repo, events)

	out, err := svc.Create(context.Background(), app.ProductInput{
		SKU:  "  WIDGET-1  ",
		Name: "Widget",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.SKU != "WIDGET-1" {
		t.Fatalf("expected trimmed sku, got %q", out.SKU)
	}
	if !out.Active {
		t.Fatal("expected active to default to true")
	}
	if got := events.types(); len(got) != 1 || got[0] != domain.EventProductCreated {
		t.Fatalf("unexpected events: %v", got)
	}
}

func TestProductServiceCreateRequiresSKU(t *testing.T) {
	t.Parallel()

	svc := app.NewProductService(newFakeProductRepo(), &fakeEventPublisher{})

	_, err := svc.Create(context.Background(), app.ProductInput{SKU: "   ", Name: "Widget"})
	if !errors.Is(err, app.ErrInvalidProduct) {
		t.Fatalf("expected ErrInvalidProduct, got %v", err)
	}
}

func TestProductServiceCreateDuplicateSKUCaseInsensitive(t *testing.T) {
	t.Parallel()

	repo := newFakeProductRepo()
	repo.seed(domain.Product{SKU: "WIDGET-1", Name: "Widget", Active: true})
	events := &fakeEventPublisher{}
	svc := app.NewProductService(repo, events)

	_, err := svc.Create(context.Background(), app.ProductInput{SKU: "widget-1", Name: "Other"})
	if !errors.Is(err, app.ErrDuplicateSKU) {
		t.Fatalf("expected ErrDuplicateSKU, got %v", err)
	}
	if len(events.types()) != 0 {
		t.Fatal("rejected create must not publish an event")
	}
}

func TestProductServiceUpdate(t *testing.T) {
	t.Parallel()

	repo := newFakeProductRepo()
	seeded := repo.seed(domain.Product{SKU: "WIDGET-1", Name: "Widget", Active: true})
	events := &fakeEventPublisher{}
	svc := app.NewProductService(repo, events)

	inactive := false
	out, err := svc.Update(context.Background(), seeded.ID, app.ProductInput{
		SKU:    "WIDGET-1",
		Name:   "Renamed",
		Active: &inactive,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.Name != "Renamed" || out.Active {
		t.Fatalf("unexpected output: %+v", out)
	}
	if got := events.types(); len(got) != 1 || got[0] != domain.EventProductUpdated {
		t.Fatalf("unexpected events: %v", got)
	}
}

func TestProductServiceUpdateUnknown(t *testing.T) {
	t.Parallel()

	svc := app.NewProductService(newFakeProductRepo(), &fakeEventPublisher{})

	_, err := svc.Update(context.Background(), 99, app.ProductInput{SKU: "X"})
	if !errors.Is(err, app.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductServiceDelete(t *testing.T) {
	t.Parallel()

	repo := newFakeProductRepo()
	seeded := repo.seed(domain.Product{SKU: "WIDGET-1", Active: true})
	events := &fakeEventPublisher{}
	svc := app.NewProductService(repo, events)

	if err := svc.Delete(context.Background(), seeded.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := svc.Get(context.Background(), seeded.ID); !errors.Is(err, app.ErrProductNotFound) {
		t.Fatalf("expected product gone, got %v", err)
	}
	if got := events.types(); len(got) != 1 || got[0] != domain.EventProductDeleted {
		t.Fatalf("unexpected events: %v", got)
	}
}

func TestProductServiceListFilters(t *testing.T) {
	t.Parallel()

	repo := newFakeProductRepo()
	repo.seed(domain.Product{SKU: "A-1", Active: true})
	repo.seed(domain.Product{SKU: "B-1", Active: false})
	svc := app.NewProductService(repo, &fakeEventPublisher{})

	active := true
	out, err := svc.List(context.Background(), app.ListProductsInput{Active: &active})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(out) != 1 || out[0].SKU != "A-1" {
		t.Fatalf("unexpected listing: %+v", out)
	}
}
