package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "github.com/mohammadpnp/product-importer/internal/domain/catalog"
)

type productRepository interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	FindByNormalizedSKU(ctx context.Context, sku string) (*domain.Product, error)
	Insert(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int64) error
}

type ProductOutput struct {
	ID          int64     `json:"id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ListProductsInput struct {
	SKU         string
	Name        string
	Description string
	Active      *bool
	Skip        int
	Limit       int
}

type ProductInput struct {
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Active      *bool  `json:"active"`
}

// ProductService is the plain CRUD surface around the catalog store. Every
// mutation fans the matching event out to webhook subscribers as a side
// effect, decoupled from the response.
type ProductService struct {
	repo   productRepository
	events eventPublisher
}

func NewProductService(repo productRepository, events eventPublisher) *ProductService {
	return &ProductService{repo: repo, events: events}
}

func (s *ProductService) List(ctx context.Context, in ListProductsInput) ([]ProductOutput, error) {
	products, err := s.repo.List(ctx, domain.ProductFilter{
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Active:      in.Active,
		Offset:      in.Skip,
		Limit:       in.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	out := make([]ProductOutput, 0, len(products))
	for _, p := range products {
		out = append(out, toProductOutput(p))
	}
	return out, nil
}

func (s *ProductService) Get(ctx context.Context, id int64) (ProductOutput, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return ProductOutput{}, ErrProductNotFound
		}
		return ProductOutput{}, fmt.Errorf("get product: %w", err)
	}
	return toProductOutput(*product), nil
}

func (s *ProductService) Create(ctx context.Context, in ProductInput) (ProductOutput, error) {
	sku := strings.TrimSpace(in.SKU)
	if sku == "" {
		return ProductOutput{}, ErrInvalidProduct
	}

	if _, err := s.repo.FindByNormalizedSKU(ctx, sku); err == nil {
		return ProductOutput{}, ErrDuplicateSKU
	} else if !errors.Is(err, domain.ErrProductNotFound) {
		return ProductOutput{}, fmt.Errorf("check sku: %w", err)
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}

	product := &domain.Product{
		SKU:         sku,
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Active:      active,
	}
	if err := s.repo.Insert(ctx, product); err != nil {
		if errors.Is(err, domain.ErrDuplicateSKU) {
			return ProductOutput{}, ErrDuplicateSKU
		}
		return ProductOutput{}, fmt.Errorf("create product: %w", err)
	}

	out := toProductOutput(*product)
	s.events.Publish(ctx, domain.EventProductCreated, out)
	return out, nil
}

func (s *ProductService) Update(ctx context.Context, id int64, in ProductInput) (ProductOutput, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return ProductOutput{}, ErrProductNotFound
		}
		return ProductOutput{}, fmt.Errorf("get product: %w", err)
	}

	sku := strings.TrimSpace(in.SKU)
	if sku == "" {
		return ProductOutput{}, ErrInvalidProduct
	}

	existing.SKU = sku
	existing.Name = strings.TrimSpace(in.Name)
	existing.Description = strings.TrimSpace(in.Description)
	if in.Active != nil {
		existing.Active = *in.Active
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			return ProductOutput{}, ErrProductNotFound
		case errors.Is(err, domain.ErrDuplicateSKU):
			return ProductOutput{}, ErrDuplicateSKU
		}
		return ProductOutput{}, fmt.Errorf("update product: %w", err)
	}

	out := toProductOutput(*existing)
	s.events.Publish(ctx, domain.EventProductUpdated, out)
	return out, nil
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("delete product: %w", err)
	}

	s.events.Publish(ctx, domain.EventProductDeleted, map[string]int64{"id": id})
	return nil
}

func toProductOutput(p domain.Product) ProductOutput {
	return ProductOutput{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
