package repository

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/mohammadpnp/product-importer/internal/domain/catalog"
	"github.com/mohammadpnp/product-importer/internal/infrastructure/db/models"
	"gorm.io/gorm"
)

// ProductRepository persists catalog entities through gorm. Duplicate-key
// translation relies on the connection being opened with TranslateError.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// FindByNormalizedSKU looks a product up by its case-normalized natural key.
func (r *ProductRepository) FindByNormalizedSKU(ctx context.Context, sku string) (*domain.Product, error) {
	var row models.Product

	err := r.db.WithContext(ctx).
		Where("LOWER(sku) = ?", domain.NormalizeSKU(sku)).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product by sku: %w", err)
	}

	return toDomainProduct(row), nil
}

func (r *ProductRepository) Insert(ctx context.Context, product *domain.Product) error {
	row := models.Product{
		SKU:         product.SKU,
		Name:        product.Name,
		Description: product.Description,
		Active:      product.Active,
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateSKU
		}
		return fmt.Errorf("insert product: %w", err)
	}

	product.ID = row.ID
	product.CreatedAt = row.CreatedAt
	product.UpdatedAt = row.UpdatedAt
	return nil
}

// UpdateFields overwrites name and description in place, leaving the SKU and
// active flag untouched.
func (r *ProductRepository) UpdateFields(ctx context.Context, id int64, name, description string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Updates(map[string]any{"name": name, "description": description})
	if res.Error != nil {
		return fmt.Errorf("update product fields: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var row models.Product

	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("get product by id: %w", err)
	}

	return toDomainProduct(row), nil
}

func (r *ProductRepository) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})

	if filter.SKU != "" {
		query = query.Where("sku ILIKE ?", "%"+filter.SKU+"%")
	}
	if filter.Name != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Description != "" {
		query = query.Where("description ILIKE ?", "%"+filter.Description+"%")
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	var rows []models.Product
	if err := query.Order("id").Offset(filter.Offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, *toDomainProduct(row))
	}
	return products, nil
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"sku":         product.SKU,
			"name":        product.Name,
			"description": product.Description,
			"active":      product.Active,
		})
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateSKU
		}
		return fmt.Errorf("update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func toDomainProduct(row models.Product) *domain.Product {
	return &domain.Product{
		ID:          row.ID,
		SKU:         row.SKU,
		Name:        row.Name,
		Description: row.Description,
		Active:      row.Active,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
