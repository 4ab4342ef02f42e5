package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"rewardhub/internal/adapters/persistence/models"
	"rewardhub/internal/adapters/persistence/repositories"
	"rewardhub/internal/core/domain"
	"rewardhub/internal/pkg/pagination"

	"gorm.io/gorm"
)

// ErrProductNotFound is returned for unknown product IDs
var ErrProductNotFound = errors.New("product not found")

// ProductService handles the product catalog
type ProductService struct {
	store *repositories.Store
}

// NewProductService creates a new product service
func NewProductService(store *repositories.Store) *ProductService {
	return &ProductService{store: store}
}

// ProductInput represents a product create or update
type ProductInput struct {
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	ImageURL     string     `json:"image_url"`
	Price        float64    `json:"price"`
	ValidityDays int        `json:"validity_days"`
	ValidateDate *time.Time `json:"validate_date"`
	EarnAmount   float64    `json:"earn_amount"`
	TotalEarning float64    `json:"total_earning"`
}

func (in *ProductInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	switch {
	case in.Name == "":
		return domain.ErrInvalidInput
	case in.Price <= 0, in.EarnAmount <= 0:
		return domain.ErrInvalidInput
	case in.ValidityDays < 0, in.TotalEarning < 0:
		return domain.ErrInvalidInput
	}
	return nil
}

func (in *ProductInput) apply(p *models.Product) {
	p.Name = in.Name
	p.Description = strings.TrimSpace(in.Description)
	p.ImageURL = strings.TrimSpace(in.ImageURL)
	p.Price = in.Price
	p.ValidityDays = in.ValidityDays
	p.ValidateDate = in.ValidateDate
	p.EarnAmount = in.EarnAmount
	p.TotalEarning = in.TotalEarning
}

// ProductList is a page of products
type ProductList struct {
	Products []*models.Product `json:"products"`
	Meta     *pagination.Meta  `json:"meta"`
}

// ListAvailable lists products users can buy
func (s *ProductService) ListAvailable(ctx context.Context) ([]*models.Product, error) {
	return s.store.Products.ListAvailable(ctx)
}

// List lists all products for admins
func (s *ProductService) List(ctx context.Context, params *pagination.Params) (*ProductList, error) {
	products, total, err := s.store.Products.List(ctx, params.Offset, params.Limit)
	if err != nil {
		return nil, err
	}
	return &ProductList{Products: products, Meta: pagination.GetMeta(params, total)}, nil
}

// Get gets a product by ID
func (s *ProductService) Get(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.store.Products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// Create adds a product to the catalog
func (s *ProductService) Create(ctx context.Context, input *ProductInput) (*models.Product, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	product := &models.Product{}
	input.apply(product)
	if err := s.store.Products.Create(ctx, product); err != nil {
		return nil, err
	}

	log.Printf("✅ Product created: %s (price %.2f, earn %.2f)", product.Name, product.Price, product.EarnAmount)
	return product, nil
}

// Update changes a product; existing holdings keep their purchase-time terms
func (s *ProductService) Update(ctx context.Context, id uint, input *ProductInput) (*models.Product, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	input.apply(product)
	if err := s.store.Products.Update(ctx, product); err != nil {
		return nil, err
	}

	log.Printf("✅ Product updated: #%d %s", product.ID, product.Name)
	return product, nil
}

// Delete withdraws a product from sale
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	if err := s.store.Products.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	log.Printf("🗑️ Product deleted: #%d", id)
	return nil
}
