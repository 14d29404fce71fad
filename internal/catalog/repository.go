package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/talkincode/toughcatalog/internal/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrProductNotFound is returned by Find when no row has the requested id
var ErrProductNotFound = errors.New("product not found")

// mutable columns written by Update
var productColumns = []string{"name", "description", "price", "available", "category", "updated_at"}

// ProductRepository handles database operations for catalog products
type ProductRepository interface {
	// Create inserts the product and assigns its id
	Create(ctx context.Context, p *domain.Product) error

	// Update persists an existing product in place
	Update(ctx context.Context, p *domain.Product) error

	// Delete removes the product row
	Delete(ctx context.Context, p *domain.Product) error

	// All returns every product ordered by id
	All(ctx context.Context) ([]domain.Product, error)

	// Find retrieves a product by id
	Find(ctx context.Context, id int64) (*domain.Product, error)

	// Query returns an unfiltered result set
	Query() *ProductQuery

	FindByName(name string) *ProductQuery
	FindByAvailability(available bool) *ProductQuery
	FindByCategory(category domain.Category) *ProductQuery
	FindByPrice(price decimal.Decimal) *ProductQuery

	// FindByPriceText parses a textual price before querying
	FindByPriceText(price string) (*ProductQuery, error)
}

// GormProductRepository is the GORM implementation of ProductRepository
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM-based repository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

var _ ProductRepository = (*GormProductRepository)(nil)

func (r *GormProductRepository) Create(ctx context.Context, p *domain.Product) error {
	zap.L().Info("creating product", zap.String("name", p.Name))
	p.ID = 0
	if err := p.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *GormProductRepository) Update(ctx context.Context, p *domain.Product) error {
	zap.L().Info("saving product", zap.Int64("id", p.ID), zap.String("name", p.Name))
	if p.ID == 0 {
		return domain.NewDataValidationError("Update called with empty ID field")
	}
	if err := p.Validate(); err != nil {
		return err
	}
	p.UpdatedAt = time.Now()
	result := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ?", p.ID).
		Select(productColumns).
		Updates(p)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewDataValidationError("Update called with unknown ID %d", p.ID)
	}
	return nil
}

func (r *GormProductRepository) Delete(ctx context.Context, p *domain.Product) error {
	zap.L().Info("deleting product", zap.Int64("id", p.ID), zap.String("name", p.Name))
	if p.ID == 0 {
		return domain.NewDataValidationError("Delete called with empty ID field")
	}
	return r.db.WithContext(ctx).Where("id = ?", p.ID).Delete(&domain.Product{}).Error
}

func (r *GormProductRepository) All(ctx context.Context) ([]domain.Product, error) {
	zap.L().Info("processing all products")
	var products []domain.Product
	err := r.db.WithContext(ctx).Order("id ASC").Find(&products).Error
	return products, err
}

func (r *GormProductRepository) Find(ctx context.Context, id int64) (*domain.Product, error) {
	zap.L().Info("processing lookup for product", zap.Int64("id", id))
	var p domain.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormProductRepository) Query() *ProductQuery {
	return &ProductQuery{db: r.db.Model(&domain.Product{})}
}

func (r *GormProductRepository) FindByName(name string) *ProductQuery {
	zap.L().Info("processing name query", zap.String("name", name))
	return r.where("name = ?", name)
}

func (r *GormProductRepository) FindByAvailability(available bool) *ProductQuery {
	zap.L().Info("processing available query", zap.Bool("available", available))
	return r.where("available = ?", available)
}

func (r *GormProductRepository) FindByCategory(category domain.Category) *ProductQuery {
	zap.L().Info("processing category query", zap.String("category", category.String()))
	return r.where("category = ?", category)
}

func (r *GormProductRepository) FindByPrice(price decimal.Decimal) *ProductQuery {
	zap.L().Info("processing price query", zap.String("price", price.String()))
	return r.where("price = ?", price)
}

func (r *GormProductRepository) FindByPriceText(price string) (*ProductQuery, error) {
	d, err := domain.ParsePrice(price)
	if err != nil {
		return nil, err
	}
	return r.FindByPrice(d), nil
}

func (r *GormProductRepository) where(query string, arg interface{}) *ProductQuery {
	return &ProductQuery{db: r.Query().db.Where(query, arg)}
}
