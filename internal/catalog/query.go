package catalog

import (
	"context"
	"errors"

	"github.com/talkincode/toughcatalog/internal/domain"
	"gorm.io/gorm"
)

// ProductQuery is a filtered product result set. The statement runs only
// when Count, All or First is called, and may be run more than once.
type ProductQuery struct {
	db *gorm.DB
}

func (q *ProductQuery) session(ctx context.Context) *gorm.DB {
	return q.db.Session(&gorm.Session{}).WithContext(ctx)
}

// Count returns the number of matching rows
func (q *ProductQuery) Count(ctx context.Context) (int64, error) {
	var total int64
	err := q.session(ctx).Count(&total).Error
	return total, err
}

// All returns the matching rows ordered by id
func (q *ProductQuery) All(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := q.session(ctx).Order("id ASC").Find(&products).Error
	return products, err
}

// Page returns one page of the matching rows ordered by id. Pages start at 1.
func (q *ProductQuery) Page(ctx context.Context, page, pageSize int) ([]domain.Product, error) {
	if page < 1 {
		page = 1
	}
	var products []domain.Product
	err := q.session(ctx).Order("id ASC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&products).Error
	return products, err
}

// First returns the matching row with the lowest id
func (q *ProductQuery) First(ctx context.Context) (*domain.Product, error) {
	var p domain.Product
	err := q.session(ctx).Order("id ASC").First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
