package domain

import (
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	ProductNameMaxLen        = 100
	ProductDescriptionMaxLen = 250

	// ProductPriceScale is the number of fraction digits of the price column
	ProductPriceScale = 2
)

// priceLimit is the first value that no longer fits decimal(10,2)
var priceLimit = decimal.New(1, 10-ProductPriceScale)

// Product is a catalog item. ID stays zero until the row is created.
type Product struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"size:100;not null;index" json:"name"`
	Description string          `gorm:"size:250;not null" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Available   bool            `gorm:"not null;index" json:"available"`
	Category    Category        `gorm:"size:32;not null;index" json:"category"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "product"
}

// NewProduct builds an unsaved product
func NewProduct(name, description string, price decimal.Decimal, available bool, category Category) *Product {
	return &Product{
		Name:        name,
		Description: description,
		Price:       price,
		Available:   available,
		Category:    category,
	}
}

func (p *Product) String() string {
	id := "unsaved"
	if p.ID != 0 {
		id = strconv.FormatInt(p.ID, 10)
	}
	return fmt.Sprintf("<Product %s id=[%s]>", p.Name, id)
}

// Validate checks the fields against the column constraints of the product table
func (p *Product) Validate() error {
	switch {
	case p.Name == "":
		return NewDataValidationError("Invalid product: name is required")
	case utf8.RuneCountInString(p.Name) > ProductNameMaxLen:
		return NewDataValidationError("Invalid product: name longer than %d characters", ProductNameMaxLen)
	case utf8.RuneCountInString(p.Description) > ProductDescriptionMaxLen:
		return NewDataValidationError("Invalid product: description longer than %d characters", ProductDescriptionMaxLen)
	case p.Price.IsNegative():
		return NewDataValidationError("Invalid product: price must not be negative")
	case !p.Price.Equal(p.Price.Round(ProductPriceScale)):
		return NewDataValidationError("Invalid product: price %s has more than %d decimal places", p.Price.String(), ProductPriceScale)
	case p.Price.GreaterThanOrEqual(priceLimit):
		return NewDataValidationError("Invalid product: price must be less than %s", priceLimit.String())
	case !p.Category.Valid():
		return NewDataValidationError("Invalid attribute: unknown category %q", string(p.Category))
	}
	return nil
}
