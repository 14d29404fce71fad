package domain

import (
	"database/sql/driver"
	"strings"

	"github.com/pkg/errors"
)

// Category classifies a product. The set of names is closed.
type Category string

const (
	CategoryUnknown    Category = "UNKNOWN"
	CategoryCloths     Category = "CLOTHS"
	CategoryFood       Category = "FOOD"
	CategoryHousewares Category = "HOUSEWARES"
	CategoryAutomotive Category = "AUTOMOTIVE"
	CategoryTools      Category = "TOOLS"
)

// Categories lists every valid category in declaration order
var Categories = []Category{
	CategoryUnknown,
	CategoryCloths,
	CategoryFood,
	CategoryHousewares,
	CategoryAutomotive,
	CategoryTools,
}

// ParseCategory looks up a category by its exact name
func ParseCategory(name string) (Category, error) {
	c := Category(name)
	if !c.Valid() {
		return "", NewDataValidationError("Invalid attribute: unknown category %q", name)
	}
	return c, nil
}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// Value implements driver.Valuer
func (c Category) Value() (driver.Value, error) {
	if !c.Valid() {
		return nil, errors.Errorf("invalid category %q", string(c))
	}
	return string(c), nil
}

// Scan implements sql.Scanner
func (c *Category) Scan(value interface{}) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case nil:
		*c = CategoryUnknown
		return nil
	default:
		return errors.Errorf("cannot scan %T into Category", value)
	}
	parsed := Category(strings.TrimSpace(s))
	if !parsed.Valid() {
		return errors.Errorf("invalid category %q", s)
	}
	*c = parsed
	return nil
}
