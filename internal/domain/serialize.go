package domain

import (
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// productPayload mirrors the serialized form. Pointers tell a missing key
// apart from a zero value.
type productPayload struct {
	Name        *string     `mapstructure:"name"`
	Description *string     `mapstructure:"description"`
	Price       interface{} `mapstructure:"price"`
	Available   *bool       `mapstructure:"available"`
	Category    *string     `mapstructure:"category"`
}

// Serialize flattens the product into a key/value map
func (p *Product) Serialize() map[string]interface{} {
	return map[string]interface{}{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price.StringFixed(2),
		"available":   p.Available,
		"category":    p.Category.String(),
	}
}

// Deserialize copies name, description, price, available and category from
// data. The id key is ignored. Nothing is modified when an error is returned.
func (p *Product) Deserialize(data map[string]interface{}) error {
	var payload productPayload
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &payload,
		TagName: "mapstructure",
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(data); err != nil {
		return NewDataValidationError("Invalid product: body of request contained bad data: %s", err.Error())
	}

	switch {
	case payload.Name == nil:
		return NewDataValidationError("Invalid product: missing name")
	case payload.Description == nil:
		return NewDataValidationError("Invalid product: missing description")
	case payload.Price == nil:
		return NewDataValidationError("Invalid product: missing price")
	case payload.Available == nil:
		return NewDataValidationError("Invalid product: missing available")
	case payload.Category == nil:
		return NewDataValidationError("Invalid product: missing category")
	}

	price, err := parsePrice(payload.Price)
	if err != nil {
		return err
	}
	category, err := ParseCategory(*payload.Category)
	if err != nil {
		return err
	}

	p.Name = *payload.Name
	p.Description = *payload.Description
	p.Price = price
	p.Available = *payload.Available
	p.Category = category
	return nil
}

// DecodeJSON deserializes a JSON object into the product
func (p *Product) DecodeJSON(body []byte) error {
	var data map[string]interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return NewDataValidationError("Invalid product: body of request contained bad or no data: %s", err.Error())
	}
	return p.Deserialize(data)
}

// ParsePrice converts a textual decimal, tolerating surrounding spaces and quotes
func ParsePrice(text string) (decimal.Decimal, error) {
	return parsePrice(text)
}

func parsePrice(v interface{}) (decimal.Decimal, error) {
	if d, ok := v.(decimal.Decimal); ok {
		return d, nil
	}
	if _, ok := v.(bool); ok {
		return decimal.Zero, NewDataValidationError("Invalid type for decimal [price]: bool")
	}
	text, err := cast.ToStringE(v)
	if err != nil {
		return decimal.Zero, NewDataValidationError("Invalid type for decimal [price]: %T", v)
	}
	d, err := decimal.NewFromString(strings.Trim(text, ` "`))
	if err != nil {
		return decimal.Zero, NewDataValidationError("Invalid value for decimal [price]: %q", text)
	}
	return d, nil
}
