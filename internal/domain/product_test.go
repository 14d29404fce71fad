package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fedora() *Product {
	return NewProduct("Fedora", "A red hat", decimal.RequireFromString("12.50"), true, CategoryCloths)
}

func TestNewProduct(t *testing.T) {
	p := fedora()
	assert.Equal(t, "<Product Fedora id=[unsaved]>", p.String())
	assert.Zero(t, p.ID)
	assert.Equal(t, "Fedora", p.Name)
	assert.Equal(t, "A red hat", p.Description)
	assert.True(t, p.Available)
	assert.True(t, p.Price.Equal(decimal.NewFromFloat(12.5)))
	assert.Equal(t, CategoryCloths, p.Category)

	p.ID = 42
	assert.Equal(t, "<Product Fedora id=[42]>", p.String())
}

func TestProductValidate(t *testing.T) {
	require.NoError(t, fedora().Validate())

	long := make([]byte, ProductNameMaxLen+1)
	for i := range long {
		long[i] = 'x'
	}

	cases := map[string]func(p *Product){
		"empty name":       func(p *Product) { p.Name = "" },
		"long name":        func(p *Product) { p.Name = string(long) },
		"negative price":   func(p *Product) { p.Price = decimal.NewFromInt(-1) },
		"three decimals":   func(p *Product) { p.Price = decimal.RequireFromString("12.345") },
		"price too large":  func(p *Product) { p.Price = decimal.NewFromInt(100000000) },
		"unknown category": func(p *Product) { p.Category = Category("WEAPONS") },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := fedora()
			mutate(p)
			err := p.Validate()
			require.Error(t, err)
			assert.True(t, IsDataValidationError(err))
		})
	}
}

func TestProductValidateAcceptsTrailingZeros(t *testing.T) {
	p := fedora()
	p.Price = decimal.RequireFromString("12.500")
	require.NoError(t, p.Validate())

	p.Price = decimal.RequireFromString("99999999.99")
	require.NoError(t, p.Validate())
}

func TestSerialize(t *testing.T) {
	p := fedora()
	p.ID = 7
	data := p.Serialize()
	assert.Equal(t, int64(7), data["id"])
	assert.Equal(t, "Fedora", data["name"])
	assert.Equal(t, "A red hat", data["description"])
	assert.Equal(t, "12.50", data["price"])
	assert.Equal(t, true, data["available"])
	assert.Equal(t, "CLOTHS", data["category"])
}

func TestDeserializeRoundTrip(t *testing.T) {
	src := fedora()
	src.ID = 7

	var dst Product
	require.NoError(t, dst.Deserialize(src.Serialize()))
	assert.Zero(t, dst.ID, "id is never read from the payload")
	assert.Equal(t, src.Name, dst.Name)
	assert.Equal(t, src.Description, dst.Description)
	assert.True(t, src.Price.Equal(dst.Price))
	assert.Equal(t, src.Available, dst.Available)
	assert.Equal(t, src.Category, dst.Category)
}

func TestDeserializeAcceptsNumericPrice(t *testing.T) {
	var p Product
	err := p.Deserialize(map[string]interface{}{
		"name":        "Hammer",
		"description": "Claw hammer",
		"price":       19.99,
		"available":   false,
		"category":    "TOOLS",
	})
	require.NoError(t, err)
	assert.Equal(t, "19.99", p.Price.String())
	assert.False(t, p.Available)
	assert.Equal(t, CategoryTools, p.Category)
}

func TestDeserializeErrors(t *testing.T) {
	valid := func() map[string]interface{} {
		return map[string]interface{}{
			"name":        "Fedora",
			"description": "A red hat",
			"price":       "12.50",
			"available":   true,
			"category":    "CLOTHS",
		}
	}

	cases := []struct {
		name   string
		mutate func(m map[string]interface{})
		msg    string
	}{
		{"missing name", func(m map[string]interface{}) { delete(m, "name") }, "missing name"},
		{"missing description", func(m map[string]interface{}) { delete(m, "description") }, "missing description"},
		{"missing price", func(m map[string]interface{}) { delete(m, "price") }, "missing price"},
		{"missing available", func(m map[string]interface{}) { delete(m, "available") }, "missing available"},
		{"missing category", func(m map[string]interface{}) { delete(m, "category") }, "missing category"},
		{"available as string", func(m map[string]interface{}) { m["available"] = "yes" }, "bad data"},
		{"name as number", func(m map[string]interface{}) { m["name"] = 12 }, "bad data"},
		{"price not a decimal", func(m map[string]interface{}) { m["price"] = "twelve" }, "decimal [price]"},
		{"price as bool", func(m map[string]interface{}) { m["price"] = true }, "decimal [price]"},
		{"unknown category", func(m map[string]interface{}) { m["category"] = "WEAPONS" }, "Invalid attribute"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			data := valid()
			tc.mutate(data)
			p := fedora()
			err := p.Deserialize(data)
			require.Error(t, err)
			assert.True(t, IsDataValidationError(err))
			assert.Contains(t, err.Error(), tc.msg)
			assert.Equal(t, "Fedora", p.Name, "product left untouched on error")
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var p Product
	err := p.DecodeJSON([]byte(`{"name":"Apple","description":"Green","price":"0.75","available":true,"category":"FOOD"}`))
	require.NoError(t, err)
	assert.Equal(t, CategoryFood, p.Category)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("0.75")))

	for _, body := range []string{`not json`, `[1,2]`, `null`} {
		err := new(Product).DecodeJSON([]byte(body))
		require.Error(t, err, body)
		assert.True(t, IsDataValidationError(err), body)
	}
}

func TestParsePrice(t *testing.T) {
	d, err := ParsePrice(` "12.50" `)
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("12.5")))

	_, err = ParsePrice("abc")
	assert.True(t, IsDataValidationError(err))
}
