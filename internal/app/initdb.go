package app

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/talkincode/toughcatalog/internal/catalog"
	"github.com/talkincode/toughcatalog/internal/domain"
	"go.uber.org/zap"
)

var defaultProducts = []struct {
	name, description, price string
	available                bool
	category                 domain.Category
}{
	{"Fedora", "A red hat", "12.50", true, domain.CategoryCloths},
	{"Apple", "Granny Smith, per piece", "0.75", true, domain.CategoryFood},
	{"Frying Pan", "Cast iron, 28cm", "34.90", true, domain.CategoryHousewares},
	{"Wiper Blade", "Universal fit, 55cm", "9.99", false, domain.CategoryAutomotive},
	{"Hammer", "Claw hammer, steel shaft", "19.00", true, domain.CategoryTools},
}

// checkProducts initializes demo catalog products
func (a *Application) checkProducts() {
	ctx := context.Background()
	repo := catalog.NewGormProductRepository(a.gormDB)
	for _, d := range defaultProducts {
		count, err := repo.FindByName(d.name).Count(ctx)
		if err != nil {
			zap.L().Error("failed to query default product", zap.String("name", d.name), zap.Error(err))
			continue
		}
		if count > 0 {
			continue
		}
		p := domain.NewProduct(d.name, d.description, decimal.RequireFromString(d.price), d.available, d.category)
		if err := repo.Create(ctx, p); err != nil {
			zap.L().Error("failed to create default product", zap.String("name", d.name), zap.Error(err))
		} else {
			zap.L().Info("initialized default product", zap.String("name", d.name), zap.Int64("id", p.ID))
		}
	}
}
