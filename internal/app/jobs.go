package app

import (
	"context"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/robfig/cron/v3"
	"github.com/talkincode/toughcatalog/internal/catalog"
	"github.com/talkincode/toughcatalog/internal/domain"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// CatalogStats counts stored products
type CatalogStats struct {
	Total      int64
	Available  int64
	ByCategory map[domain.Category]int64

	// price figures stay zero for an empty catalog
	MeanPrice   float64
	MedianPrice float64
	MaxPrice    float64
}

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	if loc == nil {
		loc = time.Local
	}
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	_, err := a.sched.AddFunc("@every 10m", a.SchedCatalogStatsTask)
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedCatalogStatsTask logs product counts
func (a *Application) SchedCatalogStatsTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stats, err := CollectCatalogStats(ctx, catalog.NewGormProductRepository(a.gormDB))
	if err != nil {
		zap.L().Error("catalog stats failed", zap.Error(err))
		return
	}

	fields := []zap.Field{
		zap.String("namespace", "catalog"),
		zap.Int64("total", stats.Total),
		zap.Int64("available", stats.Available),
		zap.Float64("mean_price", stats.MeanPrice),
		zap.Float64("median_price", stats.MedianPrice),
		zap.Float64("max_price", stats.MaxPrice),
	}
	for _, c := range domain.Categories {
		fields = append(fields, zap.Int64("category_"+c.String(), stats.ByCategory[c]))
	}
	zap.L().Info("catalog stats", fields...)
}

// CollectCatalogStats counts products per category and availability
func CollectCatalogStats(ctx context.Context, repo catalog.ProductRepository) (*CatalogStats, error) {
	result := &CatalogStats{ByCategory: make(map[domain.Category]int64, len(domain.Categories))}
	for _, c := range domain.Categories {
		n, err := repo.FindByCategory(c).Count(ctx)
		if err != nil {
			return nil, err
		}
		result.ByCategory[c] = n
		result.Total += n
	}
	n, err := repo.FindByAvailability(true).Count(ctx)
	if err != nil {
		return nil, err
	}
	result.Available = n

	products, err := repo.All(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return result, nil
	}
	prices := make(stats.Float64Data, 0, len(products))
	for i := range products {
		prices = append(prices, products[i].Price.InexactFloat64())
	}
	result.MeanPrice, _ = stats.Mean(prices)
	result.MedianPrice, _ = stats.Median(prices)
	result.MaxPrice, _ = stats.Max(prices)
	return result, nil
}
