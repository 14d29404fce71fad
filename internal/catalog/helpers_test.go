package catalog

import (
	"fmt"
	"math/rand"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/toughcatalog/internal/domain"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB returns an empty product table. DATABASE_URI selects a
// PostgreSQL instance, otherwise an in-memory SQLite database is used.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	var (
		db  *gorm.DB
		err error
	)
	if dsn := os.Getenv("DATABASE_URI"); dsn != "" {
		db, err = gorm.Open(postgres.Open(dsn), cfg)
	} else {
		db, err = gorm.Open(sqlite.Open("file::memory:"), cfg)
	}
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// each new in-memory connection would see its own empty database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(domain.Tables...))
	require.NoError(t, db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&domain.Product{}).Error)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

var (
	testNames = []string{"Hat", "Pants", "Shirt", "Apple", "Banana", "Pots", "Towels", "Ford", "Chevy", "Hammer", "Wrench"}
	testPrice = []string{"9.99", "12.50", "19.00", "0.75", "249.95"}
)

// fakeProduct builds a random unsaved product
func fakeProduct(rnd *rand.Rand) *domain.Product {
	name := testNames[rnd.Intn(len(testNames))]
	return domain.NewProduct(
		name,
		fmt.Sprintf("%s for testing", name),
		decimal.RequireFromString(testPrice[rnd.Intn(len(testPrice))]),
		rnd.Intn(2) == 0,
		domain.Categories[rnd.Intn(len(domain.Categories))],
	)
}

func newRand(t *testing.T) *rand.Rand {
	seed := rand.Int63()
	t.Logf("product seed %d", seed)
	return rand.New(rand.NewSource(seed))
}
