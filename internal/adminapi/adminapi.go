package adminapi

import (
	"errors"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/talkincode/toughcatalog/internal/app"
	"gorm.io/gorm"
)

const dbContextKey = "adminapi.db"

var registerOnce sync.Once

// ErrNoDatabase is returned by GetDB when DBMiddleware is not installed
var ErrNoDatabase = errors.New("admin api: no database bound to request")

// Init registers all admin API routes with the webserver
func Init() {
	registerOnce.Do(func() {
		registerProductRoutes()
	})
}

// DBMiddleware makes the application database available to handlers
func DBMiddleware(provider app.DBProvider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(dbContextKey, provider.DB())
			return next(c)
		}
	}
}

// GetDB returns the database bound to the request
func GetDB(c echo.Context) (*gorm.DB, error) {
	db, ok := c.Get(dbContextKey).(*gorm.DB)
	if !ok || db == nil {
		return nil, ErrNoDatabase
	}
	return db.WithContext(c.Request().Context()), nil
}
