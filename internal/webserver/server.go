package webserver

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/talkincode/toughcatalog/config"
	"go.uber.org/zap"
)

const ApiPrefix = "/api/v1"

type route struct {
	method  string
	path    string
	handler echo.HandlerFunc
}

var (
	routesMu sync.RWMutex
	routes   []route
)

func addRoute(method, path string, h echo.HandlerFunc) {
	routesMu.Lock()
	defer routesMu.Unlock()
	routes = append(routes, route{method: method, path: path, handler: h})
}

// ApiGET registers a GET handler under ApiPrefix
func ApiGET(path string, h echo.HandlerFunc) {
	addRoute(http.MethodGet, path, h)
}

// ApiPOST registers a POST handler under ApiPrefix
func ApiPOST(path string, h echo.HandlerFunc) {
	addRoute(http.MethodPost, path, h)
}

// ApiPUT registers a PUT handler under ApiPrefix
func ApiPUT(path string, h echo.HandlerFunc) {
	addRoute(http.MethodPut, path, h)
}

// ApiDELETE registers a DELETE handler under ApiPrefix
func ApiDELETE(path string, h echo.HandlerFunc) {
	addRoute(http.MethodDelete, path, h)
}

// AdminServer serves the registered admin API routes
type AdminServer struct {
	root *echo.Echo
	addr string
}

// NewAdminServer builds an echo instance with every registered route.
// Middlewares run before the handlers of the API group.
func NewAdminServer(cfg config.WebConfig, mws ...echo.MiddlewareFunc) *AdminServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = &JSONSerializer{}
	e.Use(middleware.Recover())
	e.Use(requestLogger())

	group := e.Group(ApiPrefix, mws...)
	routesMu.RLock()
	for _, r := range routes {
		group.Add(r.method, r.path, r.handler)
	}
	routesMu.RUnlock()

	return &AdminServer{
		root: e,
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
	}
}

// Handler exposes the router, mostly for httptest
func (s *AdminServer) Handler() http.Handler {
	return s.root
}

// Start blocks until the server stops. A graceful shutdown returns nil.
func (s *AdminServer) Start() error {
	zap.S().Infof("Admin API listening on %s", s.addr)
	err := s.root.Start(s.addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return errors.Wrap(err, "admin api server")
}

func (s *AdminServer) Shutdown(ctx context.Context) error {
	return s.root.Shutdown(ctx)
}

func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			req := c.Request()
			zap.L().Info("admin api request",
				zap.String("namespace", "webserver"),
				zap.String("method", req.Method),
				zap.String("uri", req.RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
			)
			return nil
		}
	}
}
