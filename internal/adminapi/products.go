package adminapi

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"github.com/talkincode/toughcatalog/internal/catalog"
	"github.com/talkincode/toughcatalog/internal/domain"
	"github.com/talkincode/toughcatalog/internal/webserver"
)

// registerProductRoutes registers product CRUD endpoints
func registerProductRoutes() {
	webserver.ApiGET("/products", listProducts)
	webserver.ApiGET("/products/export", exportProducts)
	webserver.ApiGET("/products/:id", getProduct)
	webserver.ApiPOST("/products", createProduct)
	webserver.ApiPUT("/products/:id", updateProduct)
	webserver.ApiDELETE("/products/:id", deleteProduct)
}

func productRepo(c echo.Context) (catalog.ProductRepository, error) {
	db, err := GetDB(c)
	if err != nil {
		return nil, err
	}
	return catalog.NewGormProductRepository(db), nil
}

// failProduct maps repository errors to a response
func failProduct(c echo.Context, err error, msg string) error {
	switch {
	case domain.IsDataValidationError(err):
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
	case errors.Is(err, catalog.ErrProductNotFound):
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	default:
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", msg, err.Error())
	}
}

func serializeAll(products []domain.Product) []map[string]interface{} {
	items := make([]map[string]interface{}, 0, len(products))
	for i := range products {
		items = append(items, products[i].Serialize())
	}
	return items
}

// productFilter picks the first filter present in the query string
func productFilter(c echo.Context, repo catalog.ProductRepository) (*catalog.ProductQuery, error) {
	if name := c.QueryParam("name"); name != "" {
		return repo.FindByName(name), nil
	}
	if v := strings.TrimSpace(c.QueryParam("available")); v != "" {
		available, err := cast.ToBoolE(v)
		if err != nil {
			return nil, domain.NewDataValidationError("Invalid attribute: available must be a boolean, got %q", v)
		}
		return repo.FindByAvailability(available), nil
	}
	if v := c.QueryParam("category"); v != "" {
		category, err := domain.ParseCategory(v)
		if err != nil {
			return nil, err
		}
		return repo.FindByCategory(category), nil
	}
	if v := c.QueryParam("price"); v != "" {
		return repo.FindByPriceText(v)
	}
	return repo.Query(), nil
}

func listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)
	ctx := c.Request().Context()

	repo, err := productRepo(c)
	if err != nil {
		return failProduct(c, err, "Database unavailable")
	}
	query, err := productFilter(c, repo)
	if err != nil {
		return failProduct(c, err, "Failed to query products")
	}
	total, err := query.Count(ctx)
	if err != nil {
		return failProduct(c, err, "Failed to query products")
	}
	rows, err := query.Page(ctx, page, pageSize)
	if err != nil {
		return failProduct(c, err, "Failed to query products")
	}
	return paged(c, serializeAll(rows), total, page, pageSize)
}

func getProduct(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	repo, err := productRepo(c)
	if err != nil {
		return failProduct(c, err, "Database unavailable")
	}
	p, err := repo.Find(c.Request().Context(), id)
	if err != nil {
		return failProduct(c, err, "Failed to query product")
	}
	return ok(c, p.Serialize())
}

func createProduct(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to read request body", err.Error())
	}
	p := &domain.Product{}
	if err := p.DecodeJSON(body); err != nil {
		return failProduct(c, err, "Unable to parse product")
	}
	repo, err := productRepo(c)
	if err != nil {
		return failProduct(c, err, "Database unavailable")
	}
	if err := repo.Create(c.Request().Context(), p); err != nil {
		return failProduct(c, err, "Failed to create product")
	}
	c.Response().Header().Set(echo.HeaderLocation, webserver.ApiPrefix+"/products/"+cast.ToString(p.ID))
	return c.JSON(http.StatusCreated, Msg{Code: "SUCCESS", Msg: "ok", Data: p.Serialize()})
}

func updateProduct(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	ctx := c.Request().Context()
	repo, err := productRepo(c)
	if err != nil {
		return failProduct(c, err, "Database unavailable")
	}
	p, err := repo.Find(ctx, id)
	if err != nil {
		return failProduct(c, err, "Failed to query product")
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to read request body", err.Error())
	}
	if err := p.DecodeJSON(body); err != nil {
		return failProduct(c, err, "Unable to parse product")
	}
	p.ID = id
	if err := repo.Update(ctx, p); err != nil {
		return failProduct(c, err, "Failed to update product")
	}
	return ok(c, p.Serialize())
}

func deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	ctx := c.Request().Context()
	repo, err := productRepo(c)
	if err != nil {
		return failProduct(c, err, "Database unavailable")
	}
	p, err := repo.Find(ctx, id)
	if err != nil {
		return failProduct(c, err, "Failed to query product")
	}
	if err := repo.Delete(ctx, p); err != nil {
		return failProduct(c, err, "Failed to delete product")
	}
	return ok(c, map[string]interface{}{"id": id})
}

// exportProducts downloads every product as csv, or xlsx with format=xlsx
func exportProducts(c echo.Context) error {
	repo, err := productRepo(c)
	if err != nil {
		return failProduct(c, err, "Database unavailable")
	}
	products, err := repo.All(c.Request().Context())
	if err != nil {
		return failProduct(c, err, "Failed to query products")
	}
	contentType, filename, body, err := renderExport(c.QueryParam("format"), products)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "EXPORT_ERROR", "Failed to export products", err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, contentType, body)
}

// renderExport builds the whole download before anything is sent
func renderExport(format string, products []domain.Product) (string, string, []byte, error) {
	var buf bytes.Buffer
	if format == "xlsx" {
		if err := catalog.WriteXLSX(&buf, products); err != nil {
			return "", "", nil, err
		}
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "products.xlsx", buf.Bytes(), nil
	}
	if err := catalog.WriteCSV(&buf, products); err != nil {
		return "", "", nil, err
	}
	return "text/csv; charset=utf-8", "products.csv", buf.Bytes(), nil
}
