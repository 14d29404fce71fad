package adminapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Msg is the response envelope of every JSON endpoint
type Msg struct {
	Code string      `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

// PageResult wraps one page of a list endpoint
type PageResult struct {
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
	Items    interface{} `json:"items"`
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Msg{Code: "SUCCESS", Msg: "ok", Data: data})
}

func fail(c echo.Context, status int, code, msg string, details interface{}) error {
	return c.JSON(status, Msg{Code: code, Msg: msg, Data: details})
}

func paged(c echo.Context, items interface{}, total int64, page, pageSize int) error {
	return ok(c, PageResult{Total: total, Page: page, PageSize: pageSize, Items: items})
}

// parsePagination reads page and pageSize, defaulting to 1 and 20
func parsePagination(c echo.Context) (int, int) {
	page := 1
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	pageSize := 20
	if ps, err := strconv.Atoi(c.QueryParam("pageSize")); err == nil && ps > 0 && ps <= 500 {
		pageSize = ps
	}
	return page, pageSize
}

func parseIDParam(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
