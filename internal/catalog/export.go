package catalog

import (
	"context"
	"io"
	"strconv"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/talkincode/toughcatalog/internal/domain"
)

const xlsxSheet = "Sheet1"

var xlsxHeader = []string{"id", "name", "description", "price", "available", "category"}

type productRow struct {
	ID          int64  `csv:"id"`
	Name        string `csv:"name"`
	Description string `csv:"description"`
	Price       string `csv:"price"`
	Available   bool   `csv:"available"`
	Category    string `csv:"category"`
}

// WriteCSV writes products as CSV with a header row
func WriteCSV(w io.Writer, products []domain.Product) error {
	return errors.Wrap(gocsv.Marshal(toRows(products), w), "write product csv")
}

// WriteXLSX writes products as a single sheet workbook with a header row
func WriteXLSX(w io.Writer, products []domain.Product) error {
	f := excelize.NewFile()
	for col, name := range xlsxHeader {
		f.SetCellValue(xlsxSheet, cellName(col, 1), name)
	}
	for i, row := range toRows(products) {
		line := i + 2
		f.SetCellValue(xlsxSheet, cellName(0, line), row.ID)
		f.SetCellValue(xlsxSheet, cellName(1, line), row.Name)
		f.SetCellValue(xlsxSheet, cellName(2, line), row.Description)
		f.SetCellValue(xlsxSheet, cellName(3, line), row.Price)
		f.SetCellValue(xlsxSheet, cellName(4, line), row.Available)
		f.SetCellValue(xlsxSheet, cellName(5, line), row.Category)
	}
	return errors.Wrap(f.Write(w), "write product xlsx")
}

// cellName returns the A1 style name of a zero based column
func cellName(col, line int) string {
	return excelize.ToAlphaString(col) + strconv.Itoa(line)
}

func toRows(products []domain.Product) []*productRow {
	rows := make([]*productRow, 0, len(products))
	for i := range products {
		p := &products[i]
		rows = append(rows, &productRow{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price.StringFixed(2),
			Available:   p.Available,
			Category:    p.Category.String(),
		})
	}
	return rows
}

// ExportCSV writes every stored product as CSV
func ExportCSV(ctx context.Context, repo ProductRepository, w io.Writer) error {
	products, err := repo.All(ctx)
	if err != nil {
		return err
	}
	return WriteCSV(w, products)
}
