// Package export renders store data as downloadable files.
package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"

	"storeadmin/internal/domain"
)

const stampLayout = "2006-01-02 15:04"

func Money(d decimal.Decimal) string { return "$" + d.StringFixed(2) }

// ProductsXLSX builds the product table of the dashboard as a workbook.
func ProductsXLSX(products []domain.Product) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return nil, err
	}

	headers := []string{
		"ID", "Name", "Category", "Size", "Color", "Price", "Available",
		"Featured", "Archived", "Images", "CreatedAt",
	}
	header := sheet.AddRow()
	for _, h := range headers {
		header.AddCell().SetString(h)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetString(p.ID)
		row.AddCell().SetString(p.Name)
		row.AddCell().SetString(p.CategoryName)
		row.AddCell().SetString(p.SizeName)
		row.AddCell().SetString(p.ColorValue)
		row.AddCell().SetFloat(p.Price.InexactFloat64())
		row.AddCell().SetInt(p.AvailableQty)
		row.AddCell().SetBool(p.IsFeatured)
		row.AddCell().SetBool(p.IsArchived)

		urls := make([]string, len(p.Images))
		for i, im := range p.Images {
			urls[i] = im.URL
		}
		row.AddCell().SetString(strings.Join(urls, "\n"))
		row.AddCell().SetString(p.CreatedAt.Time().Format(stampLayout))
	}
	return file, nil
}

// OrdersPDF renders the order table of one store with a paid-revenue footer.
func OrdersPDF(store domain.Store, orders []domain.Order) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("Orders - %s", store.Name)), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(32, 8, "Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, "Phone", "1", 0, "C", false, 0, "")
	pdf.CellFormat(58, 8, "Products", "1", 0, "C", false, 0, "")
	pdf.CellFormat(40, 8, "Address", "1", 0, "C", false, 0, "")
	pdf.CellFormat(12, 8, "Paid", "1", 0, "C", false, 0, "")
	pdf.CellFormat(18, 8, "Total", "1", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	revenue := decimal.Zero
	for _, o := range orders {
		names := make([]string, 0, len(o.Items))
		for _, it := range o.Items {
			names = append(names, fmt.Sprintf("%s x%d", it.ProductName, it.Quantity))
		}
		paid := "No"
		if o.IsPaid {
			paid = "Yes"
			revenue = revenue.Add(o.Total)
		}
		pdf.CellFormat(32, 8, o.CreatedAt.Time().Format(stampLayout), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, tr(o.Phone), "1", 0, "L", false, 0, "")
		pdf.CellFormat(58, 8, tr(clip(strings.Join(names, ", "), 40)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, tr(clip(o.Address, 28)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(12, 8, paid, "1", 0, "C", false, 0, "")
		pdf.CellFormat(18, 8, Money(o.Total), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 8, fmt.Sprintf("Orders: %d   Paid revenue: %s", len(orders), Money(revenue)), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
