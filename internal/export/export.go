// Package export renders lead lists as CSV or XLSX downloads.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/tealeg/xlsx/v2"

	"github.com/RayyanAliShah/InstaReach-Lead-Generation-Backend/internal/lead"
)

// Format selects the export encoding.
type Format string

// Supported export formats.
const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Columns is the export column order expected by downstream
// spreadsheets.
var Columns = []string{
	"name", "category", "rating", "email", "phone", "website",
	"address", "facebook", "instagram", "linkedin", "twitter",
}

// WriteCSV streams the leads as CSV with a header row.
func WriteCSV(w io.Writer, leads []lead.Lead) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, l := range leads {
		if err := cw.Write(rowValues(l)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteXLSX writes the leads as a single-sheet workbook.
func WriteXLSX(w io.Writer, leads []lead.Lead) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Leads")
	if err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, col := range Columns {
		header.AddCell().Value = col
	}
	for _, l := range leads {
		row := sheet.AddRow()
		for _, value := range rowValues(l) {
			row.AddCell().Value = value
		}
	}
	if err := file.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func rowValues(l lead.Lead) []string {
	return []string{
		l.Name, l.Category, l.Rating, l.Email, l.Phone, l.Website,
		l.Address, l.Facebook, l.Instagram, l.LinkedIn, l.Twitter,
	}
}
