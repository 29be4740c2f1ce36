// Package export writes the invoice tracker out as a downloadable file,
// either CSV or an Excel workbook.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"lekha/internal/domain"
)

const dateLayout = "02-01-2006"

// trackerHeader mirrors the tracker columns in order.
var trackerHeader = []string{
	"Invoice No", "Client Name", "Client Email", "Amount",
	"Invoice Date", "Due Date", "Status",
	"Follow-up Value", "Follow-up Unit",
	"Last Follow-up", "Next Follow-up",
	"Notes", "Document URL",
}

func trackerRow(e *domain.TrackerEntry) []string {
	return []string{
		e.InvoiceNumber,
		e.ClientName,
		e.ClientEmail,
		e.GrandTotal.StringFixed(2),
		e.InvoiceDate.Format(dateLayout),
		e.DueDate.Format(dateLayout),
		string(e.Status),
		fmt.Sprintf("%d", e.FollowUpValue),
		string(e.FollowUpUnit),
		formatOptional(e.LastFollowUpAt),
		formatOptional(e.NextFollowUpAt),
		e.Notes,
		e.DocumentURL,
	}
}

func formatOptional(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout + " 15:04")
}

// WriteTrackerCSV streams the tracker rows as CSV.
func WriteTrackerCSV(w io.Writer, entries []domain.TrackerEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(trackerHeader); err != nil {
		return fmt.Errorf("export: writing CSV header: %w", err)
	}
	for i := range entries {
		if err := cw.Write(trackerRow(&entries[i])); err != nil {
			return fmt.Errorf("export: writing CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTrackerXLSX writes the tracker rows as a single-sheet workbook.
func WriteTrackerXLSX(w io.Writer, entries []domain.TrackerEntry) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Invoice Tracker"
	f.SetSheetName("Sheet1", sheet)

	for col, name := range trackerHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("export: header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return fmt.Errorf("export: header cell: %w", err)
		}
	}

	for i := range entries {
		for col, value := range trackerRow(&entries[i]) {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("export: data cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("export: data cell: %w", err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: writing workbook: %w", err)
	}
	return nil
}
