// Command importbook converts a legacy invoicing workbook into a SQL seed
// file. It reads the Clients and Products sheets and emits INSERTs for the
// client and product masters.
// Usage: go run ./cmd/importbook <workbook.xlsx>
// Output: db/seeds/legacy_import.sql
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if len(os.Args) < 2 {
		return fmt.Errorf("usage: importbook <workbook.xlsx>")
	}
	xlsxPath := os.Args[1]
	outPath := "db/seeds/legacy_import.sql"

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	fmt.Fprintln(out, "-- Legacy workbook import generated by importbook.")
	fmt.Fprintln(out, "BEGIN;")
	fmt.Fprintln(out)

	clients, err := importClients(f, out)
	if err != nil {
		return fmt.Errorf("import clients: %w", err)
	}
	products, err := importProducts(f, out)
	if err != nil {
		return fmt.Errorf("import products: %w", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "COMMIT;")

	log.Printf("imported %d clients and %d products into %s", clients, products, outPath)
	return nil
}

// importClients reads the Clients sheet: Name | Email | GSTIN | Address | State.
func importClients(f *excelize.File, out *os.File) (int, error) {
	rows, err := f.GetRows("Clients")
	if err != nil {
		return 0, err
	}

	count := 0
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		name := cell(row, 0)
		if name == "" {
			continue
		}
		fmt.Fprintf(out,
			"INSERT INTO clients (id, name, email, gstin, address, state, created_at, updated_at)\n"+
				"VALUES (gen_random_uuid(), %s, %s, %s, %s, %s, now(), now());\n",
			quote(name), quote(cell(row, 1)), quote(cell(row, 2)),
			quote(cell(row, 3)), quote(cell(row, 4)))
		count++
	}
	return count, nil
}

// importProducts reads the Products sheet: Name | Description | HSN | Rate | GST Rate.
func importProducts(f *excelize.File, out *os.File) (int, error) {
	rows, err := f.GetRows("Products")
	if err != nil {
		return 0, err
	}

	count := 0
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		name := cell(row, 0)
		if name == "" {
			continue
		}
		rate := numeric(cell(row, 3))
		gstRate := numeric(cell(row, 4))
		fmt.Fprintf(out,
			"INSERT INTO products (id, name, description, hsn_code, rate, gst_rate, created_at, updated_at)\n"+
				"VALUES (gen_random_uuid(), %s, %s, %s, %s, %s, now(), now());\n",
			quote(name), quote(cell(row, 1)), quote(cell(row, 2)), rate, gstRate)
		count++
	}
	return count, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// numeric normalizes a spreadsheet number cell, tolerating percent signs
// and commas; anything unparseable becomes 0.
func numeric(s string) string {
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return "0"
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
