package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	_ "github.com/lib/pq"
)

// Loads a product catalog spreadsheet into the products table. The sheet
// must carry a header row with product_name, price, clean_ingreds and
// product_url columns, in any order.
func main() {
	var (
		file  = flag.String("file", "", "path to the catalog .xlsx file")
		dsn   = flag.String("dsn", os.Getenv("SKINCARE_STORE_DSN"), "Postgres connection string")
		sheet = flag.String("sheet", "", "sheet name (defaults to the first sheet)")
	)
	flag.Parse()

	if *file == "" {
		log.Fatal("missing -file: path to the catalog .xlsx file is required")
	}
	if *dsn == "" {
		log.Fatal("missing -dsn: set the flag or SKINCARE_STORE_DSN")
	}

	rows, err := readCatalog(*file, *sheet)
	if err != nil {
		log.Fatalf("Failed to read catalog: %v", err)
	}
	log.Printf("[IMPORT] Read %d catalog rows from %s", len(rows), *file)

	db, err := sql.Open("postgres", *dsn)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to reach database: %v", err)
	}

	inserted, skipped, err := insertProducts(db, rows)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}
	log.Printf("[IMPORT] Done: %d inserted, %d skipped", inserted, skipped)
}

// catalogRow is one product row from the spreadsheet.
type catalogRow struct {
	Name        string
	Price       string
	Ingredients string
	URL         string
}

// readCatalog opens the workbook and maps its rows by header name.
func readCatalog(path, sheet string) ([]catalogRow, error) {
	workbook, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer workbook.Close()

	if sheet == "" {
		sheet = workbook.GetSheetName(0)
	}

	rows, err := workbook.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no data rows", sheet)
	}

	columns := make(map[string]int)
	for i, header := range rows[0] {
		columns[strings.TrimSpace(strings.ToLower(header))] = i
	}
	for _, required := range []string{"product_name", "price", "clean_ingreds"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("sheet %q is missing column %q", sheet, required)
		}
	}

	cell := func(row []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	catalog := make([]catalogRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		catalog = append(catalog, catalogRow{
			Name:        cell(row, "product_name"),
			Price:       cell(row, "price"),
			Ingredients: cell(row, "clean_ingreds"),
			URL:         cell(row, "product_url"),
		})
	}
	return catalog, nil
}

// insertProducts writes the rows in one transaction. Rows missing a name,
// price or ingredient list are skipped with a warning.
func insertProducts(db *sql.DB, rows []catalogRow) (inserted, skipped int, err error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO products (product_name, price, clean_ingreds, product_url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_name) DO UPDATE
		SET price = EXCLUDED.price,
		    clean_ingreds = EXCLUDED.clean_ingreds,
		    product_url = EXCLUDED.product_url`)
	if err != nil {
		return 0, 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if row.Name == "" || row.Price == "" || row.Ingredients == "" {
			log.Printf("[IMPORT] Skipping incomplete row (name=%q)", row.Name)
			skipped++
			continue
		}
		if _, err := stmt.Exec(row.Name, row.Price, row.Ingredients, row.URL); err != nil {
			return 0, 0, fmt.Errorf("insert %q: %w", row.Name, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("commit: %w", err)
	}
	return inserted, skipped, nil
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime)
	log.SetOutput(os.Stdout)
}
