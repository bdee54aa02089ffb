// seed_stock genera un script SQL para cargar lotes del almacén principal a partir del
// export CSV de notas de entrada (separador ';', codificación ISO-8859-1).
//
// Uso: go run ./cmd/seed_stock [ruta/entradas.csv]
// Por defecto busca entradas.csv en el directorio actual.
// Columnas: nota;proveedor;fecha_entrada;item;lote;cantidad;unidad;vencimiento;envase;envases;capacidad;ubicacion
// Escribe: internal/infrastructure/postgres/migrations/002_seed_stock.sql
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/smartcalda-api/internal/domain/entity"
)

const columns = 12

type row struct {
	key             entity.EntryKey
	supplierID      string
	entryDate       time.Time
	quantity        decimal.Decimal
	unit            string
	expiry          *time.Time
	packageType     string
	packageCount    int
	packageCapacity decimal.Decimal
	location        string
}

func main() {
	csvPath := "entradas.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	rows, skipped, err := parse(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_stock.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d lotes, %d filas descartadas\n", outPath, len(rows), skipped)
}

// parse lee el CSV; la primera fila es cabecera. Las filas sin identidad o con cantidades
// inválidas se descartan y se cuentan.
func parse(r io.Reader) ([]row, int, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	if _, err := cr.Read(); err != nil {
		return nil, 0, err
	}
	var (
		rows    []row
		skipped int
	)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, skipped, err
		}
		rw, ok := parseRow(rec)
		if !ok {
			skipped++
			continue
		}
		rows = append(rows, rw)
	}
	return rows, skipped, nil
}

func parseRow(rec []string) (row, bool) {
	if len(rec) < columns {
		return row{}, false
	}
	for i := range rec {
		rec[i] = strings.TrimSpace(rec[i])
	}
	key, err := entity.NewEntryKey(rec[0], rec[3], rec[4])
	if err != nil {
		return row{}, false
	}
	entryDate, err := time.Parse("2006-01-02", rec[2])
	if err != nil {
		return row{}, false
	}
	qty, err := decimal.NewFromString(strings.ReplaceAll(rec[5], ",", "."))
	if err != nil || !qty.IsPositive() {
		return row{}, false
	}
	rw := row{
		key:         key,
		supplierID:  rec[1],
		entryDate:   entryDate,
		quantity:    qty,
		unit:        rec[6],
		packageType: rec[8],
		location:    rec[11],
	}
	if rec[7] != "" {
		exp, err := time.Parse("2006-01-02", rec[7])
		if err != nil {
			return row{}, false
		}
		rw.expiry = &exp
	}
	if rec[9] != "" {
		n, err := strconv.Atoi(rec[9])
		if err != nil || n < 0 {
			return row{}, false
		}
		rw.packageCount = n
	}
	rw.packageCapacity = decimal.Zero
	if rec[10] != "" {
		c, err := decimal.NewFromString(strings.ReplaceAll(rec[10], ",", "."))
		if err != nil || c.IsNegative() {
			return row{}, false
		}
		rw.packageCapacity = c
	}
	return rw, true
}

func writeSQL(w io.Writer, rows []row) error {
	if _, err := io.WriteString(w, "-- Lotes del almacén principal\n-- Generado por cmd/seed_stock\n\n"); err != nil {
		return err
	}
	for _, r := range rows {
		expiry := "NULL"
		if r.expiry != nil {
			expiry = "'" + r.expiry.Format("2006-01-02") + "'"
		}
		_, err := fmt.Fprintf(w,
			"INSERT INTO stock_entries (note_id, item_id, lot_code, supplier_id, entry_date, received_qty, unit, expiry_date, package_type, package_count, package_capacity, current_balance, location_code, active)\n"+
				"VALUES ('%s', '%s', '%s', '%s', '%s', %s, '%s', %s, '%s', %d, %s, %s, '%s', TRUE)\n"+
				"ON CONFLICT (note_id, item_id, lot_code) DO NOTHING;\n",
			escapeSQL(r.key.NoteID), escapeSQL(r.key.ItemID), escapeSQL(r.key.LotCode), escapeSQL(r.supplierID),
			r.entryDate.Format("2006-01-02"), r.quantity.String(), escapeSQL(r.unit), expiry,
			escapeSQL(r.packageType), r.packageCount, r.packageCapacity.String(), r.quantity.String(), escapeSQL(r.location))
		if err != nil {
			return err
		}
	}
	return nil
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
