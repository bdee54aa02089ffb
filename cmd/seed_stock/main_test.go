package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func TestParse_DescartaFilasInvalidas(t *testing.T) {
	csv := "nota;proveedor;fecha_entrada;item;lote;cantidad;unidad;vencimiento;envase;envases;capacidad;ubicacion\n" +
		"NF-1;SUP;2026-01-10;glifosato;L1;100,5;L;2027-01-01;bidón;20;5;ALM\n" +
		"NF-2;SUP;2026-01-10;;L1;10;L;;;;;ALM\n" +
		"NF-3;SUP;fecha;glifosato;L2;10;L;;;;;ALM\n" +
		"NF-4;SUP;2026-01-10;glifosato;L3;-1;L;;;;;ALM\n"

	rows, skipped, err := parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 3, skipped)
	assert.Equal(t, "100.5", rows[0].quantity.String())
	assert.Equal(t, 20, rows[0].packageCount)
	require.NotNil(t, rows[0].expiry)
}

func TestParse_Latin1(t *testing.T) {
	var raw bytes.Buffer
	w := transform.NewWriter(&raw, charmap.ISO8859_1.NewEncoder())
	_, err := w.Write([]byte("h\nNF-1;SUP;2026-01-10;glifosato;L1;10;L;;bidón;2;5;ALM\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	rows, _, err := parse(transform.NewReader(&raw, charmap.ISO8859_1.NewDecoder()))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "bidón", rows[0].packageType)
}

func TestWriteSQL_EscapaComillas(t *testing.T) {
	rows, _, err := parse(strings.NewReader("h\nNF-1;O'Neil;2026-01-10;glifosato;L1;10;L;;;;;ALM\n"))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, writeSQL(&out, rows))
	sql := out.String()
	assert.Contains(t, sql, "'O''Neil'")
	assert.Contains(t, sql, "NULL")
	assert.Contains(t, sql, "ON CONFLICT (note_id, item_id, lot_code) DO NOTHING;")
}
