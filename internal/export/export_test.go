package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adarshkumar7463/army-chatbot/internal/log"
)

func testTable() Table {
	return Table{
		Headers: []string{"Army Number", "Full Name", "Rank"},
		Rows: [][]string{
			{"A1234B", "Rajesh Kumar", "Major"},
			{"C5678D", "Amit Singh", "Colonel"},
		},
	}
}

func newTestExporter(t *testing.T) *Exporter {
	t.Helper()
	e, err := New(t.TempDir(), "/exports/", log.NewNop())
	require.NoError(t, err)
	return e
}

func TestExport_CSV(t *testing.T) {
	e := newTestExporter(t)

	url, err := e.Export(testTable(), "Officers in Kashmir", "officers", FormatExcel)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/exports/officers_"), "url: %s", url)
	assert.True(t, strings.HasSuffix(url, ".csv"), "url: %s", url)

	f, err := os.Open(filepath.Join(e.Dir(), filepath.Base(url)))
	require.NoError(t, err)
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // title row is a single field
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4) // title + headers + 2 data rows
	assert.Equal(t, []string{"Officers in Kashmir"}, rows[0])
	assert.Equal(t, []string{"Army Number", "Full Name", "Rank"}, rows[1])
	assert.Equal(t, "A1234B", rows[2][0])
	assert.Equal(t, "Amit Singh", rows[3][1])
}

func TestExport_Word(t *testing.T) {
	e := newTestExporter(t)

	url, err := e.Export(testTable(), "All Majors", "officers", FormatWord)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".doc"), "url: %s", url)

	content, err := os.ReadFile(filepath.Join(e.Dir(), filepath.Base(url)))
	require.NoError(t, err)
	assert.Contains(t, string(content), "<h2>All Majors</h2>")
	assert.Contains(t, string(content), "<td>Rajesh Kumar</td>")
}

func TestExport_PDF(t *testing.T) {
	e := newTestExporter(t)

	url, err := e.Export(testTable(), "All Majors", "officers", FormatPDF)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".pdf"), "url: %s", url)

	info, err := os.Stat(filepath.Join(e.Dir(), filepath.Base(url)))
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestExport_UnsupportedFormat(t *testing.T) {
	e := newTestExporter(t)

	_, err := e.Export(testTable(), "Officers", "officers", "parchment")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExport_UniqueFilenames(t *testing.T) {
	e := newTestExporter(t)

	url1, err := e.Export(testTable(), "Officers", "officers", FormatExcel)
	require.NoError(t, err)
	url2, err := e.Export(testTable(), "Officers", "officers", FormatExcel)
	require.NoError(t, err)

	assert.NotEqual(t, url1, url2)
}
