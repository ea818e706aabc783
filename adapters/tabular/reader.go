package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"wavescope/domain/dataset"
)

// Reader extracts raw records from CSV and Excel streams. Rows come back
// untyped and unskipped; the frame layer owns skipping, typing and
// cleaning so the same records can be re-framed on every interaction.
type Reader struct{}

// NewReader creates a tabular reader
func NewReader() *Reader {
	return &Reader{}
}

// ReadTable reads all rows from the stream as string cells, header first
func (r *Reader) ReadTable(kind dataset.FileKind, src io.Reader) ([][]string, error) {
	switch kind {
	case dataset.KindCSV:
		return r.readCSV(src)
	case dataset.KindExcel:
		return r.readExcel(src)
	default:
		return nil, fmt.Errorf("unsupported file kind: %s", kind)
	}
}

// ReadTableFile reads a tabular file from disk, detecting the kind from
// the extension. Used by the CLI paths where no content type exists.
func (r *Reader) ReadTableFile(path string) ([][]string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	var kind dataset.FileKind
	switch ext {
	case ".csv":
		kind = dataset.KindCSV
	case ".xlsx", ".xls":
		kind = dataset.KindExcel
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return r.ReadTable(kind, f)
}

func (r *Reader) readCSV(src io.Reader) ([][]string, error) {
	reader := csv.NewReader(src)
	// Rows may be ragged in hand-edited captures
	reader.FieldsPerRecord = -1

	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV data: %w", err)
	}
	readTime := time.Since(readStart)
	log.Printf("[TableReader] CSV read in %.2fms (%d rows)", float64(readTime.Nanoseconds())/1e6, len(rows))

	if len(rows) < 2 {
		return nil, fmt.Errorf("CSV data must have at least a header row and one data row")
	}

	return normalizeRows(rows), nil
}

func (r *Reader) readExcel(src io.Reader) ([][]string, error) {
	startTime := time.Now()
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel data: %w", err)
	}
	defer f.Close()
	log.Printf("[TableReader] Excel workbook opened in %.2fms", float64(time.Since(startTime).Nanoseconds())/1e6)

	sheet := f.GetSheetName(0)
	if sheet == "" {
		sheet = "Sheet1"
	}

	readStart := time.Now()
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	log.Printf("[TableReader] Sheet %s read in %.2fms (%d rows)", sheet, float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	if len(rows) < 2 {
		return nil, fmt.Errorf("Excel data must have at least a header row and one data row")
	}

	return normalizeRows(rows), nil
}

// normalizeRows trims cells and pads every row to the widest width so the
// record table is rectangular. Excel row reads drop trailing empty cells,
// and ragged CSV rows would otherwise break dataframe loading.
func normalizeRows(rows [][]string) [][]string {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	out := make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, width)
		for j := 0; j < width; j++ {
			if j < len(row) {
				cells[j] = strings.TrimSpace(row[j])
			}
		}
		out[i] = cells
	}
	return out
}
