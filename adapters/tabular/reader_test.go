package tabular

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"wavescope/domain/dataset"
)

func TestReadTableCSV(t *testing.T) {
	src := strings.NewReader("t,v,label\n0,10,a\n1,20,b\n2,30,c\n")

	rows, err := NewReader().ReadTable(dataset.KindCSV, src)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"t", "v", "label"}, rows[0])
	assert.Equal(t, []string{"2", "30", "c"}, rows[3])
}

func TestReadTableCSVRaggedRows(t *testing.T) {
	// Short rows get padded, whitespace gets trimmed
	src := strings.NewReader("t,v,label\n0, 10\n1,20,b,extra\n")

	rows, err := NewReader().ReadTable(dataset.KindCSV, src)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.Len(t, row, 4)
	}
	assert.Equal(t, "10", rows[1][1])
	assert.Equal(t, "", rows[1][2])
	assert.Equal(t, "extra", rows[2][3])
}

func TestReadTableCSVTooShort(t *testing.T) {
	_, err := NewReader().ReadTable(dataset.KindCSV, strings.NewReader("t,v\n"))
	assert.Error(t, err)
}

func TestReadTableExcel(t *testing.T) {
	f := excelize.NewFile()
	cells := map[string]interface{}{
		"A1": "t", "B1": "v",
		"A2": 0, "B2": 10,
		"A3": 1, "B3": 20,
	}
	for ref, val := range cells {
		require.NoError(t, f.SetCellValue("Sheet1", ref, val))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	rows, err := NewReader().ReadTable(dataset.KindExcel, &buf)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"t", "v"}, rows[0])
	assert.Equal(t, []string{"1", "20"}, rows[2])
}

func TestReadTableFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "waves.csv")
	require.NoError(t, os.WriteFile(path, []byte("t,v\n0,10\n1,20\n"), 0o644))

	rows, err := NewReader().ReadTableFile(path)
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	_, err = NewReader().ReadTableFile(filepath.Join(dir, "waves.pdf"))
	assert.Error(t, err)
}
