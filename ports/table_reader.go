package ports

import (
	"io"

	"wavescope/domain/dataset"
)

// TableReader extracts raw records from a tabular byte stream.
// Implementations return every row as untyped string cells, header row
// first, without skipping or type coercion.
type TableReader interface {
	ReadTable(kind dataset.FileKind, r io.Reader) ([][]string, error)
}
