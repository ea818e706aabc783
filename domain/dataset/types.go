package dataset

import (
	"strings"

	"wavescope/domain/core"
)

// FileKind identifies the tabular source format of an upload
type FileKind string

const (
	KindCSV   FileKind = "csv"
	KindExcel FileKind = "excel"
)

// Dataset represents one uploaded tabular file held by the registry.
// Records holds the raw untyped cells exactly as read from the file,
// header row included and no rows skipped. Row skipping, type detection
// and column cleaning happen per interaction, never at ingest.
type Dataset struct {
	ID core.DatasetID `json:"id"`

	// File information
	OriginalFilename string        `json:"original_filename"`
	Kind             FileKind      `json:"kind"`
	FileSize         int64         `json:"file_size"`
	Checksum         core.Checksum `json:"checksum"`

	// Raw content, header row first
	Records [][]string `json:"-"`

	UploadedAt core.Timestamp `json:"uploaded_at"`
}

// RawRowCount returns the number of raw rows including the header
func (d *Dataset) RawRowCount() int {
	return len(d.Records)
}

// Summary carries the listing fields shown in the upload panel
type Summary struct {
	ID       core.DatasetID `json:"id"`
	Name     string         `json:"name"`
	Kind     FileKind       `json:"kind"`
	FileSize int64          `json:"file_size"`
	RawRows  int            `json:"raw_rows"`
	Uploaded core.Timestamp `json:"uploaded"`
}

// Summarize builds the listing view of a dataset
func (d *Dataset) Summarize() Summary {
	return Summary{
		ID:       d.ID,
		Name:     d.OriginalFilename,
		Kind:     d.Kind,
		FileSize: d.FileSize,
		RawRows:  d.RawRowCount(),
		Uploaded: d.UploadedAt,
	}
}

// Content types accepted per kind. Browsers are inconsistent about CSV,
// so text/plain is tolerated when the extension agrees.
var (
	csvContentTypes = []string{
		"text/csv",
		"application/csv",
		"text/plain",
	}
	excelContentTypes = []string{
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", // .xlsx
		"application/vnd.ms-excel", // .xls
	}
)

// DetectKind recognizes the file kind from content type with the filename
// extension as fallback. Unrecognized inputs produce the load error that
// halts the pipeline before any dataset exists.
func DetectKind(contentType, filename string) (FileKind, error) {
	ct := contentType
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	ct = strings.TrimSpace(strings.ToLower(ct))
	name := strings.ToLower(filename)

	for _, t := range excelContentTypes {
		if ct == t {
			return KindExcel, nil
		}
	}
	for _, t := range csvContentTypes {
		if ct == t {
			// text/plain only counts when the extension says CSV
			if ct == "text/plain" && !strings.HasSuffix(name, ".csv") {
				break
			}
			return KindCSV, nil
		}
	}

	// Extension fallback for uploads with a missing or generic content type
	switch {
	case strings.HasSuffix(name, ".csv"):
		return KindCSV, nil
	case strings.HasSuffix(name, ".xlsx"), strings.HasSuffix(name, ".xls"):
		return KindExcel, nil
	}

	return "", core.NewFormatError(filename, contentType)
}
