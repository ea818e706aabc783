package app

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wavescope/adapters/memstore"
	"wavescope/adapters/tabular"
	apperrors "wavescope/internal/errors"
	"wavescope/internal/testkit"
)

func newDatasetService() (*DatasetService, *memstore.Repository) {
	repo := memstore.New(memstore.DefaultConfig())
	return NewDatasetService(repo, tabular.NewReader(), 0, 0), repo
}

func csvUpload(name string, raw []byte) UploadRequest {
	return UploadRequest{
		Filename:    name,
		ContentType: "text/csv",
		Size:        int64(len(raw)),
		Content:     bytes.NewReader(raw),
	}
}

func TestIngestCSV(t *testing.T) {
	svc, repo := newDatasetService()
	raw := testkit.NewKit().CSV()

	ds, err := svc.Ingest(context.Background(), csvUpload("waves.csv", raw))
	require.NoError(t, err)

	assert.Equal(t, "waves.csv", ds.OriginalFilename)
	assert.Equal(t, 241, ds.RawRowCount())
	assert.Equal(t, int64(len(raw)), ds.FileSize)
	assert.False(t, ds.Checksum.IsEmpty())
	assert.Equal(t, 1, repo.Len())

	got, err := svc.Get(context.Background(), ds.ID.String())
	require.NoError(t, err)
	assert.Equal(t, ds.ID, got.ID)
}

func TestIngestUnknownFileType(t *testing.T) {
	svc, repo := newDatasetService()

	_, err := svc.Ingest(context.Background(), UploadRequest{
		Filename:    "report.pdf",
		ContentType: "application/pdf",
		Size:        128,
		Content:     bytes.NewReader([]byte("%PDF-")),
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeUnsupportedFormat, apperrors.GetCode(err))
	assert.Equal(t, 0, repo.Len())
}

func TestIngestTooLarge(t *testing.T) {
	repo := memstore.New(memstore.DefaultConfig())
	svc := NewDatasetService(repo, tabular.NewReader(), 16, 1)

	raw := testkit.NewKit().CSV()
	_, err := svc.Ingest(context.Background(), csvUpload("big.csv", raw))
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidUpload, apperrors.GetCode(err))
	assert.Equal(t, 0, repo.Len())
}

func TestIngestUnparseable(t *testing.T) {
	svc, _ := newDatasetService()

	// A header with no data rows never stores.
	_, err := svc.Ingest(context.Background(), csvUpload("header.csv", []byte("a,b,c\n")))
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidUpload, apperrors.GetCode(err))
}

func TestGetInvalidID(t *testing.T) {
	svc, _ := newDatasetService()

	_, err := svc.Get(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.GetCode(err))
}

func TestGetMissingDataset(t *testing.T) {
	svc, _ := newDatasetService()

	_, err := svc.Get(context.Background(), "no-such-dataset")
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeDatasetNotFound, apperrors.GetCode(err))
}

func TestSeedAndList(t *testing.T) {
	svc, _ := newDatasetService()

	require.NoError(t, svc.Seed(context.Background(), testkit.NewKit().Dataset("demo.csv")))

	summaries, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "demo.csv", summaries[0].Name)
	assert.Equal(t, 241, summaries[0].RawRows)
}
