package app

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/semaphore"

	"wavescope/domain/core"
	"wavescope/domain/dataset"
	"wavescope/internal"
	apperrors "wavescope/internal/errors"
	"wavescope/ports"
)

// DefaultMaxUploadBytes caps uploads when no limit is configured
const DefaultMaxUploadBytes int64 = 50 << 20

// UploadRequest describes one incoming dataset file
type UploadRequest struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// DatasetService ingests uploaded files into the dataset store and
// serves them back. Parsing is bounded by a weighted semaphore so a
// burst of large uploads cannot pin every goroutine in the reader.
type DatasetService struct {
	repo     ports.DatasetRepository
	reader   ports.TableReader
	maxBytes int64
	parseSem *semaphore.Weighted
	logger   *internal.Logger
}

// NewDatasetService creates a dataset service
func NewDatasetService(repo ports.DatasetRepository, reader ports.TableReader, maxBytes int64, parseConcurrency int64) *DatasetService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	if parseConcurrency <= 0 {
		parseConcurrency = 4
	}
	return &DatasetService{
		repo:     repo,
		reader:   reader,
		maxBytes: maxBytes,
		parseSem: semaphore.NewWeighted(parseConcurrency),
		logger:   internal.DefaultLogger.Tagged("DatasetService"),
	}
}

// Ingest validates, parses and stores one uploaded file. Unknown file
// types are logged with the filename and size and rejected without
// touching the store.
func (s *DatasetService) Ingest(ctx context.Context, req UploadRequest) (*dataset.Dataset, error) {
	kind, err := dataset.DetectKind(req.ContentType, req.Filename)
	if err != nil {
		s.logger.Error("Unknown file type: %s (%d bytes)", req.Filename, req.Size)
		return nil, apperrors.UnsupportedFormat(req.Filename, req.ContentType)
	}
	s.logger.Debug("File uploaded (%s): %s (%d bytes)", kind, req.Filename, req.Size)

	if req.Size > s.maxBytes {
		return nil, apperrors.InvalidUpload(fmt.Sprintf("file exceeds %d byte limit", s.maxBytes))
	}

	if err := s.parseSem.Acquire(ctx, 1); err != nil {
		return nil, apperrors.Wrap(err, "upload queue closed")
	}
	defer s.parseSem.Release(1)

	raw, err := io.ReadAll(io.LimitReader(req.Content, s.maxBytes+1))
	if err != nil {
		return nil, apperrors.InvalidUpload("file could not be read")
	}
	if int64(len(raw)) > s.maxBytes {
		return nil, apperrors.InvalidUpload(fmt.Sprintf("file exceeds %d byte limit", s.maxBytes))
	}

	records, err := s.reader.ReadTable(kind, bytes.NewReader(raw))
	if err != nil {
		s.logger.Warn("Parse failed for %s: %v", req.Filename, err)
		return nil, apperrors.InvalidUpload(fmt.Sprintf("file could not be parsed: %v", err))
	}

	ds := &dataset.Dataset{
		ID:               core.NewDatasetID(),
		OriginalFilename: req.Filename,
		Kind:             kind,
		FileSize:         int64(len(raw)),
		Checksum:         core.NewChecksum(raw),
		Records:          records,
		UploadedAt:       core.Now(),
	}

	if err := s.repo.Put(ctx, ds); err != nil {
		return nil, apperrors.Wrap(err, "dataset could not be stored")
	}

	s.logger.Info("Dataset %s stored: %s (%d rows, checksum %s)",
		ds.ID, ds.OriginalFilename, ds.RawRowCount(), ds.Checksum.Short())
	return ds, nil
}

// Get returns a stored dataset by its string id
func (s *DatasetService) Get(ctx context.Context, id string) (*dataset.Dataset, error) {
	did, err := core.ParseDatasetID(id)
	if err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid dataset id: %v", err))
	}
	ds, err := s.repo.Get(ctx, did)
	if err != nil {
		return nil, apperrors.DatasetNotFound(id)
	}
	return ds, nil
}

// List returns summaries of every stored dataset, newest first
func (s *DatasetService) List(ctx context.Context) ([]dataset.Summary, error) {
	return s.repo.List(ctx)
}

// Delete removes a stored dataset; deleting an absent id is not an
// error.
func (s *DatasetService) Delete(ctx context.Context, id string) error {
	did, err := core.ParseDatasetID(id)
	if err != nil {
		return apperrors.InvalidInput(fmt.Sprintf("invalid dataset id: %v", err))
	}
	return s.repo.Delete(ctx, did)
}

// Seed stores a pre-built dataset, used by the demo fixture on boot
func (s *DatasetService) Seed(ctx context.Context, ds *dataset.Dataset) error {
	if err := s.repo.Put(ctx, ds); err != nil {
		return apperrors.Wrap(err, "demo dataset could not be stored")
	}
	s.logger.Info("Seeded dataset %s (%s)", ds.ID, ds.OriginalFilename)
	return nil
}
