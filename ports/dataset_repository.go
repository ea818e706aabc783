package ports

import (
	"context"

	"wavescope/domain/core"
	"wavescope/domain/dataset"
)

// DatasetRepository defines the interface for dataset registry operations
type DatasetRepository interface {
	// Core operations
	Put(ctx context.Context, ds *dataset.Dataset) error
	Get(ctx context.Context, id core.DatasetID) (*dataset.Dataset, error)
	Delete(ctx context.Context, id core.DatasetID) error

	// List returns summaries of live datasets, newest first
	List(ctx context.Context) ([]dataset.Summary, error)
}
