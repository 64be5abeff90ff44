package repository

import (
	"context"

	"github.com/dailysync/upsc/pkg/model"
)

// Repository is the persistence boundary for daily content. One
// document per date, keyed by the canonical DD-MM-YYYY string. It
// holds no business logic: the pipeline orchestrator is the sole
// writer, and an overwrite replaces the whole document (last write
// wins).
type Repository interface {
	// Put saves the aggregate for its date as a full replacement.
	// created_at is preserved from an existing document; updated_at is
	// refreshed on every write.
	Put(ctx context.Context, content *model.DailyContent) error

	// Get retrieves the aggregate for a date. Returns
	// model.ErrContentNotFound if no document exists.
	Get(ctx context.Context, date model.DateKey) (*model.DailyContent, error)

	// ListDates returns all stored dates, most recent first.
	ListDates(ctx context.Context) ([]model.DateKey, error)

	// GetRange retrieves aggregates with start <= date <= end, most
	// recent first.
	GetRange(ctx context.Context, start, end model.DateKey) ([]*model.DailyContent, error)

	// Delete removes the document for a date. Deleting a missing date
	// is not an error.
	Delete(ctx context.Context, date model.DateKey) error
}
