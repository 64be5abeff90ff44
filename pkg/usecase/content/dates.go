package content

import (
	"context"

	"github.com/dailysync/upsc/pkg/model"
)

// Dates lists all dates with stored content, most recent first.
func (u *UseCase) Dates(ctx context.Context) ([]model.DateKey, error) {
	return u.repo.ListDates(ctx)
}
