package content

import (
	"context"

	"github.com/dailysync/upsc/pkg/model"
)

// Get retrieves the persisted aggregate for a date.
func (u *UseCase) Get(ctx context.Context, rawDate string) (*model.DailyContent, error) {
	date, err := model.ParseDateKey(rawDate)
	if err != nil {
		return nil, err
	}

	return u.repo.Get(ctx, date)
}

// GetRange retrieves aggregates for all dates between start and end
// inclusive, most recent first.
func (u *UseCase) GetRange(ctx context.Context, rawStart, rawEnd string) ([]*model.DailyContent, error) {
	start, err := model.ParseDateKey(rawStart)
	if err != nil {
		return nil, err
	}
	end, err := model.ParseDateKey(rawEnd)
	if err != nil {
		return nil, err
	}

	return u.repo.GetRange(ctx, start, end)
}
