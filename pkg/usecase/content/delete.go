package content

import (
	"context"

	"github.com/dailysync/upsc/pkg/model"
)

// Delete removes the stored aggregate for a date.
func (u *UseCase) Delete(ctx context.Context, rawDate string) error {
	date, err := model.ParseDateKey(rawDate)
	if err != nil {
		return err
	}

	return u.repo.Delete(ctx, date)
}
