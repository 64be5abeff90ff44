package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/dailysync/upsc/pkg/model"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const collectionDailyContent = "daily_content"

// Firestore implements Repository using Firestore
type Firestore struct {
	client *firestore.Client
}

// New creates a new Firestore repository
func New(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client")
	}

	return &Firestore{client: client}, nil
}

// Close releases the underlying client
func (r *Firestore) Close() error {
	return r.client.Close()
}

func (r *Firestore) Put(ctx context.Context, content *model.DailyContent) error {
	docRef := r.client.Collection(collectionDailyContent).Doc(content.Date.String())

	now := time.Now()
	doc := *content
	doc.CreatedAt = now
	doc.UpdatedAt = now

	snap, err := docRef.Get(ctx)
	switch {
	case err == nil:
		var prev model.DailyContent
		if err := snap.DataTo(&prev); err != nil {
			return goerr.Wrap(err, "failed to decode existing document", goerr.Value("date", content.Date))
		}
		doc.CreatedAt = prev.CreatedAt
	case status.Code(err) == codes.NotFound:
		// first write for this date
	default:
		return goerr.Wrap(err, "failed to check existing document", goerr.Value("date", content.Date))
	}

	if _, err := docRef.Set(ctx, &doc); err != nil {
		return goerr.Wrap(err, "failed to save daily content", goerr.Value("date", content.Date))
	}

	return nil
}

func (r *Firestore) Get(ctx context.Context, date model.DateKey) (*model.DailyContent, error) {
	snap, err := r.client.Collection(collectionDailyContent).Doc(date.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrContentNotFound, "no document for date", goerr.V("date", date))
		}
		return nil, goerr.Wrap(err, "failed to get daily content", goerr.Value("date", date))
	}

	var content model.DailyContent
	if err := snap.DataTo(&content); err != nil {
		return nil, goerr.Wrap(err, "failed to decode daily content", goerr.Value("date", date))
	}

	return &content, nil
}

func (r *Firestore) ListDates(ctx context.Context) ([]model.DateKey, error) {
	iter := r.client.Collection(collectionDailyContent).DocumentRefs(ctx)

	var dates []model.DateKey
	for {
		ref, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate documents")
		}
		dates = append(dates, model.DateKey(ref.ID))
	}

	sortDatesDesc(dates)
	return dates, nil
}

func (r *Firestore) GetRange(ctx context.Context, start, end model.DateKey) ([]*model.DailyContent, error) {
	// Document IDs sort lexically, not chronologically, so the range is
	// filtered client-side over the full collection like a date-field
	// query would need an extra index for.
	iter := r.client.Collection(collectionDailyContent).Documents(ctx)
	defer iter.Stop()

	startT, endT := start.Time(), end.Time()

	var results []*model.DailyContent
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate documents")
		}

		var content model.DailyContent
		if err := snap.DataTo(&content); err != nil {
			return nil, goerr.Wrap(err, "failed to decode daily content", goerr.Value("date", snap.Ref.ID))
		}

		t := content.Date.Time()
		if !t.Before(startT) && !t.After(endT) {
			results = append(results, &content)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Date.Time().After(results[j].Date.Time())
	})
	return results, nil
}

func (r *Firestore) Delete(ctx context.Context, date model.DateKey) error {
	if _, err := r.client.Collection(collectionDailyContent).Doc(date.String()).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete daily content", goerr.Value("date", date))
	}
	return nil
}

func sortDatesDesc(dates []model.DateKey) {
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Time().After(dates[j].Time())
	})
}
