package repository

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/dailysync/upsc/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

// Memory implements Repository in process memory. It backs tests and
// local runs without a Firestore project.
type Memory struct {
	mu   sync.RWMutex
	docs map[model.DateKey]*model.DailyContent
}

// NewMemory creates an empty in-memory repository
func NewMemory() *Memory {
	return &Memory{docs: make(map[model.DateKey]*model.DailyContent)}
}

func (r *Memory) Put(ctx context.Context, content *model.DailyContent) error {
	doc, err := deepCopy(content)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	doc.CreatedAt = now
	doc.UpdatedAt = now
	if prev, ok := r.docs[content.Date]; ok {
		doc.CreatedAt = prev.CreatedAt
	}

	r.docs[content.Date] = doc
	return nil
}

func (r *Memory) Get(ctx context.Context, date model.DateKey) (*model.DailyContent, error) {
	r.mu.RLock()
	doc, ok := r.docs[date]
	r.mu.RUnlock()

	if !ok {
		return nil, goerr.Wrap(model.ErrContentNotFound, "no document for date", goerr.V("date", date))
	}
	return deepCopy(doc)
}

func (r *Memory) ListDates(ctx context.Context) ([]model.DateKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dates := make([]model.DateKey, 0, len(r.docs))
	for date := range r.docs {
		dates = append(dates, date)
	}
	sortDatesDesc(dates)
	return dates, nil
}

func (r *Memory) GetRange(ctx context.Context, start, end model.DateKey) ([]*model.DailyContent, error) {
	dates, err := r.ListDates(ctx)
	if err != nil {
		return nil, err
	}

	startT, endT := start.Time(), end.Time()

	var results []*model.DailyContent
	for _, date := range dates {
		t := date.Time()
		if t.Before(startT) || t.After(endT) {
			continue
		}
		doc, err := r.Get(ctx, date)
		if err != nil {
			return nil, err
		}
		results = append(results, doc)
	}
	return results, nil
}

func (r *Memory) Delete(ctx context.Context, date model.DateKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.docs, date)
	return nil
}

// deepCopy isolates stored documents from caller mutation
func deepCopy(content *model.DailyContent) (*model.DailyContent, error) {
	data, err := json.Marshal(content)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to copy daily content")
	}
	var doc model.DailyContent
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, goerr.Wrap(err, "failed to copy daily content")
	}
	return &doc, nil
}
