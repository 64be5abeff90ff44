package content

import (
	"context"
	"time"

	"github.com/dailysync/upsc/pkg/agent"
	"github.com/dailysync/upsc/pkg/model"
	"github.com/dailysync/upsc/pkg/repository"
)

const (
	defaultMaxAttempts   = 3
	defaultRetryInterval = 5 * time.Second
)

// Scraper aggregates raw source text for a date. It never fails: a
// fully failed aggregation is an empty string.
type Scraper interface {
	FetchAll(ctx context.Context, date model.DateKey) string
}

// Generator is the extraction/generation capability driven by the
// pipeline. Satisfied by *agent.Agent.
type Generator interface {
	ExtractSections(ctx context.Context, articleText string) ([]*model.Section, error)
	GenerateCards(ctx context.Context, sectionText string) ([]*agent.CardDraft, error)
	GenerateMindmap(ctx context.Context, sectionText string) (*agent.MindmapDraft, error)
	GeneratePYQ(ctx context.Context, sectionText string) (*agent.PYQDraft, error)
}

// UseCase drives the daily content pipeline and answers queries over
// the persisted aggregates.
type UseCase struct {
	repo    repository.Repository
	scraper Scraper
	agent   Generator

	maxAttempts   int
	retryInterval time.Duration
}

// Option is a functional option for UseCase
type Option func(*UseCase)

// WithMaxAttempts overrides the number of full pipeline attempts
func WithMaxAttempts(n int) Option {
	return func(uc *UseCase) {
		uc.maxAttempts = n
	}
}

// WithRetryInterval overrides the pause between attempts
func WithRetryInterval(d time.Duration) Option {
	return func(uc *UseCase) {
		uc.retryInterval = d
	}
}

// New creates a content UseCase with its collaborators passed in
// explicitly, so tests can substitute any of them.
func New(repo repository.Repository, scraper Scraper, generator Generator, opts ...Option) *UseCase {
	uc := &UseCase{
		repo:          repo,
		scraper:       scraper,
		agent:         generator,
		maxAttempts:   defaultMaxAttempts,
		retryInterval: defaultRetryInterval,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}
