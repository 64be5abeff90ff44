package content_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dailysync/upsc/pkg/agent"
	"github.com/dailysync/upsc/pkg/model"
	"github.com/dailysync/upsc/pkg/repository"
	"github.com/dailysync/upsc/pkg/usecase/content"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

// Mock Scraper
type mockScraper struct {
	text  string
	calls int
}

func (m *mockScraper) FetchAll(ctx context.Context, date model.DateKey) string {
	m.calls++
	return m.text
}

// Mock Generator
type mockGenerator struct {
	extractFunc func(ctx context.Context, articleText string) ([]*model.Section, error)
	cardsFunc   func(ctx context.Context, sectionText string) ([]*agent.CardDraft, error)
	mindmapFunc func(ctx context.Context, sectionText string) (*agent.MindmapDraft, error)
	pyqFunc     func(ctx context.Context, sectionText string) (*agent.PYQDraft, error)

	extractCalls int
}

func (m *mockGenerator) ExtractSections(ctx context.Context, articleText string) ([]*model.Section, error) {
	m.extractCalls++
	if m.extractFunc != nil {
		return m.extractFunc(ctx, articleText)
	}
	return []*model.Section{
		{Index: 0, Title: "India-Nepal Power Trade", Content: []string{"p1", "p2"}, Importance: model.ImportanceAbsolute},
		{Index: 1, Title: "MSP Reform", Content: []string{"p3"}, Importance: model.ImportanceHigh},
	}, nil
}

func (m *mockGenerator) GenerateCards(ctx context.Context, sectionText string) ([]*agent.CardDraft, error) {
	if m.cardsFunc != nil {
		return m.cardsFunc(ctx, sectionText)
	}
	return []*agent.CardDraft{
		{Title: "Card", GSTags: "GS2", Tags: []string{"tag"}, Summary: "summary", CTAButtons: "View Mind Map | View PYQs"},
	}, nil
}

func (m *mockGenerator) GenerateMindmap(ctx context.Context, sectionText string) (*agent.MindmapDraft, error) {
	if m.mindmapFunc != nil {
		return m.mindmapFunc(ctx, sectionText)
	}
	return &agent.MindmapDraft{
		Title: "Map",
		Nodes: []*model.MindmapNode{{Name: "Root"}},
	}, nil
}

func (m *mockGenerator) GeneratePYQ(ctx context.Context, sectionText string) (*agent.PYQDraft, error) {
	if m.pyqFunc != nil {
		return m.pyqFunc(ctx, sectionText)
	}
	return &agent.PYQDraft{
		Prelims: []*agent.PrelimsDraft{
			{Question: "Which?", Options: map[string]string{"a": "A", "b": "B", "c": "C", "d": "D"}, CorrectAnswer: "a"},
		},
		Mains: []*agent.MainsDraft{
			{Question: "Discuss.", Type: "15 marks"},
		},
	}, nil
}

// failingRepo injects upsert failures in front of an in-memory store.
type failingRepo struct {
	*repository.Memory
	failPuts int
	putCalls int
}

func (r *failingRepo) Put(ctx context.Context, c *model.DailyContent) error {
	r.putCalls++
	if r.failPuts > 0 {
		r.failPuts--
		return goerr.New("upsert failed")
	}
	return r.Memory.Put(ctx, c)
}

func newUseCase(repo repository.Repository, sc content.Scraper, gen content.Generator) *content.UseCase {
	return content.New(repo, sc, gen, content.WithRetryInterval(0))
}

func TestGenerateEndToEnd(t *testing.T) {
	repo := repository.NewMemory()
	sc := &mockScraper{text: "two sources worth of article text"}
	gen := &mockGenerator{
		cardsFunc: func(ctx context.Context, sectionText string) ([]*agent.CardDraft, error) {
			// First section yields two cards, second yields one.
			if sectionText == "p1\np2" {
				return []*agent.CardDraft{{Title: "C1"}, {Title: "C2"}}, nil
			}
			return []*agent.CardDraft{{Title: "C3"}}, nil
		},
	}

	uc := newUseCase(repo, sc, gen)
	summary, err := uc.Generate(context.Background(), "13-10-2025")
	gt.NoError(t, err)

	gt.Equal(t, summary.Date, model.DateKey("13-10-2025"))
	gt.Equal(t, summary.SectionsCount, 2)
	gt.Equal(t, summary.CardsCount, 3)
	gt.Equal(t, summary.MindmapsCount, 2)
	gt.Equal(t, summary.PrelimsCount, 2)
	gt.Equal(t, summary.MainsCount, 2)

	stored, err := repo.Get(context.Background(), "13-10-2025")
	gt.NoError(t, err)
	gt.NoError(t, stored.Validate())
	gt.A(t, stored.Sections).Length(2)
	gt.A(t, stored.Mindmap.Mindmaps).Length(2)

	// Cards are concatenated in section order with injected provenance.
	gt.Equal(t, stored.Cards[0].SectionIndex, 0)
	gt.Equal(t, stored.Cards[0].SectionTitle, "India-Nepal Power Trade")
	gt.Equal(t, stored.Cards[2].SectionIndex, 1)
	gt.Equal(t, stored.Cards[2].SectionTitle, "MSP Reform")
	for _, c := range stored.Cards {
		gt.True(t, c.SectionIndex == 0 || c.SectionIndex == 1)
	}

	// Mindmaps form a parallel array aligned with sections.
	gt.Equal(t, stored.Mindmap.Mindmaps[0].SectionIndex, 0)
	gt.Equal(t, stored.Mindmap.Mindmaps[1].SectionIndex, 1)

	gt.Equal(t, stored.PYQ.Prelims[1].SectionTitle, "MSP Reform")
	gt.Equal(t, stored.PYQ.Mains[0].SectionIndex, 0)
}

func TestGenerateInvalidDate(t *testing.T) {
	sc := &mockScraper{text: "article"}
	gen := &mockGenerator{}
	uc := newUseCase(repository.NewMemory(), sc, gen)

	_, err := uc.Generate(context.Background(), "2025-10-13")
	gt.Error(t, err)
	gt.True(t, errors.Is(err, model.ErrInvalidDate))

	// Rejected before any work: no scraping, no extraction, no retry.
	gt.Equal(t, sc.calls, 0)
	gt.Equal(t, gen.extractCalls, 0)
}

func TestGenerateRetryExhaustionOnZeroSections(t *testing.T) {
	repo := repository.NewMemory()
	sc := &mockScraper{text: "article"}
	gen := &mockGenerator{
		extractFunc: func(ctx context.Context, articleText string) ([]*model.Section, error) {
			return []*model.Section{}, nil
		},
	}

	uc := newUseCase(repo, sc, gen)
	_, err := uc.Generate(context.Background(), "13-10-2025")
	gt.Error(t, err)
	gt.True(t, errors.Is(err, model.ErrNoSections))

	// Exactly 3 full attempts, each re-scraping and re-extracting.
	gt.Equal(t, sc.calls, 3)
	gt.Equal(t, gen.extractCalls, 3)

	// No store write happened.
	dates, listErr := repo.ListDates(context.Background())
	gt.NoError(t, listErr)
	gt.A(t, dates).Length(0)
}

func TestGenerateMalformedResponseRetried(t *testing.T) {
	repo := repository.NewMemory()
	sc := &mockScraper{text: "article"}

	calls := 0
	gen := &mockGenerator{
		pyqFunc: func(ctx context.Context, sectionText string) (*agent.PYQDraft, error) {
			calls++
			if calls == 1 {
				return nil, goerr.Wrap(agent.ErrMalformedResponse, "no JSON payload")
			}
			return &agent.PYQDraft{}, nil
		},
	}

	uc := newUseCase(repo, sc, gen)
	summary, err := uc.Generate(context.Background(), "13-10-2025")
	gt.NoError(t, err)
	gt.Equal(t, summary.SectionsCount, 2)

	// The malformed response consumed one attempt; the second attempt
	// ran from the top.
	gt.Equal(t, sc.calls, 2)
	gt.Equal(t, gen.extractCalls, 2)
}

func TestGeneratePersistenceFailureRedoesAttempt(t *testing.T) {
	repo := &failingRepo{Memory: repository.NewMemory(), failPuts: 1}
	sc := &mockScraper{text: "article"}
	gen := &mockGenerator{}

	uc := newUseCase(repo, sc, gen)
	_, err := uc.Generate(context.Background(), "13-10-2025")
	gt.NoError(t, err)

	// The failed upsert consumed an attempt and everything was redone;
	// there is no resume-from-save path.
	gt.Equal(t, repo.putCalls, 2)
	gt.Equal(t, sc.calls, 2)
	gt.Equal(t, gen.extractCalls, 2)
}

func TestGenerateRetryExhaustionOnPersistence(t *testing.T) {
	repo := &failingRepo{Memory: repository.NewMemory(), failPuts: 3}
	uc := newUseCase(repo, &mockScraper{text: "article"}, &mockGenerator{})

	_, err := uc.Generate(context.Background(), "13-10-2025")
	gt.Error(t, err)
	gt.Equal(t, repo.putCalls, 3)
}

func TestGenerateOverwriteIdempotence(t *testing.T) {
	repo := repository.NewMemory()
	uc := newUseCase(repo, &mockScraper{text: "article"}, &mockGenerator{})
	ctx := context.Background()

	_, err := uc.Generate(ctx, "13-10-2025")
	gt.NoError(t, err)
	first, err := repo.Get(ctx, "13-10-2025")
	gt.NoError(t, err)

	_, err = uc.Generate(ctx, "13-10-2025")
	gt.NoError(t, err)
	second, err := repo.Get(ctx, "13-10-2025")
	gt.NoError(t, err)

	// Deterministic generators: the stored aggregate is identical apart
	// from timestamps. created_at survives the overwrite, updated_at
	// advances.
	gt.Equal(t, second.Sections, first.Sections)
	gt.Equal(t, second.Cards, first.Cards)
	gt.Equal(t, second.Mindmap, first.Mindmap)
	gt.Equal(t, second.PYQ, first.PYQ)
	gt.Equal(t, second.CreatedAt, first.CreatedAt)
	gt.True(t, second.UpdatedAt.After(first.UpdatedAt))
}

func TestGenerateMindmapPlaceholder(t *testing.T) {
	repo := repository.NewMemory()
	gen := &mockGenerator{
		mindmapFunc: func(ctx context.Context, sectionText string) (*agent.MindmapDraft, error) {
			if sectionText == "p3" {
				return nil, nil
			}
			return &agent.MindmapDraft{Title: "Map"}, nil
		},
	}

	uc := newUseCase(repo, &mockScraper{text: "article"}, gen)
	_, err := uc.Generate(context.Background(), "13-10-2025")
	gt.NoError(t, err)

	stored, err := repo.Get(context.Background(), "13-10-2025")
	gt.NoError(t, err)

	// The second section's mindmap came back null; a placeholder keeps
	// the array aligned and carries provenance anyway.
	gt.A(t, stored.Mindmap.Mindmaps).Length(2)
	gt.Equal(t, stored.Mindmap.Mindmaps[1].Title, "")
	gt.Equal(t, stored.Mindmap.Mindmaps[1].SectionIndex, 1)
	gt.Equal(t, stored.Mindmap.Mindmaps[1].SectionTitle, "MSP Reform")
}

func TestGenerateEmptySourceTextStillExtracted(t *testing.T) {
	// All sources failing yields empty text; extraction still runs and
	// decides whether anything is there.
	sc := &mockScraper{text: ""}
	gen := &mockGenerator{
		extractFunc: func(ctx context.Context, articleText string) ([]*model.Section, error) {
			gt.Equal(t, articleText, "")
			return []*model.Section{}, nil
		},
	}

	uc := newUseCase(repository.NewMemory(), sc, gen)
	_, err := uc.Generate(context.Background(), "13-10-2025")
	gt.Error(t, err)
	gt.True(t, errors.Is(err, model.ErrNoSections))
}

func TestGenerateMaxAttemptsOption(t *testing.T) {
	sc := &mockScraper{text: "article"}
	gen := &mockGenerator{
		extractFunc: func(ctx context.Context, articleText string) ([]*model.Section, error) {
			return nil, fmt.Errorf("extraction broke")
		},
	}

	uc := content.New(repository.NewMemory(), sc, gen,
		content.WithRetryInterval(0), content.WithMaxAttempts(1))
	_, err := uc.Generate(context.Background(), "13-10-2025")
	gt.Error(t, err)
	gt.Equal(t, sc.calls, 1)
}

func TestGenerateConcurrentDates(t *testing.T) {
	repo := repository.NewMemory()

	done := make(chan error, 2)
	for _, date := range []string{"13-10-2025", "14-10-2025"} {
		go func(d string) {
			uc := newUseCase(repo, &mockScraper{text: "article"}, &mockGenerator{})
			_, err := uc.Generate(context.Background(), d)
			done <- err
		}(date)
	}
	for i := 0; i < 2; i++ {
		gt.NoError(t, <-done)
	}

	dates, err := repo.ListDates(context.Background())
	gt.NoError(t, err)
	gt.A(t, dates).Length(2)
}
