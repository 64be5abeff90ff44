package content

import (
	"context"
	"log/slog"
	"time"

	"github.com/dailysync/upsc/pkg/agent"
	"github.com/dailysync/upsc/pkg/model"
	"github.com/dailysync/upsc/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// Generate runs the full pipeline for one date: scrape sources,
// extract sections, generate artifacts per section, and persist the
// aggregate as a full replacement. The whole sequence is retried up to
// the attempt limit; a malformed date is rejected before any work and
// never retried. Replays overwrite the stored aggregate, but each
// attempt re-issues network fetches and generation calls.
func (u *UseCase) Generate(ctx context.Context, rawDate string) (*model.GenerationSummary, error) {
	date, err := model.ParseDateKey(rawDate)
	if err != nil {
		return nil, err
	}

	logger := logging.From(ctx).With("run_id", model.NewRunID(), "date", date)
	logger.Info("starting content generation", "status", StatusPending)

	var lastErr error
	for attempt := 1; attempt <= u.maxAttempts; attempt++ {
		if attempt > 1 {
			if err := sleep(ctx, u.retryInterval); err != nil {
				return nil, err
			}
		}

		summary, err := u.runAttempt(ctx, date, logger)
		if err == nil {
			logger.Info("content generation finished",
				"status", StatusDone,
				"sections", summary.SectionsCount,
				"cards", summary.CardsCount,
				"mindmaps", summary.MindmapsCount,
				"prelims", summary.PrelimsCount,
				"mains", summary.MainsCount)
			return summary, nil
		}

		lastErr = err
		logger.Warn("pipeline attempt failed",
			"attempt", attempt,
			"max_attempts", u.maxAttempts,
			"error", err)
	}

	logger.Error("content generation failed", "status", StatusFailed)
	return nil, goerr.Wrap(lastErr, "pipeline failed, retries exhausted",
		goerr.V("date", date),
		goerr.V("attempts", u.maxAttempts))
}

// runAttempt performs one full fetch -> extract -> generate -> persist
// sequence. Any error fails the attempt as a whole; there is no
// resume-from-save path, a failed upsert redoes everything.
func (u *UseCase) runAttempt(ctx context.Context, date model.DateKey, logger *slog.Logger) (*model.GenerationSummary, error) {
	logger.Info("scraping sources", "status", StatusScraping)
	article := u.scraper.FetchAll(ctx, date)

	logger.Info("extracting sections", "status", StatusExtracting, "article_bytes", len(article))
	sections, err := u.agent.ExtractSections(ctx, article)
	if err != nil {
		return nil, goerr.Wrap(err, "section extraction failed")
	}
	if len(sections) == 0 {
		// A legitimate outcome ("nothing relevant today"), but treated as
		// retryable just like a failure: a later attempt may scrape more.
		return nil, goerr.Wrap(model.ErrNoSections, "extraction yielded zero sections")
	}

	logger.Info("generating artifacts", "status", StatusGenerating, "sections", len(sections))
	aggregate, err := u.generateArtifacts(ctx, date, sections)
	if err != nil {
		return nil, err
	}

	if err := aggregate.Validate(); err != nil {
		return nil, goerr.Wrap(err, "aggregate failed invariant check")
	}

	logger.Info("saving aggregate", "status", StatusSaving)
	if err := u.repo.Put(ctx, aggregate); err != nil {
		return nil, goerr.Wrap(err, "failed to persist aggregate")
	}

	return &model.GenerationSummary{
		Message:       "Content generated and saved successfully",
		Date:          date,
		SectionsCount: len(aggregate.Sections),
		CardsCount:    len(aggregate.Cards),
		MindmapsCount: len(aggregate.Mindmap.Mindmaps),
		PrelimsCount:  len(aggregate.PYQ.Prelims),
		MainsCount:    len(aggregate.PYQ.Mains),
	}, nil
}

// generateArtifacts runs the three generators over each section in
// extraction order and merges their drafts into provenance-tagged
// records. Provenance always comes from the section being processed,
// never from generator output.
func (u *UseCase) generateArtifacts(ctx context.Context, date model.DateKey, sections []*model.Section) (*model.DailyContent, error) {
	aggregate := &model.DailyContent{
		Date:     date,
		Sections: sections,
		Cards:    []*model.Card{},
		Mindmap:  model.MindmapSet{Mindmaps: make([]*model.Mindmap, 0, len(sections))},
		PYQ: model.PYQSet{
			Prelims: []*model.PrelimsQuestion{},
			Mains:   []*model.MainsQuestion{},
		},
	}

	for _, section := range sections {
		text := section.Text()

		cards, err := u.agent.GenerateCards(ctx, text)
		if err != nil {
			return nil, goerr.Wrap(err, "card generation failed", goerr.V("section_index", section.Index))
		}
		for _, draft := range cards {
			aggregate.Cards = append(aggregate.Cards, mergeCard(draft, section))
		}

		mindmap, err := u.agent.GenerateMindmap(ctx, text)
		if err != nil {
			return nil, goerr.Wrap(err, "mindmap generation failed", goerr.V("section_index", section.Index))
		}
		// A nil draft still yields a placeholder so mindmaps stay aligned
		// 1:1 with sections.
		aggregate.Mindmap.Mindmaps = append(aggregate.Mindmap.Mindmaps, mergeMindmap(mindmap, section))

		pyq, err := u.agent.GeneratePYQ(ctx, text)
		if err != nil {
			return nil, goerr.Wrap(err, "pyq generation failed", goerr.V("section_index", section.Index))
		}
		for _, draft := range pyq.Prelims {
			aggregate.PYQ.Prelims = append(aggregate.PYQ.Prelims, mergePrelims(draft, section))
		}
		for _, draft := range pyq.Mains {
			aggregate.PYQ.Mains = append(aggregate.PYQ.Mains, mergeMains(draft, section))
		}
	}

	return aggregate, nil
}

func mergeCard(draft *agent.CardDraft, section *model.Section) *model.Card {
	return &model.Card{
		Title:        draft.Title,
		GSTags:       draft.GSTags,
		Tags:         draft.Tags,
		Summary:      draft.Summary,
		CTAButtons:   draft.CTAButtons,
		SectionIndex: section.Index,
		SectionTitle: section.Title,
	}
}

func mergeMindmap(draft *agent.MindmapDraft, section *model.Section) *model.Mindmap {
	mindmap := &model.Mindmap{
		SectionIndex: section.Index,
		SectionTitle: section.Title,
	}
	if draft != nil {
		mindmap.Title = draft.Title
		mindmap.Nodes = draft.Nodes
	}
	return mindmap
}

func mergePrelims(draft *agent.PrelimsDraft, section *model.Section) *model.PrelimsQuestion {
	return &model.PrelimsQuestion{
		Question:      draft.Question,
		Options:       draft.Options,
		CorrectAnswer: draft.CorrectAnswer,
		Explanation:   draft.Explanation,
		GSPaper:       draft.GSPaper,
		Year:          draft.Year,
		SectionIndex:  section.Index,
		SectionTitle:  section.Title,
	}
}

func mergeMains(draft *agent.MainsDraft, section *model.Section) *model.MainsQuestion {
	return &model.MainsQuestion{
		Question:     draft.Question,
		Type:         draft.Type,
		GSPaper:      draft.GSPaper,
		Year:         draft.Year,
		KeyPoints:    draft.KeyPoints,
		SectionIndex: section.Index,
		SectionTitle: section.Title,
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return goerr.Wrap(ctx.Err(), "pipeline cancelled during retry pause")
	case <-timer.C:
		return nil
	}
}
