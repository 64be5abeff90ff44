package agent

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"text/template"

	"github.com/dailysync/upsc/pkg/utils/jsonx"
	"github.com/m-mizutani/goerr/v2"
)

//go:embed prompt/cards.md
var cardsPromptRaw string

var cardsPromptTmpl = template.Must(template.New("cards").Parse(cardsPromptRaw))

const cardsSystemPrompt = `You are an expert at converting daily current-affairs text into high-quality recall cards for UPSC aspirants.

Each card should represent a distinct topic/concept from the content with:
- A clear, concise Title
- Relevant GS Paper tags (GS1, GS2, GS3, GS4, or combinations)
- Relevant Tags (keywords like Hydropower, Bilateral Relations, etc.)
- A Summary (3-4 lines covering key points)
- CTA Buttons (always "View Mind Map | View PYQs")

Your output must ALWAYS be valid JSON only - no explanations, no notes, no Markdown.`

// CardDraft is a generated recall card before provenance is attached.
type CardDraft struct {
	Title      string   `json:"title"`
	GSTags     string   `json:"gs_tags"`
	Tags       []string `json:"tags"`
	Summary    string   `json:"summary"`
	CTAButtons string   `json:"cta_buttons"`
}

// GenerateCards produces zero or more recall cards for one section's
// text.
func (a *Agent) GenerateCards(ctx context.Context, sectionText string) ([]*CardDraft, error) {
	var buf bytes.Buffer
	if err := cardsPromptTmpl.Execute(&buf, map[string]any{
		"Content": sectionText,
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to execute cards prompt template")
	}

	resp, err := a.gemini.GenerateContent(ctx, buf.String(), cardsSystemPrompt)
	if err != nil {
		return nil, goerr.Wrap(err, "card generation call failed")
	}

	payload, err := jsonx.Extract(resp)
	if err != nil {
		return nil, goerr.Wrap(ErrMalformedResponse, err.Error())
	}

	var cards []*CardDraft
	if err := json.Unmarshal([]byte(payload), &cards); err != nil {
		return nil, goerr.Wrap(ErrMalformedResponse, "card payload is not a JSON array",
			goerr.V("payload", payload))
	}

	return cards, nil
}
