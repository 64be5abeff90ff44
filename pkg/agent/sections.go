package agent

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"text/template"

	"github.com/dailysync/upsc/pkg/model"
	"github.com/dailysync/upsc/pkg/utils/jsonx"
	"github.com/m-mizutani/goerr/v2"
)

//go:embed prompt/sections.md
var sectionsPromptRaw string

var sectionsPromptTmpl = template.Must(template.New("sections").Parse(sectionsPromptRaw))

const sectionsSystemPrompt = `You are an expert UPSC content analyst specializing in filtering and prioritizing current affairs articles.

Your role:
1. Analyze raw current affairs content and identify sections that are RELEVANT for UPSC preparation
2. Filter out sections that are NOT important for UPSC (local news, minor updates, non-exam relevant content)
3. Prioritize sections by UPSC importance: absolutely_important, important, moderately_important
4. Select ONLY 4-8 sections (prioritize absolutely important ones first)
5. Clean content by removing ads, author bios, unrelated text, and formatting issues

Your output must ALWAYS be valid JSON only - no explanations, no notes, no Markdown.`

// ExtractSections analyzes raw article text and returns the
// UPSC-relevant sections in extraction order. Index is assigned here
// by position, never taken from the model. An empty slice is a valid
// result meaning no relevant content was found today.
func (a *Agent) ExtractSections(ctx context.Context, articleText string) ([]*model.Section, error) {
	var buf bytes.Buffer
	if err := sectionsPromptTmpl.Execute(&buf, map[string]any{
		"Article": articleText,
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to execute sections prompt template")
	}

	resp, err := a.gemini.GenerateContent(ctx, buf.String(), sectionsSystemPrompt)
	if err != nil {
		return nil, goerr.Wrap(err, "section extraction call failed")
	}

	payload, err := jsonx.Extract(resp)
	if err != nil {
		return nil, goerr.Wrap(ErrMalformedResponse, err.Error())
	}

	var raw []struct {
		Title      string           `json:"title"`
		Content    []string         `json:"content"`
		Importance model.Importance `json:"importance"`
	}
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, goerr.Wrap(ErrMalformedResponse, "section payload is not a JSON array",
			goerr.V("payload", payload))
	}

	sections := make([]*model.Section, 0, len(raw))
	for i, r := range raw {
		sections = append(sections, &model.Section{
			Index:      i,
			Title:      r.Title,
			Content:    r.Content,
			Importance: r.Importance,
		})
	}

	return sections, nil
}
