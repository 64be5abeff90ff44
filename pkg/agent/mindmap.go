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

//go:embed prompt/mindmap.md
var mindmapPromptRaw string

var mindmapPromptTmpl = template.Must(template.New("mindmap").Parse(mindmapPromptRaw))

const mindmapSystemPrompt = `You are an expert at converting daily current-affairs text into high-quality mind maps.
Your output must ALWAYS be valid JSON only - no explanations, no notes, no Markdown.`

// MindmapDraft is a generated mindmap before provenance is attached.
type MindmapDraft struct {
	Title string               `json:"title"`
	Nodes []*model.MindmapNode `json:"nodes"`
}

// GenerateMindmap produces exactly one mindmap for one section's text.
// A JSON null response is returned as (nil, nil); the orchestrator
// stores an empty placeholder to keep mindmaps aligned with sections.
func (a *Agent) GenerateMindmap(ctx context.Context, sectionText string) (*MindmapDraft, error) {
	var buf bytes.Buffer
	if err := mindmapPromptTmpl.Execute(&buf, map[string]any{
		"Content": sectionText,
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to execute mindmap prompt template")
	}

	resp, err := a.gemini.GenerateContent(ctx, buf.String(), mindmapSystemPrompt)
	if err != nil {
		return nil, goerr.Wrap(err, "mindmap generation call failed")
	}

	payload, err := jsonx.Extract(resp)
	if err != nil {
		return nil, goerr.Wrap(ErrMalformedResponse, err.Error())
	}

	var mindmap *MindmapDraft
	if err := json.Unmarshal([]byte(payload), &mindmap); err != nil {
		return nil, goerr.Wrap(ErrMalformedResponse, "mindmap payload is not a JSON object",
			goerr.V("payload", payload))
	}

	return mindmap, nil
}
