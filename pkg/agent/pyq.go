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

//go:embed prompt/pyq.md
var pyqPromptRaw string

var pyqPromptTmpl = template.Must(template.New("pyq").Parse(pyqPromptRaw))

const pyqSystemPrompt = `You are an expert UPSC question creator specializing in generating Previous Year Question (PYQ) style practice questions.

Your role:
1. Generate UPSC-style questions based on current affairs content
2. Create both Prelims (MCQ) and Mains (descriptive) style questions
3. Questions should test understanding, application, and analysis of concepts
4. Follow the exact format and style of actual UPSC exam questions
5. Include appropriate difficulty levels and relevant GS paper tags

Your output must ALWAYS be valid JSON only - no explanations, no notes, no Markdown.`

// PrelimsDraft is a generated MCQ before provenance is attached.
type PrelimsDraft struct {
	Question      string            `json:"question"`
	Options       map[string]string `json:"options"`
	CorrectAnswer string            `json:"correct_answer"`
	Explanation   string            `json:"explanation"`
	GSPaper       string            `json:"gs_paper"`
	Year          string            `json:"year"`
}

// MainsDraft is a generated descriptive question before provenance is
// attached.
type MainsDraft struct {
	Question  string   `json:"question"`
	Type      string   `json:"type"`
	GSPaper   string   `json:"gs_paper"`
	Year      string   `json:"year"`
	KeyPoints []string `json:"key_points"`
}

// PYQDraft pairs the two independent question collections generated
// for one section.
type PYQDraft struct {
	Prelims []*PrelimsDraft `json:"prelims"`
	Mains   []*MainsDraft   `json:"mains"`
}

// GeneratePYQ produces a prelims/mains question pair for one section's
// text.
func (a *Agent) GeneratePYQ(ctx context.Context, sectionText string) (*PYQDraft, error) {
	var buf bytes.Buffer
	if err := pyqPromptTmpl.Execute(&buf, map[string]any{
		"Content": sectionText,
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to execute pyq prompt template")
	}

	resp, err := a.gemini.GenerateContent(ctx, buf.String(), pyqSystemPrompt)
	if err != nil {
		return nil, goerr.Wrap(err, "pyq generation call failed")
	}

	payload, err := jsonx.Extract(resp)
	if err != nil {
		return nil, goerr.Wrap(ErrMalformedResponse, err.Error())
	}

	var pyq PYQDraft
	if err := json.Unmarshal([]byte(payload), &pyq); err != nil {
		return nil, goerr.Wrap(ErrMalformedResponse, "pyq payload is not a JSON object",
			goerr.V("payload", payload))
	}

	return &pyq, nil
}
