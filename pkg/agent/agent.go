// Package agent drives the generation capability for each pipeline
// stage: section extraction from raw article text, and card, mindmap
// and question generation from one section's text.
//
// Drafts returned by generators carry no provenance fields on purpose.
// The orchestrator attaches section index and title when it merges
// drafts into the daily aggregate, so a model that tries to self-report
// provenance is never trusted.
package agent

import (
	"github.com/dailysync/upsc/pkg/adapter"
	"github.com/m-mizutani/goerr/v2"
)

// ErrMalformedResponse tags a response whose text carried no parseable
// JSON payload, or a payload that does not match the expected schema.
// It is recoverable at the attempt level via the pipeline retry policy.
var ErrMalformedResponse = goerr.New("malformed generation response")

// Agent submits prompts to the generation capability and parses the
// structured results. Each call is independent and stateless.
type Agent struct {
	gemini adapter.Gemini
}

// New creates an Agent on top of the given generation capability.
func New(gemini adapter.Gemini) *Agent {
	return &Agent{gemini: gemini}
}
