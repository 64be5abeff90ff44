// Package jsonx extracts a JSON payload from free-form model output.
//
// The generation capability is asked for bare JSON but may wrap the
// payload in a Markdown code fence or surround it with commentary.
// Extraction accepts exactly one fenced block, or a response that is
// nothing but the payload itself. Anything else fails explicitly; no
// heuristic recovery is attempted.
package jsonx

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

var ErrNoJSONPayload = goerr.New("no JSON payload in response")

const fence = "```"

// Extract returns the JSON payload text embedded in resp. The result
// still has to be unmarshalled by the caller; Extract only locates it.
func Extract(resp string) (string, error) {
	trimmed := strings.TrimSpace(resp)
	if trimmed == "" {
		return "", goerr.Wrap(ErrNoJSONPayload, "empty response")
	}

	if start := strings.Index(trimmed, fence); start >= 0 {
		return extractFenced(trimmed[start+len(fence):])
	}

	if !isPayload(trimmed) {
		return "", goerr.Wrap(ErrNoJSONPayload, "response is not a JSON document",
			goerr.V("response", truncate(trimmed)))
	}
	return trimmed, nil
}

func extractFenced(rest string) (string, error) {
	// Drop the info string ("json", "JSON", ...) on the opening fence line.
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		lang := strings.TrimSpace(rest[:nl])
		if lang != "" && !strings.EqualFold(lang, "json") {
			return "", goerr.Wrap(ErrNoJSONPayload, "fenced block is not JSON",
				goerr.V("lang", lang))
		}
		rest = rest[nl+1:]
	}

	end := strings.Index(rest, fence)
	if end < 0 {
		return "", goerr.Wrap(ErrNoJSONPayload, "unterminated code fence")
	}
	if strings.Contains(rest[end+len(fence):], fence) {
		return "", goerr.Wrap(ErrNoJSONPayload, "multiple fenced blocks in response")
	}

	payload := strings.TrimSpace(rest[:end])
	if !isPayload(payload) {
		return "", goerr.Wrap(ErrNoJSONPayload, "fenced block is not a JSON document",
			goerr.V("payload", truncate(payload)))
	}
	return payload, nil
}

func isPayload(s string) bool {
	if s == "null" {
		return true
	}
	switch {
	case strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}"):
		return true
	case strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]"):
		return true
	}
	return false
}

func truncate(s string) string {
	if len(s) > 256 {
		return s[:256] + "..."
	}
	return s
}
