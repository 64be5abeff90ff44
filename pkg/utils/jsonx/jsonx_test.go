package jsonx_test

import (
	"errors"
	"testing"

	"github.com/dailysync/upsc/pkg/utils/jsonx"
	"github.com/m-mizutani/gt"
)

func TestExtractBareObject(t *testing.T) {
	payload, err := jsonx.Extract(`{"title": "test"}`)
	gt.NoError(t, err)
	gt.Equal(t, payload, `{"title": "test"}`)
}

func TestExtractBareArray(t *testing.T) {
	payload, err := jsonx.Extract("\n  [1, 2, 3]\n")
	gt.NoError(t, err)
	gt.Equal(t, payload, "[1, 2, 3]")
}

func TestExtractNull(t *testing.T) {
	payload, err := jsonx.Extract("null")
	gt.NoError(t, err)
	gt.Equal(t, payload, "null")
}

func TestExtractFenced(t *testing.T) {
	resp := "```json\n{\"title\": \"test\"}\n```"
	payload, err := jsonx.Extract(resp)
	gt.NoError(t, err)
	gt.Equal(t, payload, `{"title": "test"}`)
}

func TestExtractFencedWithoutLang(t *testing.T) {
	resp := "```\n[{\"name\": \"a\"}]\n```"
	payload, err := jsonx.Extract(resp)
	gt.NoError(t, err)
	gt.Equal(t, payload, `[{"name": "a"}]`)
}

func TestExtractFencedWithCommentary(t *testing.T) {
	resp := "Here is the result you asked for:\n\n```json\n{\"ok\": true}\n```\n\nLet me know if you need changes."
	payload, err := jsonx.Extract(resp)
	gt.NoError(t, err)
	gt.Equal(t, payload, `{"ok": true}`)
}

func TestExtractEmpty(t *testing.T) {
	_, err := jsonx.Extract("")
	gt.Error(t, err)
	gt.True(t, errors.Is(err, jsonx.ErrNoJSONPayload))

	_, err = jsonx.Extract("   \n\t  ")
	gt.Error(t, err)
}

func TestExtractCommentaryOnly(t *testing.T) {
	_, err := jsonx.Extract("I could not find any relevant content in the article.")
	gt.Error(t, err)
	gt.True(t, errors.Is(err, jsonx.ErrNoJSONPayload))
}

func TestExtractUnterminatedFence(t *testing.T) {
	_, err := jsonx.Extract("```json\n{\"title\": \"test\"}")
	gt.Error(t, err)
}

func TestExtractMultipleFences(t *testing.T) {
	resp := "```json\n{\"a\": 1}\n```\nand also\n```json\n{\"b\": 2}\n```"
	_, err := jsonx.Extract(resp)
	gt.Error(t, err)
}

func TestExtractNonJSONFence(t *testing.T) {
	_, err := jsonx.Extract("```python\nprint('hello')\n```")
	gt.Error(t, err)
}

func TestExtractFencedNonJSONBody(t *testing.T) {
	_, err := jsonx.Extract("```json\nnot actually json\n```")
	gt.Error(t, err)
}
