package llm

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

var (
	thinkBlock  = regexp.MustCompile(`(?s)<think>.*?</think>`)
	wholeFence  = regexp.MustCompile("(?s)^```[A-Za-z]*[ \\t]*\\r?\\n?(.*?)\\r?\\n?```$")
	fencedBlock = regexp.MustCompile("(?s)```[A-Za-z]*[ \\t]*\\r?\\n(.*?)\\r?\\n?```")
	openFence   = regexp.MustCompile("^```[A-Za-z]*[ \\t]*\\r?\\n?")
)

// StripCodeFence removes reasoning blocks and an optional Markdown fence
// (``` or ```json) around the payload. A reply that already starts as JSON is
// left alone, so fences inside its string values survive.
func StripCodeFence(raw string) string {
	s := strings.TrimSpace(thinkBlock.ReplaceAllString(raw, ""))
	if m := wholeFence.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	if strings.HasPrefix(s, "[") || strings.HasPrefix(s, "{") {
		return s
	}
	if strings.HasPrefix(s, "```") {
		// A reply cut off before the closing fence.
		return strings.TrimSpace(openFence.ReplaceAllString(s, ""))
	}
	// Prose around a fenced payload.
	if m := fencedBlock.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return s
}

// StripReasoning drops <think> blocks from a prose reply.
func StripReasoning(raw string) string {
	return strings.TrimSpace(thinkBlock.ReplaceAllString(raw, ""))
}

// Unpack decodes the JSON payload of a reply into v.
func Unpack(raw string, v any) error {
	cleaned := StripCodeFence(raw)
	if cleaned == "" {
		return &MalformedResponse{Raw: raw, Err: errors.New("empty response")}
	}
	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return &MalformedResponse{Raw: raw, Err: err}
	}
	return nil
}

// UnpackValidated checks the payload against schema before decoding it into v.
func UnpackValidated(raw string, schema *Schema, v any) error {
	cleaned := StripCodeFence(raw)
	if err := validateResponse(schema, json.RawMessage(cleaned)); err != nil {
		var malformed *MalformedResponse
		if errors.As(err, &malformed) {
			malformed.Raw = raw
		}
		return err
	}
	return Unpack(raw, v)
}
