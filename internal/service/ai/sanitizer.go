package ai

import (
	"strings"

	"github.com/cloudwego/eino/schema"
)

// classifierArtifact is a known tool-output fragment that has been observed
// leaking into visible responses.
const classifierArtifact = "Predicted class: 0, Confidence: 0.18"

// SanitizeResponse is a best-effort scrub of internal tool output that can
// leak into the model's visible reply: the classifier placeholder, literal
// braces, and lines that open with a quotation mark (stray structured-data
// fragments). This is string scrubbing, not parsing - a provisional
// workaround, kept deliberately dumb.
func SanitizeResponse(raw string) string {
	text := strings.ReplaceAll(raw, classifierArtifact, "")
	text = strings.ReplaceAll(text, "{", "")
	text = strings.ReplaceAll(text, "}", "")
	text = strings.TrimSpace(text)

	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), `"`) {
			continue
		}
		kept = append(kept, line)
	}

	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// resultText extracts the primary text output from a model result.
func resultText(msg *schema.Message) string {
	if msg == nil {
		return ""
	}
	return msg.Content
}
