package ai

import (
	"strings"
	"testing"
)

func TestSanitizeResponseStripsClassifierArtifact(t *testing.T) {
	raw := "Your scan looks fine. Predicted class: 0, Confidence: 0.18 Rest well."

	got := SanitizeResponse(raw)
	if strings.Contains(got, "Predicted class") {
		t.Fatalf("classifier artifact survived: %q", got)
	}
	if !strings.Contains(got, "Your scan looks fine.") {
		t.Fatalf("legitimate text was removed: %q", got)
	}
}

func TestSanitizeResponseStripsBraces(t *testing.T) {
	got := SanitizeResponse("Take {two} tablets {daily}")
	if strings.ContainsAny(got, "{}") {
		t.Fatalf("braces survived: %q", got)
	}
	if got != "Take two tablets daily" {
		t.Fatalf("unexpected result: %q", got)
	}
}

func TestSanitizeResponseDropsQuotedLines(t *testing.T) {
	raw := "Here is my advice.\n\"raw_fragment\": true\nDrink plenty of water."

	got := SanitizeResponse(raw)
	if strings.Contains(got, "raw_fragment") {
		t.Fatalf("quoted fragment line survived: %q", got)
	}
	if !strings.Contains(got, "Here is my advice.") || !strings.Contains(got, "Drink plenty of water.") {
		t.Fatalf("legitimate lines were removed: %q", got)
	}
}

func TestSanitizeResponseTrimsWhitespace(t *testing.T) {
	if got := SanitizeResponse("  \n  hello  \n  "); got != "hello" {
		t.Fatalf("expected trimmed text, got %q", got)
	}
}
