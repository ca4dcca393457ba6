package tools

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExtractLabTextReadsPlainText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lab.txt")
	if err := os.WriteFile(path, []byte("  Hemoglobin: 13.5\nWBC: 6.2  "), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	got := ExtractLabText(path)
	if got != "Hemoglobin: 13.5\nWBC: 6.2" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestExtractLabTextEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lab.txt")
	if err := os.WriteFile(path, []byte("   \n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if got := ExtractLabText(path); got != "No text found in lab report" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestExtractLabTextUnsupportedFormat(t *testing.T) {
	if got := ExtractLabText("report.pdf"); got != "Unsupported format: .pdf" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestExtractLabTextMissingFile(t *testing.T) {
	got := ExtractLabText(filepath.Join(t.TempDir(), "missing.txt"))
	if !strings.HasPrefix(got, "Error extracting lab text:") {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestParseMedicalImageProbesPNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scan.png")

	img := image.NewGray(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			img.SetGray(x, y, color.Gray{Y: 128})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	f.Close()

	got := ParseMedicalImage(path)
	if !strings.Contains(got, "Format: png") {
		t.Fatalf("missing format: %q", got)
	}
	if !strings.Contains(got, "Shape: (2, 4)") {
		t.Fatalf("shape should be rows then columns: %q", got)
	}
	if !strings.Contains(got, "Mean Intensity: 128.00") {
		t.Fatalf("unexpected intensity: %q", got)
	}
}

func TestParseMedicalImageUnsupportedFormat(t *testing.T) {
	if got := ParseMedicalImage("scan.dcm"); got != "Unsupported format: .dcm" {
		t.Fatalf("unexpected text: %q", got)
	}
}
