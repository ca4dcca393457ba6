// Package tools holds the direct file-probing bindings the diagnostic
// pipeline feeds into agent prompts. Each binding returns a descriptive
// string in every situation - failures included - because the consumer is a
// prompt, not an error path.
package tools

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
)

// ExtractLabText reads textual lab report content. Plain-text files are
// read through; binary formats that would need OCR are reported as
// unsupported rather than guessed at.
func ExtractLabText(path string) string {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Sprintf("Error extracting lab text: %v", err)
		}
		text := strings.TrimSpace(string(data))
		if text == "" {
			return "No text found in lab report"
		}
		return text
	default:
		return fmt.Sprintf("Unsupported format: %s", ext)
	}
}

// ParseMedicalImage probes a standard medical image and summarizes its
// dimensions and mean gray intensity, mirroring what the imaging agent
// expects as raw material. DICOM and NIfTI need dedicated parsers and are
// reported as unsupported.
func ParseMedicalImage(path string) string {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".png", ".jpg", ".jpeg":
		f, err := os.Open(path)
		if err != nil {
			return fmt.Sprintf("Error parsing image: %v", err)
		}
		defer f.Close()

		img, format, err := image.Decode(f)
		if err != nil {
			return fmt.Sprintf("Error reading image: %v", err)
		}

		bounds := img.Bounds()
		mean := meanGrayIntensity(img)
		return fmt.Sprintf("Image loaded. Format: %s, Shape: (%d, %d), Mean Intensity: %.2f",
			format, bounds.Dy(), bounds.Dx(), mean)
	default:
		return fmt.Sprintf("Unsupported format: %s", ext)
	}
}

// meanGrayIntensity averages the luma of every pixel on a 0-255 scale.
func meanGrayIntensity(img image.Image) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	var sum float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// ITU-R BT.601 luma on 16-bit channel values.
			luma := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
			sum += luma / 257.0
		}
	}
	return sum / float64(pixels)
}
