package text

import (
	"strings"

	"github.com/fogleman/gg"
)

// measureContext returns a throwaway context for text measurement, with
// the builtin face standing in when the font file cannot be loaded.
func measureContext(fontPath string, fontSize float64) *gg.Context {
	dc := gg.NewContext(1, 1)
	if err := dc.LoadFontFace(fontPath, fontSize); err != nil {
		dc.SetFontFace(BuiltinFace(fontSize))
	}
	return dc
}

// Measure returns the rendered width and height of a single line of text.
func Measure(text, fontPath string, fontSize float64) (width, height float64) {
	return measureContext(fontPath, fontSize).MeasureString(text)
}

// WrapLines breaks text into lines that fit within maxWidth, splitting on
// whitespace. A word wider than maxWidth gets a line of its own.
func WrapLines(text, fontPath string, fontSize, maxWidth float64) []string {
	dc := measureContext(fontPath, fontSize)
	if w, _ := dc.MeasureString(text); w <= maxWidth {
		return []string{text}
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	var lines []string
	current := ""
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if w, _ := dc.MeasureString(candidate); w <= maxWidth {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
		}
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		return []string{text}
	}
	return lines
}
