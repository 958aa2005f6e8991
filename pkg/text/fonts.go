// Package text resolves font families from design specs to font files on
// disk. Rendering is deterministic only when every run uses the same font
// files, so resolution is purely path-based with a fixed fallback.
package text

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"respec/pkg/style"
)

// FontConfig holds paths to the font files for one family.
type FontConfig struct {
	Regular    string
	Bold       string
	Italic     string
	BoldItalic string
}

// FontPath returns the font path for the given weight and style, falling
// back to Regular when a face is not available.
func (fc FontConfig) FontPath(weight style.FontWeight, fstyle style.FontStyle) string {
	bold := weight == style.FontWeightBold
	italic := fstyle == style.FontStyleItalic
	if bold && italic && fc.BoldItalic != "" {
		return fc.BoldItalic
	}
	if bold && fc.Bold != "" {
		return fc.Bold
	}
	if italic && fc.Italic != "" {
		return fc.Italic
	}
	return fc.Regular
}

// defaultFontsDir returns the bundled fonts directory. It tries next to
// the executable first, then falls back to the source tree location.
func defaultFontsDir() string {
	if exe, err := os.Executable(); err == nil {
		dir := filepath.Join(filepath.Dir(exe), "..", "fonts")
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	_, thisFile, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "fonts")
}

// Library resolves spec font families to font files within a directory.
type Library struct {
	dir      string
	fallback FontConfig
}

// NewLibrary creates a Library over the given fonts directory. An empty
// dir selects the bundled fonts directory.
func NewLibrary(dir string) *Library {
	if dir == "" {
		dir = defaultFontsDir()
	}
	return &Library{
		dir: dir,
		fallback: FontConfig{
			Regular:    filepath.Join(dir, "DejaVuSans.ttf"),
			Bold:       filepath.Join(dir, "DejaVuSans-Bold.ttf"),
			Italic:     filepath.Join(dir, "DejaVuSans-Oblique.ttf"),
			BoldItalic: filepath.Join(dir, "DejaVuSans-BoldOblique.ttf"),
		},
	}
}

// Fallback returns the library's fallback family.
func (l *Library) Fallback() FontConfig { return l.fallback }

// ForFamily returns the FontConfig for a spec font family. A face is used
// only when its file exists; everything else falls back to the default
// family so missing fonts degrade instead of failing the render.
func (l *Library) ForFamily(family string) FontConfig {
	base := familyBaseName(family)
	if base == "" {
		return l.fallback
	}

	fc := l.fallback
	faces := []struct {
		suffix string
		target *string
	}{
		{"-Regular.ttf", &fc.Regular},
		{"-Bold.ttf", &fc.Bold},
		{"-Italic.ttf", &fc.Italic},
		{"-BoldItalic.ttf", &fc.BoldItalic},
	}
	for _, face := range faces {
		path := filepath.Join(l.dir, base+face.suffix)
		if _, err := os.Stat(path); err == nil {
			*face.target = path
		}
	}
	return fc
}

// familyBaseName normalizes a CSS font-family value to a file base name:
// the first family in the list, quotes stripped, spaces removed.
func familyBaseName(family string) string {
	if i := strings.IndexByte(family, ','); i >= 0 {
		family = family[:i]
	}
	family = strings.Trim(strings.TrimSpace(family), `"'`)
	switch strings.ToLower(family) {
	case "", "serif", "sans-serif", "monospace":
		return ""
	}
	return strings.ReplaceAll(family, " ", "")
}
