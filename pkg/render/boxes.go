package render

import (
	"image"
	"os"
	"path/filepath"

	"respec/pkg/images"
	"respec/pkg/spec"
	"respec/pkg/style"
	"respec/pkg/text"
)

// Box is a paint-ready visual element: a spec node with its style values
// parsed, its asset decoded, and its font resolved to a file.
type Box struct {
	X, Y, Width, Height float64
	Rotation            float64 // degrees, about the box center
	Opacity             float64
	ZIndex              int

	// Text content. Empty for image boxes.
	Text       string
	FontPath   string
	FontSize   float64
	Color      style.Color
	Align      style.TextAlign
	Decoration style.TextDecoration

	// Image content. Nil for text boxes and unresolved assets.
	Image image.Image

	// Placeholder holds the asset description for image boxes whose
	// asset has not been generated yet.
	Placeholder string
}

// BuildBoxes converts a validated spec into paint-ready boxes in ascending
// z-order. Asset references are resolved against assetDirs in order; a
// declared asset found in none of them is a *RenderError.
func BuildBoxes(s *spec.DesignSpec, assetDirs []string, fonts *text.Library) ([]*Box, error) {
	boxes := make([]*Box, 0, len(s.Nodes))
	for i, n := range s.Nodes {
		frame := n.Frame()
		box := &Box{
			X:       float64(frame.X),
			Y:       float64(frame.Y),
			Width:   float64(frame.Width),
			Height:  float64(frame.Height),
			Opacity: clampOpacity(n.NodeOpacity()),
			ZIndex:  i,
		}

		switch node := n.(type) {
		case *spec.TextNode:
			box.Rotation = float64(node.Rotation)
			box.Text = style.ApplyTextTransform(node.Text, style.ParseTextTransform(node.TextTransform))
			box.FontSize = float64(node.FontSize)
			box.Align = style.ParseTextAlign(node.TextAlign)
			box.Decoration = style.ParseTextDecoration(node.TextDecoration)

			if c, ok := style.ParseColor(node.Color); ok {
				box.Color = c
			} else {
				box.Color = style.Color{A: 1} // black
			}

			fc := fonts.ForFamily(node.FontFamily)
			box.FontPath = fc.FontPath(
				style.ParseFontWeight(node.FontWeight),
				style.ParseFontStyle(node.FontStyle),
			)

		case *spec.ImageNode:
			box.Rotation = float64(node.Rotation)
			if node.Asset != "" {
				path := resolveAsset(assetDirs, node.Asset)
				img, err := images.LoadImage(path)
				if err != nil {
					return nil, &RenderError{Stage: "asset", Path: path, Err: err}
				}
				box.Image = img
			} else {
				box.Placeholder = node.AssetDescription
			}
		}

		boxes = append(boxes, box)
	}
	return boxes, nil
}

// resolveAsset returns the first directory containing the asset. When no
// directory has it, the primary path comes back so the load error names
// the expected location.
func resolveAsset(assetDirs []string, name string) string {
	for _, dir := range assetDirs {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return filepath.Join(assetDirs[0], name)
}

func clampOpacity(a float64) float64 {
	if a < 0 {
		return 0
	}
	if a > 1 {
		return 1
	}
	return a
}
