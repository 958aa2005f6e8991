package spec

import "fmt"

// ValidationError reports a spec document that violates the schema or its
// numeric constraints. Field names the offending location in the document.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid spec: %s: %s", e.Field, e.Reason)
}

// Validate checks the spec's structural invariants: positive canvas,
// non-negative node geometry, opacity within [0,1], and every node asset
// reference resolving to a declared asset.
func (s *DesignSpec) Validate() error {
	if s.Canvas.Width <= 0 {
		return &ValidationError{Field: "canvas.width", Reason: "must be positive"}
	}
	if s.Canvas.Height <= 0 {
		return &ValidationError{Field: "canvas.height", Reason: "must be positive"}
	}
	if s.Canvas.BackgroundColor == "" {
		return &ValidationError{Field: "canvas.background_color", Reason: "missing"}
	}
	if s.HasBackgroundImage && s.BackgroundImageDescription == "" {
		return &ValidationError{Field: "background_image_description", Reason: "required when has_background_image is set"}
	}

	declared := make(map[string]bool, len(s.Assets))
	for i, a := range s.Assets {
		if a == "" {
			return &ValidationError{Field: fmt.Sprintf("assets[%d]", i), Reason: "empty path"}
		}
		declared[a] = true
	}

	for i, n := range s.Nodes {
		if err := n.validate(fmt.Sprintf("nodes[%d]", i)); err != nil {
			return err
		}
		if img, ok := n.(*ImageNode); ok && img.Asset != "" && !declared[img.Asset] {
			return &ValidationError{
				Field:  fmt.Sprintf("nodes[%d].asset", i),
				Reason: fmt.Sprintf("references undeclared asset %q", img.Asset),
			}
		}
	}
	return nil
}

// validateFrame checks the geometry constraints shared by all node kinds.
func validateFrame(path string, r Rect, opacity float64) error {
	if r.X < 0 || r.Y < 0 {
		return &ValidationError{Field: path, Reason: "position must be non-negative"}
	}
	if r.Width < 0 || r.Height < 0 {
		return &ValidationError{Field: path, Reason: "size must be non-negative"}
	}
	if opacity < 0 || opacity > 1 {
		return &ValidationError{Field: path + ".opacity", Reason: fmt.Sprintf("%g outside [0,1]", opacity)}
	}
	return nil
}

func (n *TextNode) validate(path string) error {
	if err := validateFrame(path, n.Frame(), n.Opacity); err != nil {
		return err
	}
	if n.Text == "" {
		return &ValidationError{Field: path + ".text", Reason: "missing"}
	}
	if n.FontSize <= 0 {
		return &ValidationError{Field: path + ".font_size", Reason: "must be positive"}
	}
	if n.Color == "" {
		return &ValidationError{Field: path + ".color", Reason: "missing"}
	}
	return nil
}

func (n *ImageNode) validate(path string) error {
	if err := validateFrame(path, n.Frame(), n.Opacity); err != nil {
		return err
	}
	if n.AssetDescription == "" && n.Asset == "" {
		return &ValidationError{Field: path + ".asset_description", Reason: "missing"}
	}
	return nil
}
