package spec

import (
	"encoding/json"
	"fmt"
)

// Defaults applied to fields a spec document omits. These mirror the
// values the deconstruction side emits when a property is unremarkable.
const (
	defaultFontFamily = "Arial"
	defaultFontSize   = 12
	defaultColor      = "#000000"
)

// Parse decodes and validates a JSON design spec document.
func Parse(data []byte) (*DesignSpec, error) {
	s := &DesignSpec{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, &ValidationError{Field: "spec", Reason: err.Error()}
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// rawSpec mirrors DesignSpec with nodes left undecoded so the type tag
// can be inspected before choosing a concrete node struct.
type rawSpec struct {
	Canvas                     Canvas            `json:"canvas"`
	BackgroundColor            string            `json:"background_color"`
	HasBackgroundImage         bool              `json:"has_background_image"`
	BackgroundImageDescription string            `json:"background_image_description"`
	Nodes                      []json.RawMessage `json:"nodes"`
	Assets                     []string          `json:"assets"`
}

// UnmarshalJSON decodes the polymorphic node list and fills in defaults
// for omitted fields. Older spec documents carry background_color at the
// top level instead of inside canvas; both forms are accepted.
func (s *DesignSpec) UnmarshalJSON(data []byte) error {
	var raw rawSpec
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.Canvas = raw.Canvas
	if s.Canvas.Width == 0 {
		s.Canvas.Width = DefaultCanvasWidth
	}
	if s.Canvas.Height == 0 {
		s.Canvas.Height = DefaultCanvasHeight
	}
	if s.Canvas.BackgroundColor == "" {
		s.Canvas.BackgroundColor = raw.BackgroundColor
	}
	s.HasBackgroundImage = raw.HasBackgroundImage
	s.BackgroundImageDescription = raw.BackgroundImageDescription
	s.Assets = raw.Assets

	s.Nodes = nil
	for i, msg := range raw.Nodes {
		node, err := unmarshalNode(msg)
		if err != nil {
			return fmt.Errorf("nodes[%d]: %w", i, err)
		}
		s.Nodes = append(s.Nodes, node)
	}
	return nil
}

func unmarshalNode(msg json.RawMessage) (Node, error) {
	var tag struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(msg, &tag); err != nil {
		return nil, err
	}

	switch tag.Type {
	case "text":
		n := &TextNode{
			Opacity:        1,
			FontFamily:     defaultFontFamily,
			FontSize:       defaultFontSize,
			Color:          defaultColor,
			TextAlign:      "left",
			FontWeight:     "normal",
			FontStyle:      "normal",
			TextDecoration: "none",
			TextTransform:  "none",
		}
		if err := json.Unmarshal(msg, n); err != nil {
			return nil, err
		}
		return n, nil
	case "image":
		n := &ImageNode{Opacity: 1}
		if err := json.Unmarshal(msg, n); err != nil {
			return nil, err
		}
		return n, nil
	case "":
		return nil, fmt.Errorf("missing node type")
	default:
		return nil, fmt.Errorf("unknown node type %q", tag.Type)
	}
}

// MarshalJSON emits the node with its type tag, so a parsed spec
// serializes back to an equivalent document.
func (n *TextNode) MarshalJSON() ([]byte, error) {
	type alias TextNode
	return json.Marshal(struct {
		Type string `json:"type"`
		*alias
	}{"text", (*alias)(n)})
}

// MarshalJSON emits the node with its type tag.
func (n *ImageNode) MarshalJSON() ([]byte, error) {
	type alias ImageNode
	return json.Marshal(struct {
		Type string `json:"type"`
		*alias
	}{"image", (*alias)(n)})
}
