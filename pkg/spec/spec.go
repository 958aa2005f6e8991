package spec

// Default canvas dimensions, used when a spec does not carry its own.
const (
	DefaultCanvasWidth  = 800
	DefaultCanvasHeight = 600
)

// Canvas describes the drawing surface of a design.
type Canvas struct {
	Width           int    `json:"width"`
	Height          int    `json:"height"`
	BackgroundColor string `json:"background_color"`
}

// Rect is an axis-aligned box in canvas coordinates.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Node is a single visual element within a design. Concrete types are
// TextNode and ImageNode; z-order is the position in the spec's node list.
type Node interface {
	// Kind returns the JSON type tag ("text" or "image").
	Kind() string
	// Frame returns the node's position and size.
	Frame() Rect
	// NodeOpacity returns the node's opacity in [0,1].
	NodeOpacity() float64

	validate(path string) error
}

// TextNode is a run of text with CSS-style typography properties.
type TextNode struct {
	Text     string `json:"text"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Rotation int    `json:"rotation"`

	Opacity        float64 `json:"opacity"`
	FontFamily     string  `json:"font_family"`
	FontSize       int     `json:"font_size"`
	Color          string  `json:"color"`
	TextAlign      string  `json:"text_align"`
	FontWeight     string  `json:"font_weight"`
	FontStyle      string  `json:"font_style"`
	TextDecoration string  `json:"text_decoration"`
	TextTransform  string  `json:"text_transform"`
}

func (n *TextNode) Kind() string { return "text" }

func (n *TextNode) Frame() Rect { return Rect{n.X, n.Y, n.Width, n.Height} }

func (n *TextNode) NodeOpacity() float64 { return n.Opacity }

// ImageNode is a pictorial element. Asset points at a raster file relative
// to the spec's asset directory; when empty, the node renders as a
// placeholder carrying the description (the pre-generation state).
type ImageNode struct {
	AssetDescription string `json:"asset_description"`
	Asset            string `json:"asset,omitempty"`
	X                int    `json:"x"`
	Y                int    `json:"y"`
	Width            int    `json:"width"`
	Height           int    `json:"height"`
	Rotation         int    `json:"rotation"`

	Opacity float64 `json:"opacity"`
}

func (n *ImageNode) Kind() string { return "image" }

func (n *ImageNode) Frame() Rect { return Rect{n.X, n.Y, n.Width, n.Height} }

func (n *ImageNode) NodeOpacity() float64 { return n.Opacity }

// DesignSpec is a complete design: a canvas, an ordered node list, and the
// set of raster assets the nodes may reference.
type DesignSpec struct {
	Canvas Canvas `json:"canvas"`

	HasBackgroundImage         bool   `json:"has_background_image"`
	BackgroundImageDescription string `json:"background_image_description,omitempty"`

	Nodes []Node `json:"nodes"`

	// Assets lists the raster files this spec declares, relative to its
	// asset directory. Node asset references must appear here.
	Assets []string `json:"assets,omitempty"`
}

// TextNodes returns the text nodes in z-order.
func (s *DesignSpec) TextNodes() []*TextNode {
	var out []*TextNode
	for _, n := range s.Nodes {
		if t, ok := n.(*TextNode); ok {
			out = append(out, t)
		}
	}
	return out
}

// ImageNodes returns the image nodes in z-order.
func (s *DesignSpec) ImageNodes() []*ImageNode {
	var out []*ImageNode
	for _, n := range s.Nodes {
		if i, ok := n.(*ImageNode); ok {
			out = append(out, i)
		}
	}
	return out
}
