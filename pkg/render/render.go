// Package render rasterizes validated design specs. Each node becomes an
// absolutely positioned box painted in ascending z-order onto a canvas of
// exactly the spec's dimensions. Rendering is deterministic for identical
// specs, assets, and fonts.
package render

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sort"

	"github.com/fogleman/gg"

	"respec/pkg/spec"
	"respec/pkg/style"
	"respec/pkg/text"
)

// Options configures a render.
type Options struct {
	// AssetDir is the directory image node asset paths resolve against.
	AssetDir string
	// GeneratedAssetDir is searched when an asset is not under AssetDir.
	// Batch runs write synthesized assets there, keeping the dataset
	// untouched.
	GeneratedAssetDir string
	// FontsDir overrides the bundled fonts directory.
	FontsDir string
}

// Renderer paints boxes onto a gg drawing context.
type Renderer struct {
	context *gg.Context
}

// NewRenderer creates a renderer with a canvas of the given size.
func NewRenderer(width, height int) *Renderer {
	return &Renderer{context: gg.NewContext(width, height)}
}

// RenderSpec rasterizes a spec and returns the canvas image.
func RenderSpec(s *spec.DesignSpec, opts Options) (image.Image, error) {
	assetDirs := []string{opts.AssetDir}
	if opts.GeneratedAssetDir != "" {
		assetDirs = append(assetDirs, opts.GeneratedAssetDir)
	}
	boxes, err := BuildBoxes(s, assetDirs, text.NewLibrary(opts.FontsDir))
	if err != nil {
		return nil, err
	}

	r := NewRenderer(s.Canvas.Width, s.Canvas.Height)
	bg, ok := style.ParseColor(s.Canvas.BackgroundColor)
	if !ok {
		bg = style.Color{R: 255, G: 255, B: 255, A: 1}
	}
	r.Render(bg, boxes)
	return r.Image(), nil
}

// RenderSpecToFile rasterizes a spec and writes a PNG, creating the output
// directory if needed.
func RenderSpecToFile(s *spec.DesignSpec, outputPath string, opts Options) error {
	img, err := RenderSpec(s, opts)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return &RenderError{Stage: "encode", Path: outputPath, Err: err}
	}
	if err := gg.SavePNG(outputPath, img); err != nil {
		return &RenderError{Stage: "encode", Path: outputPath, Err: err}
	}
	return nil
}

// Render paints the background and all boxes in z-order.
func (r *Renderer) Render(background style.Color, boxes []*Box) {
	r.context.SetRGBA(channels(background))
	r.context.Clear()

	sorted := make([]*Box, len(boxes))
	copy(sorted, boxes)
	sortByZIndex(sorted)

	for _, box := range sorted {
		r.drawBox(box)
	}
}

// Image returns the rendered canvas.
func (r *Renderer) Image() image.Image {
	return r.context.Image()
}

// SavePNG writes the rendered canvas to a PNG file.
func (r *Renderer) SavePNG(filename string) error {
	return r.context.SavePNG(filename)
}

func sortByZIndex(boxes []*Box) {
	sort.SliceStable(boxes, func(i, j int) bool {
		return boxes[i].ZIndex < boxes[j].ZIndex
	})
}

func (r *Renderer) drawBox(box *Box) {
	if box.Opacity <= 0 || box.Width <= 0 || box.Height <= 0 {
		return
	}

	if box.Rotation != 0 {
		r.context.Push()
		defer r.context.Pop()
		// Rotate about the box center, matching CSS transform: rotate.
		cx := box.X + box.Width/2
		cy := box.Y + box.Height/2
		r.context.RotateAbout(gg.Radians(box.Rotation), cx, cy)
	}

	switch {
	case box.Image != nil:
		r.drawImage(box)
	case box.Placeholder != "":
		r.drawPlaceholder(box)
	default:
		r.drawText(box)
	}
}

func (r *Renderer) drawImage(box *Box) {
	img := box.Image
	if box.Opacity < 1 {
		img = fadeImage(img, box.Opacity)
	}

	r.context.Push()
	r.context.Translate(box.X, box.Y)

	bounds := img.Bounds()
	scaleX := box.Width / float64(bounds.Dx())
	scaleY := box.Height / float64(bounds.Dy())
	r.context.Scale(scaleX, scaleY)
	r.context.DrawImage(img, 0, 0)
	r.context.Pop()
}

// Placeholder styling for image nodes without a generated asset, matching
// the markup package's preview: grey box, centered grey description text.
var (
	placeholderFill = style.Color{R: 0xdd, G: 0xdd, B: 0xdd, A: 1}
	placeholderInk  = style.Color{R: 0x66, G: 0x66, B: 0x66, A: 1}
)

const (
	placeholderFontSize = 12
	placeholderPadding  = 10

	// textLineHeight matches the line-height of the generated markup.
	textLineHeight = 1.3
)

func (r *Renderer) drawPlaceholder(box *Box) {
	fill := placeholderFill
	fill.A *= box.Opacity
	r.context.SetRGBA(channels(fill))
	r.context.DrawRectangle(box.X, box.Y, box.Width, box.Height)
	r.context.Fill()

	ink := placeholderInk
	ink.A *= box.Opacity
	r.context.SetRGBA(channels(ink))
	r.setFontFace(text.NewLibrary("").Fallback().Regular, placeholderFontSize)
	desc := "[Image: " + box.Placeholder + "]"
	r.context.DrawStringWrapped(desc,
		box.X+box.Width/2, box.Y+box.Height/2,
		0.5, 0.5,
		box.Width-2*placeholderPadding,
		textLineHeight, gg.AlignCenter)
}

// setFontFace loads a font file, substituting the builtin face when the
// file is unavailable so text always paints.
func (r *Renderer) setFontFace(path string, size float64) {
	if err := r.context.LoadFontFace(path, size); err != nil {
		r.context.SetFontFace(text.BuiltinFace(size))
	}
}

func (r *Renderer) drawText(box *Box) {
	if box.Text == "" {
		return
	}

	ink := box.Color
	ink.A *= box.Opacity
	r.context.SetRGBA(channels(ink))

	r.setFontFace(box.FontPath, box.FontSize)

	lines := text.WrapLines(box.Text, box.FontPath, box.FontSize, box.Width)
	lineHeight := box.FontSize * textLineHeight

	// Vertically centered within the box, matching the flex align-items:
	// center of the generated markup.
	baseY := box.Y + box.Height/2 - float64(len(lines)-1)*lineHeight/2 + box.FontSize*0.35

	for i, line := range lines {
		lineWidth, _ := r.context.MeasureString(line)
		lineX := box.X
		switch box.Align {
		case style.TextAlignCenter:
			lineX = box.X + (box.Width-lineWidth)/2
		case style.TextAlignRight:
			lineX = box.X + box.Width - lineWidth
		}

		lineY := baseY + float64(i)*lineHeight
		r.context.DrawString(line, lineX, lineY)

		if box.Decoration != style.TextDecorationNone {
			r.drawDecoration(box, lineX, lineY, lineWidth)
		}
	}
}

func (r *Renderer) drawDecoration(box *Box, textX, textY, textWidth float64) {
	lineThickness := box.FontSize / 12.0
	if lineThickness < 1 {
		lineThickness = 1
	}
	r.context.SetLineWidth(lineThickness)

	switch box.Decoration {
	case style.TextDecorationUnderline:
		y := textY + box.FontSize*0.1
		r.context.DrawLine(textX, y, textX+textWidth, y)
	case style.TextDecorationOverline:
		y := textY - box.FontSize
		r.context.DrawLine(textX, y, textX+textWidth, y)
	case style.TextDecorationLineThrough:
		y := textY - box.FontSize*0.3
		r.context.DrawLine(textX, y, textX+textWidth, y)
	}
	r.context.Stroke()
}

// fadeImage returns a copy of img with its alpha scaled by opacity, so
// translucent nodes composite correctly even under rotation.
func fadeImage(img image.Image, opacity float64) image.Image {
	bounds := img.Bounds()
	out := image.NewNRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			c.A = uint8(float64(c.A) * opacity)
			out.SetNRGBA(x, y, c)
		}
	}
	return out
}

func channels(c style.Color) (r, g, b, a float64) {
	return float64(c.R) / 255.0, float64(c.G) / 255.0, float64(c.B) / 255.0, c.A
}
