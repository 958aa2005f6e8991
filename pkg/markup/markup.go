// Package markup turns a validated design spec into a standalone HTML
// document: a fixed-size canvas div with one absolutely positioned element
// per node, in z-order. The same document backs the editor preview and
// documents what the raster renderer paints.
package markup

import (
	"fmt"
	"html"
	"strings"

	"respec/pkg/spec"
)

// Options configures document generation.
type Options struct {
	// AssetBaseURL prefixes image node asset paths, e.g. "assets/".
	AssetBaseURL string
}

// placeholderDescriptionLimit truncates long asset descriptions inside the
// visible placeholder box.
const placeholderDescriptionLimit = 100

// Document renders the spec as a complete HTML page.
func Document(s *spec.DesignSpec, opts Options) string {
	var nodes strings.Builder
	for _, n := range s.Nodes {
		switch node := n.(type) {
		case *spec.TextNode:
			writeTextNode(&nodes, node)
		case *spec.ImageNode:
			writeImageNode(&nodes, node, opts)
		}
	}

	var doc strings.Builder
	doc.WriteString("<!DOCTYPE html>\n<html>\n<head>\n    <meta charset=\"utf-8\">\n    <style>\n")
	doc.WriteString("        * { margin: 0; padding: 0; box-sizing: border-box; }\n")
	doc.WriteString("        body { margin: 0; padding: 0; overflow: hidden; }\n")
	fmt.Fprintf(&doc, "        #canvas { position: relative; width: %dpx; height: %dpx; background-color: %s; overflow: hidden; }\n",
		s.Canvas.Width, s.Canvas.Height, s.Canvas.BackgroundColor)
	doc.WriteString("    </style>\n</head>\n<body>\n    <div id=\"canvas\">\n")
	doc.WriteString(nodes.String())
	doc.WriteString("    </div>\n</body>\n</html>\n")
	return doc.String()
}

func writeTextNode(b *strings.Builder, n *spec.TextNode) {
	var style strings.Builder
	writeFrameStyle(&style, n.X, n.Y, n.Width, n.Height, n.Rotation, n.Opacity)
	fmt.Fprintf(&style, "font-family: %s; ", n.FontFamily)
	fmt.Fprintf(&style, "font-size: %dpx; ", n.FontSize)
	fmt.Fprintf(&style, "color: %s; ", n.Color)
	fmt.Fprintf(&style, "text-align: %s; ", n.TextAlign)
	fmt.Fprintf(&style, "font-weight: %s; ", n.FontWeight)
	fmt.Fprintf(&style, "font-style: %s; ", n.FontStyle)
	fmt.Fprintf(&style, "text-decoration: %s; ", n.TextDecoration)
	fmt.Fprintf(&style, "text-transform: %s; ", n.TextTransform)
	style.WriteString("margin: 0; padding: 0; box-sizing: border-box; display: flex; align-items: center;")

	fmt.Fprintf(b, "        <div style=\"%s\">%s</div>\n",
		html.EscapeString(style.String()), html.EscapeString(n.Text))
}

func writeImageNode(b *strings.Builder, n *spec.ImageNode, opts Options) {
	if n.Asset != "" {
		var style strings.Builder
		writeFrameStyle(&style, n.X, n.Y, n.Width, n.Height, n.Rotation, n.Opacity)
		style.WriteString("object-fit: fill;")
		fmt.Fprintf(b, "        <img src=\"%s\" style=\"%s\" alt=\"%s\">\n",
			html.EscapeString(opts.AssetBaseURL+n.Asset),
			html.EscapeString(style.String()),
			html.EscapeString(n.AssetDescription))
		return
	}

	// No asset yet: a grey placeholder showing the description, the look
	// of a reconstruction before asset generation has run.
	var style strings.Builder
	writeFrameStyle(&style, n.X, n.Y, n.Width, n.Height, n.Rotation, n.Opacity)
	style.WriteString("background: #ddd; display: flex; align-items: center; justify-content: center; ")
	style.WriteString("font-size: 12px; color: #666; text-align: center; padding: 10px; box-sizing: border-box;")

	// Truncate on rune boundaries so a multi-byte description never gets
	// split mid-character.
	desc := n.AssetDescription
	if runes := []rune(desc); len(runes) > placeholderDescriptionLimit {
		desc = string(runes[:placeholderDescriptionLimit])
	}
	fmt.Fprintf(b, "        <div style=\"%s\" title=\"%s\">[Image: %s]</div>\n",
		html.EscapeString(style.String()),
		html.EscapeString(n.AssetDescription),
		html.EscapeString(desc))
}

func writeFrameStyle(b *strings.Builder, x, y, w, h, rotation int, opacity float64) {
	fmt.Fprintf(b, "position: absolute; left: %dpx; top: %dpx; width: %dpx; height: %dpx; ", x, y, w, h)
	if rotation != 0 {
		fmt.Fprintf(b, "transform: rotate(%ddeg); ", rotation)
	}
	if opacity < 1 {
		fmt.Fprintf(b, "opacity: %g; ", opacity)
	}
}
