package markup

import (
	"strings"
	"testing"
	"unicode/utf8"

	"respec/pkg/spec"
)

func testSpec() *spec.DesignSpec {
	return &spec.DesignSpec{
		Canvas: spec.Canvas{Width: 800, Height: 600, BackgroundColor: "#f0e6d2"},
		Nodes: []spec.Node{
			&spec.TextNode{
				Text: "Grand <Opening>", X: 40, Y: 60, Width: 300, Height: 48,
				Opacity: 1, FontFamily: "Georgia", FontSize: 36, Color: "#1a1a2e",
				TextAlign: "center", FontWeight: "bold", FontStyle: "normal",
				TextDecoration: "none", TextTransform: "uppercase",
			},
			&spec.ImageNode{
				AssetDescription: "a watercolor wreath of olive branches",
				X:                420, Y: 120, Width: 280, Height: 280, Rotation: 15, Opacity: 0.8,
			},
		},
	}
}

func TestDocument_CanvasAndBackground(t *testing.T) {
	doc := Document(testSpec(), Options{})
	for _, want := range []string{
		"width: 800px",
		"height: 600px",
		"background-color: #f0e6d2",
		`<div id="canvas">`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestDocument_TextNodeStyling(t *testing.T) {
	doc := Document(testSpec(), Options{})
	for _, want := range []string{
		"left: 40px",
		"top: 60px",
		"font-family: Georgia",
		"font-size: 36px",
		"font-weight: bold",
		"text-transform: uppercase",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("text node missing %q", want)
		}
	}
}

func TestDocument_EscapesText(t *testing.T) {
	doc := Document(testSpec(), Options{})
	if strings.Contains(doc, "<Opening>") {
		t.Error("text content not escaped")
	}
	if !strings.Contains(doc, "&lt;Opening&gt;") {
		t.Error("expected escaped text content")
	}
}

func TestDocument_PlaceholderForMissingAsset(t *testing.T) {
	doc := Document(testSpec(), Options{})
	if !strings.Contains(doc, "[Image: a watercolor wreath") {
		t.Error("expected placeholder with description")
	}
	if !strings.Contains(doc, "rotate(15deg)") {
		t.Error("expected rotation transform")
	}
	if !strings.Contains(doc, "opacity: 0.8") {
		t.Error("expected opacity style")
	}
}

func TestDocument_ImageTagForResolvedAsset(t *testing.T) {
	s := testSpec()
	img := s.Nodes[1].(*spec.ImageNode)
	img.Asset = "wreath.png"
	s.Assets = []string{"wreath.png"}

	doc := Document(s, Options{AssetBaseURL: "assets/"})
	if !strings.Contains(doc, `<img src="assets/wreath.png"`) {
		t.Error("expected img tag with asset base URL")
	}
	if strings.Contains(doc, "[Image:") {
		t.Error("placeholder should not appear for resolved asset")
	}
}

func TestDocument_TruncatesLongDescriptions(t *testing.T) {
	s := testSpec()
	img := s.Nodes[1].(*spec.ImageNode)
	img.AssetDescription = strings.Repeat("long ", 50)

	doc := Document(s, Options{})
	if strings.Contains(doc, "[Image: "+img.AssetDescription) {
		t.Error("expected description truncated inside placeholder")
	}
}

func TestDocument_EscapesAttributeQuotes(t *testing.T) {
	s := testSpec()
	img := s.Nodes[1].(*spec.ImageNode)
	img.AssetDescription = `a "quoted" phrase`

	doc := Document(s, Options{})
	if !strings.Contains(doc, "a &#34;quoted&#34; phrase") {
		t.Error("expected quotes escaped for attribute values")
	}
	if strings.Contains(doc, `\"`) {
		t.Error("attribute values must not use Go string escaping")
	}
}

func TestDocument_TruncatesOnRuneBoundary(t *testing.T) {
	s := testSpec()
	img := s.Nodes[1].(*spec.ImageNode)
	img.AssetDescription = strings.Repeat("é", 120)

	doc := Document(s, Options{})
	if !utf8.ValidString(doc) {
		t.Fatal("document contains a broken UTF-8 sequence")
	}
	start := strings.Index(doc, "[Image: ")
	if start < 0 {
		t.Fatal("placeholder missing")
	}
	body := doc[start+len("[Image: "):]
	body = body[:strings.Index(body, "]")]
	if got := utf8.RuneCountInString(body); got != 100 {
		t.Errorf("expected 100-rune truncated description, got %d", got)
	}
}
