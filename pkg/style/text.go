package style

import "strings"

// TextAlign is the horizontal alignment of a text run within its box.
type TextAlign string

const (
	TextAlignLeft   TextAlign = "left"
	TextAlignCenter TextAlign = "center"
	TextAlignRight  TextAlign = "right"
)

// ParseTextAlign returns the alignment for a CSS text-align value,
// defaulting to left for unknown values.
func ParseTextAlign(s string) TextAlign {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "center":
		return TextAlignCenter
	case "right":
		return TextAlignRight
	}
	return TextAlignLeft
}

// FontWeight distinguishes the weights the renderer can realize.
type FontWeight string

const (
	FontWeightNormal FontWeight = "normal"
	FontWeightBold   FontWeight = "bold"
)

// ParseFontWeight maps a CSS font-weight value (keyword or numeric) to a
// renderable weight. 600 and above count as bold.
func ParseFontWeight(s string) FontWeight {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "bold", "bolder", "600", "700", "800", "900":
		return FontWeightBold
	}
	return FontWeightNormal
}

// FontStyle distinguishes upright from italic text.
type FontStyle string

const (
	FontStyleNormal FontStyle = "normal"
	FontStyleItalic FontStyle = "italic"
)

// ParseFontStyle maps a CSS font-style value to a renderable style.
func ParseFontStyle(s string) FontStyle {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "italic", "oblique":
		return FontStyleItalic
	}
	return FontStyleNormal
}

// TextDecoration is the line decoration applied to a text run.
type TextDecoration string

const (
	TextDecorationNone        TextDecoration = "none"
	TextDecorationUnderline   TextDecoration = "underline"
	TextDecorationOverline    TextDecoration = "overline"
	TextDecorationLineThrough TextDecoration = "line-through"
)

// ParseTextDecoration maps a CSS text-decoration value.
func ParseTextDecoration(s string) TextDecoration {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "underline":
		return TextDecorationUnderline
	case "overline":
		return TextDecorationOverline
	case "line-through":
		return TextDecorationLineThrough
	}
	return TextDecorationNone
}

// TextTransform is the case transformation applied to a text run.
type TextTransform string

const (
	TextTransformNone       TextTransform = "none"
	TextTransformUppercase  TextTransform = "uppercase"
	TextTransformLowercase  TextTransform = "lowercase"
	TextTransformCapitalize TextTransform = "capitalize"
)

// ParseTextTransform maps a CSS text-transform value.
func ParseTextTransform(s string) TextTransform {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "uppercase":
		return TextTransformUppercase
	case "lowercase":
		return TextTransformLowercase
	case "capitalize":
		return TextTransformCapitalize
	}
	return TextTransformNone
}

// ApplyTextTransform applies a case transformation to text.
func ApplyTextTransform(text string, transform TextTransform) string {
	switch transform {
	case TextTransformUppercase:
		return strings.ToUpper(text)
	case TextTransformLowercase:
		return strings.ToLower(text)
	case TextTransformCapitalize:
		words := strings.Fields(text)
		for i, word := range words {
			if len(word) > 0 {
				words[i] = strings.ToUpper(string(word[0])) + strings.ToLower(word[1:])
			}
		}
		return strings.Join(words, " ")
	}
	return text
}
