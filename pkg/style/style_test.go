package style

import "testing"

func TestParseColor_Hex(t *testing.T) {
	tests := map[string]Color{
		"#ff0000":   {255, 0, 0, 1},
		"#1a1a2e":   {26, 26, 46, 1},
		"#FFF":      {255, 255, 255, 1},
		"#00000080": {0, 0, 0, 128.0 / 255.0},
	}
	for in, expected := range tests {
		c, ok := ParseColor(in)
		if !ok || c != expected {
			t.Errorf("ParseColor(%q): expected %+v, got %+v (ok=%v)", in, expected, c, ok)
		}
	}
}

func TestParseColor_Named(t *testing.T) {
	tests := map[string]Color{
		"red":         {255, 0, 0, 1},
		"green":       {0, 128, 0, 1},
		"Blue":        {0, 0, 255, 1},
		"transparent": {0, 0, 0, 0},
	}
	for in, expected := range tests {
		c, ok := ParseColor(in)
		if !ok || c != expected {
			t.Errorf("ParseColor(%q): expected %+v, got %+v (ok=%v)", in, expected, c, ok)
		}
	}
}

func TestParseColor_RGBFunctions(t *testing.T) {
	c, ok := ParseColor("rgb(10, 20, 30)")
	if !ok || c != (Color{10, 20, 30, 1}) {
		t.Errorf("rgb(): got %+v (ok=%v)", c, ok)
	}
	c, ok = ParseColor("rgba(10, 20, 30, 0.5)")
	if !ok || c != (Color{10, 20, 30, 0.5}) {
		t.Errorf("rgba(): got %+v (ok=%v)", c, ok)
	}
}

func TestParseColor_Invalid(t *testing.T) {
	for _, in := range []string{"", "#12", "#zzzzzz", "rgb(300,0,0)", "rgba(0,0,0,2)", "blurple"} {
		if _, ok := ParseColor(in); ok {
			t.Errorf("ParseColor(%q): expected failure", in)
		}
	}
}

func TestColor_CSS(t *testing.T) {
	if got := (Color{26, 26, 46, 1}).CSS(); got != "#1a1a2e" {
		t.Errorf("opaque CSS: got %q", got)
	}
	if got := (Color{0, 0, 0, 0.5}).CSS(); got != "rgba(0, 0, 0, 0.5)" {
		t.Errorf("alpha CSS: got %q", got)
	}
}

func TestParseFontWeight(t *testing.T) {
	if ParseFontWeight("bold") != FontWeightBold || ParseFontWeight("700") != FontWeightBold {
		t.Error("expected bold")
	}
	if ParseFontWeight("normal") != FontWeightNormal || ParseFontWeight("400") != FontWeightNormal {
		t.Error("expected normal")
	}
}

func TestApplyTextTransform(t *testing.T) {
	tests := []struct {
		transform TextTransform
		in, out   string
	}{
		{TextTransformUppercase, "hello world", "HELLO WORLD"},
		{TextTransformLowercase, "HELLO", "hello"},
		{TextTransformCapitalize, "summer sale", "Summer Sale"},
		{TextTransformNone, "miXed", "miXed"},
	}
	for _, tt := range tests {
		if got := ApplyTextTransform(tt.in, tt.transform); got != tt.out {
			t.Errorf("%s(%q): expected %q, got %q", tt.transform, tt.in, tt.out, got)
		}
	}
}
