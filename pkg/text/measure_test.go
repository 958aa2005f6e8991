package text

import "testing"

func TestBuiltinFace(t *testing.T) {
	face := BuiltinFace(12)
	if face == nil {
		t.Fatal("expected a usable builtin face")
	}
	if face.Metrics().Height == 0 {
		t.Error("builtin face has no metrics")
	}
}

func TestMeasure_MissingFontFallsBack(t *testing.T) {
	w, h := Measure("hello", "/nonexistent/font.ttf", 12)
	if w <= 0 || h <= 0 {
		t.Errorf("expected positive measurement from the builtin face, got %g x %g", w, h)
	}
	wide, _ := Measure("hello hello hello", "/nonexistent/font.ttf", 12)
	if wide <= w {
		t.Errorf("longer text should measure wider: %g vs %g", wide, w)
	}
}

func TestWrapLines_WrapsWithBuiltinFace(t *testing.T) {
	lines := WrapLines("some text that would wrap", "/nonexistent/font.ttf", 12, 40)
	if len(lines) < 2 {
		t.Errorf("expected wrapping even without a font file, got %v", lines)
	}
}

func TestWrapLines_FitsOnOneLine(t *testing.T) {
	lines := WrapLines("hi", "/nonexistent/font.ttf", 12, 1000)
	if len(lines) != 1 || lines[0] != "hi" {
		t.Errorf("expected single line, got %v", lines)
	}
}

func TestWrapLines_EmptyText(t *testing.T) {
	lines := WrapLines("", "/nonexistent/font.ttf", 12, 100)
	if len(lines) != 1 || lines[0] != "" {
		t.Errorf("expected the empty text back, got %v", lines)
	}
}
