package score

import (
	"context"
	"encoding/json"
	"image"
	"image/color"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"respec/pkg/ai"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestParseCriticReply(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		score     int
		rationale string
	}{
		{"bare integer", "87", 87, ""},
		{"integer with prose", "I would rate this 73 out of 100.", 73, ""},
		{"plain json", `{"score": 64, "rationale": "weak hierarchy"}`, 64, "weak hierarchy"},
		{"fenced json", "```json\n{\"score\": 91, \"rationale\": \"clean\"}\n```", 91, "clean"},
		{"json inside prose", `Sure! Here you go: {"score": 55, "rationale": "crowded"} Hope that helps.`, 55, "crowded"},
		{"clamped above range", `{"score": 140}`, 100, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, rationale, err := parseCriticReply(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if score != tt.score || rationale != tt.rationale {
				t.Errorf("expected (%d, %q), got (%d, %q)", tt.score, tt.rationale, score, rationale)
			}
		})
	}
}

func TestParseCriticReply_NoScore(t *testing.T) {
	if _, _, err := parseCriticReply("the design is lovely"); err == nil {
		t.Error("expected error when no score present")
	}
}

func TestSlideWindow_SquareImageSingleWindow(t *testing.T) {
	windows := slideWindow(solid(448, 448, color.RGBA{9, 9, 9, 255}), clipImageSize)
	if len(windows) != 1 {
		t.Fatalf("expected 1 window for square image, got %d", len(windows))
	}
	if windows[0].Bounds().Dx() != clipImageSize || windows[0].Bounds().Dy() != clipImageSize {
		t.Errorf("window not %dpx square: %v", clipImageSize, windows[0].Bounds())
	}
}

func TestSlideWindow_WideImageMultipleWindows(t *testing.T) {
	windows := slideWindow(solid(900, 300, color.RGBA{9, 9, 9, 255}), clipImageSize)
	if len(windows) < 2 {
		t.Errorf("expected multiple windows for 3:1 image, got %d", len(windows))
	}
	for i, w := range windows {
		if w.Bounds().Dx() != clipImageSize || w.Bounds().Dy() != clipImageSize {
			t.Errorf("window %d not square: %v", i, w.Bounds())
		}
	}
}

func TestSoftmax2(t *testing.T) {
	if got := softmax2(0, 0); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("softmax2(0,0): expected 0.5, got %g", got)
	}
	if got := softmax2(10, 0); got < 0.99 {
		t.Errorf("softmax2(10,0): expected near 1, got %g", got)
	}
	if a, b := softmax2(3, 1), softmax2(1, 3); math.Abs(a+b-1) > 1e-9 {
		t.Errorf("softmax2 pair should sum to 1, got %g + %g", a, b)
	}
}

// fakeClip serves embeddings that favor the "well-designed" caption.
func fakeClip(t *testing.T) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Texts  []string `json:"texts"`
			Images []string `json:"images"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		var embeds [][]float64
		for _, text := range req.Texts {
			if strings.Contains(text, "well-designed") {
				embeds = append(embeds, []float64{1, 0})
			} else {
				embeds = append(embeds, []float64{0, 1})
			}
		}
		// Image embeddings sit close to both captions: the 100x logit
		// scale would saturate the softmax to exactly 1.0 otherwise.
		for range req.Images {
			embeds = append(embeds, []float64{1, 0.98})
		}
		json.NewEncoder(w).Encode(map[string]any{"embeddings": embeds})
	}))
}

func TestZeroShot_ScoreInRange(t *testing.T) {
	srv := fakeClip(t)
	defer srv.Close()

	method := NewZeroShot(ai.NewClipService(srv.URL), "graphic design")
	original := solid(448, 448, color.RGBA{200, 100, 50, 255})
	recon := solid(448, 448, color.RGBA{190, 110, 60, 255})

	rec, err := method.Score(context.Background(), original, recon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Method != MethodZeroShot {
		t.Errorf("unexpected method tag %q", rec.Method)
	}
	if rec.Value <= 0 || rec.Value >= 1 {
		t.Errorf("expected value in (0,1), got %g", rec.Value)
	}
	// The fake clip favors the good caption, so the score leans high.
	if rec.Value < 0.5 {
		t.Errorf("expected score above 0.5, got %g", rec.Value)
	}
}

func TestZeroShot_Idempotent(t *testing.T) {
	srv := fakeClip(t)
	defer srv.Close()

	method := NewZeroShot(ai.NewClipService(srv.URL), "graphic design")
	img := solid(300, 300, color.RGBA{5, 5, 5, 255})

	first, err := method.Score(context.Background(), img, img)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := method.Score(context.Background(), img, img)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Value != second.Value || first.Original != second.Original {
		t.Errorf("scores differ across identical calls: %+v vs %+v", first, second)
	}
}

func TestCritic_ParsesScoreAndRationale(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "```json\n{\"score\": 78, \"rationale\": \"solid layout\"}\n```"}},
			},
		})
	}))
	defer srv.Close()

	vision := ai.NewVisionService(ai.Config{VisionAPIKey: "k", VisionAPIURL: srv.URL, VisionModel: "m"})
	method := NewCritic(vision, "")

	rec, err := method.Score(context.Background(), solid(20, 20, color.RGBA{}), solid(20, 20, color.RGBA{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Value != 78 || rec.Original != 78 {
		t.Errorf("expected score 78, got %+v", rec)
	}
	if rec.Rationale != "solid layout" {
		t.Errorf("expected rationale, got %q", rec.Rationale)
	}
}

func TestPixel_IdenticalImagesScoreOne(t *testing.T) {
	img := solid(50, 50, color.RGBA{30, 60, 90, 255})
	rec, err := NewPixel().Score(context.Background(), img, img)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Value != 1 {
		t.Errorf("expected similarity 1, got %g", rec.Value)
	}
}

func TestPixel_DifferentImagesScoreLower(t *testing.T) {
	original := solid(50, 50, color.RGBA{0, 0, 0, 255})
	recon := solid(50, 50, color.RGBA{255, 255, 255, 255})
	rec, err := NewPixel().Score(context.Background(), original, recon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Value != 0 {
		t.Errorf("expected similarity 0 for inverted images, got %g", rec.Value)
	}
}

func TestPixel_ScalesOriginalToReconstruction(t *testing.T) {
	// Original at dataset resolution, reconstruction at canvas size.
	original := solid(1600, 1200, color.RGBA{10, 20, 30, 255})
	recon := solid(800, 600, color.RGBA{10, 20, 30, 255})
	rec, err := NewPixel().Score(context.Background(), original, recon)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Value < 0.99 {
		t.Errorf("expected near-perfect similarity after scaling, got %g", rec.Value)
	}
}
