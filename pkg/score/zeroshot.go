package score

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"math"

	"respec/pkg/ai"
	"respec/pkg/images"
)

const (
	clipImageSize = 224
	logitScale    = 100 // matches CLIP's learned logit scaling

	goodCaptionPrefix = "ui screenshot. well-designed. "
	poorCaptionPrefix = "ui screenshot. poor design. "
)

// ZeroShot scores design quality with a CLIP-style classifier: the image
// embedding is compared against a "well-designed" and a "poor design"
// caption, and the softmax over the two logits gives the probability of
// the good caption, a value in [0,1]. Both the original and the
// reconstruction are scored so their difference can be reported.
type ZeroShot struct {
	clip        *ai.ClipService
	description string
}

// NewZeroShot creates the zero-shot method. description names the design
// category in the captions, e.g. "graphic design".
func NewZeroShot(clip *ai.ClipService, description string) *ZeroShot {
	return &ZeroShot{clip: clip, description: description}
}

func (z *ZeroShot) Name() string { return MethodZeroShot }

func (z *ZeroShot) Score(ctx context.Context, original, reconstruction image.Image) (AestheticScore, error) {
	origVal, err := z.scoreImage(ctx, original)
	if err != nil {
		return AestheticScore{}, fmt.Errorf("scoring original: %w", err)
	}
	reconVal, err := z.scoreImage(ctx, reconstruction)
	if err != nil {
		return AestheticScore{}, fmt.Errorf("scoring reconstruction: %w", err)
	}
	return AestheticScore{Method: MethodZeroShot, Value: reconVal, Original: origVal}, nil
}

func (z *ZeroShot) scoreImage(ctx context.Context, img image.Image) (float64, error) {
	windows := slideWindow(img, clipImageSize)
	dataURLs := make([]string, len(windows))
	for i, w := range windows {
		uri, err := encodePNGDataURL(w)
		if err != nil {
			return 0, err
		}
		dataURLs[i] = uri
	}

	windowEmbeds, err := z.clip.EmbedImages(ctx, dataURLs)
	if err != nil {
		return 0, err
	}
	imgVec := normalize(meanVector(windowEmbeds))

	textEmbeds, err := z.clip.EmbedTexts(ctx, []string{
		goodCaptionPrefix + z.description,
		poorCaptionPrefix + z.description,
	})
	if err != nil {
		return 0, err
	}
	good := normalize(textEmbeds[0])
	poor := normalize(textEmbeds[1])

	goodLogit := logitScale * dot(imgVec, good)
	poorLogit := logitScale * dot(imgVec, poor)
	return softmax2(goodLogit, poorLogit), nil
}

// slideWindow resizes the image so its short side is size pixels, then
// slides a size x size window along the long side with overlapping steps.
// A square image yields exactly one window.
func slideWindow(img image.Image, size int) []*image.RGBA {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	var resized *image.RGBA
	if w > h {
		resized = images.Scale(img, size*w/h, size)
	} else {
		resized = images.Scale(img, size, size*h/w)
	}
	rw := resized.Bounds().Dx()
	rh := resized.Bounds().Dy()

	square := size
	longer := rw
	if rh > rw {
		longer = rh
	}
	numSteps := (longer + square - 1) / square
	step := square
	if numSteps > 1 {
		step = (longer - square) / (numSteps - 1)
	}
	if step <= 0 {
		step = square
	}

	var windows []*image.RGBA
	yStep, xStep := square, square
	if rh > rw {
		yStep = step
	} else {
		xStep = step
	}
	for y := 0; y+square <= rh; y += yStep {
		for x := 0; x+square <= rw; x += xStep {
			crop := image.NewRGBA(image.Rect(0, 0, square, square))
			for cy := 0; cy < square; cy++ {
				for cx := 0; cx < square; cx++ {
					crop.Set(cx, cy, resized.At(x+cx, y+cy))
				}
			}
			windows = append(windows, crop)
		}
	}
	if len(windows) == 0 {
		windows = append(windows, images.Scale(resized, square, square))
	}
	return windows
}

func encodePNGDataURL(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encoding window: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func meanVector(vecs [][]float64) []float64 {
	if len(vecs) == 0 {
		return nil
	}
	out := make([]float64, len(vecs[0]))
	for _, v := range vecs {
		for i := range v {
			out[i] += v[i]
		}
	}
	for i := range out {
		out[i] /= float64(len(vecs))
	}
	return out
}

func normalize(v []float64) []float64 {
	var norm float64
	for _, x := range v {
		norm += x * x
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return v
	}
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}

func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// softmax2 returns exp(a) / (exp(a) + exp(b)), computed stably.
func softmax2(a, b float64) float64 {
	return 1 / (1 + math.Exp(b-a))
}
