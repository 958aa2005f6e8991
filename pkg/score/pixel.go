package score

import (
	"context"
	"image"

	"respec/pkg/images"
	"respec/pkg/visualtest"
)

// Pixel scores a reconstruction by direct pixel comparison against the
// original, scaled to the reconstruction's size. The value is the
// fraction of matching pixels in [0,1]. Fully local; no provider needed.
type Pixel struct {
	// Tolerance is the per-channel difference treated as a match.
	Tolerance int
}

// NewPixel creates the pixel method with the default tolerance.
func NewPixel() *Pixel {
	return &Pixel{Tolerance: visualtest.DefaultOptions().Tolerance}
}

func (p *Pixel) Name() string { return MethodPixel }

func (p *Pixel) Score(ctx context.Context, original, reconstruction image.Image) (AestheticScore, error) {
	bounds := reconstruction.Bounds()
	scaled := images.Scale(original, bounds.Dx(), bounds.Dy())

	result, err := visualtest.Compare(reconstruction, scaled, visualtest.CompareOptions{Tolerance: p.Tolerance})
	if err != nil {
		return AestheticScore{}, err
	}
	return AestheticScore{Method: MethodPixel, Value: result.Similarity()}, nil
}
