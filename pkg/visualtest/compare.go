// Package visualtest compares rendered images pixel-by-pixel. It backs
// the renderer's regression tests and the local pixel scoring method.
package visualtest

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"respec/pkg/images"
)

// CompareResult contains the results of an image comparison.
type CompareResult struct {
	Match           bool
	DifferentPixels int
	TotalPixels     int
	MaxDifference   int // max per-channel difference found
}

// Similarity returns the fraction of matching pixels in [0,1].
func (r *CompareResult) Similarity() float64 {
	if r.TotalPixels == 0 {
		return 0
	}
	return 1 - float64(r.DifferentPixels)/float64(r.TotalPixels)
}

// CompareOptions configures the image comparison.
type CompareOptions struct {
	// Tolerance is the maximum allowed difference per color channel
	// (0-255). 0 demands exact pixels; 2-5 absorbs rasterizer noise.
	Tolerance int

	// MaxDifferentPercent, when > 0, lets a comparison pass if the
	// percentage of differing pixels stays at or below this value.
	MaxDifferentPercent float64

	// SaveDiffImage writes an image highlighting differences in red.
	SaveDiffImage bool
	DiffImagePath string
}

// DefaultOptions returns sensible defaults for comparing renders.
func DefaultOptions() CompareOptions {
	return CompareOptions{Tolerance: 2}
}

// CompareFiles compares two image files pixel-by-pixel. Any format the
// images package can decode is accepted; dimensions must match.
func CompareFiles(actualPath, expectedPath string, opts CompareOptions) (*CompareResult, error) {
	actual, err := images.LoadImage(actualPath)
	if err != nil {
		return nil, fmt.Errorf("loading actual image: %w", err)
	}
	expected, err := images.LoadImage(expectedPath)
	if err != nil {
		return nil, fmt.Errorf("loading expected image: %w", err)
	}
	return Compare(actual, expected, opts)
}

// Compare compares two images pixel-by-pixel.
func Compare(actual, expected image.Image, opts CompareOptions) (*CompareResult, error) {
	actualBounds := actual.Bounds()
	expectedBounds := expected.Bounds()
	if actualBounds.Dx() != expectedBounds.Dx() || actualBounds.Dy() != expectedBounds.Dy() {
		return &CompareResult{Match: false},
			fmt.Errorf("image dimensions differ: actual=%v, expected=%v", actualBounds, expectedBounds)
	}

	result := &CompareResult{
		Match:       true,
		TotalPixels: actualBounds.Dx() * actualBounds.Dy(),
	}

	var diffImg *image.RGBA
	if opts.SaveDiffImage {
		diffImg = image.NewRGBA(image.Rect(0, 0, actualBounds.Dx(), actualBounds.Dy()))
	}

	for y := 0; y < actualBounds.Dy(); y++ {
		for x := 0; x < actualBounds.Dx(); x++ {
			ar, ag, ab, aa := actual.At(actualBounds.Min.X+x, actualBounds.Min.Y+y).RGBA()
			er, eg, eb, ea := expected.At(expectedBounds.Min.X+x, expectedBounds.Min.Y+y).RGBA()

			ar, ag, ab, aa = ar>>8, ag>>8, ab>>8, aa>>8
			er, eg, eb, ea = er>>8, eg>>8, eb>>8, ea>>8

			diff := maxInt(
				absInt(int(ar)-int(er)),
				absInt(int(ag)-int(eg)),
				absInt(int(ab)-int(eb)),
				absInt(int(aa)-int(ea)),
			)

			if diff > result.MaxDifference {
				result.MaxDifference = diff
			}

			if diff > opts.Tolerance {
				result.Match = false
				result.DifferentPixels++
				if diffImg != nil {
					diffImg.Set(x, y, color.RGBA{255, 0, 0, 255})
				}
			} else if diffImg != nil {
				gray := uint8(ar)
				diffImg.Set(x, y, color.RGBA{gray, gray, gray, 255})
			}
		}
	}

	if !result.Match && opts.MaxDifferentPercent > 0 {
		pct := float64(result.DifferentPixels) / float64(result.TotalPixels) * 100
		if pct <= opts.MaxDifferentPercent {
			result.Match = true
		}
	}

	if opts.SaveDiffImage && !result.Match && opts.DiffImagePath != "" {
		if err := savePNG(diffImg, opts.DiffImagePath); err != nil {
			return result, fmt.Errorf("failed to save diff image: %w", err)
		}
	}

	return result, nil
}

func savePNG(img image.Image, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return png.Encode(file, img)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func maxInt(vals ...int) int {
	if len(vals) == 0 {
		return 0
	}
	max := vals[0]
	for _, v := range vals[1:] {
		if v > max {
			max = v
		}
	}
	return max
}
