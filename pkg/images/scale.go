package images

import (
	"image"

	"golang.org/x/image/draw"
)

// Scale resamples an image to the given size. Used to bring an original
// and its reconstruction to a common size before pixel comparison.
func Scale(img image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}
