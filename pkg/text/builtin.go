package text

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	builtinOnce sync.Once
	builtinFont *truetype.Font
)

// BuiltinFace returns the embedded Go Regular font at the given size. It
// is the last-resort face when no font file can be loaded, so text nodes
// always paint even on an install without a fonts directory.
func BuiltinFace(size float64) font.Face {
	builtinOnce.Do(func() {
		builtinFont, _ = truetype.Parse(goregular.TTF)
	})
	return truetype.NewFace(builtinFont, &truetype.Options{Size: size})
}
