package images

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"
	"sync"

	_ "golang.org/x/image/webp"
)

// ImageCache caches decoded images by path.
type ImageCache struct {
	cache map[string]image.Image
	mu    sync.RWMutex
}

// Global image cache. Decoded originals and assets are reused across a
// batch run; entries are never invalidated within a process.
var globalCache = &ImageCache{
	cache: make(map[string]image.Image),
}

// LoadImage loads and decodes an image from the filesystem. PNG, JPEG,
// GIF, and WebP are supported.
func LoadImage(path string) (image.Image, error) {
	globalCache.mu.RLock()
	if img, ok := globalCache.cache[path]; ok {
		globalCache.mu.RUnlock()
		return img, nil
	}
	globalCache.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	globalCache.mu.Lock()
	globalCache.cache[path] = img
	globalCache.mu.Unlock()

	return img, nil
}

// Decode decodes raw image bytes in any registered format.
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}

// DecodeDataURL decodes a base64 data: URL into an image.
func DecodeDataURL(uri string) (image.Image, error) {
	if !strings.HasPrefix(uri, "data:") {
		return nil, fmt.Errorf("not a data URL")
	}
	comma := strings.IndexByte(uri, ',')
	if comma < 0 {
		return nil, fmt.Errorf("malformed data URL")
	}
	meta := uri[5:comma]
	if !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("unsupported data URL encoding in %q", meta)
	}
	raw, err := base64.StdEncoding.DecodeString(uri[comma+1:])
	if err != nil {
		return nil, fmt.Errorf("decoding data URL: %w", err)
	}
	return Decode(raw)
}

// GetImageDimensions returns the width and height of an image file.
func GetImageDimensions(path string) (width, height int, err error) {
	img, err := LoadImage(path)
	if err != nil {
		return 0, 0, err
	}
	bounds := img.Bounds()
	return bounds.Dx(), bounds.Dy(), nil
}
