package ai

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var mimeBySuffix = map[string]string{
	".webp": "image/webp",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

// EncodeDataURL reads an image file and returns it as a base64 data URL,
// the form the vision and image APIs accept inline.
func EncodeDataURL(imagePath string) (string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", imagePath, err)
	}
	mime, ok := mimeBySuffix[strings.ToLower(filepath.Ext(imagePath))]
	if !ok {
		mime = "application/octet-stream"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// decodeDataURLBytes extracts the raw bytes of a base64 data URL.
func decodeDataURLBytes(uri string) ([]byte, error) {
	comma := strings.IndexByte(uri, ',')
	if comma < 0 {
		return nil, fmt.Errorf("malformed data URL")
	}
	if !strings.HasSuffix(uri[:comma], ";base64") {
		return nil, fmt.Errorf("unsupported data URL encoding")
	}
	return base64.StdEncoding.DecodeString(uri[comma+1:])
}
