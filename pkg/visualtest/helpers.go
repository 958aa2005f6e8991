package visualtest

import (
	"fmt"
	"os"

	"respec/pkg/render"
	"respec/pkg/spec"
)

// RenderSpecFile parses a spec JSON file and renders it to a PNG.
func RenderSpecFile(specPath, outputPath string, opts render.Options) error {
	data, err := os.ReadFile(specPath)
	if err != nil {
		return fmt.Errorf("failed to read spec file: %w", err)
	}
	s, err := spec.Parse(data)
	if err != nil {
		return err
	}
	return render.RenderSpecToFile(s, outputPath, opts)
}

// UpdateReferenceImage regenerates a reference image from a spec file.
// Use this when rendering behavior has intentionally changed.
func UpdateReferenceImage(specPath, referencePath string, opts render.Options) error {
	fmt.Printf("updating reference image: %s\n", referencePath)
	return RenderSpecFile(specPath, referencePath, opts)
}
