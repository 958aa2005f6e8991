package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"respec/pkg/render"
	"respec/pkg/visualtest"
)

// Regenerates reference images for visual regression tests. Each spec
// document under the given directory is rendered to reference/<name>.png
// beside it.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Reference Image Generator")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  go run cmd/update-references/main.go <testdata-dir>")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  go run cmd/update-references/main.go pkg/visualtest/testdata")
		os.Exit(1)
	}
	root := os.Args[1]

	specs, err := filepath.Glob(filepath.Join(root, "*.json"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(specs) == 0 {
		fmt.Fprintf(os.Stderr, "No spec files under %s\n", root)
		os.Exit(1)
	}

	for _, specPath := range specs {
		name := strings.TrimSuffix(filepath.Base(specPath), ".json")
		refPath := filepath.Join(root, "reference", name+".png")
		if err := visualtest.UpdateReferenceImage(specPath, refPath, render.Options{
			AssetDir: filepath.Join(root, "assets"),
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating %s: %v\n", refPath, err)
			os.Exit(1)
		}
	}
	fmt.Printf("Regenerated %d reference images\n", len(specs))
}
