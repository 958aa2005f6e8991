package main

import (
	"flag"
	"fmt"
	"os"

	"respec/pkg/markup"
	"respec/pkg/render"
	"respec/pkg/spec"
)

func main() {
	output := flag.String("o", "output.png", "output PNG file path")
	width := flag.Int("w", 0, "override canvas width in pixels")
	height := flag.Int("h", 0, "override canvas height in pixels")
	assetDir := flag.String("assets", "", "directory asset references resolve against")
	fontsDir := flag.String("fonts", "", "override the bundled fonts directory")
	htmlOut := flag.String("html", "", "also write the HTML document to this path")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: respec [flags] <spec.json>\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	specPath := flag.Arg(0)

	data, err := os.ReadFile(specPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading spec: %v\n", err)
		os.Exit(1)
	}
	design, err := spec.Parse(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing spec: %v\n", err)
		os.Exit(1)
	}
	if *width > 0 {
		design.Canvas.Width = *width
	}
	if *height > 0 {
		design.Canvas.Height = *height
	}

	if *htmlOut != "" {
		doc := markup.Document(design, markup.Options{AssetBaseURL: *assetDir})
		if err := os.WriteFile(*htmlOut, []byte(doc), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing HTML: %v\n", err)
			os.Exit(1)
		}
	}

	opts := render.Options{AssetDir: *assetDir, FontsDir: *fontsDir}
	if err := render.RenderSpecToFile(design, *output, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Rendered %s (%dx%d, %d nodes) to %s\n",
		specPath, design.Canvas.Width, design.Canvas.Height, len(design.Nodes), *output)
}
