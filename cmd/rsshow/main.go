package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"respec/pkg/eval"
	"respec/pkg/images"
	"respec/pkg/render"
	"respec/pkg/spec"
)

func main() {
	datasetDir := flag.String("dataset", "dataset", "dataset root directory")
	resultsDir := flag.String("results", "results", "results directory with scored runs")
	fontsDir := flag.String("fonts", "", "override the bundled fonts directory")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: rsshow [flags] [design-id]\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	ds, err := eval.OpenDataset(*datasetDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	a := app.New()
	w := a.NewWindow("respec viewer")
	w.Resize(fyne.NewSize(1200, 700))

	blank := image.NewRGBA(image.Rect(0, 0, 8, 8))
	originalImg := canvas.NewImageFromImage(blank)
	originalImg.FillMode = canvas.ImageFillContain
	renderImg := canvas.NewImageFromImage(blank)
	renderImg.FillMode = canvas.ImageFillContain

	status := widget.NewLabel("Enter a design ID and press Enter")

	show := func(id string) {
		status.SetText("Rendering " + id + "...")
		go func() {
			data, err := os.ReadFile(ds.SpecPath(id))
			if err != nil {
				status.SetText("Error: " + err.Error())
				return
			}
			design, err := spec.Parse(data)
			if err != nil {
				status.SetText("Spec error: " + err.Error())
				return
			}
			reconstruction, err := render.RenderSpec(design, render.Options{
				AssetDir: ds.AssetDir(id),
				FontsDir: *fontsDir,
			})
			if err != nil {
				status.SetText("Render error: " + err.Error())
				return
			}

			if path := ds.OriginalPath(id); path != "" {
				original, err := images.LoadImage(path)
				if err != nil {
					status.SetText("Original error: " + err.Error())
					return
				}
				originalImg.Image = original
			} else {
				originalImg.Image = blank
			}
			originalImg.Refresh()
			renderImg.Image = reconstruction
			renderImg.Refresh()

			line := fmt.Sprintf("%s: %dx%d, %d nodes",
				id, design.Canvas.Width, design.Canvas.Height, len(design.Nodes))
			if scores := loadScores(*resultsDir, id); scores != "" {
				line += " | " + scores
			}
			status.SetText(line)
			w.SetTitle("respec - " + id)
		}()
	}

	idEntry := widget.NewEntry()
	idEntry.SetPlaceHolder("design-001")
	idEntry.OnSubmitted = show

	// Original on the left, reconstruction on the right
	pair := container.NewGridWithColumns(2,
		container.NewBorder(widget.NewLabel("Original"), nil, nil, nil, originalImg),
		container.NewBorder(widget.NewLabel("Reconstruction"), nil, nil, nil, renderImg),
	)
	content := container.NewBorder(idEntry, status, nil, nil, pair)
	w.SetContent(content)
	w.Canvas().Focus(idEntry)

	if flag.NArg() > 0 {
		id := flag.Arg(0)
		idEntry.SetText(id)
		show(id)
	}
	w.ShowAndRun()
}

// loadScores formats the scores from a previous batch run, if one exists.
func loadScores(resultsDir, id string) string {
	data, err := os.ReadFile(filepath.Join(resultsDir, id+".json"))
	if err != nil {
		return ""
	}
	var result eval.DesignResult
	if err := json.Unmarshal(data, &result); err != nil {
		return ""
	}
	parts := make([]string, 0, len(result.Scores))
	for _, s := range result.Scores {
		parts = append(parts, fmt.Sprintf("%s %.3f", s.Method, s.Value))
	}
	return strings.Join(parts, "  ")
}
