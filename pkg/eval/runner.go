package eval

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"respec/pkg/ai"
	"respec/pkg/images"
	"respec/pkg/render"
	"respec/pkg/score"
	"respec/pkg/spec"
)

// Options configures a batch run.
type Options struct {
	Dataset    *Dataset
	ResultsDir string

	// IDs selects a subset of designs. Empty means every design in the
	// dataset.
	IDs []string

	Methods []score.Method

	// GenerateAssets synthesizes missing image-node assets through the
	// image service before rendering. Requires Images.
	GenerateAssets bool
	Images         *ai.ImageService

	FontsDir string
}

// DesignResult records the outcome for one design. Exactly one of Scores
// or Error is meaningful.
type DesignResult struct {
	Design     string                 `json:"design"`
	RenderPath string                 `json:"render,omitempty"`
	Scores     []score.AestheticScore `json:"scores,omitempty"`
	Error      string                 `json:"error,omitempty"`
	ErrorKind  string                 `json:"error_kind,omitempty"`
	Elapsed    float64                `json:"elapsed_seconds"`
}

// Summary aggregates a full run.
type Summary struct {
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
	Results   []DesignResult `json:"results"`
}

// Runner executes designs sequentially and tolerates per-design failures:
// a design that cannot be loaded, rendered, or scored is recorded as
// failed and the run moves on.
type Runner struct {
	opts Options
}

func NewRunner(opts Options) *Runner {
	return &Runner{opts: opts}
}

// Run processes every selected design and writes per-design result files
// plus an all_scores.json aggregate under the results directory. It
// returns an error only when the run itself cannot proceed (bad dataset,
// unwritable results dir), never for individual design failures.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	ids := r.opts.IDs
	if len(ids) == 0 {
		var err error
		ids, err = r.opts.Dataset.IDs()
		if err != nil {
			return nil, fmt.Errorf("listing designs: %w", err)
		}
	}
	if err := os.MkdirAll(r.opts.ResultsDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating results directory: %w", err)
	}

	summary := &Summary{}
	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		log.Printf("[%d/%d] %s", i+1, len(ids), id)

		start := time.Now()
		result := r.runDesign(ctx, id)
		result.Elapsed = time.Since(start).Seconds()

		if result.Error != "" {
			log.Printf("  failed (%s): %s", result.ErrorKind, result.Error)
			summary.Failed++
		} else {
			for _, s := range result.Scores {
				log.Printf("  %s: %.4f", s.Method, s.Value)
			}
			summary.Succeeded++
		}
		summary.Results = append(summary.Results, result)

		if err := writeJSON(filepath.Join(r.opts.ResultsDir, id+".json"), result); err != nil {
			return summary, fmt.Errorf("writing result for %s: %w", id, err)
		}
	}

	if err := writeJSON(filepath.Join(r.opts.ResultsDir, "all_scores.json"), summary); err != nil {
		return summary, fmt.Errorf("writing aggregate: %w", err)
	}
	return summary, nil
}

// runDesign evaluates a single design. Errors are folded into the result
// rather than returned.
func (r *Runner) runDesign(ctx context.Context, id string) DesignResult {
	result := DesignResult{Design: id}

	data, err := os.ReadFile(r.opts.Dataset.SpecPath(id))
	if err != nil {
		return failed(result, "load", err)
	}
	design, err := spec.Parse(data)
	if err != nil {
		return failed(result, classify(err), err)
	}

	// Synthesized assets go under the results directory; the dataset is
	// read-only input.
	generatedDir := filepath.Join(r.opts.ResultsDir, id, "assets")
	if r.opts.GenerateAssets {
		if err := r.generateAssets(ctx, design, generatedDir); err != nil {
			return failed(result, classify(err), err)
		}
	}

	renderPath := filepath.Join(r.opts.ResultsDir, id, "render.png")
	renderOpts := render.Options{
		AssetDir:          r.opts.Dataset.AssetDir(id),
		GeneratedAssetDir: generatedDir,
		FontsDir:          r.opts.FontsDir,
	}
	reconstruction, err := render.RenderSpec(design, renderOpts)
	if err != nil {
		return failed(result, classify(err), err)
	}
	if err := savePNG(renderPath, reconstruction); err != nil {
		return failed(result, "encode", err)
	}
	result.RenderPath = renderPath

	originalPath := r.opts.Dataset.OriginalPath(id)
	if originalPath == "" || len(r.opts.Methods) == 0 {
		return result
	}
	original, err := images.LoadImage(originalPath)
	if err != nil {
		return failed(result, "load", err)
	}

	now := time.Now().UTC()
	for _, method := range r.opts.Methods {
		rec, err := method.Score(ctx, original, reconstruction)
		if err != nil {
			return failed(result, classify(err), fmt.Errorf("%s: %w", method.Name(), err))
		}
		rec.Design = id
		rec.Timestamp = now
		result.Scores = append(result.Scores, rec)
	}
	return result
}

// generateAssets fills in image nodes that declare a description but no
// asset file, writing generated images into the run's generated-asset
// directory.
func (r *Runner) generateAssets(ctx context.Context, design *spec.DesignSpec, assetDir string) error {
	if r.opts.Images == nil {
		return errors.New("asset generation requested without an image service")
	}
	for i, node := range design.ImageNodes() {
		if node.Asset != "" || node.AssetDescription == "" {
			continue
		}
		data, err := r.opts.Images.GenerateImage(ctx, node.AssetDescription)
		if err != nil {
			return fmt.Errorf("generating asset %d: %w", i, err)
		}
		name := fmt.Sprintf("generated-%d.png", i)
		if err := os.MkdirAll(assetDir, 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(assetDir, name), data, 0o644); err != nil {
			return fmt.Errorf("saving asset %d: %w", i, err)
		}
		node.Asset = name
		design.Assets = append(design.Assets, name)
	}
	return nil
}

func failed(result DesignResult, kind string, err error) DesignResult {
	result.ErrorKind = kind
	result.Error = err.Error()
	return result
}

// classify maps an error to a coarse kind for the result record.
func classify(err error) string {
	var validation *spec.ValidationError
	var renderErr *render.RenderError
	var provider *ai.ProviderError
	switch {
	case errors.As(err, &validation):
		return "validation"
	case errors.As(err, &renderErr):
		return "render"
	case errors.As(err, &provider):
		return "provider"
	default:
		return "error"
	}
}

func savePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// PrintSummary writes per-method aggregates: mean reconstruction score,
// mean original score, and the best and worst designs by score.
func (s *Summary) PrintSummary(w io.Writer) {
	fmt.Fprintf(w, "\n%d succeeded, %d failed\n", s.Succeeded, s.Failed)

	type agg struct {
		sum, origSum float64
		count        int
		best, worst  score.AestheticScore
	}
	byMethod := map[string]*agg{}
	var order []string
	for _, result := range s.Results {
		for _, rec := range result.Scores {
			a := byMethod[rec.Method]
			if a == nil {
				a = &agg{best: rec, worst: rec}
				byMethod[rec.Method] = a
				order = append(order, rec.Method)
			}
			a.sum += rec.Value
			a.origSum += rec.Original
			a.count++
			if rec.Value > a.best.Value {
				a.best = rec
			}
			if rec.Value < a.worst.Value {
				a.worst = rec
			}
		}
	}
	for _, method := range order {
		a := byMethod[method]
		n := float64(a.count)
		fmt.Fprintf(w, "%s: mean %.4f (original %.4f) over %d designs\n",
			method, a.sum/n, a.origSum/n, a.count)
		fmt.Fprintf(w, "  best  %s (%.4f)\n", a.best.Design, a.best.Value)
		fmt.Fprintf(w, "  worst %s (%.4f)\n", a.worst.Design, a.worst.Value)
	}
}
