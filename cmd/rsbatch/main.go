package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"respec/pkg/ai"
	"respec/pkg/eval"
	"respec/pkg/score"
)

func main() {
	dataset := flag.String("dataset", "dataset", "dataset root directory")
	results := flag.String("results", "results", "results output directory")
	ids := flag.String("ids", "", "comma-separated design subset (default: all)")
	methods := flag.String("methods", "pixel", "comma-separated scoring methods: pixel, zeroshot, critic")
	generate := flag.Bool("generate", false, "synthesize missing image assets via the image service")
	description := flag.String("description", "graphic design", "design category for the zero-shot captions")
	prompt := flag.String("prompt", "rubric", "critic prompt: basic or rubric")
	fontsDir := flag.String("fonts", "", "override the bundled fonts directory")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: rsbatch [flags]\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := ai.LoadEnv()
	opts := eval.Options{
		ResultsDir:     *results,
		GenerateAssets: *generate,
		FontsDir:       *fontsDir,
	}
	if *ids != "" {
		opts.IDs = splitList(*ids)
	}

	// Every provider the run needs must be configured before any design
	// is processed.
	for _, name := range splitList(*methods) {
		switch name {
		case score.MethodPixel:
			opts.Methods = append(opts.Methods, score.NewPixel())
		case score.MethodZeroShot:
			if err := cfg.RequireClip(); err != nil {
				fatal(err)
			}
			opts.Methods = append(opts.Methods, score.NewZeroShot(ai.NewClipService(cfg.ClipAPIURL), *description))
		case score.MethodCritic:
			if err := cfg.RequireVision(); err != nil {
				fatal(err)
			}
			criticPrompt := ""
			if *prompt == "basic" {
				criticPrompt = score.BasicCriticPrompt
			}
			opts.Methods = append(opts.Methods, score.NewCritic(ai.NewVisionService(cfg), criticPrompt))
		default:
			fatal(fmt.Errorf("unknown scoring method %q", name))
		}
	}
	if *generate {
		if err := cfg.RequireImage(); err != nil {
			fatal(err)
		}
		opts.Images = ai.NewImageService(cfg)
	}

	ds, err := eval.OpenDataset(*dataset)
	if err != nil {
		fatal(err)
	}
	opts.Dataset = ds

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	summary, err := eval.NewRunner(opts).Run(ctx)
	if err != nil {
		fatal(err)
	}
	summary.PrintSummary(os.Stdout)
	if summary.Failed > 0 {
		os.Exit(1)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
