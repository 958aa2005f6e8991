package main

import (
	"bytes"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"respec/pkg/render"
	"respec/pkg/spec"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:8080", "listen address")
	editorDir := flag.String("editor", "editor", "directory with the editor page")
	datasetDir := flag.String("dataset", "dataset", "dataset root served under /dataset/")
	fontsDir := flag.String("fonts", "", "override the bundled fonts directory")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: rsserve [flags]\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(*editorDir)))
	mux.Handle("/dataset/", http.StripPrefix("/dataset/", http.FileServer(http.Dir(*datasetDir))))
	mux.HandleFunc("/render", renderHandler(*datasetDir, *fontsDir))

	log.Printf("serving editor on http://%s", *addr)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		log.Fatal(err)
	}
}

// renderHandler renders a posted spec document to PNG. The optional ?id=
// query resolves asset references against that design's asset directory.
func renderHandler(datasetDir, fontsDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "POST a spec document", http.StatusMethodNotAllowed)
			return
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		design, err := spec.Parse(body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		opts := render.Options{FontsDir: fontsDir}
		if id := r.URL.Query().Get("id"); id != "" {
			opts.AssetDir = filepath.Join(datasetDir, "specs", id, "assets")
		}
		img, err := render.RenderSpec(design, opts)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(buf.Bytes())
	}
}
