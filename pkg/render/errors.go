package render

import "fmt"

// RenderError reports a failure while rasterizing a design: an asset that
// cannot be resolved or decoded, or an output that cannot be written.
// Render failures are reported to the caller, never retried silently.
type RenderError struct {
	Stage string // "asset", "encode"
	Path  string
	Err   error
}

func (e *RenderError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("render: %s %s: %v", e.Stage, e.Path, e.Err)
	}
	return fmt.Sprintf("render: %s: %v", e.Stage, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
