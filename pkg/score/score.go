// Package score computes aesthetic quality judgments for design
// reconstructions. Three methods are available: a zero-shot CLIP
// classifier, a vision-LLM critic, and a local pixel comparison. Methods
// share no state; scoring the same pair twice yields the same record.
package score

import (
	"context"
	"image"
	"time"
)

// Method names.
const (
	MethodZeroShot = "zeroshot"
	MethodCritic   = "critic"
	MethodPixel    = "pixel"
)

// AestheticScore is one evaluation record. Records are append-only: they
// are created per run and never mutated after being written.
type AestheticScore struct {
	Design string `json:"design"`
	Method string `json:"method"`

	// Value is the reconstruction's score: [0,1] for zeroshot and
	// pixel, an integer in [0,100] for critic.
	Value float64 `json:"value"`

	// Original carries the original image's score for methods that
	// judge each side independently, so the difference can be read off.
	Original float64 `json:"original,omitempty"`

	Rationale string    `json:"rationale,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Diff returns reconstruction minus original.
func (s AestheticScore) Diff() float64 { return s.Value - s.Original }

// Method scores a reconstruction against its original. Implementations
// must be stateless: calls are independent and order-insensitive.
type Method interface {
	Name() string
	Score(ctx context.Context, original, reconstruction image.Image) (AestheticScore, error)
}
