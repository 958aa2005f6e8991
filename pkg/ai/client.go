// Package ai holds the connectors to the external generative services:
// an image service for asset generation and editing, and a vision LLM
// used by the critic scorer. Every call is a single blocking request
// (plus status polling for queued image jobs); retry policy is the
// caller's decision.
package ai

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read at process start.
const (
	EnvImageAPIKey = "RESPEC_IMAGE_API_KEY"
	EnvImageAPIURL = "RESPEC_IMAGE_API_URL"

	EnvVisionAPIKey = "RESPEC_VISION_API_KEY"
	EnvVisionAPIURL = "RESPEC_VISION_API_URL"
	EnvVisionModel  = "RESPEC_VISION_MODEL"

	EnvClipAPIURL = "RESPEC_CLIP_API_URL"
)

const (
	defaultVisionModel = "gpt-4o-mini"
	defaultTimeout     = 120 * time.Second
)

// httpClient is shared by all provider calls.
var httpClient = &http.Client{
	Timeout: defaultTimeout,
}

// ProviderError reports a failed call to an external AI service: network
// failure, quota exhaustion, or a malformed response.
type ProviderError struct {
	Provider string
	Status   int // HTTP status, 0 for transport errors
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: HTTP %d: %s", e.Provider, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Quota reports whether the failure was quota exhaustion.
func (e *ProviderError) Quota() bool { return e.Status == http.StatusTooManyRequests }

// Config carries provider endpoints and credentials.
type Config struct {
	ImageAPIKey string
	ImageAPIURL string

	VisionAPIKey string
	VisionAPIURL string
	VisionModel  string

	ClipAPIURL string
}

// LoadEnv loads a .env file if present and reads the provider config from
// the environment. Key presence is not checked here; call RequireImage or
// RequireVision before starting work that needs a provider.
func LoadEnv() Config {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg := Config{
		ImageAPIKey:  os.Getenv(EnvImageAPIKey),
		ImageAPIURL:  os.Getenv(EnvImageAPIURL),
		VisionAPIKey: os.Getenv(EnvVisionAPIKey),
		VisionAPIURL: os.Getenv(EnvVisionAPIURL),
		VisionModel:  os.Getenv(EnvVisionModel),
		ClipAPIURL:   os.Getenv(EnvClipAPIURL),
	}
	if cfg.VisionModel == "" {
		cfg.VisionModel = defaultVisionModel
	}
	return cfg
}

// RequireImage fails when the image provider is not configured. This is
// the only fatal startup check: missing credentials halt before any work.
func (c Config) RequireImage() error {
	if c.ImageAPIKey == "" {
		return fmt.Errorf("%s not set", EnvImageAPIKey)
	}
	if c.ImageAPIURL == "" {
		return fmt.Errorf("%s not set", EnvImageAPIURL)
	}
	return nil
}

// RequireVision fails when the vision provider is not configured.
func (c Config) RequireVision() error {
	if c.VisionAPIKey == "" {
		return fmt.Errorf("%s not set", EnvVisionAPIKey)
	}
	if c.VisionAPIURL == "" {
		return fmt.Errorf("%s not set", EnvVisionAPIURL)
	}
	return nil
}

// RequireClip fails when the CLIP embedding endpoint is not configured.
func (c Config) RequireClip() error {
	if c.ClipAPIURL == "" {
		return fmt.Errorf("%s not set", EnvClipAPIURL)
	}
	return nil
}
