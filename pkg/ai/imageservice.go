package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const imageProvider = "image service"

// pollInterval is the delay between status checks for queued jobs.
var pollInterval = 2 * time.Second

// ImageService generates and edits raster assets via an external
// generative-image API. Synchronous responses return the result directly;
// queued jobs (HTTP 202) are polled until they complete or fail.
type ImageService struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewImageService creates a client for the image API rooted at baseURL.
func NewImageService(cfg Config) *ImageService {
	return &ImageService{
		apiKey:  cfg.ImageAPIKey,
		baseURL: strings.TrimRight(cfg.ImageAPIURL, "/"),
		http:    httpClient,
	}
}

// jobResponse is the provider's result envelope, for both immediate
// results and queued-job status documents.
type jobResponse struct {
	Status      string `json:"status"`
	State       string `json:"state"`
	StatusURL   string `json:"status_url"`
	ResponseURL string `json:"response_url"`
	Detail      string `json:"detail"`
	Images      []struct {
		URL string `json:"url"`
	} `json:"images"`
}

// GenerateImage synthesizes an asset from a text prompt and returns the
// raw image bytes.
func (s *ImageService) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	payload := map[string]any{"prompt": prompt}
	return s.run(ctx, s.baseURL+"/generate", payload)
}

// EditImage applies an instruction to one or more source images and
// returns the raw bytes of the edited result.
func (s *ImageService) EditImage(ctx context.Context, prompt string, imageURLs []string) ([]byte, error) {
	payload := map[string]any{"prompt": prompt, "image_urls": imageURLs}
	return s.run(ctx, s.baseURL+"/edit", payload)
}

// run submits a job and resolves its result to image bytes.
func (s *ImageService) run(ctx context.Context, url string, payload map[string]any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &ProviderError{Provider: imageProvider, Message: "encoding request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &ProviderError{Provider: imageProvider, Message: "creating request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Key "+s.apiKey)

	result, err := s.do(req)
	if err != nil {
		return nil, err
	}
	return s.fetchResult(ctx, result)
}

// do executes a request and, for queued jobs, polls until completion.
func (s *ImageService) do(req *http.Request) (*jobResponse, error) {
	resp, err := s.http.Do(req)
	if err != nil {
		return nil, &ProviderError{Provider: imageProvider, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ProviderError{Provider: imageProvider, Message: "reading response", Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return decodeJob(data)
	case resp.StatusCode == http.StatusAccepted:
		job, err := decodeJob(data)
		if err != nil {
			return nil, err
		}
		return s.poll(req.Context(), job)
	default:
		return nil, &ProviderError{
			Provider: imageProvider,
			Status:   resp.StatusCode,
			Message:  strings.TrimSpace(string(data)),
		}
	}
}

// poll follows a queued job's status URL until it completes or fails.
func (s *ImageService) poll(ctx context.Context, job *jobResponse) (*jobResponse, error) {
	statusURL := job.StatusURL
	if statusURL == "" {
		statusURL = job.ResponseURL
	}
	if statusURL == "" {
		return nil, &ProviderError{Provider: imageProvider, Message: "queued job without status URL"}
	}

	for {
		select {
		case <-ctx.Done():
			return nil, &ProviderError{Provider: imageProvider, Message: "polling canceled", Err: ctx.Err()}
		case <-time.After(pollInterval):
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, statusURL, nil)
		if err != nil {
			return nil, &ProviderError{Provider: imageProvider, Message: "creating status request", Err: err}
		}
		req.Header.Set("Authorization", "Key "+s.apiKey)

		resp, err := s.http.Do(req)
		if err != nil {
			return nil, &ProviderError{Provider: imageProvider, Message: "status request failed", Err: err}
		}
		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, &ProviderError{Provider: imageProvider, Message: "reading status response", Err: err}
		}
		if resp.StatusCode != http.StatusOK {
			return nil, &ProviderError{
				Provider: imageProvider,
				Status:   resp.StatusCode,
				Message:  strings.TrimSpace(string(data)),
			}
		}

		status, err := decodeJob(data)
		if err != nil {
			return nil, err
		}
		switch strings.ToLower(firstNonEmpty(status.Status, status.State)) {
		case "completed", "success", "succeeded":
			return status, nil
		case "failed", "error":
			return nil, &ProviderError{
				Provider: imageProvider,
				Message:  fmt.Sprintf("job failed: %s", firstNonEmpty(status.Detail, "no detail")),
			}
		}
	}
}

// fetchResult turns a completed job into raw image bytes. Results arrive
// either as data URLs or as hosted URLs that need one more fetch.
func (s *ImageService) fetchResult(ctx context.Context, job *jobResponse) ([]byte, error) {
	if len(job.Images) == 0 || job.Images[0].URL == "" {
		return nil, &ProviderError{Provider: imageProvider, Message: "response contains no images"}
	}
	uri := job.Images[0].URL

	if strings.HasPrefix(uri, "data:") {
		data, err := decodeDataURLBytes(uri)
		if err != nil {
			return nil, &ProviderError{Provider: imageProvider, Message: "malformed data URL result", Err: err}
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, &ProviderError{Provider: imageProvider, Message: "creating result request", Err: err}
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return nil, &ProviderError{Provider: imageProvider, Message: "fetching result image", Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{Provider: imageProvider, Status: resp.StatusCode, Message: "fetching result image"}
	}
	return io.ReadAll(resp.Body)
}

func decodeJob(data []byte) (*jobResponse, error) {
	var job jobResponse
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, &ProviderError{Provider: imageProvider, Message: "malformed response", Err: err}
	}
	return &job, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
