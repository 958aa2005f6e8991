package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

const clipProvider = "clip service"

// ClipService talks to a CLIP inference endpoint that embeds texts and
// images into a shared vector space. The zero-shot scorer compares these
// embeddings; the model itself runs behind the service.
type ClipService struct {
	baseURL string
	http    *http.Client
}

// NewClipService creates a client for a CLIP embedding endpoint.
func NewClipService(baseURL string) *ClipService {
	return &ClipService{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

type embedRequest struct {
	Texts  []string `json:"texts,omitempty"`
	Images []string `json:"images,omitempty"` // base64 data URLs
}

type embedResponse struct {
	Embeddings [][]float64 `json:"embeddings"`
}

// EmbedTexts returns one embedding per input text.
func (s *ClipService) EmbedTexts(ctx context.Context, texts []string) ([][]float64, error) {
	return s.embed(ctx, embedRequest{Texts: texts}, len(texts))
}

// EmbedImages returns one embedding per input image, passed as data URLs.
func (s *ClipService) EmbedImages(ctx context.Context, imageDataURLs []string) ([][]float64, error) {
	return s.embed(ctx, embedRequest{Images: imageDataURLs}, len(imageDataURLs))
}

func (s *ClipService) embed(ctx context.Context, reqBody embedRequest, expected int) ([][]float64, error) {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &ProviderError{Provider: clipProvider, Message: "encoding request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/embed", bytes.NewReader(body))
	if err != nil {
		return nil, &ProviderError{Provider: clipProvider, Message: "creating request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, &ProviderError{Provider: clipProvider, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ProviderError{Provider: clipProvider, Message: "reading response", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{
			Provider: clipProvider,
			Status:   resp.StatusCode,
			Message:  strings.TrimSpace(string(data)),
		}
	}

	var parsed embedResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, &ProviderError{Provider: clipProvider, Message: "malformed response", Err: err}
	}
	if len(parsed.Embeddings) != expected {
		return nil, &ProviderError{Provider: clipProvider, Message: "embedding count mismatch"}
	}
	return parsed.Embeddings, nil
}
