package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

const visionProvider = "vision service"

// VisionService talks to an OpenAI-compatible chat endpoint that accepts
// images. The critic scorer uses it to judge designs.
type VisionService struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client
}

// NewVisionService creates a client for the vision API rooted at baseURL.
func NewVisionService(cfg Config) *VisionService {
	return &VisionService{
		apiKey:  cfg.VisionAPIKey,
		baseURL: strings.TrimRight(cfg.VisionAPIURL, "/"),
		model:   cfg.VisionModel,
		http:    httpClient,
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []chatContent `json:"content"`
}

type chatContent struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *chatImageURL `json:"image_url,omitempty"`
}

type chatImageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// ChatWithImage sends a prompt plus one inline image and returns the
// model's text reply.
func (s *VisionService) ChatWithImage(ctx context.Context, prompt, imageDataURL string) (string, error) {
	reqBody := chatRequest{
		Model: s.model,
		Messages: []chatMessage{{
			Role: "user",
			Content: []chatContent{
				{Type: "text", Text: prompt},
				{Type: "image_url", ImageURL: &chatImageURL{URL: imageDataURL}},
			},
		}},
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", &ProviderError{Provider: visionProvider, Message: "encoding request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", &ProviderError{Provider: visionProvider, Message: "creating request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.http.Do(req)
	if err != nil {
		return "", &ProviderError{Provider: visionProvider, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ProviderError{Provider: visionProvider, Message: "reading response", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &ProviderError{
			Provider: visionProvider,
			Status:   resp.StatusCode,
			Message:  strings.TrimSpace(string(data)),
		}
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", &ProviderError{Provider: visionProvider, Message: "malformed response", Err: err}
	}
	if parsed.Error != nil {
		return "", &ProviderError{Provider: visionProvider, Message: parsed.Error.Message}
	}
	if len(parsed.Choices) == 0 {
		return "", &ProviderError{Provider: visionProvider, Message: "response contains no choices"}
	}
	return parsed.Choices[0].Message.Content, nil
}
