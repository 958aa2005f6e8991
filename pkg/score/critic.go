package score

import (
	"context"
	"fmt"
	"image"

	"respec/pkg/ai"
)

// Critic scores designs with a vision LLM: the image plus a rubric prompt
// go to the model, which replies with an integer in [0,100] and a short
// rationale. Both sides of the pair are judged independently.
type Critic struct {
	vision *ai.VisionService
	prompt string
}

// NewCritic creates the critic method. An empty prompt selects the
// rubric prompt.
func NewCritic(vision *ai.VisionService, prompt string) *Critic {
	if prompt == "" {
		prompt = RubricCriticPrompt
	}
	return &Critic{vision: vision, prompt: prompt}
}

func (c *Critic) Name() string { return MethodCritic }

func (c *Critic) Score(ctx context.Context, original, reconstruction image.Image) (AestheticScore, error) {
	origVal, _, err := c.scoreImage(ctx, original)
	if err != nil {
		return AestheticScore{}, fmt.Errorf("scoring original: %w", err)
	}
	reconVal, rationale, err := c.scoreImage(ctx, reconstruction)
	if err != nil {
		return AestheticScore{}, fmt.Errorf("scoring reconstruction: %w", err)
	}
	return AestheticScore{
		Method:    MethodCritic,
		Value:     float64(reconVal),
		Original:  float64(origVal),
		Rationale: rationale,
	}, nil
}

func (c *Critic) scoreImage(ctx context.Context, img image.Image) (int, string, error) {
	uri, err := encodePNGDataURL(img)
	if err != nil {
		return 0, "", err
	}
	reply, err := c.vision.ChatWithImage(ctx, c.prompt, uri)
	if err != nil {
		return 0, "", err
	}
	return parseCriticReply(reply)
}
