package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Model is the Gemini model used by default.
const Model = "gemini-2.5-flash"

// Generator is the part of the genai client used by an Expert, as
// implemented by client.Models.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Expert is a single purpose, stateless Gemini prompt.
type Expert struct {
	Name      string
	ModelName string
	Config    *genai.GenerateContentConfig
	gen       Generator
}

// Ask sends a single question and returns the text of the first candidate.
func (e *Expert) Ask(ctx context.Context, question string) (string, error) {
	resp, err := e.gen.GenerateContent(ctx, e.ModelName, genai.Text(question), e.Config)
	if err != nil {
		return "", fmt.Errorf("expert %s: %w", e.Name, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from expert %s", e.Name)
	}
	return resp.Text(), nil
}
