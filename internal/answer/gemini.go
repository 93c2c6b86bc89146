package answer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/docqa/backend/internal/models"
	"google.golang.org/genai"
)

const (
	DefaultGeminiModel = "gemini-2.0-flash"

	geminiInstruction = "You answer questions about a single uploaded document. " +
		"Use only the document text provided. If the text does not contain the answer, say so briefly."
)

// GeminiAnswerer asks a Gemini model, passing the document text as context.
type GeminiAnswerer struct {
	cli   *genai.Client
	model string
}

// NewGeminiAnswerer creates a Gemini-backed answerer. An empty baseURL uses
// the public Gemini API.
func NewGeminiAnswerer(ctx context.Context, apiKey, model, baseURL string) (*GeminiAnswerer, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini: api key is required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	cli, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: creating client: %w", err)
	}
	return &GeminiAnswerer{cli: cli, model: model}, nil
}

func (g *GeminiAnswerer) Name() string {
	return "gemini:" + g.model
}

func (g *GeminiAnswerer) Answer(ctx context.Context, doc *models.Document, question string) (string, error) {
	prompt := fmt.Sprintf("[DOCUMENT %s]\n%s\n\n[QUESTION]\n%s", doc.Name, doc.Content, question)

	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: prompt}}}},
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: geminiInstruction}}},
		},
	)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyAnswer
	}

	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p != nil {
			b.WriteString(p.Text)
		}
	}
	answer := strings.TrimSpace(b.String())
	if answer == "" {
		return "", ErrEmptyAnswer
	}
	return answer, nil
}
