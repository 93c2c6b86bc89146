// Package answer provides the collaborators that answer questions about a document.
package answer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/docqa/backend/internal/models"
)

// Provider names accepted by New.
const (
	ProviderExcerpt = "excerpt"
	ProviderGemini  = "gemini"
	ProviderRemote  = "remote"
)

// ErrEmptyAnswer is returned when a collaborator replies with no text.
var ErrEmptyAnswer = errors.New("empty answer")

// Answerer answers a question using the text of a single document.
type Answerer interface {
	Name() string
	Answer(ctx context.Context, doc *models.Document, question string) (string, error)
}

// Options selects and configures an Answerer.
type Options struct {
	Provider string
	Model    string
	APIKey   string
	Endpoint string // remote answer URL, or a Gemini API base URL override
	Timeout  time.Duration
}

// New builds the answerer named by opts.Provider. An empty provider means excerpt.
func New(ctx context.Context, opts Options) (Answerer, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Provider)) {
	case "", ProviderExcerpt:
		return NewExcerptAnswerer(), nil
	case ProviderGemini:
		a, err := NewGeminiAnswerer(ctx, opts.APIKey, opts.Model, opts.Endpoint)
		if err != nil {
			return nil, err
		}
		return a, nil
	case ProviderRemote:
		a, err := NewRemoteAnswerer(opts.Endpoint, opts.Timeout)
		if err != nil {
			return nil, err
		}
		return a, nil
	default:
		return nil, fmt.Errorf("unknown answer provider: %s", opts.Provider)
	}
}
