package answer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/docqa/backend/internal/models"
)

const defaultRemoteTimeout = 60 * time.Second

// RemoteAnswerer forwards questions to an external answering service.
type RemoteAnswerer struct {
	endpoint string
	client   *http.Client
}

type remoteRequest struct {
	Question string `json:"question"`
	FileID   string `json:"fileId"`
	Content  string `json:"content"`
}

// NewRemoteAnswerer creates an answerer posting to endpoint.
func NewRemoteAnswerer(endpoint string, timeout time.Duration) (*RemoteAnswerer, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, errors.New("remote: endpoint is required")
	}
	if timeout <= 0 {
		timeout = defaultRemoteTimeout
	}
	return &RemoteAnswerer{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}, nil
}

func (a *RemoteAnswerer) Name() string {
	return ProviderRemote
}

func (a *RemoteAnswerer) Answer(ctx context.Context, doc *models.Document, question string) (string, error) {
	body, err := json.Marshal(remoteRequest{Question: question, FileID: doc.ID, Content: doc.Content})
	if err != nil {
		return "", fmt.Errorf("remote: encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("remote: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("remote: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("remote: unexpected status %d", resp.StatusCode)
	}

	var out models.ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("remote: decoding response: %w", err)
	}
	if strings.TrimSpace(out.Answer) == "" {
		return "", ErrEmptyAnswer
	}
	return out.Answer, nil
}
