package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/docqa/backend/internal/models"
)

const defaultHTTPTimeout = 2 * time.Minute

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// APIClient talks to the document Q&A HTTP API.
type APIClient struct {
	baseURL string
	http    *http.Client
}

// NewAPIClient creates a client for the server at baseURL. A nil httpClient
// gets a default with a generous timeout.
func NewAPIClient(baseURL string, httpClient *http.Client) *APIClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// ProcessFile posts a single file as multipart field "file" to /api/process-file.
func (c *APIClient) ProcessFile(ctx context.Context, file File) (*models.Document, error) {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(file.Name)))
	if file.Type != "" {
		h.Set("Content-Type", file.Type)
	}
	part, err := writer.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("creating form part: %w", err)
	}
	if _, err := io.Copy(part, file.Body); err != nil {
		return nil, fmt.Errorf("reading %s: %w", file.Name, err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("closing form: %w", err)
	}

	var doc models.Document
	if err := c.do(ctx, "process file", http.MethodPost, "/api/process-file", writer.FormDataContentType(), body, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Ask posts {question, fileId} to /api/chat and returns the answer text.
func (c *APIClient) Ask(ctx context.Context, question, fileID string) (string, error) {
	payload, err := json.Marshal(models.ChatRequest{Question: question, FileID: fileID})
	if err != nil {
		return "", fmt.Errorf("encoding question: %w", err)
	}

	var out models.ChatResponse
	if err := c.do(ctx, "chat", http.MethodPost, "/api/chat", "application/json", bytes.NewReader(payload), &out); err != nil {
		return "", err
	}
	return out.Answer, nil
}

// DeleteDocument asks the server to forget a document.
func (c *APIClient) DeleteDocument(ctx context.Context, id string) error {
	return c.do(ctx, "delete document", http.MethodDelete, "/api/documents/"+id, "", nil, nil)
}

func (c *APIClient) do(ctx context.Context, op, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: building request: %w", op, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return &StatusError{Op: op, StatusCode: resp.StatusCode}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decoding response: %w", op, err)
	}
	return nil
}
