package api

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/docqa/backend/internal/models"
	"github.com/docqa/backend/internal/storage"
	"github.com/labstack/echo/v4"
)

type stubAnswerer struct {
	reply    string
	err      error
	question string
	docID    string
}

func (s *stubAnswerer) Name() string { return "stub" }

func (s *stubAnswerer) Answer(_ context.Context, doc *models.Document, question string) (string, error) {
	s.question = question
	s.docID = doc.ID
	return s.reply, s.err
}

func newTestStore() *storage.MemoryStore {
	return storage.NewMemoryStore(16, time.Minute)
}

// multipartBody builds a form with a single file part.
func multipartBody(t *testing.T, field, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, err := writer.CreatePart(h)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	part.Write(data)
	writer.Close()
	return body, writer.FormDataContentType()
}

func newProcessRequest(t *testing.T, filename, contentType string, data []byte) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	body, ct := multipartBody(t, "file", filename, contentType, data)
	req := httptest.NewRequest(http.MethodPost, "/api/process-file", body)
	req.Header.Set(echo.HeaderContentType, ct)
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}
