package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/docqa/backend/internal/extract"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *echo.Echo {
	return NewServer(&Dependencies{
		Store:         newTestStore(),
		Registry:      extract.NewRegistry(),
		Answerer:      &stubAnswerer{reply: "ok"},
		AnswerTimeout: time.Second,
		Version:       "test",
	}, DefaultMiddlewareOptions())
}

func TestServer_Health(t *testing.T) {
	e := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","version":"test"}`, rec.Body.String())
}

func TestServer_CORSPreflight(t *testing.T) {
	e := newTestServer()
	req := httptest.NewRequest(http.MethodOptions, "/api/process-file", nil)
	req.Header.Set(echo.HeaderOrigin, "http://example.com")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	req.Header.Set(echo.HeaderAccessControlRequestHeaders, "content-type, apikey")
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Contains(t, strings.ToLower(rec.Header().Get(echo.HeaderAccessControlAllowHeaders)), "apikey")
}

func TestServer_ErrorPayloads(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		wantStatus  int
		wantError   string
		wantDetails string
	}{
		{
			name:        "unsupported type",
			contentType: "text/plain",
			wantStatus:  http.StatusBadRequest,
			wantError:   MsgUnsupportedType,
		},
		{
			name:        "malformed body keeps parser details out of the payload",
			contentType: "",
			wantStatus:  http.StatusInternalServerError,
			wantError:   MsgProcessFailed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestServer()

			var req *http.Request
			if tt.contentType != "" {
				body, ct := multipartBody(t, "file", "notes.txt", tt.contentType, []byte("text"))
				req = httptest.NewRequest(http.MethodPost, "/api/process-file", body)
				req.Header.Set(echo.HeaderContentType, ct)
			} else {
				req = httptest.NewRequest(http.MethodPost, "/api/process-file", strings.NewReader("garbage"))
			}
			req.Header.Set(echo.HeaderOrigin, "http://example.com")
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
			var payload map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
			assert.Equal(t, tt.wantError, payload["error"])
			assert.Equal(t, tt.wantDetails, payload["details"])
		})
	}
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus  int
		wantError   string
		wantDetails string
	}{
		{name: "api error", err: NewNotFoundError(MsgDocumentNotFound), wantStatus: http.StatusNotFound, wantError: MsgDocumentNotFound},
		{name: "client error keeps details", err: NewBadRequestError(MsgInvalidBody, errors.New("unexpected EOF")), wantStatus: http.StatusBadRequest, wantError: MsgInvalidBody, wantDetails: "unexpected EOF"},
		{name: "internal error hides details", err: NewInternalError(MsgProcessFailed, errors.New("multipart: NextPart: EOF")), wantStatus: http.StatusInternalServerError, wantError: MsgProcessFailed},
		{name: "upstream error hides details", err: NewBadGatewayError(MsgAnswerFailed, errors.New("dial tcp: refused")), wantStatus: http.StatusBadGateway, wantError: MsgAnswerFailed},
		{name: "echo error", err: echo.NewHTTPError(http.StatusRequestEntityTooLarge, "Request Entity Too Large"), wantStatus: http.StatusRequestEntityTooLarge, wantError: "Request Entity Too Large"},
		{name: "plain error", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantError: MsgUnexpectedFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(req, rec)

			ErrorHandler(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var payload map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
			assert.Equal(t, tt.wantError, payload["error"])
			assert.Equal(t, tt.wantDetails, payload["details"])
		})
	}
}
