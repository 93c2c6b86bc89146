package web

import (
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasEmbeddedFiles(t *testing.T) {
	assert.True(t, HasEmbeddedFiles())
}

func TestRegisterStaticRoutes(t *testing.T) {
	e := echo.New()
	e.GET("/api/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	require.NoError(t, RegisterStaticRoutes(e))

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"root serves index", "/", http.StatusOK, "Document Q&amp;A"},
		{"index by name", "/index.html", http.StatusOK, "/api/process-file"},
		{"unknown path falls back to index", "/documents/abc", http.StatusOK, "Document Q&amp;A"},
		{"api routes still win", "/api/health", http.StatusOK, "ok"},
		{"unknown api path is not the app shell", "/api/nope", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestIndexHTML_UploadControls(t *testing.T) {
	staticFS, err := GetFileSystem()
	require.NoError(t, err)
	content, err := fs.ReadFile(staticFS, "index.html")
	require.NoError(t, err)
	page := string(content)

	tests := []struct {
		name string
		want string
	}{
		{"picker disabled while uploading", `$("file").disabled = uploading;`},
		{"uploads gated on busy flag", `if (uploading || doc) return;`},
		{"busy flag cleared after upload", "uploading = false;"},
		{"drop target", `zone.addEventListener("drop"`},
		{"single file drops only", "files.length !== 1"},
		{"drop shares the picker path", "uploadFile(files[0]);"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, page, tt.want)
		})
	}
}
