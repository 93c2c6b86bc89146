// routes.go - Route and middleware registration
package api

import (
	"net/http"
	"time"

	"github.com/docqa/backend/internal/answer"
	"github.com/docqa/backend/internal/extract"
	"github.com/docqa/backend/internal/storage"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Dependencies holds all handler dependencies
type Dependencies struct {
	Store         storage.Store
	Registry      *extract.Registry
	Answerer      answer.Answerer
	AnswerTimeout time.Duration
	Version       string
}

// Handlers holds all handler instances
type Handlers struct {
	Health   HealthHandler
	Document DocumentHandler
	Chat     ChatHandler
}

// MiddlewareOptions configures the shared middleware stack
type MiddlewareOptions struct {
	EnableCORS           bool
	AllowOrigins         []string
	BodyLimit            string
	EnableRequestLogging bool
	EnableCompression    bool
	CompressionLevel     int
}

// DefaultMiddlewareOptions allows every origin and logs nothing
func DefaultMiddlewareOptions() MiddlewareOptions {
	return MiddlewareOptions{
		EnableCORS:   true,
		AllowOrigins: []string{"*"},
		BodyLimit:    "25M",
	}
}

// NewHandlers creates all handler instances
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(deps.Version),
		Document: NewDocumentHandler(deps.Store, deps.Registry),
		Chat:     NewChatHandler(deps.Store, deps.Answerer, deps.AnswerTimeout),
	}
}

// RegisterRoutes registers all API routes with the Echo instance
func RegisterRoutes(e *echo.Echo, handlers *Handlers) {
	apiGroup := e.Group("/api")

	apiGroup.GET("/health", handlers.Health.HandleHealth)

	apiGroup.POST("/process-file", handlers.Document.HandleProcessFile)
	apiGroup.GET("/documents/:id", handlers.Document.HandleGetDocument)
	apiGroup.DELETE("/documents/:id", handlers.Document.HandleDeleteDocument)

	apiGroup.POST("/chat", handlers.Chat.HandleChat)
	apiGroup.GET("/ws/chat", handlers.Chat.HandleChatSocket)
}

// SetupMiddleware configures error handling, logging, recovery, limits and CORS
func SetupMiddleware(e *echo.Echo, opts MiddlewareOptions) {
	e.HTTPErrorHandler = ErrorHandler

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			return !opts.EnableRequestLogging || c.Request().URL.Path == "/api/health"
		},
	}))

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 1024 * 4,
	}))

	if opts.EnableCompression {
		e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
			Level: opts.CompressionLevel,
			Skipper: func(c echo.Context) bool {
				return c.IsWebSocket()
			},
		}))
	}

	if opts.BodyLimit != "" {
		e.Use(middleware.BodyLimit(opts.BodyLimit))
	}

	if opts.EnableCORS {
		origins := opts.AllowOrigins
		if len(origins) == 0 {
			origins = []string{"*"}
		}
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: origins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderAuthorization, "x-client-info", "apikey", echo.HeaderContentType, echo.HeaderAccept},
		}))
	}
}

// NewServer builds an Echo instance with middleware and API routes registered
func NewServer(deps *Dependencies, opts MiddlewareOptions) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	SetupMiddleware(e, opts)
	RegisterRoutes(e, NewHandlers(deps))

	return e
}
