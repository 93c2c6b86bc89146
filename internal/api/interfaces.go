// interfaces.go - Handler interface definitions for clean separation of concerns
package api

import "github.com/labstack/echo/v4"

// DocumentHandler handles upload extraction and document lookup
type DocumentHandler interface {
	HandleProcessFile(c echo.Context) error
	HandleGetDocument(c echo.Context) error
	HandleDeleteDocument(c echo.Context) error
}

// ChatHandler answers questions about a processed document
type ChatHandler interface {
	HandleChat(c echo.Context) error
	HandleChatSocket(c echo.Context) error
}

// HealthHandler handles health check operations
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}
