package api

import (
	"client-service/internal/metrics"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// NewRouter wires middleware and every route. m may be nil, in which case
// requests are not measured and /metrics is not served.
func NewRouter(userHandler *UserHandler, clientHandler *ClientHandler, m *metrics.Metrics) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(RequestLogger())
	if m != nil {
		// Outside Recover so a recovered panic is counted as a 500.
		e.Use(m.Middleware())
		e.GET("/metrics", m.Handler())
	}
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Auth
	e.POST("/register", userHandler.Register)
	e.POST("/login", userHandler.Login)
	e.POST("/change-password", userHandler.ChangePassword)

	// Clients, parts, properties
	e.GET("/clients", clientHandler.GetClients)
	e.POST("/clients", clientHandler.CreateClient)
	e.GET("/clients/:clientId/parts", clientHandler.GetClientParts)
	e.PUT("/clients/:clientId/parts/:partId", clientHandler.UpdateClient)
	e.DELETE("/clients/:clientId", clientHandler.DeleteClient)
	e.GET("/parts", clientHandler.GetParts)
	e.GET("/parts/:partId/properties", clientHandler.GetPartProperties)
	e.GET("/part_properties", clientHandler.GetProperties)

	e.GET("/health", clientHandler.Health)

	return e
}
