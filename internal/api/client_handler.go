package api

import (
	"client-service/internal/entity"
	"client-service/internal/repository"
	"client-service/internal/service"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// HeaderIdempotentKey lets a caller make POST /clients safe to retry.
const HeaderIdempotentKey = "Idempotent-Key"

type ClientHandler struct {
	clientService *service.ClientService
}

// NewClientHandler creates a new instance of ClientHandler
func NewClientHandler(clientService *service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// GetClients lists all clients --> /clients
func (h *ClientHandler) GetClients(c echo.Context) error {
	clients, err := h.clientService.GetClients(c.Request().Context())
	if err != nil {
		return internalError(c)
	}
	return c.JSON(http.StatusOK, clients)
}

// GetClientParts lists the parts of one client --> /clients/:clientId/parts
func (h *ClientHandler) GetClientParts(c echo.Context) error {
	clientID, err := strconv.ParseInt(c.Param("clientId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid client ID"})
	}

	parts, err := h.clientService.GetPartsByClientID(c.Request().Context(), clientID)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(http.StatusOK, parts)
}

// GetPartProperties lists the properties of one part --> /parts/:partId/properties
func (h *ClientHandler) GetPartProperties(c echo.Context) error {
	partID, err := strconv.ParseInt(c.Param("partId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid part ID"})
	}

	properties, err := h.clientService.GetPropertiesByPartID(c.Request().Context(), partID)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(http.StatusOK, properties)
}

// GetParts lists all parts --> /parts
func (h *ClientHandler) GetParts(c echo.Context) error {
	parts, err := h.clientService.GetParts(c.Request().Context())
	if err != nil {
		return internalError(c)
	}
	return c.JSON(http.StatusOK, parts)
}

// GetProperties lists all part properties --> /part_properties
func (h *ClientHandler) GetProperties(c echo.Context) error {
	properties, err := h.clientService.GetProperties(c.Request().Context())
	if err != nil {
		return internalError(c)
	}
	return c.JSON(http.StatusOK, properties)
}

// CreateClient adds a client with one part and one property --> POST /clients
func (h *ClientHandler) CreateClient(c echo.Context) error {
	payload := entity.ClientPayload{}
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request payload"})
	}

	key := c.Request().Header.Get(HeaderIdempotentKey)
	if _, err := h.clientService.CreateClient(c.Request().Context(), key, &payload); err != nil {
		if errors.Is(err, service.ErrDuplicateRequest) {
			return c.JSON(http.StatusConflict, map[string]string{"message": "Duplicate request"})
		}
		return stepError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Data inserted successfully"})
}

// UpdateClient rewrites a client, one of its parts and that part's properties
// --> PUT /clients/:clientId/parts/:partId
func (h *ClientHandler) UpdateClient(c echo.Context) error {
	clientID, err := strconv.ParseInt(c.Param("clientId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid client ID"})
	}
	partID, err := strconv.ParseInt(c.Param("partId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid part ID"})
	}

	payload := entity.ClientPayload{}
	if err := c.Bind(&payload); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request payload"})
	}

	if err := h.clientService.UpdateClient(c.Request().Context(), clientID, partID, &payload); err != nil {
		// This endpoint reports the database's own message.
		var opErr *repository.OpError
		if errors.As(err, &opErr) {
			err = opErr.Err
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Data updated successfully"})
}

// DeleteClient removes a client with its parts and their properties --> DELETE /clients/:clientId
func (h *ClientHandler) DeleteClient(c echo.Context) error {
	clientID, err := strconv.ParseInt(c.Param("clientId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid client ID"})
	}

	if err := h.clientService.DeleteClient(c.Request().Context(), clientID); err != nil {
		return stepError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Client deleted successfully"})
}

// Health reports whether the database answers --> /health
func (h *ClientHandler) Health(c echo.Context) error {
	status, code := "ok", http.StatusOK
	if err := h.clientService.Ping(c.Request().Context()); err != nil {
		status, code = "unavailable", http.StatusServiceUnavailable
	}

	return c.JSON(code, map[string]interface{}{
		"status":  status,
		"service": "client-service",
		"time":    time.Now().Format(time.RFC3339),
	})
}

func internalError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Internal Server Error"})
}

// stepError answers 500 naming the statement that failed, e.g. "Error inserting part".
func stepError(c echo.Context, err error) error {
	var opErr *repository.OpError
	if errors.As(err, &opErr) {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Error " + opErr.Op})
	}
	return internalError(c)
}
