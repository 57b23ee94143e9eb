package controller

import (
	"DonaTalkAPI/internal/helper"
	"net/http"

	"github.com/swaggo/swag"
)

// ConnectionCounter reports the number of live WebSocket connections on this instance.
type ConnectionCounter interface {
	ClientCount() int
}

type HealthController struct {
	connections ConnectionCounter
}

func NewHealthController(connections ConnectionCounter) *HealthController {
	return &HealthController{connections: connections}
}

type HealthResponse struct {
	Status      string `json:"status"`
	Connections int    `json:"connections"`
}

// Health godoc
// @Summary      Liveness
// @Tags         system
// @Produce      json
// @Success      200  {object}  controller.HealthResponse
// @Router       /health [get]
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok"}
	if c.connections != nil {
		resp.Connections = c.connections.ClientCount()
	}
	helper.WriteSuccess(w, resp)
}

// SwaggerDoc serves the registered OpenAPI document.
func (c *HealthController) SwaggerDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		helper.WriteError(w, helper.NewNotFoundError("API documentation not registered"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}
