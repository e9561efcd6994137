package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/laundry-pos-api/services"
)

// ClientRequest is the body for creating or editing a client
type ClientRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email" binding:"omitempty,email"`
}

func (r ClientRequest) command() services.ClientCommand {
	return services.ClientCommand{Name: r.Name, Phone: r.Phone, Email: r.Email}
}

// ListClients handles GET /api/v1/clients
func (ctl *Controller) ListClients(c *gin.Context) {
	respondOK(c, http.StatusOK, ctl.app.Clients())
}

// CreateClient handles POST /api/v1/clients
func (ctl *Controller) CreateClient(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c, err)
		return
	}

	client, err := ctl.app.AddClient(req.command())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, client)
}

// UpdateClient handles PUT /api/v1/clients/:id
func (ctl *Controller) UpdateClient(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c, err)
		return
	}

	client, err := ctl.app.EditClient(services.EditClientCommand{ID: c.Param("id"), ClientCommand: req.command()})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, client)
}

// DeleteClient handles DELETE /api/v1/clients/:id
func (ctl *Controller) DeleteClient(c *gin.Context) {
	if err := ctl.app.DeleteClient(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"id": c.Param("id")})
}
