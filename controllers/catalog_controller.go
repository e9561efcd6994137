package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/laundry-pos-api/services"
)

// ItemRequest is the body for creating or editing an item.
// Price is taken as typed so "9,50"-style mistakes are reported as validation errors.
type ItemRequest struct {
	Name  string      `json:"name"`
	Price interface{} `json:"price"`
}

func (r ItemRequest) command() services.ItemCommand {
	return services.ItemCommand{Name: r.Name, Price: rawString(r.Price)}
}

// ListItems handles GET /api/v1/items
func (ctl *Controller) ListItems(c *gin.Context) {
	respondOK(c, http.StatusOK, ctl.app.Items())
}

// CreateItem handles POST /api/v1/items
func (ctl *Controller) CreateItem(c *gin.Context) {
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c, err)
		return
	}

	item, err := ctl.app.AddItem(req.command())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, item)
}

// UpdateItem handles PUT /api/v1/items/:id
func (ctl *Controller) UpdateItem(c *gin.Context) {
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c, err)
		return
	}

	item, err := ctl.app.EditItem(services.EditItemCommand{ID: c.Param("id"), ItemCommand: req.command()})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, item)
}

// DeleteItem handles DELETE /api/v1/items/:id
func (ctl *Controller) DeleteItem(c *gin.Context) {
	if err := ctl.app.DeleteItem(c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"id": c.Param("id")})
}
