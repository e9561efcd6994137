package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// QuantityRequest carries a quantity as typed; numbers and strings are both accepted
type QuantityRequest struct {
	Value interface{} `json:"value"`
}

// AdjustRequest is the body of POST /selection/items/:id/adjust
type AdjustRequest struct {
	Delta *int `json:"delta" binding:"required"`
}

// SelectClientRequest is the body of PUT /selection/client; an empty name selects the general client
type SelectClientRequest struct {
	Name string `json:"name"`
}

// rawString renders a loosely typed JSON value the way it would have been typed
func rawString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// GetSelection handles GET /api/v1/selection
func (ctl *Controller) GetSelection(c *gin.Context) {
	respondOK(c, http.StatusOK, ctl.app.Selection())
}

// SetQuantity handles PUT /api/v1/selection/items/:id
func (ctl *Controller) SetQuantity(c *gin.Context) {
	var req QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c, err)
		return
	}

	qty, err := ctl.app.SetQuantity(c.Param("id"), rawString(req.Value))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"item_id": c.Param("id"), "quantity": qty})
}

// AdjustQuantity handles POST /api/v1/selection/items/:id/adjust
func (ctl *Controller) AdjustQuantity(c *gin.Context) {
	var req AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c, err)
		return
	}

	qty, err := ctl.app.AdjustQuantity(c.Param("id"), *req.Delta)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"item_id": c.Param("id"), "quantity": qty})
}

// ResetSelection handles POST /api/v1/selection/reset
func (ctl *Controller) ResetSelection(c *gin.Context) {
	if err := ctl.app.ResetQuantities(); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, ctl.app.Selection())
}

// SelectClient handles PUT /api/v1/selection/client
func (ctl *Controller) SelectClient(c *gin.Context) {
	var req SelectClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalidBody(c, err)
		return
	}

	if err := ctl.app.SelectClient(req.Name); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, ctl.app.Selection())
}
