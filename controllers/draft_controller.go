package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/laundry-pos-api/middleware"
)

// SubmitDraft handles POST /api/v1/draft - prices the current selection
func (ctl *Controller) SubmitDraft(c *gin.Context) {
	quote, err := ctl.app.Submit(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, quote)
}

// GetDraft handles GET /api/v1/draft
func (ctl *Controller) GetDraft(c *gin.Context) {
	quote, ok := ctl.app.CurrentQuote()
	if !ok {
		respondError(c, http.StatusNotFound, "NO_DRAFT", "No priced order awaiting confirmation")
		return
	}
	respondOK(c, http.StatusOK, quote)
}

// ConfirmDraft handles POST /api/v1/draft/confirm
func (ctl *Controller) ConfirmDraft(c *gin.Context) {
	order, err := ctl.app.Confirm(middleware.StaffIDOrEmpty(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, order)
}

// HoldDraft handles POST /api/v1/draft/hold - keeps the order as pending
func (ctl *Controller) HoldDraft(c *gin.Context) {
	order, err := ctl.app.Hold()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, order)
}

// CancelDraft handles DELETE /api/v1/draft
func (ctl *Controller) CancelDraft(c *gin.Context) {
	if err := ctl.app.Cancel(); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, ctl.app.Selection())
}
