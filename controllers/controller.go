package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/laundry-pos-api/services"
	"github.com/rs/zerolog/log"
)

// Controller serves the POS operations over HTTP
type Controller struct {
	app     *services.App
	backups services.BackupService // nil when backups are not configured
}

// NewController creates the HTTP handlers for app. backups may be nil.
func NewController(app *services.App, backups services.BackupService) *Controller {
	return &Controller{app: app, backups: backups}
}

func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// respondServiceError maps a service error onto a status code and error code
func respondServiceError(c *gin.Context, err error) {
	var (
		validationErr *services.ValidationError
		pricingErr    *services.PricingError
		transportErr  *services.TransportError
		importErr     *services.ImportFormatError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    validationErr.Code,
				"message": validationErr.Message,
				"field":   validationErr.Field,
			},
		})
	case errors.Is(err, services.ErrItemNotFound):
		respondError(c, http.StatusNotFound, "ITEM_NOT_FOUND", "Item not found")
	case errors.Is(err, services.ErrClientNotFound):
		respondError(c, http.StatusNotFound, "CLIENT_NOT_FOUND", "Client not found")
	case errors.Is(err, services.ErrOrderNotFound):
		respondError(c, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found")
	case errors.Is(err, services.ErrSubmissionInFlight):
		respondError(c, http.StatusConflict, "SUBMISSION_IN_FLIGHT", err.Error())
	case errors.Is(err, services.ErrSelectionChanged):
		respondError(c, http.StatusConflict, "SELECTION_CHANGED", err.Error())
	case errors.Is(err, services.ErrNoDraft):
		respondError(c, http.StatusConflict, "NO_DRAFT", err.Error())
	case errors.As(err, &pricingErr):
		respondError(c, http.StatusBadGateway, pricingErr.Code, pricingErr.Message)
	case errors.As(err, &transportErr):
		respondError(c, http.StatusBadGateway, transportErr.Code, transportErr.Message)
	case errors.As(err, &importErr):
		respondError(c, http.StatusBadRequest, importErr.Code, importErr.Message)
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Request failed")
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to save changes")
	}
}

func respondInvalidBody(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "VALIDATION_ERROR",
			"message": "Invalid request data",
			"details": err.Error(),
		},
	})
}
