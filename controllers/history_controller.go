package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/laundry-pos-api/middleware"
	"github.com/kendall-kelly/laundry-pos-api/services"
	"github.com/kendall-kelly/laundry-pos-api/utils"
	"github.com/rs/zerolog/log"
)

// parseOrderID reads the :id parameter; it writes the error response itself
func parseOrderID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Order ID must be a number")
		return 0, false
	}
	return id, true
}

// ListOrders handles GET /api/v1/orders?filter=all|confirmed|pending|today|week
func (ctl *Controller) ListOrders(c *gin.Context) {
	filter, err := services.ParseHistoryFilter(c.Query("filter"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	orders, err := ctl.app.ListOrders(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, orders)
}

// GetOrder handles GET /api/v1/orders/:id
func (ctl *Controller) GetOrder(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	details, found := ctl.app.OrderDetails(id)
	if !found {
		respondServiceError(c, services.ErrOrderNotFound)
		return
	}
	respondOK(c, http.StatusOK, details)
}

// DeleteOrder handles DELETE /api/v1/orders/:id
func (ctl *Controller) DeleteOrder(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	if err := ctl.app.DeleteOrder(id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"id": id})
}

// ConfirmOrder handles POST /api/v1/orders/:id/confirm
func (ctl *Controller) ConfirmOrder(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	order, err := ctl.app.ConfirmOrder(id, middleware.StaffIDOrEmpty(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, order)
}

// RecreateOrder handles POST /api/v1/orders/:id/recreate
func (ctl *Controller) RecreateOrder(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	if _, _, err := ctl.app.RecreateOrder(id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, ctl.app.Selection())
}

// ExportOrders handles GET /api/v1/orders/export - downloads the history as orders.json
func (ctl *Controller) ExportOrders(c *gin.Context) {
	data, err := ctl.app.ExportOrders()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="orders.json"`)
	c.Data(http.StatusOK, "application/json", data)
}

// ImportOrders handles POST /api/v1/orders/import. The history file is sent
// either as the raw JSON body or as a multipart "file" field.
func (ctl *Controller) ImportOrders(c *gin.Context) {
	var data []byte

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			respondError(c, http.StatusBadRequest, "MISSING_FILE", "An orders file is required")
			return
		}
		data, err = utils.ReadImportFile(fileHeader)
		if err != nil {
			var uploadErr *utils.FileUploadError
			if errors.As(err, &uploadErr) {
				respondError(c, http.StatusBadRequest, uploadErr.Code, uploadErr.Message)
				return
			}
			respondError(c, http.StatusBadRequest, "INVALID_FILE", "Failed to read orders file")
			return
		}
	} else {
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, utils.MaxImportFileSize+1))
		if err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Failed to read request body")
			return
		}
		if len(body) > utils.MaxImportFileSize {
			respondError(c, http.StatusBadRequest, "FILE_TOO_LARGE", "Orders file exceeds the size limit")
			return
		}
		data = body
	}

	result, err := ctl.app.ImportOrders(data)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, result)
}

// BackupOrders handles POST /api/v1/orders/backup - uploads the history to S3
func (ctl *Controller) BackupOrders(c *gin.Context) {
	if ctl.backups == nil {
		respondError(c, http.StatusServiceUnavailable, "BACKUPS_DISABLED", "Order backups are not configured")
		return
	}

	data, err := ctl.app.ExportOrders()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	backup, err := ctl.backups.BackupOrders(c.Request.Context(), data)
	if err != nil {
		log.Error().Err(err).Msg("Order backup failed")
		respondError(c, http.StatusBadGateway, "BACKUP_FAILED", "Failed to upload order backup")
		return
	}

	log.Info().Str("key", backup.Key).Msg("Order history backed up")
	respondOK(c, http.StatusCreated, backup)
}
