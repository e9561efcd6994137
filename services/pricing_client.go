package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/kendall-kelly/laundry-pos-api/config"
	"github.com/kendall-kelly/laundry-pos-api/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// PricingService prices a selection of pieces, choosing the cheapest mix of packs
type PricingService interface {
	Optimize(ctx context.Context, selection models.QuantitySelection, clientName string) (*models.PricingResult, error)
}

// optimizeRequest is the body sent to the pricing service
type optimizeRequest struct {
	Items  models.QuantitySelection `json:"items"`
	Client string                   `json:"cliente"`
}

// optimizeResponse covers both the success and the error envelope of the pricing service
type optimizeResponse struct {
	Status     string                `json:"status"`
	Message    string                `json:"mensagem"`
	TotalCost  *decimal.Decimal      `json:"custo_total"`
	ReceiptURL string                `json:"pdf_url"`
	Details    models.PricingDetails `json:"detalhes"`
}

// PricingClient calls the external optimizer over HTTP
type PricingClient struct {
	endpoint   string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewPricingClient creates a pricing client for the configured endpoint.
// Without PRICING_TIMEOUT the transport default applies.
func NewPricingClient(cfg *config.Config) *PricingClient {
	return &PricingClient{
		endpoint: cfg.PricingAPIURL,
		httpClient: &http.Client{
			Timeout: cfg.PricingTimeout,
		},
		logger: log.With().Str("component", "pricing").Logger(),
	}
}

// Optimize sends one pricing request. There are no retries.
func (c *PricingClient) Optimize(ctx context.Context, selection models.QuantitySelection, clientName string) (*models.PricingResult, error) {
	body, err := json.Marshal(optimizeRequest{Items: selection, Client: clientName})
	if err != nil {
		return nil, fmt.Errorf("failed to encode pricing request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Int("pieces", selection.Total()).Str("client", clientName).Msg("Requesting pricing")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Pricing service unreachable")
		return nil, &TransportError{
			Code:    "PRICING_UNAVAILABLE",
			Message: "failed to communicate with pricing service",
			Err:     err,
		}
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn().Err(closeErr).Msg("Failed to close pricing response body")
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{
			Code:    "PRICING_UNAVAILABLE",
			Message: "failed to read pricing response",
			Err:     err,
		}
	}

	var decoded optimizeResponse
	decodeErr := json.Unmarshal(raw, &decoded)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := decoded.Message
		if decodeErr != nil || message == "" {
			message = fmt.Sprintf("pricing service returned status %d", resp.StatusCode)
		}
		c.logger.Warn().Int("status", resp.StatusCode).Str("message", message).Msg("Pricing request rejected")
		return nil, &PricingError{Code: "PRICING_ERROR", StatusCode: resp.StatusCode, Message: message}
	}

	if decodeErr != nil {
		return nil, &PricingError{
			Code:       "PRICING_ERROR",
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("invalid pricing response: %v", decodeErr),
		}
	}

	// The optimizer wraps its own failures in a 200 with status "erro"
	if decoded.Status == "erro" || decoded.TotalCost == nil {
		message := decoded.Message
		if message == "" {
			message = "pricing response is missing custo_total"
		}
		return nil, &PricingError{Code: "PRICING_ERROR", StatusCode: resp.StatusCode, Message: message}
	}

	c.logger.Info().Str("total", decoded.TotalCost.StringFixed(2)).Msg("Pricing received")

	return &models.PricingResult{
		TotalCost:  *decoded.TotalCost,
		ReceiptURL: decoded.ReceiptURL,
		Details:    decoded.Details,
	}, nil
}
