package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"worklink/internal/errors"
	"worklink/internal/service"
)

// BidHandler handles bid endpoints.
type BidHandler struct {
	bidService service.BidService
}

// NewBidHandler creates a new bid handler.
func NewBidHandler(bidService service.BidService) *BidHandler {
	return &BidHandler{bidService: bidService}
}

// BidRequest represents a bid submission request.
type BidRequest struct {
	Message       string `json:"message,omitempty"`
	PriceProposal string `json:"price_proposal,omitempty"`
}

// SubmitBid godoc
// @Summary Submit a bid on an order (executors only, one per order)
// @Tags bids
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body BidRequest true "Bid data"
// @Success 201 {object} model.Bid
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /orders/{id}/bids [post]
func (h *BidHandler) SubmitBid(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	orderID, httpErr := orderIDParam(c)
	if httpErr != nil {
		return httpErr
	}

	var req BidRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	input := service.BidInput{Message: req.Message}
	if req.PriceProposal != "" {
		price, err := decimal.NewFromString(req.PriceProposal)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid price proposal",
				Code:  "INVALID_AMOUNT",
			})
		}
		input.PriceProposal = decimal.NullDecimal{Decimal: price, Valid: true}
	}

	bid, svcErr := h.bidService.Submit(c.Request().Context(), caller, orderID, input)
	if svcErr != nil {
		return domainError(svcErr)
	}
	return c.JSON(http.StatusCreated, bid)
}

// ListBids godoc
// @Summary List an order's bids
// @Tags bids
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {array} model.Bid
// @Failure 400 {object} errors.ErrorResponse
// @Router /orders/{id}/bids [get]
func (h *BidHandler) ListBids(c echo.Context) error {
	orderID, httpErr := orderIDParam(c)
	if httpErr != nil {
		return httpErr
	}
	bids, err := h.bidService.ListByOrder(c.Request().Context(), orderID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, bids)
}
