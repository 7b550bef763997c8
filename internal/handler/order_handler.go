package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"worklink/internal/errors"
	"worklink/internal/model"
	"worklink/internal/service"
)

// OrderHandler handles order listing and workflow endpoints.
type OrderHandler struct {
	orderService service.OrderService
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// OrderRequest represents the customer-editable order fields, shared by
// creation and editing.
type OrderRequest struct {
	Title       string     `json:"title" validate:"required,max=255"`
	Description string     `json:"description" validate:"required"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Budget      string     `json:"budget,omitempty"`
}

// AssignExecutorRequest represents an executor assignment request.
type AssignExecutorRequest struct {
	ExecutorID uint `json:"executor_id" validate:"required"`
}

// ChangeStatusRequest represents a status change request.
type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open in_progress completed cancelled"`
}

func (r OrderRequest) toInput() (service.OrderInput, *echo.HTTPError) {
	input := service.OrderInput{
		Title:       r.Title,
		Description: r.Description,
		Deadline:    r.Deadline,
	}
	if r.Budget != "" {
		budget, err := decimal.NewFromString(r.Budget)
		if err != nil {
			return service.OrderInput{}, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "invalid budget",
				Code:  "INVALID_AMOUNT",
			})
		}
		input.Budget = decimal.NullDecimal{Decimal: budget, Valid: true}
	}
	return input, nil
}

func orderIDParam(c echo.Context) (uuid.UUID, *echo.HTTPError) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid order id",
			Code:  "INVALID_UUID",
		})
	}
	return id, nil
}

func domainError(err error) *echo.HTTPError {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// ListOpen godoc
// @Summary List orders open for bidding
// @Tags orders
// @Produce json
// @Success 200 {array} model.Order
// @Router /orders [get]
func (h *OrderHandler) ListOpen(c echo.Context) error {
	orders, err := h.orderService.ListOpen(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, orders)
}

// ListExecutors godoc
// @Summary List users with the executor role
// @Tags orders
// @Produce json
// @Success 200 {array} model.User
// @Router /executors [get]
func (h *OrderHandler) ListExecutors(c echo.Context) error {
	executors, err := h.orderService.ListExecutors(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, executors)
}

// MyOrders godoc
// @Summary List the calling customer's orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Order
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /me/orders [get]
func (h *OrderHandler) MyOrders(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	orders, svcErr := h.orderService.ListByCustomer(c.Request().Context(), caller)
	if svcErr != nil {
		return domainError(svcErr)
	}
	return c.JSON(http.StatusOK, orders)
}

// MyAssignments godoc
// @Summary List orders assigned to the calling executor
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Order
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /me/assignments [get]
func (h *OrderHandler) MyAssignments(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	orders, svcErr := h.orderService.ListAssigned(c.Request().Context(), caller)
	if svcErr != nil {
		return domainError(svcErr)
	}
	return c.JSON(http.StatusOK, orders)
}

// GetOrder godoc
// @Summary Get one order with bids and allowed status transitions
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} service.OrderDetail
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c echo.Context) error {
	orderID, httpErr := orderIDParam(c)
	if httpErr != nil {
		return httpErr
	}
	detail, err := h.orderService.Detail(c.Request().Context(), orderID)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, detail)
}

// CreateOrder godoc
// @Summary Create an order (customers only)
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body OrderRequest true "Order data"
// @Success 201 {object} model.Order
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	var req OrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}
	input, httpErr := req.toInput()
	if httpErr != nil {
		return httpErr
	}

	order, svcErr := h.orderService.Create(c.Request().Context(), caller, input)
	if svcErr != nil {
		return domainError(svcErr)
	}
	return c.JSON(http.StatusCreated, order)
}

// UpdateOrder godoc
// @Summary Edit an order (owner only)
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body OrderRequest true "Order data"
// @Success 200 {object} model.Order
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /orders/{id} [put]
func (h *OrderHandler) UpdateOrder(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	orderID, httpErr := orderIDParam(c)
	if httpErr != nil {
		return httpErr
	}

	var req OrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}
	input, httpErr := req.toInput()
	if httpErr != nil {
		return httpErr
	}

	order, svcErr := h.orderService.Update(c.Request().Context(), caller, orderID, input)
	if svcErr != nil {
		return domainError(svcErr)
	}
	return c.JSON(http.StatusOK, order)
}

// AssignExecutor godoc
// @Summary Assign a bidding executor to an order (owner only)
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body AssignExecutorRequest true "Assignment data"
// @Success 200 {object} model.Order
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /orders/{id}/assign [post]
func (h *OrderHandler) AssignExecutor(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	orderID, httpErr := orderIDParam(c)
	if httpErr != nil {
		return httpErr
	}

	var req AssignExecutorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	order, svcErr := h.orderService.AssignExecutor(c.Request().Context(), caller, orderID, req.ExecutorID)
	if svcErr != nil {
		return domainError(svcErr)
	}
	return c.JSON(http.StatusOK, order)
}

// UnassignExecutor godoc
// @Summary Release the assigned executor and reopen the order (owner only)
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} model.Order
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /orders/{id}/unassign [post]
func (h *OrderHandler) UnassignExecutor(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	orderID, httpErr := orderIDParam(c)
	if httpErr != nil {
		return httpErr
	}

	order, svcErr := h.orderService.UnassignExecutor(c.Request().Context(), caller, orderID)
	if svcErr != nil {
		return domainError(svcErr)
	}
	return c.JSON(http.StatusOK, order)
}

// ChangeStatus godoc
// @Summary Move an order along the status transition table (owner only)
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body ChangeStatusRequest true "Target status"
// @Success 200 {object} model.Order
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /orders/{id}/status [post]
func (h *OrderHandler) ChangeStatus(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}
	orderID, httpErr := orderIDParam(c)
	if httpErr != nil {
		return httpErr
	}

	var req ChangeStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	order, svcErr := h.orderService.ChangeStatus(c.Request().Context(), caller, orderID, model.OrderStatus(req.Status))
	if svcErr != nil {
		return domainError(svcErr)
	}
	return c.JSON(http.StatusOK, order)
}
