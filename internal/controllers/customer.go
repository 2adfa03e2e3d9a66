package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"print-shop-system/internal/services"
	apperrors "print-shop-system/pkg/errors"
	"print-shop-system/pkg/utils"
)

type CustomerController struct {
	customerService services.CustomerServiceInterface
	logger          *zap.Logger
}

func NewCustomerController(customerService services.CustomerServiceInterface, logger *zap.Logger) *CustomerController {
	return &CustomerController{
		customerService: customerService,
		logger:          logger,
	}
}

const (
	defaultCustomerLimit = 50
	maxCustomerLimit     = 500
)

func (c *CustomerController) GetCustomers(ctx echo.Context) error {
	limit := uint64(defaultCustomerLimit)
	if raw := ctx.QueryParam("limit"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return utils.ErrorResponse(ctx, apperrors.NewValidationError("limit", "must be a non-negative integer"), c.logger)
		}
		if parsed > 0 {
			limit = parsed
		}
		if limit > maxCustomerLimit {
			limit = maxCustomerLimit
		}
	}

	var offset uint64
	if raw := ctx.QueryParam("offset"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return utils.ErrorResponse(ctx, apperrors.NewValidationError("offset", "must be a non-negative integer"), c.logger)
		}
		offset = parsed
	}

	res, err := c.customerService.GetCustomers(ctx.Request().Context(), limit, offset)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res.List, "customers listed", http.StatusOK, res.TotalCount)
}

func (c *CustomerController) SearchCustomers(ctx echo.Context) error {
	q := ctx.QueryParam("q")
	if q == "" {
		return utils.ErrorResponse(ctx, apperrors.NewValidationError("q", "is required"), c.logger)
	}

	res, err := c.customerService.SearchCustomers(ctx.Request().Context(), q, defaultCustomerLimit)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "customers found", http.StatusOK)
}

func (c *CustomerController) FindCustomer(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.customerService.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "customer found", http.StatusOK)
}

func (c *CustomerController) FindCustomerByCustID(ctx echo.Context) error {
	custID := ctx.Param("cust_id")
	if custID == "" {
		return utils.ErrorResponse(ctx, apperrors.NewValidationError("cust_id", "is required"), c.logger)
	}

	res, err := c.customerService.GetByCustID(ctx.Request().Context(), custID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "customer found", http.StatusOK)
}
