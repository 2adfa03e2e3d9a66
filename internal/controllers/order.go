package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"print-shop-system/internal/dto"
	"print-shop-system/internal/grid"
	"print-shop-system/internal/services"
	apperrors "print-shop-system/pkg/errors"
	"print-shop-system/pkg/utils"
)

type OrderController struct {
	orderService services.OrderServiceInterface
	logger       *zap.Logger
}

func NewOrderController(orderService services.OrderServiceInterface, logger *zap.Logger) *OrderController {
	return &OrderController{
		orderService: orderService,
		logger:       logger,
	}
}

// GetData serves the grid. The response body is exactly
// {"data": [...], "total": N} with no wrapping envelope, that shape is what
// the table frontend consumes.
func (c *OrderController) GetData(ctx echo.Context) error {
	params, err := grid.ParseParams(ctx.Request().URL.Query())
	if err != nil {
		return c.gridError(ctx, err)
	}

	res, err := c.orderService.GetGrid(ctx.Request().Context(), params)
	if err != nil {
		return c.gridError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, res)
}

// UpdateData applies one inline cell edit and returns the fresh row.
func (c *OrderController) UpdateData(ctx echo.Context) error {
	var body map[string]interface{}
	if err := ctx.Bind(&body); err != nil {
		return c.gridError(ctx, apperrors.NewValidationError("body", "invalid JSON body"))
	}

	upd, err := grid.ParseCellUpdate(body)
	if err != nil {
		return c.gridError(ctx, err)
	}

	row, err := c.orderService.UpdateCell(ctx.Request().Context(), upd)
	if err != nil {
		return c.gridError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, row)
}

// gridError answers grid endpoints with a bare {"field","reason"} object so
// the table can attach the message to the offending cell.
func (c *OrderController) gridError(ctx echo.Context, err error) error {
	var ve *apperrors.ValidationError
	if errors.As(err, &ve) {
		return ctx.JSON(http.StatusBadRequest, ve)
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return ctx.JSON(http.StatusNotFound, &apperrors.ValidationError{Field: "id", Reason: "record not found"})
	}
	if errors.Is(err, apperrors.ErrConflict) {
		return ctx.JSON(http.StatusConflict, &apperrors.ValidationError{Field: "log", Reason: "log already exists"})
	}
	c.logger.Error("grid request failed", zap.Error(err))
	return ctx.JSON(http.StatusInternalServerError, &apperrors.ValidationError{Field: "", Reason: "internal server error"})
}

// GetOrders is the page/per_page flavor of the listing, wrapped in the
// standard envelope. Search and sort work the same as on /api/data.
func (c *OrderController) GetOrders(ctx echo.Context) error {
	query := ctx.Request().URL.Query()

	page := uint64(1)
	if raw := query.Get("page"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || parsed == 0 {
			return utils.ErrorResponse(ctx, apperrors.NewValidationError("page", "must be a positive integer"), c.logger)
		}
		page = parsed
	}
	if raw := query.Get("per_page"); raw != "" {
		query.Set("length", raw)
	}
	query.Del("start")

	params, err := grid.ParseParams(query)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	params.Start = (page - 1) * params.Length

	res, err := c.orderService.GetGrid(ctx.Request().Context(), params)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res.Data, "orders listed", http.StatusOK, res.Total)
}

func (c *OrderController) CreateOrder(ctx echo.Context) error {
	var payload dto.CreateOrderDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewValidationError("body", "invalid JSON body"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.orderService.CreateOrder(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "order created", http.StatusCreated)
}

func (c *OrderController) FindOrder(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.orderService.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "order found", http.StatusOK)
}

func (c *OrderController) FindOrderByLog(ctx echo.Context) error {
	log := ctx.Param("log")
	if log == "" {
		return utils.ErrorResponse(ctx, apperrors.NewValidationError("log", "is required"), c.logger)
	}

	res, err := c.orderService.GetByLog(ctx.Request().Context(), log)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "order found", http.StatusOK)
}

func (c *OrderController) UpdateOrder(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateOrderDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewValidationError("body", "invalid JSON body"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.orderService.UpdateOrder(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "order updated", http.StatusOK)
}

func (c *OrderController) DeleteOrder(ctx echo.Context) error {
	id, err := parseID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.orderService.DeleteOrder(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "order deleted", http.StatusOK)
}

// GetDueouts lists open jobs due for production, optionally limited to a
// date range (start_date / end_date, inclusive).
func (c *OrderController) GetDueouts(ctx echo.Context) error {
	start, err := parseDateQuery(ctx, "start_date")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	end, err := parseDateQuery(ctx, "end_date")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if start != nil && end != nil && end.Before(*start) {
		return utils.ErrorResponse(ctx, apperrors.NewValidationError("end_date", "cannot be before start_date"), c.logger)
	}

	res, err := c.orderService.GetDueouts(ctx.Request().Context(), start, end)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, res, "dueouts listed", http.StatusOK)
}

var exportHeaders = []string{
	"ID", "Log", "Art Log", "Cust", "Customer", "Title", "Prior",
	"Date In", "Due Out", "Color F", "Print N", "Log Type", "Rush", "Date Out",
}

func exportRow(row dto.OrderRowDTO) []interface{} {
	str := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}
	return []interface{}{
		row.ID, row.Log, row.Artlo.String, row.Cust.String, row.CustomerName.String,
		row.Title.String, row.Prior.String, str(row.Datin), str(row.Dueout),
		row.Colorf.Float64, row.PrintN.Float64, row.Logtype.String, row.Rush.Bool, str(row.Datout),
	}
}

// ExportData streams the filtered grid as an xlsx workbook.
func (c *OrderController) ExportData(ctx echo.Context) error {
	params, err := grid.ParseParams(ctx.Request().URL.Query())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	rows, err := c.orderService.ExportGrid(ctx.Request().Context(), params)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	f := excelize.NewFile()
	sheet := "Orders"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &exportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "N1", style)

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := exportRow(row)
		f.SetSheetRow(sheet, cell, &values)
	}
	f.SetColWidth(sheet, "E", "F", 30)

	fileName := fmt.Sprintf("orders_%s.xlsx", time.Now().Format(grid.DateLayout))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}

func parseID(ctx echo.Context) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("id", "must be a positive integer")
	}
	return id, nil
}

func parseDateQuery(ctx echo.Context, name string) (*time.Time, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(grid.DateLayout, raw)
	if err != nil {
		return nil, apperrors.NewValidationError(name, "must match the %s format", grid.DateLayout)
	}
	return &t, nil
}
