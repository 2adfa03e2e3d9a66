package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"print-shop-system/internal/dto"
	"print-shop-system/internal/grid"
	apperrors "print-shop-system/pkg/errors"
)

type stubOrderService struct {
	gridRes    *dto.GridResponseDTO
	gridParams grid.Params
	cellRes    *dto.OrderRowDTO
	cellUpd    grid.CellUpdate
	err        error
}

func (s *stubOrderService) GetGrid(_ context.Context, params grid.Params) (*dto.GridResponseDTO, error) {
	s.gridParams = params
	return s.gridRes, s.err
}

func (s *stubOrderService) UpdateCell(_ context.Context, upd grid.CellUpdate) (*dto.OrderRowDTO, error) {
	s.cellUpd = upd
	return s.cellRes, s.err
}

func (s *stubOrderService) CreateOrder(context.Context, dto.CreateOrderDTO) (*dto.OrderRowDTO, error) {
	return s.cellRes, s.err
}

func (s *stubOrderService) GetByID(context.Context, int64) (*dto.OrderRowDTO, error) {
	return s.cellRes, s.err
}

func (s *stubOrderService) GetByLog(context.Context, string) (*dto.OrderRowDTO, error) {
	return s.cellRes, s.err
}

func (s *stubOrderService) UpdateOrder(context.Context, int64, dto.UpdateOrderDTO) (*dto.OrderRowDTO, error) {
	return s.cellRes, s.err
}

func (s *stubOrderService) DeleteOrder(context.Context, int64) error { return s.err }

func (s *stubOrderService) GetDueouts(context.Context, *time.Time, *time.Time) ([]dto.OrderRowDTO, error) {
	return nil, s.err
}

func (s *stubOrderService) ExportGrid(_ context.Context, params grid.Params) ([]dto.OrderRowDTO, error) {
	s.gridParams = params
	return nil, s.err
}

func newGridRequest(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestGetData_EnvelopeShape(t *testing.T) {
	svc := &stubOrderService{
		gridRes: &dto.GridResponseDTO{
			Data:  []dto.OrderRowDTO{{ID: 1, Log: "TR1001"}},
			Total: 42,
		},
	}
	ctrl := NewOrderController(svc, zap.NewNop())

	ctx, rec := newGridRequest(t, http.MethodGet, "/api/data?search=acme&sort=-dueout&start=20&length=20", "")
	require.NoError(t, ctrl.GetData(ctx))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body, "data")
	require.Contains(t, body, "total")
	assert.Len(t, body, 2, "grid response carries only data and total")
	assert.Equal(t, "42", string(body["total"]))

	assert.Equal(t, "acme", svc.gridParams.Search)
	assert.Equal(t, uint64(20), svc.gridParams.Start)
}

func TestGetData_UnknownSortRejected(t *testing.T) {
	ctrl := NewOrderController(&stubOrderService{}, zap.NewNop())

	ctx, rec := newGridRequest(t, http.MethodGet, "/api/data?sort=-password", "")
	require.NoError(t, ctrl.GetData(ctx))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var ve apperrors.ValidationError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ve))
	assert.Equal(t, "sort", ve.Field)
	assert.Contains(t, ve.Reason, "password")
}

func TestUpdateData_ReturnsFreshRow(t *testing.T) {
	svc := &stubOrderService{cellRes: &dto.OrderRowDTO{ID: 7, Log: "TR1001"}}
	ctrl := NewOrderController(svc, zap.NewNop())

	ctx, rec := newGridRequest(t, http.MethodPost, "/api/data", `{"id": 7, "rush": true}`)
	require.NoError(t, ctrl.UpdateData(ctx))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), svc.cellUpd.ID)
	assert.Equal(t, "rush", svc.cellUpd.Field)

	var row dto.OrderRowDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &row))
	assert.Equal(t, int64(7), row.ID)
}

func TestUpdateData_ValidationErrorShape(t *testing.T) {
	ctrl := NewOrderController(&stubOrderService{}, zap.NewNop())

	ctx, rec := newGridRequest(t, http.MethodPost, "/api/data", `{"id": 7, "datin": "15-03-2026"}`)
	require.NoError(t, ctrl.UpdateData(ctx))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var ve apperrors.ValidationError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ve))
	assert.Equal(t, "datin", ve.Field)
	assert.NotEmpty(t, ve.Reason)
}

func TestUpdateData_NotFound(t *testing.T) {
	svc := &stubOrderService{err: apperrors.ErrNotFound}
	ctrl := NewOrderController(svc, zap.NewNop())

	ctx, rec := newGridRequest(t, http.MethodPost, "/api/data", `{"id": 999, "rush": true}`)
	require.NoError(t, ctrl.UpdateData(ctx))

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var ve apperrors.ValidationError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ve))
	assert.Equal(t, "id", ve.Field)
}

func TestUpdateData_InternalErrorHidesDetails(t *testing.T) {
	svc := &stubOrderService{err: assert.AnError}
	ctrl := NewOrderController(svc, zap.NewNop())

	ctx, rec := newGridRequest(t, http.MethodPost, "/api/data", `{"id": 7, "rush": true}`)
	require.NoError(t, ctrl.UpdateData(ctx))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

func TestGetDueouts_RangeValidation(t *testing.T) {
	ctrl := NewOrderController(&stubOrderService{}, zap.NewNop())

	ctx, rec := newGridRequest(t, http.MethodGet, "/api/orders/dueouts?start_date=2026-09-01&end_date=2026-08-01", "")
	require.NoError(t, ctrl.GetDueouts(ctx))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	ctx, rec = newGridRequest(t, http.MethodGet, "/api/orders/dueouts?start_date=bogus", "")
	require.NoError(t, ctrl.GetDueouts(ctx))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFindOrder_InvalidID(t *testing.T) {
	ctrl := NewOrderController(&stubOrderService{}, zap.NewNop())

	ctx, rec := newGridRequest(t, http.MethodGet, "/api/orders/abc", "")
	ctx.SetParamNames("id")
	ctx.SetParamValues("abc")
	require.NoError(t, ctrl.FindOrder(ctx))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
