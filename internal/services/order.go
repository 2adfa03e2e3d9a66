package services

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"print-shop-system/internal/dto"
	"print-shop-system/internal/grid"
	"print-shop-system/internal/repositories"
	apperrors "print-shop-system/pkg/errors"
)

type OrderServiceInterface interface {
	GetGrid(ctx context.Context, params grid.Params) (*dto.GridResponseDTO, error)
	UpdateCell(ctx context.Context, upd grid.CellUpdate) (*dto.OrderRowDTO, error)
	CreateOrder(ctx context.Context, payload dto.CreateOrderDTO) (*dto.OrderRowDTO, error)
	GetByID(ctx context.Context, id int64) (*dto.OrderRowDTO, error)
	GetByLog(ctx context.Context, log string) (*dto.OrderRowDTO, error)
	UpdateOrder(ctx context.Context, id int64, payload dto.UpdateOrderDTO) (*dto.OrderRowDTO, error)
	DeleteOrder(ctx context.Context, id int64) error
	GetDueouts(ctx context.Context, start, end *time.Time) ([]dto.OrderRowDTO, error)
	ExportGrid(ctx context.Context, params grid.Params) ([]dto.OrderRowDTO, error)
}

type OrderService struct {
	repo       repositories.OrderRepositoryInterface
	cache      repositories.CacheRepositoryInterface
	logger     *zap.Logger
	dueoutsTTL time.Duration
}

func NewOrderService(
	repo repositories.OrderRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	logger *zap.Logger,
	dueoutsTTL time.Duration,
) OrderServiceInterface {
	return &OrderService{
		repo:       repo,
		cache:      cache,
		logger:     logger,
		dueoutsTTL: dueoutsTTL,
	}
}

const dueoutsCacheKey = "orders:dueouts"

func (s *OrderService) GetGrid(ctx context.Context, params grid.Params) (*dto.GridResponseDTO, error) {
	orders, total, err := s.repo.ListGrid(ctx, params)
	if err != nil {
		return nil, err
	}
	return &dto.GridResponseDTO{
		Data:  dto.NewOrderRowDTOs(orders),
		Total: total,
	}, nil
}

// checkDateWindow rejects an in/out window where the due date lands before
// the intake date.
func checkDateWindow(field string, datin, dueout *time.Time) error {
	if datin != nil && dueout != nil && dueout.Before(*datin) {
		return apperrors.NewValidationError(field, "dueout cannot be before datin")
	}
	return nil
}

func (s *OrderService) UpdateCell(ctx context.Context, upd grid.CellUpdate) (*dto.OrderRowDTO, error) {
	if upd.Field == "datin" || upd.Field == "dueout" {
		current, err := s.repo.FindByID(ctx, upd.ID)
		if err != nil {
			return nil, err
		}
		datin := current.Datin.Ptr()
		dueout := current.Dueout.Ptr()
		if t, ok := upd.Value.(time.Time); ok {
			if upd.Field == "datin" {
				datin = &t
			} else {
				dueout = &t
			}
		} else if upd.Field == "datin" {
			datin = nil
		} else {
			dueout = nil
		}
		if err := checkDateWindow(upd.Field, datin, dueout); err != nil {
			return nil, err
		}
	}

	order, err := s.repo.UpdateFields(ctx, upd.ID, map[string]interface{}{upd.Column: upd.Value})
	if err != nil {
		return nil, err
	}
	s.invalidateDueouts(ctx)

	row := dto.NewOrderRowDTO(*order)
	return &row, nil
}

// buildColumns turns the present fields of a create/update payload into
// typed column values, reusing the same coercion rules as inline edits.
func buildColumns(fields map[string]interface{}) (map[string]interface{}, error) {
	cols := make(map[string]interface{}, len(fields))
	for name, raw := range fields {
		column, value, err := grid.CoerceField(name, raw)
		if err != nil {
			return nil, err
		}
		cols[column] = value
	}
	return cols, nil
}

func collectCreateFields(payload dto.CreateOrderDTO) map[string]interface{} {
	fields := map[string]interface{}{"log": payload.Log}
	put := func(name string, v interface{}) {
		switch val := v.(type) {
		case *string:
			if val != nil {
				fields[name] = *val
			}
		case *float64:
			if val != nil {
				fields[name] = *val
			}
		case *bool:
			if val != nil {
				fields[name] = *val
			}
		}
	}
	put("artlo", payload.Artlo)
	put("cust", payload.Cust)
	put("title", payload.Title)
	put("prior", payload.Prior)
	put("datin", payload.Datin)
	put("dueout", payload.Dueout)
	put("datout", payload.Datout)
	put("colorf", payload.Colorf)
	put("print_n", payload.PrintN)
	put("logtype", payload.Logtype)
	put("rush", payload.Rush)
	return fields
}

func (s *OrderService) CreateOrder(ctx context.Context, payload dto.CreateOrderDTO) (*dto.OrderRowDTO, error) {
	exists, err := s.repo.ExistsByLog(ctx, payload.Log)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrConflict
	}

	cols, err := buildColumns(collectCreateFields(payload))
	if err != nil {
		return nil, err
	}
	if err := checkDateWindow("dueout", colDate(cols, "datin"), colDate(cols, "dueout")); err != nil {
		return nil, err
	}

	order, err := s.repo.Create(ctx, cols)
	if err != nil {
		return nil, err
	}
	s.invalidateDueouts(ctx)

	row := dto.NewOrderRowDTO(*order)
	return &row, nil
}

func colDate(cols map[string]interface{}, name string) *time.Time {
	if t, ok := cols[name].(time.Time); ok {
		return &t
	}
	return nil
}

func (s *OrderService) GetByID(ctx context.Context, id int64) (*dto.OrderRowDTO, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	row := dto.NewOrderRowDTO(*order)
	return &row, nil
}

func (s *OrderService) GetByLog(ctx context.Context, log string) (*dto.OrderRowDTO, error) {
	order, err := s.repo.FindByLog(ctx, log)
	if err != nil {
		return nil, err
	}
	row := dto.NewOrderRowDTO(*order)
	return &row, nil
}

func collectUpdateFields(payload dto.UpdateOrderDTO) map[string]interface{} {
	fields := make(map[string]interface{})
	putStr := func(name string, v *string) {
		if v != nil {
			fields[name] = *v
		}
	}
	putStr("log", payload.Log)
	putStr("artlo", payload.Artlo)
	putStr("cust", payload.Cust)
	putStr("title", payload.Title)
	putStr("prior", payload.Prior)
	putStr("datin", payload.Datin)
	putStr("dueout", payload.Dueout)
	putStr("datout", payload.Datout)
	putStr("logtype", payload.Logtype)
	if payload.Colorf != nil {
		fields["colorf"] = *payload.Colorf
	}
	if payload.PrintN != nil {
		fields["print_n"] = *payload.PrintN
	}
	if payload.Rush != nil {
		fields["rush"] = *payload.Rush
	}
	return fields
}

func (s *OrderService) UpdateOrder(ctx context.Context, id int64, payload dto.UpdateOrderDTO) (*dto.OrderRowDTO, error) {
	fields := collectUpdateFields(payload)
	if len(fields) == 0 {
		return nil, apperrors.NewValidationError("body", "at least one field is required")
	}
	cols, err := buildColumns(fields)
	if err != nil {
		return nil, err
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	datin := current.Datin.Ptr()
	dueout := current.Dueout.Ptr()
	if _, touched := cols["datin"]; touched {
		datin = colDate(cols, "datin")
	}
	if _, touched := cols["dueout"]; touched {
		dueout = colDate(cols, "dueout")
	}
	if err := checkDateWindow("dueout", datin, dueout); err != nil {
		return nil, err
	}

	order, err := s.repo.UpdateFields(ctx, id, cols)
	if err != nil {
		return nil, err
	}
	s.invalidateDueouts(ctx)

	row := dto.NewOrderRowDTO(*order)
	return &row, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, id int64) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invalidateDueouts(ctx)
	return nil
}

// GetDueouts returns the open due-out board. Only the unfiltered board is
// cached, range queries always hit the database.
func (s *OrderService) GetDueouts(ctx context.Context, start, end *time.Time) ([]dto.OrderRowDTO, error) {
	cacheable := start == nil && end == nil && s.cache != nil

	if cacheable {
		if cached, err := s.cache.Get(ctx, dueoutsCacheKey); err == nil && cached != "" {
			var rows []dto.OrderRowDTO
			uerr := json.Unmarshal([]byte(cached), &rows)
			if uerr == nil {
				return rows, nil
			}
			s.logger.Warn("invalid dueouts cache entry, refetching", zap.Error(uerr))
		}
	}

	orders, err := s.repo.Dueouts(ctx, start, end)
	if err != nil {
		return nil, err
	}
	rows := dto.NewOrderRowDTOs(orders)

	if cacheable {
		if payload, err := json.Marshal(rows); err == nil {
			if err := s.cache.Set(ctx, dueoutsCacheKey, payload, s.dueoutsTTL); err != nil {
				s.logger.Warn("failed to cache dueouts", zap.Error(err))
			}
		}
	}
	return rows, nil
}

// exportPageLength bounds an export at a size a spreadsheet can still open.
const exportPageLength = 100000

// ExportGrid returns every row matching the current filter and sort,
// ignoring the client's pagination.
func (s *OrderService) ExportGrid(ctx context.Context, params grid.Params) ([]dto.OrderRowDTO, error) {
	params.Start = 0
	params.Length = exportPageLength
	orders, _, err := s.repo.ListGrid(ctx, params)
	if err != nil {
		return nil, err
	}
	return dto.NewOrderRowDTOs(orders), nil
}

func (s *OrderService) invalidateDueouts(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, dueoutsCacheKey); err != nil {
		s.logger.Warn("failed to invalidate dueouts cache", zap.Error(err))
	}
}
