package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"print-shop-system/internal/entities"
	"print-shop-system/internal/grid"
	apperrors "print-shop-system/pkg/errors"
)

type OrderRepositoryInterface interface {
	ListGrid(ctx context.Context, params grid.Params) ([]entities.Order, uint64, error)
	FindByID(ctx context.Context, id int64) (*entities.Order, error)
	FindByLog(ctx context.Context, log string) (*entities.Order, error)
	ExistsByLog(ctx context.Context, log string) (bool, error)
	Create(ctx context.Context, cols map[string]interface{}) (*entities.Order, error)
	UpdateFields(ctx context.Context, id int64, cols map[string]interface{}) (*entities.Order, error)
	SoftDelete(ctx context.Context, id int64) error
	Dueouts(ctx context.Context, start, end *time.Time) ([]entities.Order, error)
}

type OrderRepository struct {
	storage *pgxpool.Pool
}

func NewOrderRepository(storage *pgxpool.Pool) OrderRepositoryInterface {
	return &OrderRepository{storage: storage}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// orderColumns is the full joined projection of one order row. The customer
// name comes from the customers table via the cust code; a missing or
// soft-deleted customer leaves it NULL.
var orderColumns = []string{
	"o.id", "o.log", "o.artlo", "o.cust", "c.customer",
	"o.title", "o.prior", "o.datin", "o.dueout", "o.datout",
	"o.colorf", "o.print_n", "o.logtype", "o.rush",
	"o.created_at", "o.updated_at", "o.deleted_at",
}

const orderJoin = "customers c ON o.cust = c.cust_id AND c.deleted_at IS NULL"

func scanOrder(row pgx.Row) (*entities.Order, error) {
	var o entities.Order
	err := row.Scan(
		&o.ID, &o.Log, &o.Artlo, &o.Cust, &o.CustomerName,
		&o.Title, &o.Prior, &o.Datin, &o.Dueout, &o.Datout,
		&o.Colorf, &o.PrintN, &o.Logtype, &o.Rush,
		&o.CreatedAt, &o.UpdatedAt, &o.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}
	return &o, nil
}

// applySearch attaches the live-rows predicate plus the free-text filter to
// a builder. COUNT and SELECT both go through it, so the total always
// matches the page contents.
func applySearch(builder sq.SelectBuilder, search string) sq.SelectBuilder {
	builder = builder.Where("o.deleted_at IS NULL")
	if search == "" {
		return builder
	}
	pattern := "%" + search + "%"
	return builder.Where(sq.Or{
		sq.ILike{"o.cust": pattern},
		sq.ILike{"c.customer": pattern},
		sq.ILike{"o.title": pattern},
	})
}

func (r *OrderRepository) ListGrid(ctx context.Context, params grid.Params) ([]entities.Order, uint64, error) {
	countQuery, countArgs, err := applySearch(
		psql.Select("COUNT(*)").From("orders o").LeftJoin(orderJoin),
		params.Search,
	).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}
	if total == 0 || params.Start >= total {
		return []entities.Order{}, total, nil
	}

	builder := applySearch(
		psql.Select(orderColumns...).From("orders o").LeftJoin(orderJoin),
		params.Search,
	)
	for _, clause := range grid.OrderByClauses(params.Sort) {
		builder = builder.OrderBy(clause)
	}
	query, args, err := builder.Limit(params.Length).Offset(params.Start).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	capacity := params.Length
	if remaining := total - params.Start; remaining < capacity {
		capacity = remaining
	}
	orders := make([]entities.Order, 0, capacity)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate orders: %w", err)
	}
	return orders, total, nil
}

func (r *OrderRepository) findOne(ctx context.Context, q querier, pred interface{}) (*entities.Order, error) {
	query, args, err := psql.Select(orderColumns...).
		From("orders o").
		LeftJoin(orderJoin).
		Where("o.deleted_at IS NULL").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find query: %w", err)
	}
	return scanOrder(q.QueryRow(ctx, query, args...))
}

func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*entities.Order, error) {
	return r.findOne(ctx, r.storage, sq.Eq{"o.id": id})
}

func (r *OrderRepository) FindByLog(ctx context.Context, log string) (*entities.Order, error) {
	return r.findOne(ctx, r.storage, sq.Eq{"o.log": log})
}

func (r *OrderRepository) ExistsByLog(ctx context.Context, log string) (bool, error) {
	var exists bool
	err := r.storage.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM orders WHERE log = $1 AND deleted_at IS NULL)`, log,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check log exists: %w", err)
	}
	return exists, nil
}

func (r *OrderRepository) Create(ctx context.Context, cols map[string]interface{}) (*entities.Order, error) {
	query, args, err := psql.Insert("orders").
		SetMap(cols).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert query: %w", err)
	}

	var id int64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.ErrConflict
		}
		return nil, fmt.Errorf("insert order: %w", err)
	}
	return r.FindByID(ctx, id)
}

// UpdateFields writes the given columns on one live row and returns the
// fresh joined row. The row is locked for the duration, concurrent writers
// queue up and the last commit wins.
func (r *OrderRepository) UpdateFields(ctx context.Context, id int64, cols map[string]interface{}) (*entities.Order, error) {
	var updated *entities.Order
	err := WithTx(ctx, r.storage, func(tx pgx.Tx) error {
		var lockedID int64
		err := tx.QueryRow(ctx,
			`SELECT id FROM orders WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`, id,
		).Scan(&lockedID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrNotFound
			}
			return fmt.Errorf("lock order: %w", err)
		}

		builder := psql.Update("orders").SetMap(cols).Set("updated_at", sq.Expr("NOW()"))
		query, args, err := builder.Where(sq.Eq{"id": id}).ToSql()
		if err != nil {
			return fmt.Errorf("build update query: %w", err)
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return apperrors.ErrConflict
			}
			return fmt.Errorf("update order: %w", err)
		}

		updated, err = r.findOne(ctx, tx, sq.Eq{"o.id": id})
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *OrderRepository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.storage.Exec(ctx,
		`UPDATE orders SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id,
	)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// dueoutLogtypes are the production types that appear on the due-out board.
var dueoutLogtypes = []string{"TR", "DP", "AA", "DTF"}

func (r *OrderRepository) Dueouts(ctx context.Context, start, end *time.Time) ([]entities.Order, error) {
	builder := psql.Select(orderColumns...).
		From("orders o").
		LeftJoin(orderJoin).
		Where("o.deleted_at IS NULL").
		Where(sq.Eq{"o.logtype": dueoutLogtypes}).
		Where("o.datout IS NULL").
		Where("o.dueout IS NOT NULL")
	if start != nil {
		builder = builder.Where(sq.GtOrEq{"o.dueout": *start})
	}
	if end != nil {
		builder = builder.Where(sq.LtOrEq{"o.dueout": *end})
	}
	query, args, err := builder.OrderBy("o.dueout ASC", "o.id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build dueouts query: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list dueouts: %w", err)
	}
	defer rows.Close()

	orders := make([]entities.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dueouts: %w", err)
	}
	return orders, nil
}
