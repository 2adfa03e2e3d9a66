package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"print-shop-system/internal/entities"
	apperrors "print-shop-system/pkg/errors"
)

type CustomerRepositoryInterface interface {
	List(ctx context.Context, limit, offset uint64) ([]entities.Customer, uint64, error)
	Search(ctx context.Context, q string, limit uint64) ([]entities.Customer, error)
	FindByID(ctx context.Context, id int64) (*entities.Customer, error)
	FindByCustID(ctx context.Context, custID string) (*entities.Customer, error)
}

type CustomerRepository struct {
	storage *pgxpool.Pool
}

func NewCustomerRepository(storage *pgxpool.Pool) CustomerRepositoryInterface {
	return &CustomerRepository{storage: storage}
}

var customerColumns = []string{
	"id", "cust_id", "customer",
	"address_line_1", "address_line_2", "city", "state", "zip",
	"telephone_1", "telephone_2", "customer_email",
	"created_at", "updated_at", "deleted_at",
}

func scanCustomer(row pgx.Row) (*entities.Customer, error) {
	var c entities.Customer
	err := row.Scan(
		&c.ID, &c.CustID, &c.Name,
		&c.AddressLine1, &c.AddressLine2, &c.City, &c.State, &c.Zip,
		&c.Telephone1, &c.Telephone2, &c.CustomerEmail,
		&c.CreatedAt, &c.UpdatedAt, &c.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan customer: %w", err)
	}
	return &c, nil
}

func (r *CustomerRepository) List(ctx context.Context, limit, offset uint64) ([]entities.Customer, uint64, error) {
	var total uint64
	err := r.storage.QueryRow(ctx, `SELECT COUNT(*) FROM customers WHERE deleted_at IS NULL`).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}

	query, args, err := psql.Select(customerColumns...).
		From("customers").
		Where("deleted_at IS NULL").
		OrderBy("cust_id ASC").
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build customer list query: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	customers := make([]entities.Customer, 0, limit)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, err
		}
		customers = append(customers, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate customers: %w", err)
	}
	return customers, total, nil
}

func (r *CustomerRepository) Search(ctx context.Context, q string, limit uint64) ([]entities.Customer, error) {
	pattern := "%" + q + "%"
	query, args, err := psql.Select(customerColumns...).
		From("customers").
		Where("deleted_at IS NULL").
		Where(sq.Or{
			sq.ILike{"cust_id": pattern},
			sq.ILike{"customer": pattern},
		}).
		OrderBy("cust_id ASC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build customer search query: %w", err)
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search customers: %w", err)
	}
	defer rows.Close()

	customers := make([]entities.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customers: %w", err)
	}
	return customers, nil
}

func (r *CustomerRepository) findOne(ctx context.Context, pred interface{}) (*entities.Customer, error) {
	query, args, err := psql.Select(customerColumns...).
		From("customers").
		Where("deleted_at IS NULL").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build customer find query: %w", err)
	}
	return scanCustomer(r.storage.QueryRow(ctx, query, args...))
}

func (r *CustomerRepository) FindByID(ctx context.Context, id int64) (*entities.Customer, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

func (r *CustomerRepository) FindByCustID(ctx context.Context, custID string) (*entities.Customer, error) {
	return r.findOne(ctx, sq.Eq{"cust_id": custID})
}
