package services

import (
	"context"

	"go.uber.org/zap"

	"print-shop-system/internal/dto"
	"print-shop-system/internal/repositories"
)

type CustomerServiceInterface interface {
	GetCustomers(ctx context.Context, limit, offset uint64) (*dto.CustomerListResponseDTO, error)
	SearchCustomers(ctx context.Context, q string, limit uint64) ([]dto.CustomerDTO, error)
	GetByID(ctx context.Context, id int64) (*dto.CustomerDTO, error)
	GetByCustID(ctx context.Context, custID string) (*dto.CustomerDTO, error)
}

type CustomerService struct {
	repo   repositories.CustomerRepositoryInterface
	logger *zap.Logger
}

func NewCustomerService(repo repositories.CustomerRepositoryInterface, logger *zap.Logger) CustomerServiceInterface {
	return &CustomerService{repo: repo, logger: logger}
}

func (s *CustomerService) GetCustomers(ctx context.Context, limit, offset uint64) (*dto.CustomerListResponseDTO, error) {
	customers, total, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return &dto.CustomerListResponseDTO{
		List:       dto.NewCustomerDTOs(customers),
		TotalCount: total,
	}, nil
}

func (s *CustomerService) SearchCustomers(ctx context.Context, q string, limit uint64) ([]dto.CustomerDTO, error) {
	customers, err := s.repo.Search(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	return dto.NewCustomerDTOs(customers), nil
}

func (s *CustomerService) GetByID(ctx context.Context, id int64) (*dto.CustomerDTO, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c := dto.NewCustomerDTO(*customer)
	return &c, nil
}

func (s *CustomerService) GetByCustID(ctx context.Context, custID string) (*dto.CustomerDTO, error) {
	customer, err := s.repo.FindByCustID(ctx, custID)
	if err != nil {
		return nil, err
	}
	c := dto.NewCustomerDTO(*customer)
	return &c, nil
}
