// internal/service/customer_service.go
package service

import (
	"context"

	"github.com/unclebandit/customer-service/internal/model"
	"github.com/unclebandit/customer-service/internal/repository"
)

// CustomerService sits between transport and storage.
type CustomerService struct {
	CustomerRepo repository.CustomerRepositoryInterface
}

func NewCustomerService(repo repository.CustomerRepositoryInterface) *CustomerService {
	return &CustomerService{CustomerRepo: repo}
}

// GetCustomers returns every stored customer. Repository errors are returned unchanged.
func (s *CustomerService) GetCustomers(ctx context.Context) ([]model.Customer, error) {
	return s.CustomerRepo.ListAll(ctx)
}
