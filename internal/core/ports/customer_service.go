package ports

import (
	"context"

	"github.com/cementrack/tracking-api/internal/core/domain"
)

// CreateCustomerInput carries customer creation data. Only Name is required.
type CreateCustomerInput struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

// UpdateCustomerInput carries a partial customer update; nil fields are kept.
type UpdateCustomerInput struct {
	Name    *string
	Phone   *string
	Email   *string
	Address *string
}

// CustomerService defines customer use cases.
type CustomerService interface {
	CreateCustomer(ctx context.Context, input CreateCustomerInput) (*domain.Customer, error)
	GetCustomer(ctx context.Context, id string) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]*domain.Customer, error)
	UpdateCustomer(ctx context.Context, id string, input UpdateCustomerInput) (*domain.Customer, error)
}
