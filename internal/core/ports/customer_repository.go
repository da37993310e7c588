package ports

import (
	"context"

	"github.com/cementrack/tracking-api/internal/core/domain"
)

// CustomerPatch is a partial update to a customer record.
type CustomerPatch struct {
	Name    *string
	Phone   *string
	Email   *string
	Address *string
}

// CustomerRepository defines persistence operations for customers.
type CustomerRepository interface {
	Insert(ctx context.Context, c *domain.Customer) error
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
	// List returns all customers ordered by name, ascending.
	List(ctx context.Context) ([]*domain.Customer, error)
	Update(ctx context.Context, id string, patch CustomerPatch) (*domain.Customer, error)
}
