package ports

import (
	"context"

	"github.com/cementrack/tracking-api/internal/core/domain"
)

// OperatorRepository defines the interface for operator account persistence.
type OperatorRepository interface {
	// Create persists a new operator. Returns domain.ErrOperatorExists when
	// the username is already taken.
	Create(ctx context.Context, op *domain.Operator) (*domain.Operator, error)
	FindByUsername(ctx context.Context, username string) (*domain.Operator, error)
}
