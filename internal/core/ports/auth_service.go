package ports

import (
	"context"

	"github.com/cementrack/tracking-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password, fullName, role string) (*domain.Operator, error)
	Login(ctx context.Context, username, password string) (string, *domain.Operator, error)
}
