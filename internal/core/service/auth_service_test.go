package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/cementrack/tracking-api/internal/core/domain"
)

type stubOperatorRepo struct {
	byUsername map[string]*domain.Operator
}

func newStubOperatorRepo() *stubOperatorRepo {
	return &stubOperatorRepo{byUsername: make(map[string]*domain.Operator)}
}

func (r *stubOperatorRepo) Create(_ context.Context, op *domain.Operator) (*domain.Operator, error) {
	if _, ok := r.byUsername[op.Username]; ok {
		return nil, domain.ErrOperatorExists
	}
	clone := *op
	clone.ID = "op_" + op.Username
	r.byUsername[op.Username] = &clone
	out := clone
	return &out, nil
}

func (r *stubOperatorRepo) FindByUsername(_ context.Context, username string) (*domain.Operator, error) {
	op, ok := r.byUsername[username]
	if !ok {
		return nil, domain.ErrOperatorNotFound
	}
	clone := *op
	return &clone, nil
}

const testSecret = "test-secret"

func TestRegister_HashesPassword(t *testing.T) {
	repo := newStubOperatorRepo()
	svc := NewAuthService(repo, testSecret, time.Hour)

	op, err := svc.Register(context.Background(), "maria", "s3cret", "Maria Silva", domain.RoleOperator)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if op.PasswordHash == "s3cret" {
		t.Fatal("password must not be stored in plaintext")
	}
	if bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte("s3cret")) != nil {
		t.Error("stored hash must verify against the original password")
	}
}

func TestRegister_RejectsUnknownRole(t *testing.T) {
	svc := NewAuthService(newStubOperatorRepo(), testSecret, time.Hour)

	_, err := svc.Register(context.Background(), "maria", "s3cret", "Maria Silva", "superuser")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	repo := newStubOperatorRepo()
	svc := NewAuthService(repo, testSecret, time.Hour)

	if _, err := svc.Register(context.Background(), "maria", "s3cret", "", domain.RoleAdmin); err != nil {
		t.Fatal(err)
	}
	_, err := svc.Register(context.Background(), "maria", "other", "", domain.RoleAdmin)
	if !errors.Is(err, domain.ErrOperatorExists) {
		t.Errorf("expected ErrOperatorExists, got %v", err)
	}
}

func TestLogin_IssuesSignedToken(t *testing.T) {
	repo := newStubOperatorRepo()
	svc := NewAuthService(repo, testSecret, time.Hour)

	if _, err := svc.Register(context.Background(), "maria", "s3cret", "Maria Silva", domain.RoleAdmin); err != nil {
		t.Fatal(err)
	}

	token, op, err := svc.Login(context.Background(), "maria", "s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if op.Username != "maria" {
		t.Errorf("unexpected operator %q", op.Username)
	}

	parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token must verify with the signing secret: %v", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("expected map claims")
	}
	if claims["username"] != "maria" || claims["role"] != domain.RoleAdmin {
		t.Errorf("unexpected claims: %v", claims)
	}
	if claims["operator_id"] == "" {
		t.Error("operator_id claim must be set")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newStubOperatorRepo()
	svc := NewAuthService(repo, testSecret, time.Hour)

	if _, err := svc.Register(context.Background(), "maria", "s3cret", "", domain.RoleOperator); err != nil {
		t.Fatal(err)
	}

	_, _, err := svc.Login(context.Background(), "maria", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := NewAuthService(newStubOperatorRepo(), testSecret, time.Hour)

	_, _, err := svc.Login(context.Background(), "ghost", "pw")
	if !errors.Is(err, domain.ErrOperatorNotFound) {
		t.Errorf("expected ErrOperatorNotFound, got %v", err)
	}
}
