package auth

import (
	"context"

	"camperrent/internal/domain"
)

type userReader interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type tokenIssuer interface {
	GenerateToken(userID string, role string) (string, error)
}
