package auth

import (
	"context"
	"testing"

	"camperrent/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type MockUserReader struct{ mock.Mock }

func (m *MockUserReader) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockTokenIssuer struct{ mock.Mock }

func (m *MockTokenIssuer) GenerateToken(userID string, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}

func operatorUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.User{
		ID:           "u-1",
		Email:        "ops@example.com",
		Name:         "Ops",
		PasswordHash: string(hash),
		Role:         domain.RoleOperator,
		IsActive:     true,
	}
}

func TestLogin_Success(t *testing.T) {
	users := new(MockUserReader)
	tokens := new(MockTokenIssuer)
	svc := NewService(users, tokens, nil)

	users.On("GetByEmail", mock.Anything, "ops@example.com").Return(operatorUser(t, "secret"), nil)
	tokens.On("GenerateToken", "u-1", "operator").Return("jwt-token", nil)

	res, err := svc.Login(context.Background(), LoginRequest{Email: " Ops@Example.com ", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", res.Token)
	assert.Empty(t, res.User.PasswordHash)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := new(MockUserReader)
	tokens := new(MockTokenIssuer)
	svc := NewService(users, tokens, nil)

	users.On("GetByEmail", mock.Anything, "ops@example.com").Return(operatorUser(t, "secret"), nil)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ops@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	tokens.AssertNotCalled(t, "GenerateToken", mock.Anything, mock.Anything)
}

func TestLogin_UnknownEmail(t *testing.T) {
	users := new(MockUserReader)
	svc := NewService(users, new(MockTokenIssuer), nil)

	users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_DisabledUser(t *testing.T) {
	users := new(MockUserReader)
	svc := NewService(users, new(MockTokenIssuer), nil)

	u := operatorUser(t, "secret")
	u.IsActive = false
	users.On("GetByEmail", mock.Anything, "ops@example.com").Return(u, nil)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ops@example.com", Password: "secret"})
	assert.ErrorIs(t, err, ErrUserDisabled)
}
