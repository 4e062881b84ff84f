package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Service struct {
	users   userReader
	jwt     tokenIssuer
	loggerf func(format string, args ...interface{})
}

func NewService(users userReader, jwt tokenIssuer, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{users: users, jwt: jwt, loggerf: loggerf}
}

// Login authenticates an operator account. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, ErrUserDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		s.loggerf("level=warn msg=failed login attempt email=%s", email)
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(u.ID, string(u.Role))
	if err != nil {
		return nil, err
	}

	u.PasswordHash = ""
	return &LoginResponse{Token: token, User: u}, nil
}
