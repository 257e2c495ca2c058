package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jobtrack/internal/pkg/jwt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Subject is the only principal; there are no user accounts.
const Subject = "owner"

var ErrAuthDisabled = errors.New("authentication is not configured")

type AuthUsecase interface {
	Login(ctx context.Context, password string) (jwt.Pair, error)
	Refresh(ctx context.Context, refreshToken string) (jwt.Pair, error)
}

type Auth struct {
	passwordHash []byte
	jwt          jwt.Service
	logger       *zap.Logger
}

func NewAuthUsecase(passwordHash string, jwtSvc jwt.Service, logger *zap.Logger) *Auth {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Auth{passwordHash: []byte(strings.TrimSpace(passwordHash)), jwt: jwtSvc, logger: logger}
}

func (u *Auth) enabled() bool {
	return len(u.passwordHash) > 0 && u.jwt != nil
}

func (u *Auth) Login(ctx context.Context, password string) (jwt.Pair, error) {
	if !u.enabled() {
		return jwt.Pair{}, fmt.Errorf("%w: %s", ErrUnauthorized, ErrAuthDisabled.Error())
	}
	if password == "" {
		return jwt.Pair{}, invalid("password is required")
	}
	if err := bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			u.logger.Error("password hash check failed", zap.Error(err))
		}
		return jwt.Pair{}, fmt.Errorf("%w: invalid password", ErrUnauthorized)
	}
	return u.issue()
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (jwt.Pair, error) {
	if !u.enabled() {
		return jwt.Pair{}, fmt.Errorf("%w: %s", ErrUnauthorized, ErrAuthDisabled.Error())
	}
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return jwt.Pair{}, fmt.Errorf("%w: missing refresh token", ErrUnauthorized)
	}
	claims, err := u.jwt.ValidateRefresh(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return jwt.Pair{}, fmt.Errorf("%w: refresh token expired", ErrUnauthorized)
		}
		return jwt.Pair{}, fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)
	}
	if claims.Subject != Subject {
		return jwt.Pair{}, fmt.Errorf("%w: invalid refresh token", ErrUnauthorized)
	}
	return u.issue()
}

func (u *Auth) issue() (jwt.Pair, error) {
	pair, err := u.jwt.Issue(Subject)
	if err != nil {
		u.logger.Error("issue tokens", zap.Error(err))
		return jwt.Pair{}, ErrInternal
	}
	return pair, nil
}

// HashPassword is used by the admin CLI to produce AUTH_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", invalid("password must be at least 8 characters")
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
