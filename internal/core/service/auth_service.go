package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/bizdesk/bizdesk-api/internal/core/domain"
	"github.com/bizdesk/bizdesk-api/internal/core/ports"
)

// dummyHash is compared against when the email is unknown, so login
// latency does not reveal whether an account exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

var validate = validator.New()

// AuthService implements registration, login, and profile retrieval.
type AuthService struct {
	repo     ports.UserRepository
	cache    ports.ProfileCache
	secret   string
	tokenTTL time.Duration
	logger   zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, cache ports.ProfileCache, secret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, cache: cache, secret: secret, tokenTTL: tokenTTL, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, fullName, email, password string) (*domain.User, error) {
	for _, f := range []struct{ name, value string }{
		{"fullName", fullName},
		{"email", email},
		{"password", password},
	} {
		if f.value == "" {
			return nil, domain.MissingFields(f.name)
		}
	}

	if err := validate.Var(email, "email"); err != nil {
		return nil, domain.InvalidEmail()
	}
	if len(password) < 6 {
		return nil, domain.WeakPassword()
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.UserExists()
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.DefaultRole,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			// lost the race against a concurrent registration
			return nil, domain.UserExists()
		}
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("user registered")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, identifier, password string) (string, *domain.User, error) {
	if identifier == "" || password == "" {
		return "", nil, domain.MissingCredentials()
	}

	user, err := s.repo.FindByEmail(ctx, identifier)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			return "", nil, domain.InvalidCredentials()
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.InvalidCredentials()
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("login successful")
	return token, user, nil
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	if s.cache != nil {
		if user, ok := s.cache.Get(ctx, userID); ok {
			return user, nil
		}
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.UserNotFound()
		}
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, userID, user)
	}
	return user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.secret))
}
