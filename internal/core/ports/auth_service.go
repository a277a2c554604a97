package ports

import (
	"context"

	"github.com/bizdesk/bizdesk-api/internal/core/domain"
)

// AuthService implements registration, login, and profile retrieval.
type AuthService interface {
	Register(ctx context.Context, fullName, email, password string) (*domain.User, error)
	// Login returns a signed token and the authenticated user.
	Login(ctx context.Context, identifier, password string) (string, *domain.User, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
}

// ProfileCache is an optional read cache for profile lookups. A failed
// lookup is a miss, never an error: the caller falls through to storage.
type ProfileCache interface {
	Get(ctx context.Context, userID string) (*domain.User, bool)
	Set(ctx context.Context, userID string, user *domain.User)
}
