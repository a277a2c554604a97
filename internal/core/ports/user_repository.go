package ports

import (
	"context"

	"github.com/bizdesk/bizdesk-api/internal/core/domain"
)

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	// Create inserts a new user. domain.ErrUserExists is returned when the
	// email is already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByEmail returns domain.ErrUserNotFound when no account matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByID returns domain.ErrUserNotFound when the id does not resolve.
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
