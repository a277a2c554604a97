package ports

import (
	"context"

	"github.com/bizdesk/bizdesk-api/internal/core/domain"
)

// ResourceService is the use-case surface of the ownership-scoped CRUD
// protocol. One implementation, parameterized by domain.Schema, serves
// projects, budgets, leads, and payments.
type ResourceService interface {
	Create(ctx context.Context, ownerID string, payload domain.Document) (domain.Document, error)
	List(ctx context.Context, ownerID string, extra domain.Document) ([]domain.Document, error)
	Get(ctx context.Context, ownerID, id string) (domain.Document, error)
	Update(ctx context.Context, ownerID, id string, payload domain.Document) (domain.Document, error)
	Delete(ctx context.Context, ownerID, id string) error
}
