package ports

import (
	"context"

	"github.com/bizdesk/bizdesk-api/internal/core/domain"
)

// ResourceRepository defines ownership-scoped persistence for one
// document collection. Every read, update, and delete is filtered by the
// owner reference in addition to the document id, so a document owned by
// someone else is indistinguishable from a missing one.
type ResourceRepository interface {
	// Insert persists doc and returns the stored document in its
	// JSON-safe form (string id, RFC3339 timestamps).
	Insert(ctx context.Context, doc domain.Document) (domain.Document, error)

	// FindByID returns domain.ErrNotFound when no document with that id
	// is owned by ownerID.
	FindByID(ctx context.Context, ownerID, id string) (domain.Document, error)

	// List returns all documents owned by ownerID, optionally narrowed by
	// extra equality filters, newest first. No matches yields an empty
	// slice, not an error.
	List(ctx context.Context, ownerID string, extra domain.Document) ([]domain.Document, error)

	// Update applies set to the owned document. domain.ErrNotFound when
	// no owned document matches; domain.ErrNoChanges when the update
	// modified nothing. On success the post-update document is returned.
	Update(ctx context.Context, ownerID, id string, set domain.Document) (domain.Document, error)

	// Delete returns domain.ErrNotFound when no owned document matches.
	Delete(ctx context.Context, ownerID, id string) error
}
