package service

import (
	"context"
	"errors"
	"reflect"
	"time"

	"github.com/rs/zerolog"

	"github.com/bizdesk/bizdesk-api/internal/core/domain"
	"github.com/bizdesk/bizdesk-api/internal/core/ports"
)

// ResourceService implements the ownership-scoped CRUD protocol for one
// resource collection. The schema supplies required fields, numeric
// rules, defaults, and the update allow-list; everything else is shared.
type ResourceService struct {
	schema domain.Schema
	repo   ports.ResourceRepository
	logger zerolog.Logger
}

func NewResourceService(schema domain.Schema, repo ports.ResourceRepository, logger zerolog.Logger) *ResourceService {
	return &ResourceService{
		schema: schema,
		repo:   repo,
		logger: logger.With().Str("resource", schema.Name).Logger(),
	}
}

func (s *ResourceService) Create(ctx context.Context, ownerID string, payload domain.Document) (domain.Document, error) {
	doc, err := s.schema.ValidateCreate(payload)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc["createdBy"] = ownerID
	doc["createdAt"] = now
	doc["updatedAt"] = now

	created, err := s.repo.Insert(ctx, doc)
	if err != nil {
		s.logger.Error().Err(err).Msg("insert failed")
		return nil, err
	}

	s.logger.Info().Str("owner_id", ownerID).Msg("document created")
	return created, nil
}

func (s *ResourceService) List(ctx context.Context, ownerID string, extra domain.Document) ([]domain.Document, error) {
	docs, err := s.repo.List(ctx, ownerID, extra)
	if err != nil {
		s.logger.Error().Err(err).Msg("list failed")
		return nil, err
	}
	return docs, nil
}

func (s *ResourceService) Get(ctx context.Context, ownerID, id string) (domain.Document, error) {
	doc, err := s.repo.FindByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound(s.schema.Title)
		}
		s.logger.Error().Err(err).Str("id", id).Msg("find failed")
		return nil, err
	}
	return doc, nil
}

func (s *ResourceService) Update(ctx context.Context, ownerID, id string, payload domain.Document) (domain.Document, error) {
	// Existence is checked before validating the payload so an update to
	// somebody else's document reports not_found, not a validation error.
	current, err := s.repo.FindByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound(s.schema.Title)
		}
		return nil, err
	}

	set, err := s.schema.ValidateUpdate(payload)
	if err != nil {
		return nil, err
	}

	// A payload identical to the current state is a client error, not a
	// silent success. updatedAt is stamped after this check so it cannot
	// mask a no-op.
	changed := false
	for k, v := range set {
		if !reflect.DeepEqual(current[k], v) {
			changed = true
			break
		}
	}
	if !changed {
		return nil, domain.NoChanges(s.schema.Title)
	}
	set["updatedAt"] = time.Now().UTC()

	updated, err := s.repo.Update(ctx, ownerID, id, set)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return nil, domain.NotFound(s.schema.Title)
		case errors.Is(err, domain.ErrNoChanges):
			return nil, domain.NoChanges(s.schema.Title)
		}
		s.logger.Error().Err(err).Str("id", id).Msg("update failed")
		return nil, err
	}

	s.logger.Info().Str("id", id).Msg("document updated")
	return updated, nil
}

func (s *ResourceService) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFound(s.schema.Title)
		}
		s.logger.Error().Err(err).Str("id", id).Msg("delete failed")
		return err
	}
	s.logger.Info().Str("id", id).Msg("document deleted")
	return nil
}
