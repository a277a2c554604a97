package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/bizdesk/bizdesk-api/internal/core/domain"
)

const profileTTL = 5 * time.Minute

// ProfileCache is a read-through cache for profile lookups.
// Key format: profile:<user_id>, value is the JSON-encoded user.
// Cache failures are logged and treated as misses so a Redis outage
// never fails a profile request.
type ProfileCache struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewProfileCache creates a ProfileCache wrapping the given Redis client.
func NewProfileCache(client *redis.Client, log zerolog.Logger) *ProfileCache {
	return &ProfileCache{client: client, log: log}
}

func (p *ProfileCache) Get(ctx context.Context, userID string) (*domain.User, bool) {
	raw, err := p.client.Get(ctx, p.key(userID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			p.log.Warn().Err(err).Msg("profile cache read failed")
		}
		return nil, false
	}

	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		p.log.Warn().Err(err).Msg("profile cache entry corrupt")
		return nil, false
	}
	return &user, true
}

func (p *ProfileCache) Set(ctx context.Context, userID string, user *domain.User) {
	raw, err := json.Marshal(user)
	if err != nil {
		return
	}
	if err := p.client.Set(ctx, p.key(userID), raw, profileTTL).Err(); err != nil {
		p.log.Warn().Err(err).Msg("profile cache write failed")
	}
}

func (p *ProfileCache) key(userID string) string {
	return "profile:" + userID
}
