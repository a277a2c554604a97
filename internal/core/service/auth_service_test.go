package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/bizdesk/bizdesk-api/internal/core/domain"
)

type stubUserRepo struct {
	users  map[string]*domain.User // keyed by id
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User), nextID: 1}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	created := cloneUser(user)
	created.ID = "user_" + strconv.Itoa(r.nextID)
	r.nextID++
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func newAuthService(repo *stubUserRepo) *AuthService {
	return NewAuthService(repo, nil, "secret", time.Hour, zerolog.Nop())
}

func expectCode(t *testing.T, err error, code string) {
	t.Helper()
	ae, ok := domain.AsAPIError(err)
	if !ok {
		t.Fatalf("expected *APIError with code %s, got %v", code, err)
	}
	if ae.Code != code {
		t.Fatalf("expected code %s, got %s", code, ae.Code)
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)

	user, err := svc.Register(context.Background(), "Alice Doe", "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected generated id")
	}
	if user.PasswordHash == "secret1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.DefaultRole {
		t.Fatalf("expected default role, got %s", user.Role)
	}
	if !user.IsActive {
		t.Fatalf("expected new user to be active")
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newAuthService(newStubUserRepo())
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "a@b.com", "secret1")
	expectCode(t, err, domain.CodeMissingFields)

	_, err = svc.Register(ctx, "Alice", "not-an-email", "secret1")
	expectCode(t, err, domain.CodeInvalidEmail)

	_, err = svc.Register(ctx, "Alice", "a@b.com", "short")
	expectCode(t, err, domain.CodeWeakPassword)
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "A", "a@b.com", "secret1"); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	_, err := svc.Register(ctx, "A", "a@b.com", "secret1")
	expectCode(t, err, domain.CodeUserExists)

	if len(repo.users) != 1 {
		t.Fatalf("expected exactly one stored user, got %d", len(repo.users))
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)
	ctx := context.Background()

	created, err := svc.Register(ctx, "Carol", "carol@example.com", "s3cret1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(ctx, "carol@example.com", "s3cret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.Email != "carol@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, &claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.Subject != created.ID {
		t.Fatalf("expected subject %s, got %s", created.ID, claims.Subject)
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(time.Now()) {
		t.Fatalf("expected future expiry")
	}
}

func TestAuthService_Login_MissingCredentials(t *testing.T) {
	svc := newAuthService(newStubUserRepo())
	_, _, err := svc.Login(context.Background(), "", "pass")
	expectCode(t, err, domain.CodeMissingCredentials)
}

func TestAuthService_Login_SameErrorForUnknownUserAndWrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Dave", "dave@example.com", "goodpass"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, errWrongPass := svc.Login(ctx, "dave@example.com", "badpass")
	_, _, errNoUser := svc.Login(ctx, "ghost@example.com", "badpass")

	expectCode(t, errWrongPass, domain.CodeInvalidCredentials)
	expectCode(t, errNoUser, domain.CodeInvalidCredentials)
	if errWrongPass.Error() != errNoUser.Error() {
		t.Fatalf("messages must not distinguish the cases: %q vs %q", errWrongPass, errNoUser)
	}
}

func TestAuthService_Profile(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthService(repo)
	ctx := context.Background()

	created, err := svc.Register(ctx, "Eve", "eve@example.com", "secret1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, err := svc.Profile(ctx, created.ID)
	if err != nil {
		t.Fatalf("profile failed: %v", err)
	}
	if user.Email != "eve@example.com" {
		t.Fatalf("unexpected profile: %+v", user)
	}

	_, err = svc.Profile(ctx, "missing")
	expectCode(t, err, domain.CodeUserNotFound)
}

type countingCache struct {
	stored map[string]*domain.User
	hits   int
}

func (c *countingCache) Get(_ context.Context, id string) (*domain.User, bool) {
	if u, ok := c.stored[id]; ok {
		c.hits++
		return cloneUser(u), true
	}
	return nil, false
}

func (c *countingCache) Set(_ context.Context, id string, u *domain.User) {
	c.stored[id] = cloneUser(u)
}

func TestAuthService_Profile_UsesCache(t *testing.T) {
	repo := newStubUserRepo()
	cache := &countingCache{stored: make(map[string]*domain.User)}
	svc := NewAuthService(repo, cache, "secret", time.Hour, zerolog.Nop())
	ctx := context.Background()

	created, err := svc.Register(ctx, "Frank", "frank@example.com", "secret1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.Profile(ctx, created.ID); err != nil {
		t.Fatalf("first profile read failed: %v", err)
	}
	if _, err := svc.Profile(ctx, created.ID); err != nil {
		t.Fatalf("second profile read failed: %v", err)
	}
	if cache.hits != 1 {
		t.Fatalf("expected one cache hit, got %d", cache.hits)
	}

	// Repository failures after the entry is cached must not surface.
	delete(repo.users, created.ID)
	if _, err := svc.Profile(ctx, created.ID); err != nil {
		t.Fatalf("cached profile read failed: %v", err)
	}
}
