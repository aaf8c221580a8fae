package service

import (
	"daily_trivia_backend/internal/config"
	"daily_trivia_backend/internal/model"
	"daily_trivia_backend/internal/repository"
	"daily_trivia_backend/internal/util"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func newAuthService(env *testEnv) *AuthService {
	cfg := &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour},
	}
	return NewAuthService(repository.NewUserRepository(env.db), cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)

	user := &model.User{Name: "gopher", Email: "gopher@example.com", Password: "password123"}
	if err := auth.Register(user); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Role != model.RoleUser {
		t.Fatalf("expected default role, got %q", user.Role)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")); err != nil {
		t.Fatal("password not stored as a bcrypt hash of the input")
	}

	token, err := auth.Login("gopher@example.com", "password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	claims, err := util.ParseJWT(token, "test-secret")
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, err := auth.Login("gopher@example.com", "wrong-password"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)

	if err := auth.Register(&model.User{Name: "gopher", Email: "gopher@example.com", Password: "password123"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	dup := &model.User{Name: "other", Email: "gopher@example.com", Password: "password456"}
	if err := auth.Register(dup); !errors.Is(err, util.ErrEmailRegistered) {
		t.Fatalf("expected ErrEmailRegistered, got %v", err)
	}
}

func TestRegisterDuplicateEmailPastLookup(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(env)

	// a soft-deleted row is invisible to the pre-insert lookup but still
	// occupies the unique index, same as a concurrent registration committing
	// between the lookup and the insert
	seed := &model.User{Name: "gopher", Email: "gopher@example.com", Password: "x", Role: model.RoleUser}
	if err := env.db.Create(seed).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	if err := env.db.Delete(seed).Error; err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	dup := &model.User{Name: "other", Email: "gopher@example.com", Password: "password123"}
	if err := auth.Register(dup); !errors.Is(err, util.ErrEmailRegistered) {
		t.Fatalf("expected ErrEmailRegistered from the unique index, got %v", err)
	}
}
