package services

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type AuthStore interface {
	FindUserByUsername(username string) (*User, error)
	CountUsers() (int, error)
	// AddFirstUser inserts u only while no user exists, returning
	// ErrAdminExists otherwise. The check must be atomic in the store.
	AddFirstUser(u *User) error
}

// TokenSigner issues a signed session token for the given user claims.
type TokenSigner func(uid, role string) (string, error)

type AuthService struct {
	store     AuthStore
	now       func() time.Time
	idGen     func(prefix string, n int) string
	signToken TokenSigner
}

type LoginResult struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}

func NewAuthService(store AuthStore, signer TokenSigner) *AuthService {
	return &AuthService{
		store:     store,
		now:       func() time.Time { return time.Now().UTC() },
		idGen:     func(prefix string, n int) string { return prefix + shortID(n) },
		signToken: signer,
	}
}

// Register creates the one admin account. It succeeds only while no user
// exists; the platform has no self-service registration beyond that.
func (s *AuthService) Register(username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return NewInvalidError("username and password required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u := &User{
		ID:        s.idGen("u", 7),
		Username:  username,
		PassHash:  hash,
		Role:      RoleAdmin,
		CreatedAt: s.now(),
	}
	if err := s.store.AddFirstUser(u); err != nil {
		if errors.Is(err, ErrAdminExists) {
			return NewConflictError("admin already exists")
		}
		return err
	}
	return nil
}

// Login verifies credentials and issues a session token. Missing users and
// bad passwords are indistinguishable to the caller.
func (s *AuthService) Login(username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return nil, NewInvalidError("username and password required")
	}
	u, err := s.store.FindUserByUsername(username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, NewUnauthorizedError("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(u.PassHash, []byte(password)); err != nil {
		return nil, NewUnauthorizedError("invalid credentials")
	}
	if s.signToken == nil {
		return nil, NewInvalidError("token signer not configured")
	}
	token, err := s.signToken(u.ID, u.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		Token: token,
		User:  PublicUser{ID: u.ID, Username: u.Username, Role: u.Role},
	}, nil
}

// HasUser reports whether an admin has been registered yet. Clients use it
// to gate the one-time setup flow.
func (s *AuthService) HasUser() (bool, error) {
	n, err := s.store.CountUsers()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
