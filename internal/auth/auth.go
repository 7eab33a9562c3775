// Package auth issues and verifies signed session tokens and checks login
// credentials.
package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/George-Paul-Tony-C/Upskilling-Platform/internal/model"
)

// DefaultTTL is how long an issued token stays valid.
const DefaultTTL = time.Hour

const devSecret = "dev-secret-change-me"

var (
	// ErrInvalidCredentials covers both unknown emails and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken covers missing, malformed, tampered and expired tokens.
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the signed token payload.
type Claims struct {
	UserID string     `json:"id"`
	Role   model.Role `json:"role"`
	jwt.RegisteredClaims
}

// Manager signs and verifies HS256 session tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager returns a token manager. An empty secret falls back to a fixed
// development value; a non-positive ttl uses DefaultTTL.
func NewManager(secret string, ttl time.Duration) *Manager {
	if secret == "" {
		slog.Warn("no JWT secret configured, using development secret")
		secret = devSecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Issue returns a signed token carrying the user's id and role.
func (m *Manager) Issue(u model.User) (string, error) {
	return m.issueAt(u, time.Now())
}

func (m *Manager) issueAt(u model.User, now time.Time) (string, error) {
	claims := Claims{
		UserID: u.ID,
		Role:   u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the carried identity.
func (m *Manager) Verify(token string) (*model.Identity, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.UserID == "" || !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}
	return &model.Identity{ID: claims.UserID, Role: claims.Role}, nil
}

// UserFinder looks users up by email.
type UserFinder interface {
	GetUserByEmail(email string) (model.User, bool)
}

// Service checks credentials against the user directory.
type Service struct {
	users     UserFinder
	tokens    *Manager
	dummyHash []byte
}

// NewService returns a login service.
func NewService(users UserFinder, tokens *Manager) *Service {
	// Compared against when the email is unknown so both failure paths cost
	// one bcrypt comparison.
	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("failed to prepare dummy hash", "error", err)
	}
	return &Service{users: users, tokens: tokens, dummyHash: dummy}
}

// LoginResult is returned on successful login.
type LoginResult struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Login verifies email and password and issues a token.
func (s *Service) Login(email, password string) (*LoginResult, error) {
	user, ok := s.users.GetUserByEmail(email)
	if !ok || user.PasswordHash == "" {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	slog.Info("user logged in", "id", user.ID, "role", user.Role)
	return &LoginResult{Token: token, User: user}, nil
}

// Verify delegates to the token manager.
func (s *Service) Verify(token string) (*model.Identity, error) {
	return s.tokens.Verify(token)
}
