package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/safartours/safarserver/auth/storage"
	"github.com/safartours/safarserver/auth/users"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrNotAuthorized covers every unauthenticated outcome: missing or
	// malformed Authorization header, bad signature, expired token,
	// vanished identity, unknown email and wrong password. Callers get no
	// finer detail on purpose.
	ErrNotAuthorized = errors.New("invalid credentials")
	// ErrForbidden means the identity is valid but the role does not match
	// the one the route requires.
	ErrForbidden = errors.New("access denied")
	// ErrUserExists reports a username or email uniqueness conflict.
	ErrUserExists = storage.ErrUserExists
	// ErrUserNotFound reports a profile lookup of an identity that no
	// longer exists.
	ErrUserNotFound = errors.New("user not found")

	errEmptySecret = errors.New("auth: token secret is not configured")
)

const defaultExpiration = 7 * 24 * time.Hour

type Service struct {
	storage  storage.AuthStorage
	cfg      Config
	tokenTTL time.Duration
	log      *logrus.Entry
}

// New validates the signing configuration and, when configured, bootstraps
// the initial admin identity. A missing token secret is fatal here: issuing
// unverifiable tokens is worse than not starting.
func New(ctx context.Context, cfg Config, store storage.AuthStorage, l *logrus.Logger) (*Service, error) {
	if cfg.Token == "" {
		return nil, errEmptySecret
	}
	ttl := defaultExpiration
	if cfg.Expiration != "" {
		var err error
		ttl, err = time.ParseDuration(cfg.Expiration)
		if err != nil {
			return nil, err
		}
	}
	s := Service{
		cfg:      cfg,
		storage:  store,
		tokenTTL: ttl,
		log:      l.WithField("from", "auth-service"),
	}
	if cfg.AdminEmail != "" {
		if err := s.bootstrapAdmin(ctx); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

func (s *Service) bootstrapAdmin(ctx context.Context) error {
	_, err := s.storage.GetUserByEmail(ctx, s.cfg.AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	hash, err := hashPassword(s.cfg.AdminPassword)
	if err != nil {
		return err
	}
	username := s.cfg.AdminUsername
	if username == "" {
		username = "admin"
	}
	err = s.storage.CreateUser(ctx, users.User{
		ID:       uuid.New(),
		Username: username,
		Email:    s.cfg.AdminEmail,
		Role:     users.RoleAdmin,
	}, hash)
	if err != nil {
		return err
	}
	s.log.WithField("email", s.cfg.AdminEmail).Info("bootstrap admin created")
	return nil
}

// Register creates an identity and issues its first token. Role defaults to
// user when empty. A duplicate username or email surfaces as ErrUserExists,
// including the case where two registrations race at the store.
func (s *Service) Register(ctx context.Context, username, email, password string, role users.Role) (users.User, string, error) {
	if role == "" {
		role = users.RoleUser
	}
	hash, err := hashPassword(password)
	if err != nil {
		return users.User{}, "", err
	}
	user := users.User{
		ID:       uuid.New(),
		Username: username,
		Email:    email,
		Role:     role,
	}
	if err := s.storage.CreateUser(ctx, user, hash); err != nil {
		return users.User{}, "", err
	}
	user, err = s.storage.GetUser(ctx, user.ID)
	if err != nil {
		return users.User{}, "", err
	}
	token, err := s.issueToken(user.ID, user.Role)
	if err != nil {
		return users.User{}, "", err
	}
	return user, token, nil
}

// Login verifies the email/password pair and issues a token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (users.User, string, error) {
	hash, err := s.storage.GetUserSecret(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, "", ErrNotAuthorized
		}
		return users.User{}, "", err
	}
	if !verifyPassword(password, hash) {
		return users.User{}, "", ErrNotAuthorized
	}
	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, "", ErrNotAuthorized
		}
		return users.User{}, "", err
	}
	token, err := s.issueToken(user.ID, user.Role)
	if err != nil {
		return users.User{}, "", err
	}
	return user, token, nil
}

// Authenticate resolves an Authorization header value to a live identity.
// The header must be exactly "Bearer <token>". Every failure collapses into
// ErrNotAuthorized; the distinction is logged, never surfaced.
func (s *Service) Authenticate(ctx context.Context, header string) (users.User, error) {
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		return users.User{}, ErrNotAuthorized
	}
	id, err := s.parseToken(raw)
	if err != nil {
		s.log.WithError(err).Debug("token rejected")
		return users.User{}, ErrNotAuthorized
	}
	// Always the current record, not the token's snapshot: a role change
	// takes effect on the next request even though the token still carries
	// the old claim.
	user, err := s.storage.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, ErrNotAuthorized
		}
		return users.User{}, err
	}
	return user, nil
}

// Authorize is the role gate: exact match or ErrForbidden. Pure decision,
// no I/O.
func (s *Service) Authorize(user users.User, required users.Role) error {
	if user.Role != required {
		return ErrForbidden
	}
	return nil
}

// GetUser loads an identity by ID for profile lookups.
func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (users.User, error) {
	user, err := s.storage.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, ErrUserNotFound
		}
		return users.User{}, err
	}
	return user, nil
}

// ListUsers returns all identities without password hashes, newest first.
func (s *Service) ListUsers(ctx context.Context) ([]users.User, error) {
	return s.storage.ListUsers(ctx)
}

type tokenClaims struct {
	jwt.StandardClaims
	Role string `json:"role"`
}

func (s *Service) issueToken(userID uuid.UUID, role users.Role) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		StandardClaims: jwt.StandardClaims{
			Subject:   userID.String(),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(s.tokenTTL).Unix(),
		},
		Role: string(role),
	})
	return token.SignedString([]byte(s.cfg.Token))
}

func (s *Service) parseToken(raw string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(raw, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.Token), nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return uuid.Nil, errors.New("invalid token")
	}
	return uuid.Parse(claims.Subject)
}

// hashPassword derives a one-way salted hash. bcrypt generates a fresh salt
// per call and embeds it in the output, so hashing the same plaintext twice
// yields different strings.
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// verifyPassword recomputes with the salt embedded in hash and compares in
// constant time. A malformed or corrupt hash is just a failed match.
func verifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
