package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/bookvault/catalog-api/internal/api/metrics"
	"github.com/bookvault/catalog-api/internal/core/domain"
	"github.com/bookvault/catalog-api/internal/core/ports"
)

const tokenSecretBytes = 32

// AuthService implements registration, login, and the opaque token lifecycle.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenRepository
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenRepository, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, log: log}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	taken, err := s.EmailTaken(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.FieldTaken("email")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		// The unique index catches writers that raced past EmailTaken.
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, domain.FieldTaken("email")
		}
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.AuthAttemptsTotal.WithLabelValues("failure").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("failure").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, user)
	if err != nil {
		return "", nil, err
	}

	metrics.AuthAttemptsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return token, user, nil
}

func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	id, secret, ok := splitToken(token)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}

	record, err := s.tokens.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}

	presented := hashSecret(secret)
	if subtle.ConstantTimeCompare([]byte(record.SecretHash), []byte(presented)) != 1 {
		return nil, domain.ErrUnauthenticated
	}

	user, err := s.users.FindByID(ctx, record.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	// Resolve the token first so a forged value cannot revoke anything.
	if _, err := s.Authenticate(ctx, token); err != nil {
		return err
	}

	id, _, _ := splitToken(token)
	if err := s.tokens.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return domain.ErrUnauthenticated
		}
		return err
	}

	s.log.Info().Str("token_id", id).Msg("token revoked")
	return nil
}

func (s *AuthService) EmailTaken(ctx context.Context, email string) (bool, error) {
	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, domain.ErrUserNotFound) {
		return false, nil
	}
	return false, err
}

// issueToken mints a random secret, persists its digest, and returns the
// plaintext "<token-id>|<secret>". The plaintext is never recoverable after
// this call returns.
func (s *AuthService) issueToken(ctx context.Context, user *domain.User) (string, error) {
	raw := make([]byte, tokenSecretBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	secret := hex.EncodeToString(raw)

	record := &domain.AuthToken{
		ID:         uuid.NewString(),
		UserID:     user.ID,
		SecretHash: hashSecret(secret),
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.tokens.Create(ctx, record); err != nil {
		return "", err
	}

	return record.ID + "|" + secret, nil
}

func hashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// splitToken separates "<token-id>|<secret>" into its parts. The id prefix
// keeps the lookup a single primary-key read.
func splitToken(token string) (id, secret string, ok bool) {
	id, secret, ok = strings.Cut(token, "|")
	if !ok || id == "" || secret == "" {
		return "", "", false
	}
	return id, secret, true
}
