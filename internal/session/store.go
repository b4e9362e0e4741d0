package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/NilaRamamoorthy/ecommerce-frontend/internal/domain"
	"github.com/NilaRamamoorthy/ecommerce-frontend/internal/storage"
)

const (
	accessTokenKey  = "access_token"
	refreshTokenKey = "refresh_token"
)

// Store keeps the bearer tokens in key-value storage. The session is either
// present (authenticated) or absent (anonymous); there is no expiry tracking
// and the refresh token is write-only.
type Store struct {
	kv storage.KV

	// One backend web client clears only the access token on logout and
	// leaves the refresh token behind. Both behaviors are supported.
	clearRefreshOnLogout bool
}

type Options struct {
	ClearRefreshTokenOnLogout bool
}

func NewStore(kv storage.KV, opts Options) *Store {
	return &Store{
		kv:                   kv,
		clearRefreshOnLogout: opts.ClearRefreshTokenOnLogout,
	}
}

// Save records a freshly issued session.
func (s *Store) Save(ctx context.Context, sess domain.Session) error {
	if sess.AccessToken == "" {
		return errors.New("session has no access token")
	}
	if err := s.kv.Set(ctx, accessTokenKey, []byte(sess.AccessToken)); err != nil {
		return fmt.Errorf("persist access token: %w", err)
	}
	if sess.RefreshToken != "" {
		if err := s.kv.Set(ctx, refreshTokenKey, []byte(sess.RefreshToken)); err != nil {
			return fmt.Errorf("persist refresh token: %w", err)
		}
	}
	return nil
}

// Token returns the stored access token, or "" when anonymous.
func (s *Store) Token(ctx context.Context) (string, error) {
	raw, err := s.kv.Get(ctx, accessTokenKey)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load access token: %w", err)
	}
	return string(raw), nil
}

// Authenticated reports whether an access token is present. Storage errors
// count as anonymous; the server is the final authority anyway.
func (s *Store) Authenticated(ctx context.Context) bool {
	token, err := s.Token(ctx)
	return err == nil && token != ""
}

// Clear logs the user out by deleting the stored tokens.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, accessTokenKey); err != nil {
		return fmt.Errorf("clear access token: %w", err)
	}
	if s.clearRefreshOnLogout {
		if err := s.kv.Delete(ctx, refreshTokenKey); err != nil {
			return fmt.Errorf("clear refresh token: %w", err)
		}
	}
	return nil
}
