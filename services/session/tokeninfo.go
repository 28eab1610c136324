package session

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"cityhop/api"
)

// TokenInfo describes the persisted token for display purposes (profile
// screens show "session expires ..."). The token is treated as opaque for
// every auth decision; this inspection never validates the signature.
type TokenInfo struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry in the past. A token
// without an expiry claim is never considered expired here; the server's
// 401 remains the only authority.
func (i TokenInfo) Expired() bool {
	return !i.ExpiresAt.IsZero() && time.Now().After(i.ExpiresAt)
}

// TokenInfo inspects the persisted token's claims without verification.
func (s *Service) TokenInfo(ctx context.Context) (*TokenInfo, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, api.NewError(api.CategoryAuth, msgNotAuthenticated, ErrNotAuthenticated)
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		// Not a JWT; still a valid opaque token.
		return &TokenInfo{}, nil
	}

	info := &TokenInfo{}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info, nil
}
