package identity

import (
	"context"

	"github.com/broncodesk/ticket-tracker/internal/domain"
	"github.com/broncodesk/ticket-tracker/pkg/apperrors"
)

// Provider resolves the caller behind a request.
type Provider interface {
	// CurrentCaller returns the authenticated caller for a session
	// token, or an unauthenticated error when no valid session exists.
	CurrentCaller(ctx context.Context, token string) (domain.Caller, error)
}

// JWTProvider is a Provider backed by signed session tokens.
type JWTProvider struct {
	tokens *TokenManager
}

// NewJWTProvider constructs the provider.
func NewJWTProvider(tokens *TokenManager) *JWTProvider {
	return &JWTProvider{tokens: tokens}
}

var _ Provider = (*JWTProvider)(nil)

func (p *JWTProvider) CurrentCaller(ctx context.Context, token string) (domain.Caller, error) {
	if token == "" {
		return domain.Caller{}, apperrors.NewUnauthenticated("missing session token")
	}
	claims, err := p.tokens.Parse(token)
	if err != nil {
		return domain.Caller{}, apperrors.NewUnauthenticated("invalid session token")
	}
	return domain.Caller{
		ID:   claims.Subject,
		Name: claims.Name,
		Role: claims.Role,
		Team: claims.Team,
	}, nil
}
