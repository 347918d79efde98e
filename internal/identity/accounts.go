package identity

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/broncodesk/ticket-tracker/internal/domain"
	"github.com/broncodesk/ticket-tracker/internal/store"
	"github.com/broncodesk/ticket-tracker/pkg/apperrors"
)

// Account is a login principal.
type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         domain.Role
	Team         *string
}

// Caller converts the account to its caller representation.
func (a *Account) Caller() domain.Caller {
	return domain.Caller{ID: a.ID, Name: a.Name, Role: a.Role, Team: a.Team}
}

// AccountDirectory looks up login principals.
type AccountDirectory interface {
	GetByEmail(ctx context.Context, email string) (*Account, error)
}

// Service issues sessions for valid credentials.
type Service struct {
	accounts AccountDirectory
	tokens   *TokenManager
}

// NewService constructs the service.
func NewService(accounts AccountDirectory, tokens *TokenManager) *Service {
	return &Service{accounts: accounts, tokens: tokens}
}

// Login verifies credentials and returns a signed session token.
func (s *Service) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", time.Time{}, apperrors.NewUnauthenticated("invalid credentials")
		}
		return "", time.Time{}, apperrors.NewStoreUnavailable(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return "", time.Time{}, apperrors.NewUnauthenticated("invalid credentials")
	}
	return s.tokens.Issue(account.Caller())
}

// HashPassword produces a bcrypt hash for seeding accounts.
func HashPassword(password string, cost int) (string, error) {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
