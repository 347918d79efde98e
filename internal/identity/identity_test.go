package identity

import (
	"context"
	"testing"

	"github.com/broncodesk/ticket-tracker/internal/domain"
	"github.com/broncodesk/ticket-tracker/internal/store"
	"github.com/broncodesk/ticket-tracker/pkg/apperrors"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 15)
	team := "billing"
	caller := domain.Caller{ID: "a-1", Name: "Avery Admin", Role: domain.RoleAdmin, Team: &team}

	token, expiresAt, err := tm.Issue(caller)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if expiresAt.IsZero() {
		t.Fatal("expiry not set")
	}

	claims, err := tm.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.Subject != "a-1" || claims.Name != "Avery Admin" || claims.Role != domain.RoleAdmin {
		t.Errorf("claims = %+v", claims)
	}
	if claims.Team == nil || *claims.Team != "billing" {
		t.Errorf("team claim = %v", claims.Team)
	}
}

func TestParseRejectsForeignSignature(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", 15).Issue(domain.Caller{ID: "u-1", Role: domain.RoleEndUser})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := NewTokenManager("secret-b", 15).Parse(token); err == nil {
		t.Fatal("token signed with a different secret was accepted")
	}
}

type fakeAccounts struct {
	account *Account
}

func (f *fakeAccounts) GetByEmail(ctx context.Context, email string) (*Account, error) {
	if f.account == nil || f.account.Email != email {
		return nil, store.ErrNotFound
	}
	dup := *f.account
	return &dup, nil
}

func TestLogin(t *testing.T) {
	hash, err := HashPassword("hunter2", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	accounts := &fakeAccounts{account: &Account{
		ID:           "u-1",
		Name:         "Uma User",
		Email:        "user@example.com",
		PasswordHash: hash,
		Role:         domain.RoleEndUser,
	}}
	tm := NewTokenManager("test-secret", 15)
	svc := NewService(accounts, tm)

	token, _, err := svc.Login(context.Background(), "user@example.com", "hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims, err := tm.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.Subject != "u-1" {
		t.Errorf("subject = %q", claims.Subject)
	}

	if _, _, err := svc.Login(context.Background(), "user@example.com", "wrong"); !apperrors.HasCode(err, apperrors.CodeUnauthenticated) {
		t.Errorf("wrong password err = %v, want UNAUTHENTICATED", err)
	}
	if _, _, err := svc.Login(context.Background(), "missing@example.com", "hunter2"); !apperrors.HasCode(err, apperrors.CodeUnauthenticated) {
		t.Errorf("unknown account err = %v, want UNAUTHENTICATED", err)
	}
}

func TestJWTProviderResolvesCaller(t *testing.T) {
	tm := NewTokenManager("test-secret", 15)
	token, _, err := tm.Issue(domain.Caller{ID: "a-1", Name: "Avery Admin", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	provider := NewJWTProvider(tm)
	caller, err := provider.CurrentCaller(context.Background(), token)
	if err != nil {
		t.Fatalf("CurrentCaller: %v", err)
	}
	if caller.ID != "a-1" || !caller.IsAdmin() {
		t.Errorf("caller = %+v", caller)
	}

	if _, err := provider.CurrentCaller(context.Background(), ""); !apperrors.HasCode(err, apperrors.CodeUnauthenticated) {
		t.Errorf("empty token err = %v, want UNAUTHENTICATED", err)
	}
	if _, err := provider.CurrentCaller(context.Background(), "garbage"); !apperrors.HasCode(err, apperrors.CodeUnauthenticated) {
		t.Errorf("garbage token err = %v, want UNAUTHENTICATED", err)
	}
}
