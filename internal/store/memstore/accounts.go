package memstore

import (
	"context"
	"sync"

	"github.com/broncodesk/ticket-tracker/internal/identity"
	"github.com/broncodesk/ticket-tracker/internal/store"
)

// Accounts is an in-memory AccountDirectory.
type Accounts struct {
	mu      sync.RWMutex
	byEmail map[string]*identity.Account
}

// NewAccounts constructs a directory seeded with the given accounts.
func NewAccounts(accounts ...identity.Account) *Accounts {
	a := &Accounts{byEmail: map[string]*identity.Account{}}
	for i := range accounts {
		a.Put(accounts[i])
	}
	return a
}

var _ identity.AccountDirectory = (*Accounts)(nil)

// Put adds or replaces an account.
func (a *Accounts) Put(account identity.Account) {
	a.mu.Lock()
	defer a.mu.Unlock()
	dup := account
	a.byEmail[account.Email] = &dup
}

func (a *Accounts) GetByEmail(ctx context.Context, email string) (*identity.Account, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	account, ok := a.byEmail[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	dup := *account
	return &dup, nil
}
