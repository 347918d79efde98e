package memstore

import (
	"context"
	"sync"

	"github.com/broncodesk/ticket-tracker/internal/domain"
	"github.com/broncodesk/ticket-tracker/internal/store"
)

// Groups is an in-memory GroupDirectory.
type Groups struct {
	mu     sync.RWMutex
	groups map[string]*domain.Group
	order  []string
}

// NewGroups constructs a directory seeded with the given groups.
func NewGroups(groups ...domain.Group) *Groups {
	g := &Groups{groups: map[string]*domain.Group{}}
	for i := range groups {
		g.Put(groups[i])
	}
	return g
}

var _ store.GroupDirectory = (*Groups)(nil)

// Put adds or replaces a group.
func (g *Groups) Put(group domain.Group) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.groups[group.ID]; !exists {
		g.order = append(g.order, group.ID)
	}
	g.groups[group.ID] = cloneGroup(&group)
}

func (g *Groups) Get(ctx context.Context, id string) (*domain.Group, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	group, ok := g.groups[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return cloneGroup(group), nil
}

func (g *Groups) List(ctx context.Context) ([]domain.Group, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	result := make([]domain.Group, 0, len(g.order))
	for _, id := range g.order {
		result = append(result, *cloneGroup(g.groups[id]))
	}
	return result, nil
}

func cloneGroup(group *domain.Group) *domain.Group {
	dup := *group
	dup.Members = append([]string(nil), group.Members...)
	dup.DefaultHandler = clonePtr(group.DefaultHandler)
	return &dup
}
