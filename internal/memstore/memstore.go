// Package memstore 进程内存储，用于测试和 store.driver=memory
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"daybook-backend/internal/journal"
)

type Store struct {
	mu      sync.RWMutex
	entries map[string]*journal.Entry
	users   map[string]*journal.User
}

func New() *Store {
	return &Store{
		entries: make(map[string]*journal.Entry),
		users:   make(map[string]*journal.User),
	}
}

func (s *Store) Create(_ context.Context, e *journal.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[e.ID]; ok {
		return fmt.Errorf("create entry %s: duplicate id", e.ID)
	}
	s.entries[e.ID] = e.Clone()
	return nil
}

func (s *Store) FindByID(_ context.Context, id string) (*journal.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	if !ok {
		return nil, journal.ErrNotFound
	}
	return e.Clone(), nil
}

func (s *Store) FindMany(_ context.Context, f journal.Filter, order journal.OrderBy) ([]*journal.Entry, error) {
	s.mu.RLock()
	out := make([]*journal.Entry, 0)
	for _, e := range s.entries {
		if f.Match(e) {
			out = append(out, e.Clone())
		}
	}
	s.mu.RUnlock()

	key := func(e *journal.Entry) int64 { return e.CreatedAt.UnixNano() }
	if order.Field == journal.OrderByUpdatedAt {
		key = func(e *journal.Entry) int64 { return e.UpdatedAt.UnixNano() }
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := key(out[i]), key(out[j])
		if a == b {
			return out[i].ID < out[j].ID
		}
		if order.Desc {
			return a > b
		}
		return a < b
	})
	return out, nil
}

func (s *Store) Update(_ context.Context, id string, p journal.Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return journal.ErrNotFound
	}
	p.Apply(e)
	return nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return journal.ErrNotFound
	}
	delete(s.entries, id)
	return nil
}

func (s *Store) FindUser(_ context.Context, id string) (*journal.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, journal.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (s *Store) UpsertUser(_ context.Context, u *journal.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *u
	s.users[u.ID] = &c
	return nil
}
