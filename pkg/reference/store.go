// Package reference holds the categories and users shared by every view. They are loaded once per
// application run and are read-only afterwards.
package reference

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dhis2-sre/im-events/pkg/model"
	"golang.org/x/sync/errgroup"
)

// Source fetches the reference collections.
type Source interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

func NewStore(source Source, logger *slog.Logger) *Store {
	return &Store{
		source:  source,
		logger:  logger,
		loading: true,
	}
}

type Store struct {
	source Source
	logger *slog.Logger
	once   sync.Once

	mu         sync.RWMutex
	categories []model.Category
	users      []model.User
	loading    bool
}

// Load fetches categories and users concurrently. Only the first call does any work. A failed load
// is logged and leaves the store loading; it isn't retried.
func (s *Store) Load(ctx context.Context) {
	s.once.Do(func() {
		if err := s.load(ctx); err != nil {
			s.logger.ErrorContext(ctx, "Error fetching reference data", "error", err)
			return
		}
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
		s.logger.InfoContext(ctx, "Reference data loaded", "categories", len(s.Categories()), "users", len(s.Users()))
	})
}

func (s *Store) load(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		categories, err := s.source.ListCategories(ctx)
		if err != nil {
			return fmt.Errorf("failed to load categories: %v", err)
		}
		s.mu.Lock()
		s.categories = categories
		s.mu.Unlock()
		return nil
	})

	g.Go(func() error {
		users, err := s.source.ListUsers(ctx)
		if err != nil {
			return fmt.Errorf("failed to load users: %v", err)
		}
		s.mu.Lock()
		s.users = users
		s.mu.Unlock()
		return nil
	})

	return g.Wait()
}

// Loading is true until both collections have been loaded.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) Categories() []model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Category(nil), s.categories...)
}

func (s *Store) Users() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.User(nil), s.users...)
}

// Category returns the category with given id and whether it exists.
func (s *Store) Category(id uint) (model.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, category := range s.categories {
		if category.ID == id {
			return category, true
		}
	}
	return model.Category{}, false
}

// User returns the user with given id and whether it exists.
func (s *Store) User(id uint) (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.ID == id {
			return user, true
		}
	}
	return model.User{}, false
}
