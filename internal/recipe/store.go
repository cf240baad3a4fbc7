package recipe

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when a saved recipe does not exist or belongs to
// another user.
var ErrNotFound = errors.New("saved recipe not found")

// Store defines the interface for saved recipe operations.
type Store interface {
	Save(ctx context.Context, saved *SavedRecipe) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]*SavedRecipe, error)
	Delete(ctx context.Context, userID, id int64) error
}

// PostgresStore implements Store for PostgreSQL.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore creates a new PostgresStore on an open, migrated database.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Save inserts a saved recipe and returns its id.
func (s *PostgresStore) Save(ctx context.Context, saved *SavedRecipe) (int64, error) {
	var id int64
	err := s.db.QueryRowxContext(ctx,
		"INSERT INTO saved_recipes (user_id, recipe, memo, category) VALUES ($1, $2, $3, $4) RETURNING id",
		saved.UserID,
		saved.Recipe,
		saved.Memo,
		saved.Category,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to save recipe: %w", err)
	}
	return id, nil
}

// ListByUser returns a user's saved recipes, newest first.
func (s *PostgresStore) ListByUser(ctx context.Context, userID int64) ([]*SavedRecipe, error) {
	recipes := []*SavedRecipe{}
	err := s.db.SelectContext(ctx, &recipes,
		"SELECT id, user_id, recipe, memo, category, created_at FROM saved_recipes WHERE user_id = $1 ORDER BY created_at DESC, id DESC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved recipes: %w", err)
	}
	return recipes, nil
}

// Delete removes a saved recipe owned by userID.
func (s *PostgresStore) Delete(ctx context.Context, userID, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM saved_recipes WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete saved recipe: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete saved recipe: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// MemoryStore implements Store in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	saved  map[int64]*SavedRecipe
	now    func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{saved: make(map[int64]*SavedRecipe), now: time.Now}
}

func (s *MemoryStore) Save(_ context.Context, saved *SavedRecipe) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	cp := *saved
	cp.ID = s.nextID
	cp.CreatedAt = s.now()
	s.saved[cp.ID] = &cp
	return cp.ID, nil
}

func (s *MemoryStore) ListByUser(_ context.Context, userID int64) ([]*SavedRecipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*SavedRecipe{}
	for _, r := range s.saved {
		if r.UserID == userID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *MemoryStore) Delete(_ context.Context, userID, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.saved[id]
	if !ok || r.UserID != userID {
		return ErrNotFound
	}
	delete(s.saved, id)
	return nil
}
