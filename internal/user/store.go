package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

// Store defines the interface for user data operations.
type Store interface {
	Create(ctx context.Context, u *User) (int64, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	UpdateName(ctx context.Context, id int64, name string) error
	UpdatePreferences(ctx context.Context, id int64, prefs Preferences) error
}

const uniqueViolation = "23505"

// PostgresStore implements Store for PostgreSQL.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Create inserts a user. A duplicate email yields ErrEmailTaken.
func (s *PostgresStore) Create(ctx context.Context, u *User) (int64, error) {
	var id int64
	err := s.db.QueryRowxContext(ctx,
		"INSERT INTO users (email, password, name, preferences) VALUES ($1, $2, $3, $4) RETURNING id",
		u.Email,
		u.PasswordHash,
		u.Name,
		u.Preferences,
	).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return 0, ErrEmailTaken
		}
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.get(ctx, "SELECT id, email, password, name, preferences, created_at FROM users WHERE email = $1", email)
}

func (s *PostgresStore) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.get(ctx, "SELECT id, email, password, name, preferences, created_at FROM users WHERE id = $1", id)
}

func (s *PostgresStore) get(ctx context.Context, query string, arg any) (*User, error) {
	var u User
	if err := s.db.GetContext(ctx, &u, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

func (s *PostgresStore) UpdateName(ctx context.Context, id int64, name string) error {
	return s.update(ctx, "UPDATE users SET name = $1 WHERE id = $2", name, id)
}

func (s *PostgresStore) UpdatePreferences(ctx context.Context, id int64, prefs Preferences) error {
	return s.update(ctx, "UPDATE users SET preferences = $1 WHERE id = $2", prefs, id)
}

func (s *PostgresStore) update(ctx context.Context, query string, value any, id int64) error {
	res, err := s.db.ExecContext(ctx, query, value, id)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// MemoryStore implements Store in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	nextID  int64
	byID    map[int64]*User
	byEmail map[string]int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[int64]*User), byEmail: make(map[string]int64)}
}

func (s *MemoryStore) Create(_ context.Context, u *User) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[u.Email]; exists {
		return 0, ErrEmailTaken
	}
	s.nextID++
	cp := *u
	cp.ID = s.nextID
	cp.CreatedAt = time.Now()
	s.byID[cp.ID] = &cp
	s.byEmail[cp.Email] = cp.ID
	return cp.ID, nil
}

func (s *MemoryStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	s.mu.RLock()
	id, ok := s.byEmail[email]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return s.GetByID(ctx, id)
}

func (s *MemoryStore) GetByID(_ context.Context, id int64) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *MemoryStore) UpdateName(_ context.Context, id int64, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.Name = name
	return nil
}

func (s *MemoryStore) UpdatePreferences(_ context.Context, id int64, prefs Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.Preferences = prefs
	return nil
}
