// Package memory implements in-memory repositories for development and
// testing.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Nicolas-Jorq/budget-app-sub002/internal/domain"
)

// DB implements the domain repositories in memory.
type DB struct {
	mu       sync.Mutex
	weights  []domain.WeightLog
	users    []*domain.User
	sessions map[string]*domain.Session

	weightIDCounter int64
	userIDCounter   int64

	// CreateWeightErr, when set, is returned by CreateWeightLog. Used by
	// tests to exercise per-row persistence failure paths.
	CreateWeightErr error
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{sessions: make(map[string]*domain.Session)}
}

// Ensure interfaces are met.
var _ domain.WeightRepository = (*DB)(nil)
var _ domain.UserRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// --- WeightRepository ---

// CreateWeightLog stores a new weight log.
func (db *DB) CreateWeightLog(ctx context.Context, userID int64, weight float64, unit string, date time.Time, notes string) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.CreateWeightErr != nil {
		return 0, db.CreateWeightErr
	}

	db.weightIDCounter++
	db.weights = append(db.weights, domain.WeightLog{
		ID:        db.weightIDCounter,
		UserID:    userID,
		Weight:    weight,
		Unit:      unit,
		Date:      date,
		Notes:     notes,
		CreatedAt: time.Now().UTC(),
	})
	return db.weightIDCounter, nil
}

// ListWeightDates returns every distinct log date for the user.
func (db *DB) ListWeightDates(ctx context.Context, userID int64) ([]time.Time, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	seen := make(map[string]bool)
	var out []time.Time
	for _, w := range db.weights {
		if w.UserID != userID {
			continue
		}
		key := w.Date.Format("2006-01-02")
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, w.Date)
	}
	return out, nil
}

// ListWeightsSince returns date/weight pairs on or after since, ascending
// by date with insertion order preserved on ties.
func (db *DB) ListWeightsSince(ctx context.Context, userID int64, since time.Time) ([]domain.WeightPoint, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var out []domain.WeightPoint
	for _, w := range db.weights {
		if w.UserID != userID || w.Date.Before(since) {
			continue
		}
		out = append(out, domain.WeightPoint{Date: w.Date, Weight: w.Weight})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// ListRecentWeightLogs returns the most recently created logs up to limit.
func (db *DB) ListRecentWeightLogs(ctx context.Context, userID int64, limit int) ([]domain.WeightLog, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var result []domain.WeightLog
	for _, w := range db.weights {
		if w.UserID == userID {
			result = append(result, w)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// DeleteLatestWeightLog removes the most recently created log for the user.
func (db *DB) DeleteLatestWeightLog(ctx context.Context, userID int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	lastIdx := -1
	var lastTime time.Time
	for i, w := range db.weights {
		if w.UserID != userID {
			continue
		}
		if lastIdx == -1 || w.CreatedAt.After(lastTime) {
			lastIdx = i
			lastTime = w.CreatedAt
		}
	}
	if lastIdx == -1 {
		return false, nil
	}
	db.weights = append(db.weights[:lastIdx], db.weights[lastIdx+1:]...)
	return true, nil
}

// --- UserRepository ---

// GetByUsername retrieves a user by username.
func (db *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

// GetByID retrieves a user by ID.
func (db *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

// Create creates a new user.
func (db *DB) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Username == username {
			return nil, errors.New("user already exists")
		}
	}

	db.userIDCounter++
	u := &domain.User{
		ID:           db.userIDCounter,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.users = append(db.users, u)
	return u, nil
}

// Count returns the total number of users.
func (db *DB) Count(ctx context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.users), nil
}

// --- SessionRepository ---

// SessionRepo implements session persistence.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new session repository.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[token] = &domain.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.sessions[token]; ok {
		if time.Now().After(s.ExpiresAt) {
			delete(r.db.sessions, token)
			return nil, nil
		}
		return s, nil
	}
	return nil, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := time.Now()
	for k, v := range r.db.sessions {
		if now.After(v.ExpiresAt) {
			delete(r.db.sessions, k)
		}
	}
	return nil
}
