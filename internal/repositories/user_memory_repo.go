package repositories

import (
	"fmt"
	"sync"
	"time"

	"storefront/internal/models"
)

// MemoryUserRepository is an in-memory implementation of UserRepository.
// Username and email lookups go through secondary indexes (case-sensitive
// exact match) so they stay O(1) instead of scanning all users.
type MemoryUserRepository struct {
	users      map[int]models.User
	byUsername map[string]int
	byEmail    map[string]int
	nextID     int
	mu         sync.RWMutex
}

// NewMemoryUserRepository creates a new instance of MemoryUserRepository.
// The seed users are inserted verbatim, admin flag included; this is the
// only path that can produce an admin account.
func NewMemoryUserRepository(seed ...models.User) *MemoryUserRepository {
	r := &MemoryUserRepository{
		users:      make(map[int]models.User),
		byUsername: make(map[string]int),
		byEmail:    make(map[string]int),
		nextID:     1,
	}
	for _, u := range seed {
		u.ID = r.nextID
		r.nextID++
		if u.CreatedAt.IsZero() {
			u.CreatedAt = time.Now()
		}
		r.users[u.ID] = u
		r.byUsername[u.Username] = u.ID
		r.byEmail[u.Email] = u.ID
	}
	return r
}

// Create inserts a new user. The admin flag is forced off regardless of
// input: privilege cannot be granted through registration. The uniqueness
// check and the insert run under one lock, so concurrent registrations of
// the same username cannot both succeed.
func (r *MemoryUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byUsername[user.Username]; taken {
		return fmt.Errorf("username %q: %w", user.Username, ErrDuplicate)
	}
	if _, taken := r.byEmail[user.Email]; taken {
		return fmt.Errorf("email %q: %w", user.Email, ErrDuplicate)
	}

	user.ID = r.nextID
	r.nextID++
	user.IsAdmin = false
	user.CreatedAt = time.Now()

	r.users[user.ID] = *user
	r.byUsername[user.Username] = user.ID
	r.byEmail[user.Email] = user.ID
	return nil
}

// GetByID returns a user by their ID.
func (r *MemoryUserRepository) GetByID(id int) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return &user, nil
}

// GetByUsername returns a user by exact username match.
func (r *MemoryUserRepository) GetByUsername(username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
	}
	user := r.users[id]
	return &user, nil
}

// GetByEmail returns a user by exact email match.
func (r *MemoryUserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("user %q: %w", email, ErrNotFound)
	}
	user := r.users[id]
	return &user, nil
}

// Update merges the provided fields into an existing user. Nil fields are
// retained. Changing the email keeps the secondary index consistent.
func (r *MemoryUserRepository) Update(id int, updates models.UserUpdate) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	if updates.Email != nil && *updates.Email != user.Email {
		if other, taken := r.byEmail[*updates.Email]; taken && other != id {
			return nil, fmt.Errorf("email %q: %w", *updates.Email, ErrDuplicate)
		}
		delete(r.byEmail, user.Email)
		user.Email = *updates.Email
		r.byEmail[user.Email] = id
	}
	if updates.FirstName != nil {
		user.FirstName = updates.FirstName
	}
	if updates.LastName != nil {
		user.LastName = updates.LastName
	}
	r.users[id] = user
	return &user, nil
}
