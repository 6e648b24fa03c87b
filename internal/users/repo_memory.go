package users

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]User // id -> user
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]User)}
}

func (r *MemoryRepo) Create(ctx context.Context, user User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	email := strings.ToLower(user.Email)
	for _, existing := range r.data {
		if strings.ToLower(existing.Email) == email {
			return ErrEmailTaken
		}
	}
	user.Email = email
	r.data[user.ID] = user
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.data[userID]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (r *MemoryRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	lowered := strings.ToLower(email)
	for _, user := range r.data {
		if user.Email == lowered {
			return user, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *MemoryRepo) UpdatePassword(ctx context.Context, userID string, passwordHash string) error {
	return r.update(ctx, userID, func(u *User) {
		u.PasswordHash = passwordHash
	})
}

func (r *MemoryRepo) SetResetCredential(ctx context.Context, userID string, hash string, expires time.Time) error {
	return r.update(ctx, userID, func(u *User) {
		u.ResetOTPHash = hash
		u.ResetOTPExpires = &expires
	})
}

func (r *MemoryRepo) ClearResetCredential(ctx context.Context, userID string) error {
	return r.update(ctx, userID, func(u *User) {
		u.ResetOTPHash = ""
		u.ResetOTPExpires = nil
	})
}

func (r *MemoryRepo) update(ctx context.Context, userID string, apply func(*User)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.data[userID]
	if !ok {
		return ErrNotFound
	}
	apply(&user)
	user.UpdatedAt = time.Now().UTC()
	r.data[userID] = user
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
