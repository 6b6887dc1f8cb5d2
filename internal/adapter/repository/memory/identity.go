package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"storefront/pkg/errors"
)

// Identity stands in for Firebase Authentication on local runs. It stores
// passwords only so UpdatePassword has something to replace.
type Identity struct {
	mu        sync.Mutex
	byEmail   map[string]string
	passwords map[string]string
}

func NewIdentity() *Identity {
	return &Identity{
		byEmail:   make(map[string]string),
		passwords: make(map[string]string),
	}
}

func (i *Identity) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	email = strings.ToLower(email)

	i.mu.Lock()
	defer i.mu.Unlock()
	if _, ok := i.byEmail[email]; ok {
		return "", errors.Conflict("Email already in use")
	}
	uid := uuid.NewString()
	i.byEmail[email] = uid
	i.passwords[uid] = password
	return uid, nil
}

func (i *Identity) GetUserByEmail(ctx context.Context, email string) (string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	uid, ok := i.byEmail[strings.ToLower(email)]
	if !ok {
		return "", errors.NotFound("User", nil)
	}
	return uid, nil
}

func (i *Identity) GetUserByID(ctx context.Context, uid string) (string, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if _, ok := i.passwords[uid]; !ok {
		return "", errors.NotFound("User", nil)
	}
	return uid, nil
}

func (i *Identity) UpdatePassword(ctx context.Context, uid, newPassword string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if _, ok := i.passwords[uid]; !ok {
		return errors.NotFound("User", nil)
	}
	i.passwords[uid] = newPassword
	return nil
}
