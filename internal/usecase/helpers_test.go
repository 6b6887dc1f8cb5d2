package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"storefront/internal/adapter/repository/memory"
	"storefront/internal/domain/entity"
	"storefront/pkg/errors"
)

var baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testRetrier() *Retrier {
	r := NewRetrier(3, nil)
	r.base = time.Millisecond
	return r
}

func product(id, name string, price float64, stock int) entity.Product {
	return entity.Product{
		ID:        id,
		Name:      name,
		Price:     price,
		Quantity:  stock,
		VendorID:  "v1",
		Images:    []string{"https://img.example.com/" + id + ".jpg"},
		CreatedAt: baseTime,
	}
}

type fakeIdentity struct {
	mu        sync.Mutex
	byEmail   map[string]string
	passwords map[string]string
	seq       int
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{byEmail: map[string]string{}, passwords: map[string]string{}}
}

func (f *fakeIdentity) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byEmail[email]; ok {
		return "", errors.Conflict("Email already in use")
	}
	f.seq++
	uid := fmt.Sprintf("uid-%d", f.seq)
	f.byEmail[email] = uid
	f.passwords[uid] = password
	return uid, nil
}

func (f *fakeIdentity) GetUserByEmail(ctx context.Context, email string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	uid, ok := f.byEmail[email]
	if !ok {
		return "", errors.NotFound("User", nil)
	}
	return uid, nil
}

func (f *fakeIdentity) GetUserByID(ctx context.Context, uid string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.passwords[uid]; !ok {
		return "", errors.NotFound("User", nil)
	}
	return uid, nil
}

func (f *fakeIdentity) UpdatePassword(ctx context.Context, uid, newPassword string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.passwords[uid]; !ok {
		return errors.NotFound("User", nil)
	}
	f.passwords[uid] = newPassword
	return nil
}

type fakeIssuer struct{}

func (fakeIssuer) Issue(subject string, role entity.Role) (string, time.Time, error) {
	return "token-" + subject + "-" + string(role), baseTime.Add(time.Hour), nil
}

func newStore() *memory.Store {
	return memory.NewStore()
}
