package memory

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	"storefront/pkg/errors"
)

type userRepo struct{ s *Store }

func (r *userRepo) Create(ctx context.Context, user *entity.User) error {
	release, err := r.s.acquire()
	defer release()
	if err != nil {
		return err
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepo) CreateIfAbsent(ctx context.Context, user *entity.User) (bool, error) {
	release, err := r.s.acquire()
	defer release()
	if err != nil {
		return false, err
	}
	if _, ok := r.s.users[user.ID]; ok {
		return false, nil
	}
	r.s.users[user.ID] = *user
	return true, nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	release, err := r.s.acquire()
	defer release()
	if err != nil {
		return nil, err
	}
	u, ok := r.s.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return &u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	release, err := r.s.acquire()
	defer release()
	if err != nil {
		return nil, err
	}
	for _, u := range r.s.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *userRepo) UpdateProfile(ctx context.Context, user *entity.User) error {
	release, err := r.s.acquire()
	defer release()
	if err != nil {
		return err
	}
	u, ok := r.s.users[user.ID]
	if !ok {
		return errors.NotFound("User", nil)
	}
	u.FullName = user.FullName
	u.PhoneNumber = user.PhoneNumber
	u.Address = user.Address
	u.UpdatedAt = time.Now()
	r.s.users[user.ID] = u
	return nil
}
