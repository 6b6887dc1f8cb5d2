package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"storefront/internal/domain/entity"
	"storefront/pkg/errors"
)

type categoryRepo struct{ s *Store }

func (r *categoryRepo) Create(ctx context.Context, category *entity.Category) error {
	release, err := r.s.acquire()
	defer release()
	if err != nil {
		return err
	}
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	if _, ok := r.s.categories[category.ID]; ok {
		return errors.Conflict("Category already exists")
	}
	r.s.putCategoryLocked(*category)
	return nil
}

func (r *categoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	release, err := r.s.acquire()
	defer release()
	if err != nil {
		return nil, err
	}
	c, ok := r.s.categories[id]
	if !ok {
		return nil, errors.NotFound("Category", nil)
	}
	return &c, nil
}

func (r *categoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	release, err := r.s.acquire()
	defer release()
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Category, 0, len(r.s.catOrder))
	for _, id := range r.s.catOrder {
		c := r.s.categories[id]
		out = append(out, &c)
	}
	return out, nil
}

func (r *categoryRepo) Rename(ctx context.Context, id, name string) (*entity.Category, error) {
	release, err := r.s.acquire()
	defer release()
	if err != nil {
		return nil, err
	}
	c, ok := r.s.categories[id]
	if !ok {
		return nil, errors.NotFound("Category", nil)
	}
	c.Name = name
	r.s.categories[id] = c

	now := time.Now()
	for pid, p := range r.s.products {
		if p.CategoryID == id {
			p.Category = name
			p.UpdatedAt = now
			r.s.products[pid] = p
		}
	}
	return &c, nil
}
