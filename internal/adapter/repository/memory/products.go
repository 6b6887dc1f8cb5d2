package memory

import (
	"context"
	"sort"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/pkg/errors"
)

type productRepo struct{ s *Store }

func (r *productRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	release, err := r.s.acquire()
	defer release()
	if err != nil {
		return nil, err
	}
	p, ok := r.s.products[id]
	if !ok {
		return nil, errors.NotFound("Product", nil)
	}
	p = cloneProduct(p)
	return &p, nil
}

func (r *productRepo) GetMany(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	release, err := r.s.acquire()
	defer release()
	if err != nil {
		return nil, err
	}
	return r.s.productsByID(ids), nil
}

func (s *Store) productsByID(ids []string) map[string]*entity.Product {
	found := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			p = cloneProduct(p)
			found[id] = &p
		}
	}
	return found
}

func (r *productRepo) List(ctx context.Context, q repository.ProductQuery) ([]*entity.Product, error) {
	release, err := r.s.acquire()
	defer release()
	if err != nil {
		return nil, err
	}

	var out []*entity.Product
	for _, id := range r.s.productOrder {
		p := cloneProduct(r.s.products[id])
		if !matches(&p, q) {
			continue
		}
		out = append(out, &p)
	}

	if q.OrderBy != "" {
		sort.SliceStable(out, func(i, j int) bool {
			if q.Descending {
				return less(out[j], out[i], q.OrderBy)
			}
			return less(out[i], out[j], q.OrderBy)
		})
	}

	if q.Offset > 0 {
		if q.Offset >= len(out) {
			return []*entity.Product{}, nil
		}
		out = out[q.Offset:]
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (r *productRepo) ListAll(ctx context.Context) ([]*entity.Product, error) {
	return r.List(ctx, repository.ProductQuery{})
}

func (r *productRepo) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	release, err := r.s.acquire()
	defer release()
	if err != nil {
		return 0, err
	}
	var n int64
	for _, p := range r.s.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func matches(p *entity.Product, q repository.ProductQuery) bool {
	if q.MinPrice != nil && p.Price < *q.MinPrice {
		return false
	}
	if q.MaxPrice != nil && p.Price > *q.MaxPrice {
		return false
	}
	if q.MinRating != nil && p.Rating < *q.MinRating {
		return false
	}
	if q.CategoryID != "" && p.CategoryID != q.CategoryID {
		return false
	}
	if q.VendorID != "" && p.VendorID != q.VendorID {
		return false
	}
	if q.FeaturedOnly && !p.IsFeatured {
		return false
	}
	return true
}

func less(a, b *entity.Product, field string) bool {
	switch field {
	case repository.ProductFieldPrice:
		return a.Price < b.Price
	case repository.ProductFieldRating:
		return a.Rating < b.Rating
	default:
		return a.CreatedAt.Before(b.CreatedAt)
	}
}
