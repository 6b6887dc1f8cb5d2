// Package memory keeps every repository contract in process memory. It backs
// STORE_DRIVER=memory for local runs and the use case tests.
package memory

import (
	"context"
	"sync"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
)

type Store struct {
	mu sync.Mutex

	users        map[string]entity.User
	products     map[string]entity.Product
	productOrder []string
	categories   map[string]entity.Category
	catOrder     []string
	carts        map[string]map[string]entity.CartItem
	orders       map[string]map[string]interface{}
	orderSeq     []string
	reviews      map[string][]entity.Review

	failures int
	failWith error
}

func NewStore() *Store {
	return &Store{
		users:      make(map[string]entity.User),
		products:   make(map[string]entity.Product),
		categories: make(map[string]entity.Category),
		carts:      make(map[string]map[string]entity.CartItem),
		orders:     make(map[string]map[string]interface{}),
		reviews:    make(map[string][]entity.Review),
	}
}

// FailNext makes the next n repository calls return err.
func (s *Store) FailNext(n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = n
	s.failWith = err
}

// acquire locks the store and reports a pending injected failure. The returned
// release must be called even when err is non-nil.
func (s *Store) acquire() (release func(), err error) {
	s.mu.Lock()
	if s.failures > 0 {
		s.failures--
		return s.mu.Unlock, s.failWith
	}
	return s.mu.Unlock, nil
}

func (s *Store) Users() repository.UserRepository         { return &userRepo{s} }
func (s *Store) Products() repository.ProductRepository   { return &productRepo{s} }
func (s *Store) Categories() repository.CategoryRepository { return &categoryRepo{s} }
func (s *Store) Carts() repository.CartRepository         { return &cartRepo{s} }
func (s *Store) Orders() repository.OrderRepository       { return &orderRepo{s} }
func (s *Store) Reviews() repository.ReviewRepository     { return &reviewRepo{s} }

// PutProduct inserts or replaces a product, keeping first-insert enumeration order.
func (s *Store) PutProduct(p entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[p.ID]; !ok {
		s.productOrder = append(s.productOrder, p.ID)
	}
	s.products[p.ID] = cloneProduct(p)
}

func (s *Store) DeleteProduct(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.products, id)
	for i, pid := range s.productOrder {
		if pid == id {
			s.productOrder = append(s.productOrder[:i], s.productOrder[i+1:]...)
			break
		}
	}
}

func (s *Store) PutCategory(c entity.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putCategoryLocked(c)
}

func (s *Store) putCategoryLocked(c entity.Category) {
	if _, ok := s.categories[c.ID]; !ok {
		s.catOrder = append(s.catOrder, c.ID)
	}
	s.categories[c.ID] = c
}

func (s *Store) PutUser(u entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

func (s *Store) PutOrder(o entity.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putOrderLocked(&o)
}

func (s *Store) putOrderLocked(o *entity.Order) {
	if _, ok := s.orders[o.ID]; !ok {
		s.orderSeq = append(s.orderSeq, o.ID)
	}
	s.orders[o.ID] = o.ToRecord()
}

// OrderCount reports how many orders are stored.
func (s *Store) OrderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

func cloneProduct(p entity.Product) entity.Product {
	if p.Images != nil {
		p.Images = append([]string(nil), p.Images...)
	}
	return p
}

// Ping reports an injected failure the same way a repository call would.
func (s *Store) Ping(ctx context.Context) error {
	release, err := s.acquire()
	release()
	return err
}
