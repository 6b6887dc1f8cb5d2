package usecase

import (
	"context"
	stderrors "errors"
	"sort"
	"strings"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
)

// ErrEmptyQuery means there was nothing to search for; callers fall back to
// the default listing.
var ErrEmptyQuery = stderrors.New("empty search query")

type SearchUseCase struct {
	productRepo repository.ProductRepository
	retrier     *Retrier
}

func NewSearchUseCase(productRepo repository.ProductRepository, retrier *Retrier) *SearchUseCase {
	return &SearchUseCase{
		productRepo: productRepo,
		retrier:     retrier,
	}
}

type SearchResult struct {
	Query       string            `json:"query"`
	Products    []*entity.Product `json:"products"`
	ResultCount int               `json:"result_count"`
}

// Search matches the query case-insensitively against name, brand and
// category name. Name matches rank first, then brand, then category; equal
// ranks keep store order.
func (uc *SearchUseCase) Search(ctx context.Context, query string) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	needle := strings.ToLower(query)

	var all []*entity.Product
	err := uc.retrier.Do(ctx, func(ctx context.Context) error {
		var err error
		all, err = uc.productRepo.ListAll(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	type hit struct {
		product *entity.Product
		rank    [3]bool
	}
	hits := make([]hit, 0, len(all))
	for _, p := range all {
		rank := [3]bool{
			!strings.Contains(strings.ToLower(p.Name), needle),
			!strings.Contains(strings.ToLower(p.BrandName), needle),
			!strings.Contains(strings.ToLower(p.Category), needle),
		}
		if rank[0] && rank[1] && rank[2] {
			continue
		}
		hits = append(hits, hit{product: p, rank: rank})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		a, b := hits[i].rank, hits[j].rank
		for k := range a {
			if a[k] != b[k] {
				return !a[k]
			}
		}
		return false
	})

	products := make([]*entity.Product, len(hits))
	for i, h := range hits {
		products[i] = h.product
	}
	return &SearchResult{Query: query, Products: products, ResultCount: len(products)}, nil
}
