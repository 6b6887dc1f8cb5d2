package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"google.golang.org/api/iterator"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/pkg/errors"
)

type firestoreProductRepository struct {
	client *firestore.Client
}

func NewFirestoreProductRepository(client *firestore.Client) repository.ProductRepository {
	return &firestoreProductRepository{
		client: client,
	}
}

func (r *firestoreProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	doc, err := r.client.Collection(productsCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, storeError("Product", "Failed to get product", err)
	}
	return decodeProduct(doc)
}

func (r *firestoreProductRepository) GetMany(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	products := make(map[string]*entity.Product, len(ids))
	if len(ids) == 0 {
		return products, nil
	}

	refs := make([]*firestore.DocumentRef, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, r.client.Collection(productsCollection).Doc(id))
	}

	docs, err := r.client.GetAll(ctx, refs)
	if err != nil {
		return nil, storeError("Product", "Failed to get products", err)
	}
	return decodeExistingProducts(docs)
}

func (r *firestoreProductRepository) List(ctx context.Context, q repository.ProductQuery) ([]*entity.Product, error) {
	query := r.client.Collection(productsCollection).Query

	if q.MinPrice != nil {
		query = query.Where(repository.ProductFieldPrice, ">=", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		query = query.Where(repository.ProductFieldPrice, "<=", *q.MaxPrice)
	}
	if q.MinRating != nil {
		query = query.Where(repository.ProductFieldRating, ">=", *q.MinRating)
	}
	if q.CategoryID != "" {
		query = query.Where("categoryId", "==", q.CategoryID)
	}
	if q.VendorID != "" {
		query = query.Where("vendorId", "==", q.VendorID)
	}
	if q.FeaturedOnly {
		query = query.Where("is_featured", "==", true)
	}

	if q.OrderBy != "" {
		dir := firestore.Asc
		if q.Descending {
			dir = firestore.Desc
		}
		query = query.OrderBy(q.OrderBy, dir)
	}
	if q.Offset > 0 {
		query = query.Offset(q.Offset)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	return r.collect(query.Documents(ctx))
}

func (r *firestoreProductRepository) ListAll(ctx context.Context) ([]*entity.Product, error) {
	return r.collect(r.client.Collection(productsCollection).Documents(ctx))
}

// CountByCategory issues one aggregation per call; callers that count every
// category pay one round trip each.
func (r *firestoreProductRepository) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	q := r.client.Collection(productsCollection).Where("categoryId", "==", categoryID)
	result, err := q.NewAggregationQuery().WithCount("all").Get(ctx)
	if err != nil {
		return 0, storeError("Product", "Failed to count products", err)
	}

	count, ok := result["all"].(*firestorepb.Value)
	if !ok {
		return 0, errors.Internal("Unexpected count aggregation result", nil)
	}
	return count.GetIntegerValue(), nil
}

func (r *firestoreProductRepository) collect(iter *firestore.DocumentIterator) ([]*entity.Product, error) {
	defer iter.Stop()

	var products []*entity.Product
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, storeError("Product", "Failed to iterate products", err)
		}
		product, err := decodeProduct(doc)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, nil
}

func decodeProduct(doc *firestore.DocumentSnapshot) (*entity.Product, error) {
	var product entity.Product
	if err := doc.DataTo(&product); err != nil {
		return nil, errors.Internal("Failed to parse product data", err)
	}
	product.ID = doc.Ref.ID
	return &product, nil
}

func decodeExistingProducts(docs []*firestore.DocumentSnapshot) (map[string]*entity.Product, error) {
	products := make(map[string]*entity.Product, len(docs))
	for _, doc := range docs {
		if !doc.Exists() {
			continue
		}
		product, err := decodeProduct(doc)
		if err != nil {
			return nil, err
		}
		products[product.ID] = product
	}
	return products, nil
}
