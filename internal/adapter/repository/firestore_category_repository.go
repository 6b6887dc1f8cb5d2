package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/pkg/errors"
)

type firestoreCategoryRepository struct {
	client *firestore.Client
}

func NewFirestoreCategoryRepository(client *firestore.Client) repository.CategoryRepository {
	return &firestoreCategoryRepository{
		client: client,
	}
}

func (r *firestoreCategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	if category.ID == "" {
		category.ID = r.client.Collection(categoriesCollection).NewDoc().ID
	}

	_, err := r.client.Collection(categoriesCollection).Doc(category.ID).Create(ctx, category)
	return storeError("Category", "Failed to create category", err)
}

func (r *firestoreCategoryRepository) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	doc, err := r.client.Collection(categoriesCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, storeError("Category", "Failed to get category", err)
	}
	return decodeCategory(doc)
}

func (r *firestoreCategoryRepository) List(ctx context.Context) ([]*entity.Category, error) {
	docs, err := r.client.Collection(categoriesCollection).Documents(ctx).GetAll()
	if err != nil {
		return nil, storeError("Category", "Failed to list categories", err)
	}

	categories := make([]*entity.Category, 0, len(docs))
	for _, doc := range docs {
		category, err := decodeCategory(doc)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, nil
}

// Rename runs in one transaction, so a category with more than ~500 products
// exceeds Firestore's write limit and fails as a whole.
func (r *firestoreCategoryRepository) Rename(ctx context.Context, id, name string) (*entity.Category, error) {
	var renamed *entity.Category

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		ref := r.client.Collection(categoriesCollection).Doc(id)
		doc, err := tx.Get(ref)
		if err != nil {
			return storeError("Category", "Failed to get category", err)
		}
		category, err := decodeCategory(doc)
		if err != nil {
			return err
		}

		products, err := tx.Documents(r.client.Collection(productsCollection).Where("categoryId", "==", id)).GetAll()
		if err != nil {
			return storeError("Product", "Failed to list category products", err)
		}

		if err := tx.Update(ref, []firestore.Update{{Path: "categoryName", Value: name}}); err != nil {
			return err
		}
		now := time.Now()
		for _, p := range products {
			if err := tx.Update(p.Ref, []firestore.Update{
				{Path: "category", Value: name},
				{Path: "updatedAt", Value: now},
			}); err != nil {
				return err
			}
		}

		category.Name = name
		renamed = category
		return nil
	})
	if err != nil {
		return nil, storeError("Category", "Failed to rename category", err)
	}
	return renamed, nil
}

func decodeCategory(doc *firestore.DocumentSnapshot) (*entity.Category, error) {
	var category entity.Category
	if err := doc.DataTo(&category); err != nil {
		return nil, errors.Internal("Failed to parse category data", err)
	}
	category.ID = doc.Ref.ID
	return &category, nil
}
