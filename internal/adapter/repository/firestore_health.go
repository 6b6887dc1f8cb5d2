package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// FirestoreHealth probes the document store with a one-document read.
type FirestoreHealth struct {
	client *firestore.Client
}

func NewFirestoreHealth(client *firestore.Client) *FirestoreHealth {
	return &FirestoreHealth{client: client}
}

func (h *FirestoreHealth) Ping(ctx context.Context) error {
	iter := h.client.Collection(categoriesCollection).Limit(1).Documents(ctx)
	defer iter.Stop()

	if _, err := iter.Next(); err != nil && err != iterator.Done {
		return storeError("Store", "Document store unreachable", err)
	}
	return nil
}
