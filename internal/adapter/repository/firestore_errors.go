package repository

import (
	"context"
	stderrors "errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"storefront/pkg/errors"
)

const (
	usersCollection      = "users"
	cartCollection       = "cart"
	productsCollection   = "products"
	reviewsCollection    = "reviews"
	categoriesCollection = "categories"
	ordersCollection     = "orders"
)

// storeError classifies a Firestore failure. AppErrors raised inside a
// transaction body pass through untouched.
func storeError(resource, message string, err error) error {
	if err == nil {
		return nil
	}

	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.Transient(message, err)
	}

	switch status.Code(err) {
	case codes.NotFound:
		return errors.NotFound(resource, err)
	case codes.Unavailable, codes.DeadlineExceeded, codes.Aborted, codes.ResourceExhausted:
		return errors.Transient(message, err)
	}
	return errors.Internal(message, err)
}
