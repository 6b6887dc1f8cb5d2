package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront/pkg/errors"
)

func TestRetrierRetriesOnlyTransient(t *testing.T) {
	r := testRetrier()
	ctx := context.Background()

	calls := 0
	err := r.Do(ctx, func(ctx context.Context) error {
		calls++
		return errors.Transient("unavailable", nil)
	})
	assert.True(t, errors.IsTransient(err))
	assert.Equal(t, 3, calls)

	calls = 0
	err = r.Do(ctx, func(ctx context.Context) error {
		calls++
		return errors.Validation(errors.CodeInsufficientStock, "Not enough stock available")
	})
	assert.True(t, errors.Is(err, errors.CodeInsufficientStock))
	assert.Equal(t, 1, calls)

	calls = 0
	err = r.Do(ctx, func(ctx context.Context) error {
		calls++
		if calls < 2 {
			return errors.Transient("unavailable", nil)
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestNilRetrierRunsOnce(t *testing.T) {
	var r *Retrier
	calls := 0
	_ = r.Do(context.Background(), func(ctx context.Context) error {
		calls++
		return errors.Transient("unavailable", nil)
	})
	assert.Equal(t, 1, calls)
}
