package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront/internal/domain/entity"
	"storefront/pkg/errors"
)

func TestResolveRole(t *testing.T) {
	s := newStore()
	s.PutUser(entity.User{ID: "b1", Role: entity.RoleBuyer})
	s.PutUser(entity.User{ID: "v1", Role: entity.RoleVendor})
	s.PutUser(entity.User{ID: "odd", Role: "superuser"})
	uc := NewAccessUseCase(s.Users(), testRetrier())
	ctx := context.Background()

	assert.Equal(t, entity.RoleBuyer, uc.ResolveRole(ctx, "b1"))
	assert.Equal(t, entity.RoleVendor, uc.ResolveRole(ctx, "v1"))
	assert.Equal(t, entity.RoleAdmin, uc.ResolveRole(ctx, entity.AdminID))
	assert.Equal(t, entity.RoleNone, uc.ResolveRole(ctx, "ghost"))
	assert.Equal(t, entity.RoleNone, uc.ResolveRole(ctx, "odd"))
	assert.Equal(t, entity.RoleNone, uc.ResolveRole(ctx, ""))
}

func TestAuthorize(t *testing.T) {
	s := newStore()
	s.PutUser(entity.User{ID: "b1", Role: entity.RoleBuyer})
	s.PutUser(entity.User{ID: "c1", Role: entity.RoleCourier})
	uc := NewAccessUseCase(s.Users(), testRetrier())
	ctx := context.Background()

	d := uc.Authorize(ctx, "b1", entity.RoleBuyer)
	assert.True(t, d.Allowed)
	assert.Equal(t, entity.RoleBuyer, d.Role)

	d = uc.Authorize(ctx, "c1", entity.RoleBuyer)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonForbidden, d.Reason)

	d = uc.Authorize(ctx, "c1", entity.RoleAny)
	assert.True(t, d.Allowed)

	d = uc.Authorize(ctx, "", entity.RoleAny)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonUnauthenticated, d.Reason)
}

func TestAuthorizeLookupFailureIsUnauthenticated(t *testing.T) {
	s := newStore()
	s.PutUser(entity.User{ID: "b1", Role: entity.RoleBuyer})
	uc := NewAccessUseCase(s.Users(), testRetrier())

	s.FailNext(10, errors.Internal("boom", nil))
	d := uc.Authorize(context.Background(), "b1", entity.RoleBuyer)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonUnauthenticated, d.Reason)
}

func TestAuthorizeRetriesTransientLookup(t *testing.T) {
	s := newStore()
	s.PutUser(entity.User{ID: "b1", Role: entity.RoleBuyer})
	uc := NewAccessUseCase(s.Users(), testRetrier())

	s.FailNext(2, errors.Transient("unavailable", nil))
	d := uc.Authorize(context.Background(), "b1", entity.RoleBuyer)
	assert.True(t, d.Allowed)
}
