package usecase

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/pkg/logger"
)

const (
	ReasonUnauthenticated = "unauthenticated"
	ReasonForbidden       = "forbidden"
)

// Decision is the gate's verdict. It is a value, never an error.
type Decision struct {
	Allowed bool
	Reason  string
	Role    entity.Role
}

type AccessUseCase struct {
	userRepo repository.UserRepository
	retrier  *Retrier
}

func NewAccessUseCase(userRepo repository.UserRepository, retrier *Retrier) *AccessUseCase {
	return &AccessUseCase{
		userRepo: userRepo,
		retrier:  retrier,
	}
}

// ResolveRole reads the principal's role field. Unknown principals and lookup
// failures both resolve to RoleNone.
func (uc *AccessUseCase) ResolveRole(ctx context.Context, uid string) entity.Role {
	if uid == "" {
		return entity.RoleNone
	}
	if uid == entity.AdminID {
		return entity.RoleAdmin
	}

	var user *entity.User
	err := uc.retrier.Do(ctx, func(ctx context.Context) error {
		var err error
		user, err = uc.userRepo.GetByID(ctx, uid)
		return err
	})
	if err != nil {
		logger.Debug("role lookup for %s failed: %v", uid, err)
		return entity.RoleNone
	}
	if !user.Role.Valid() {
		return entity.RoleNone
	}
	return user.Role
}

// Authorize decides whether uid may act with the required role. RoleAny only
// asks for an authenticated principal with some known role.
func (uc *AccessUseCase) Authorize(ctx context.Context, uid string, required entity.Role) Decision {
	role := uc.ResolveRole(ctx, uid)
	if role == entity.RoleNone {
		return Decision{Reason: ReasonUnauthenticated}
	}
	if required != entity.RoleAny && required != role {
		return Decision{Reason: ReasonForbidden, Role: role}
	}
	return Decision{Allowed: true, Role: role}
}
