package usecase

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/pkg/errors"
	"storefront/pkg/logger"
)

type AuthUseCase struct {
	userRepo repository.UserRepository
	identity IdentityProvider
	tokens   TokenIssuer
	admin    AdminCredentials
	retrier  *Retrier
}

type AdminCredentials struct {
	Email    string
	Password string
}

func NewAuthUseCase(
	userRepo repository.UserRepository,
	identity IdentityProvider,
	tokens TokenIssuer,
	admin AdminCredentials,
	retrier *Retrier,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		identity: identity,
		tokens:   tokens,
		admin:    admin,
		retrier:  retrier,
	}
}

type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Phone    string
}

type AuthResult struct {
	User      *entity.User `json:"user"`
	Token     string       `json:"token,omitempty"`
	ExpiresAt *time.Time   `json:"expires_at,omitempty"`
}

// Register creates the identity and the buyer record. Vendor and courier
// accounts are provisioned elsewhere.
func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, errors.Conflict("Email already in use")
	}
	if err != nil && !errors.Is(err, errors.CodeNotFound) {
		return nil, err
	}

	uid, err := uc.identity.CreateUser(ctx, email, input.Password, input.FullName)
	if err != nil {
		if errors.Is(err, errors.CodeConflict) {
			return nil, err
		}
		return nil, errors.Internal("Failed to create user in authentication provider", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:          uid,
		Email:       email,
		Role:        entity.RoleBuyer,
		FullName:    input.FullName,
		PhoneNumber: input.Phone,
		Status:      "active",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		logger.Error("identity %s created but user record failed: %v", uid, err)
		return nil, errors.Internal("Failed to create user record", err)
	}

	return &AuthResult{User: user}, nil
}

// AdminLogin checks the configured admin credentials, lazily creates the admin
// record and signs an admin session token.
func (uc *AuthUseCase) AdminLogin(ctx context.Context, email, password string) (*AuthResult, error) {
	emailOK := subtle.ConstantTimeCompare([]byte(strings.ToLower(email)), []byte(strings.ToLower(uc.admin.Email))) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(uc.admin.Password)) == 1
	if !emailOK || !passwordOK {
		return nil, errors.Unauthorized("Invalid credentials", nil)
	}

	now := time.Now()
	admin := &entity.User{
		ID:        entity.AdminID,
		Email:     uc.admin.Email,
		Role:      entity.RoleAdmin,
		FullName:  "Administrator",
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := uc.userRepo.CreateIfAbsent(ctx, admin)
	if err != nil {
		return nil, err
	}
	if created {
		logger.Info("admin account created")
	}

	token, expiresAt, err := uc.tokens.Issue(entity.AdminID, entity.RoleAdmin)
	if err != nil {
		return nil, errors.Internal("Failed to issue token", err)
	}

	return &AuthResult{User: admin, Token: token, ExpiresAt: &expiresAt}, nil
}

func (uc *AuthUseCase) ChangePassword(ctx context.Context, uid, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return errors.Validation(errors.CodeValidation, "New passwords do not match")
	}
	if uid == entity.AdminID {
		return errors.BadRequest("The admin password is set by configuration", nil)
	}
	if err := uc.identity.UpdatePassword(ctx, uid, newPassword); err != nil {
		if errors.Code(err) != errors.CodeInternal {
			return err
		}
		return errors.Internal("Failed to update password", err)
	}
	return nil
}

func (uc *AuthUseCase) Profile(ctx context.Context, uid string) (*entity.User, error) {
	var user *entity.User
	err := uc.retrier.Do(ctx, func(ctx context.Context) error {
		var err error
		user, err = uc.userRepo.GetByID(ctx, uid)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

type ProfileInput struct {
	FullName    string
	PhoneNumber string
	Address     entity.Address
}

func (uc *AuthUseCase) UpdateProfile(ctx context.Context, uid string, input ProfileInput) (*entity.User, error) {
	user := &entity.User{
		ID:          uid,
		FullName:    input.FullName,
		PhoneNumber: input.PhoneNumber,
		Address:     input.Address,
	}
	if err := uc.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return uc.Profile(ctx, uid)
}
