package firebase

import (
	"context"

	"firebase.google.com/go/v4/auth"

	"storefront/pkg/errors"
)

// FirebaseAuthClient is the identity provider backed by Firebase Authentication.
type FirebaseAuthClient struct {
	client *auth.Client
}

func NewFirebaseAuthClient(client *auth.Client) *FirebaseAuthClient {
	return &FirebaseAuthClient{
		client: client,
	}
}

func (f *FirebaseAuthClient) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password)
	if displayName != "" {
		params = params.DisplayName(displayName)
	}

	user, err := f.client.CreateUser(ctx, params)
	if err != nil {
		return "", identityError(err)
	}
	return user.UID, nil
}

func (f *FirebaseAuthClient) GetUserByEmail(ctx context.Context, email string) (string, error) {
	user, err := f.client.GetUserByEmail(ctx, email)
	if err != nil {
		return "", identityError(err)
	}
	return user.UID, nil
}

func (f *FirebaseAuthClient) GetUserByID(ctx context.Context, uid string) (string, error) {
	user, err := f.client.GetUser(ctx, uid)
	if err != nil {
		return "", identityError(err)
	}
	return user.UID, nil
}

func (f *FirebaseAuthClient) UpdatePassword(ctx context.Context, uid, newPassword string) error {
	params := (&auth.UserToUpdate{}).
		Password(newPassword)

	if _, err := f.client.UpdateUser(ctx, uid, params); err != nil {
		return identityError(err)
	}
	return nil
}

// VerifyIDToken checks a Firebase ID token and returns its uid.
func (f *FirebaseAuthClient) VerifyIDToken(ctx context.Context, idToken string) (string, error) {
	token, err := f.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", errors.Unauthorized("Invalid or expired token", err)
	}
	return token.UID, nil
}

func identityError(err error) error {
	switch {
	case auth.IsEmailAlreadyExists(err):
		return errors.Conflict("Email already in use")
	case auth.IsUserNotFound(err):
		return errors.NotFound("User", err)
	default:
		return errors.Internal("Identity provider request failed", err)
	}
}
