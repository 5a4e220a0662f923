package firebase

import (
	"context"

	"firebase.google.com/go/v4/auth"
)

// Identity carries the verified claims the rest of the app cares about.
type Identity struct {
	UID    string
	Name   string
	Email  string
	Avatar string
	Role   string
}

type AuthClient struct {
	client *auth.Client
}

func NewAuthClient(client *auth.Client) *AuthClient {
	return &AuthClient{
		client: client,
	}
}

// VerifyToken validates a Firebase ID token and extracts the identity claims.
// The role custom claim defaults to student when absent.
func (f *AuthClient) VerifyToken(ctx context.Context, idToken string) (*Identity, error) {
	token, err := f.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}

	identity := &Identity{UID: token.UID, Role: "student"}
	if name, ok := token.Claims["name"].(string); ok {
		identity.Name = name
	}
	if email, ok := token.Claims["email"].(string); ok {
		identity.Email = email
	}
	if picture, ok := token.Claims["picture"].(string); ok {
		identity.Avatar = picture
	}
	if role, ok := token.Claims["role"].(string); ok && role != "" {
		identity.Role = role
	}

	return identity, nil
}

// SetRoleClaim stamps the role custom claim onto the Firebase user so it
// arrives with every future ID token.
func (f *AuthClient) SetRoleClaim(ctx context.Context, uid, role string) error {
	return f.client.SetCustomUserClaims(ctx, uid, map[string]interface{}{"role": role})
}
