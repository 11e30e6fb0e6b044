package auth

import "context"

type AuthService interface {
	// Login verifies credentials and issues an access token carrying the
	// caller's employee id and role.
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
}
