package auth

import "context"

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenIssuer emite tokens firmados para un usuario ya autenticado.
type TokenIssuer interface {
	Issue(userID string) (Token, error)
}
