package auth

import "time"

// Claims representa la información extraída del token.
type Claims struct {
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Token es un bearer token emitido para un usuario.
type Token struct {
	Value     string
	ExpiresAt time.Time
}
