package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"pet-marketplace/internal/platform/httpjson"
	"pet-marketplace/internal/platform/logger"
	"pet-marketplace/internal/ports/auth"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const (
	claimsKey   ctxKey = "claims"
	authFailKey ctxKey = "auth_fail"
)

const (
	msgNoToken      = "no token provided"
	msgInvalidToken = "invalid or expired token"
)

var errNoToken = errors.New(msgNoToken)

// AuthContext:
// - Sin header Authorization => el request sigue sin claims.
// - Con Bearer válido => setea claims en el contexto.
// - Con Bearer inválido => sigue sin claims y registra el motivo; RequireAuth
//   decide el 401. Así las rutas públicas no se rompen por un token viejo.
func AuthContext(verifier auth.AuthVerifier, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				ctx := context.WithValue(r.Context(), authFailKey, errNoToken)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				log.Debug("bearer token rejected", logger.Fields{
					"request_id": chimw.GetReqID(r.Context()),
					"reason":     auth.Reason(err),
				})
				ctx := context.WithValue(r.Context(), authFailKey, err)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth corta con 401 si AuthContext no dejó claims.
// Es el único checkpoint de autorización: autenticado o no.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			msg := msgInvalidToken
			if err, _ := r.Context().Value(authFailKey).(error); err == nil || errors.Is(err, errNoToken) {
				msg = msgNoToken
			}
			httpjson.Fail(w, http.StatusUnauthorized, msg)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}

// UserID es un atajo para handlers detrás de RequireAuth.
func UserID(ctx context.Context) string {
	c, _ := GetClaims(ctx)
	return c.UserID
}

// WithClaims inyecta claims; lo usan tests de handlers sin pasar por JWT.
func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(strings.TrimSpace(authHeader), " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
