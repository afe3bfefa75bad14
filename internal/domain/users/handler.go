package users

import (
	"net/http"
	"time"

	"pet-marketplace/internal/middleware"
	"pet-marketplace/internal/platform/apperr"
	"pet-marketplace/internal/platform/httpjson"
	"pet-marketplace/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/api/auth", func(ar chi.Router) {
		ar.Post("/register", registerHandler(svc, log))
		ar.Post("/login", loginHandler(svc, log))
		ar.With(middleware.RequireAuth).Get("/me", meHandler(svc, log))
	})
}

// registerRequest es el cuerpo para crear una cuenta.
type registerRequest struct {
	Name     string `json:"name" example:"Ana"`
	Email    string `json:"email" example:"ana@example.com"`
	Password string `json:"password" example:"secret123"`
	Phone    string `json:"phone" example:"+54 11 5555 5555"`
	Address  string `json:"address" example:"Av. Siempre Viva 742"`
	UserType string `json:"userType" enums:"adopter,seller,both" example:"adopter"`
}

type loginRequest struct {
	Email    string `json:"email" example:"ana@example.com"`
	Password string `json:"password" example:"secret123"`
}

// authResponse es la respuesta de register/login.
type authResponse struct {
	Success   bool       `json:"success" example:"true"`
	Message   string     `json:"message,omitempty"`
	User      PublicUser `json:"user"`
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
}

type meResponse struct {
	Success bool       `json:"success" example:"true"`
	User    PublicUser `json:"user"`
}

// registerHandler godoc
// @Summary Registrar usuario
// @Description Crea una cuenta y devuelve el usuario (sin password) junto con un bearer token. Todos los campos inválidos se informan juntos en `errors`.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body registerRequest true "Datos de registro"
// @Success 201 {object} authResponse
// @Failure 400 {object} httpjson.ErrorResponse "invalid json / validation failed"
// @Failure 409 {object} httpjson.ErrorResponse "email already registered"
// @Router /api/auth/register [post]
func registerHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Fail(w, http.StatusBadRequest, "invalid json")
			return
		}

		res, err := svc.Register(r.Context(), RegisterInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
			Phone:    req.Phone,
			Address:  req.Address,
			UserType: req.UserType,
		})
		if err != nil {
			httpjson.Error(w, r, log, err)
			return
		}

		httpjson.Write(w, http.StatusCreated, authResponse{
			Success:   true,
			Message:   "user registered successfully",
			User:      res.User,
			Token:     res.Token,
			ExpiresAt: res.ExpiresAt,
		})
	}
}

// loginHandler godoc
// @Summary Iniciar sesión
// @Description Verifica credenciales y emite un bearer token. Email inexistente y password incorrecto devuelven el mismo 401.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} authResponse
// @Failure 400 {object} httpjson.ErrorResponse "invalid json"
// @Failure 401 {object} httpjson.ErrorResponse "invalid credentials"
// @Router /api/auth/login [post]
func loginHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Fail(w, http.StatusBadRequest, "invalid json")
			return
		}

		res, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			httpjson.Error(w, r, log, err)
			return
		}

		httpjson.Write(w, http.StatusOK, authResponse{
			Success:   true,
			Message:   "login successful",
			User:      res.User,
			Token:     res.Token,
			ExpiresAt: res.ExpiresAt,
		})
	}
}

// meHandler godoc
// @Summary Usuario actual
// @Description Devuelve el usuario dueño del bearer token.
// @Tags auth
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} meResponse
// @Failure 401 {object} httpjson.ErrorResponse "no token provided / invalid or expired token"
// @Failure 404 {object} httpjson.ErrorResponse "user not found"
// @Router /api/auth/me [get]
func meHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserID(r.Context())
		if userID == "" {
			httpjson.Error(w, r, log, apperr.Unauthorized("no token provided"))
			return
		}

		u, err := svc.GetCurrentUser(r.Context(), userID)
		if err != nil {
			httpjson.Error(w, r, log, err)
			return
		}

		httpjson.Write(w, http.StatusOK, meResponse{Success: true, User: u})
	}
}
