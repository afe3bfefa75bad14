package router

import (
	"errors"
	"net/http"
	"time"

	_ "pet-marketplace/docs"
	"pet-marketplace/internal/domain/pets"
	"pet-marketplace/internal/domain/users"
	"pet-marketplace/internal/middleware"
	"pet-marketplace/internal/platform/httpjson"
	"pet-marketplace/internal/platform/logger"
	"pet-marketplace/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/crypto/bcrypt"
)

// TokenService emite y verifica bearer tokens (jwtauth.Service).
type TokenService interface {
	auth.AuthVerifier
	auth.TokenIssuer
}

const requestTimeout = 15 * time.Second

type Options struct {
	Tokens TokenService
	Logger logger.Logger // nil => descarta

	// Opcional: si viene vacío, in-memory.
	Stores Stores

	BcryptCost  int // 0 => bcrypt.DefaultCost
	CORSOrigins []string
}

func NewRouter(opts Options) (http.Handler, error) {
	if opts.Tokens == nil {
		return nil, errors.New("router: token service required")
	}
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	stores := opts.Stores
	if stores.Users == nil || stores.Pets == nil {
		stores = MemoryStores()
	}
	cost := opts.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	// Services por módulo
	usersSvc, err := users.NewService(stores.Users, opts.Tokens, cost)
	if err != nil {
		return nil, err
	}
	petsSvc := pets.NewService(stores.Pets, usersSvc)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(middleware.Recover(log))
	r.Use(middleware.CORS(opts.CORSOrigins))
	r.Use(chimw.Timeout(requestTimeout))

	r.Use(middleware.AuthContext(opts.Tokens, log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpjson.Write(w, http.StatusOK, map[string]any{"success": true, "status": "ok"})
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Rutas por módulo
	users.RegisterRoutes(r, usersSvc, log)
	pets.RegisterRoutes(r, petsSvc, log)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httpjson.Fail(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httpjson.Fail(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r, nil
}
