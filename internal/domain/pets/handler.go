package pets

import (
	"net/http"
	"time"

	"pet-marketplace/internal/domain/users"
	"pet-marketplace/internal/middleware"
	"pet-marketplace/internal/platform/httpjson"
	"pet-marketplace/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/api/pets", func(pr chi.Router) {
		// Público: catálogo con proyección del dueño
		pr.Get("/", listAllHandler(svc, log))

		pr.Group(func(ar chi.Router) {
			ar.Use(middleware.RequireAuth)
			ar.Post("/", createPetHandler(svc, log))
			ar.Get("/user", listMyPetsHandler(svc, log))
			ar.Patch("/{petID}", updatePetHandler(svc, log))
		})

		pr.Get("/{petID}", getPetHandler(svc, log))
	})
}

// createPetRequest es el cuerpo para publicar una mascota.
// No hay ownerId: el dueño sale siempre del token.
type createPetRequest struct {
	Name        string   `json:"name" example:"Rex"`
	Type        string   `json:"type" enums:"dog,cat,bird,rabbit,other" example:"dog"`
	Breed       string   `json:"breed" example:"Labrador"`
	Age         string   `json:"age" example:"2"`
	Gender      string   `json:"gender" enums:"male,female" example:"male"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" example:"0"`
	ForSale     *bool    `json:"forSale" example:"false"`
}

// updatePetRequest: punteros para PATCH real, nil = no tocar.
type updatePetRequest struct {
	Name        *string  `json:"name"`
	Type        *string  `json:"type" enums:"dog,cat,bird,rabbit,other"`
	Breed       *string  `json:"breed"`
	Age         *string  `json:"age"`
	Gender      *string  `json:"gender" enums:"male,female"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	ForSale     *bool    `json:"forSale"`
}

type petResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Name        string    `json:"name"`
	Type        Type      `json:"type"`
	Breed       string    `json:"breed"`
	Age         string    `json:"age"`
	Gender      Gender    `json:"gender"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ForSale     bool      `json:"forSale"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// listingResponse agrega la proyección del dueño (solo name y email).
type listingResponse struct {
	petResponse
	Owner *users.Owner `json:"owner"`
}

type petEnvelope struct {
	Success bool        `json:"success" example:"true"`
	Message string      `json:"message,omitempty"`
	Pet     petResponse `json:"pet"`
}

type listingEnvelope struct {
	Success bool            `json:"success" example:"true"`
	Pet     listingResponse `json:"pet"`
}

type petsEnvelope struct {
	Success bool          `json:"success" example:"true"`
	Pets    []petResponse `json:"pets"`
}

type listingsEnvelope struct {
	Success bool              `json:"success" example:"true"`
	Pets    []listingResponse `json:"pets"`
}

// createPetHandler godoc
// @Summary Publicar mascota
// @Description Registra una mascota a nombre del usuario del token. Todos los campos inválidos se informan juntos en `errors`. description, price y forSale son opcionales (default "", 0, false).
// @Tags pets
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param payload body createPetRequest true "Datos de la mascota"
// @Success 201 {object} petEnvelope
// @Failure 400 {object} httpjson.ErrorResponse "invalid json / validation failed"
// @Failure 401 {object} httpjson.ErrorResponse "no token provided / invalid or expired token"
// @Router /api/pets [post]
func createPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPetRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Fail(w, http.StatusBadRequest, "invalid json")
			return
		}

		p, err := svc.Register(r.Context(), middleware.UserID(r.Context()), CreateInput{
			Name:        req.Name,
			Type:        req.Type,
			Breed:       req.Breed,
			Age:         req.Age,
			Gender:      req.Gender,
			Description: req.Description,
			Price:       req.Price,
			ForSale:     req.ForSale,
		})
		if err != nil {
			httpjson.Error(w, r, log, err)
			return
		}

		httpjson.Write(w, http.StatusCreated, petEnvelope{
			Success: true,
			Message: "pet registered successfully",
			Pet:     toPetResponse(p),
		})
	}
}

// listMyPetsHandler godoc
// @Summary Mis mascotas
// @Description Lista solo las mascotas cuyo dueño es el usuario del token.
// @Tags pets
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} petsEnvelope
// @Failure 401 {object} httpjson.ErrorResponse "no token provided / invalid or expired token"
// @Router /api/pets/user [get]
func listMyPetsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByOwner(r.Context(), middleware.UserID(r.Context()))
		if err != nil {
			httpjson.Error(w, r, log, err)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		httpjson.Write(w, http.StatusOK, petsEnvelope{Success: true, Pets: out})
	}
}

// listAllHandler godoc
// @Summary Catálogo de mascotas
// @Description Lista todas las mascotas, cada una con nombre y email de su dueño (`owner` es null si el dueño no existe).
// @Tags pets
// @Produce json
// @Success 200 {object} listingsEnvelope
// @Router /api/pets [get]
func listAllHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAll(r.Context())
		if err != nil {
			httpjson.Error(w, r, log, err)
			return
		}

		out := make([]listingResponse, 0, len(items))
		for _, l := range items {
			out = append(out, toListingResponse(l))
		}
		httpjson.Write(w, http.StatusOK, listingsEnvelope{Success: true, Pets: out})
	}
}

// getPetHandler godoc
// @Summary Ver mascota
// @Description Devuelve una mascota con la proyección de su dueño.
// @Tags pets
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} listingEnvelope
// @Failure 404 {object} httpjson.ErrorResponse "pet not found"
// @Router /api/pets/{petID} [get]
func getPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l, err := svc.Get(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			httpjson.Error(w, r, log, err)
			return
		}
		httpjson.Write(w, http.StatusOK, listingEnvelope{Success: true, Pet: toListingResponse(l)})
	}
}

// updatePetHandler godoc
// @Summary Editar mascota
// @Description Actualiza los campos enviados. Solo el dueño puede editar; updatedAt se renueva siempre.
// @Tags pets
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param petID path string true "ID de la mascota"
// @Param payload body updatePetRequest true "Campos a modificar"
// @Success 200 {object} petEnvelope
// @Failure 400 {object} httpjson.ErrorResponse "invalid json / validation failed"
// @Failure 401 {object} httpjson.ErrorResponse "no token provided / invalid or expired token"
// @Failure 403 {object} httpjson.ErrorResponse "only the owner can edit this pet"
// @Failure 404 {object} httpjson.ErrorResponse "pet not found"
// @Router /api/pets/{petID} [patch]
func updatePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updatePetRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.Fail(w, http.StatusBadRequest, "invalid json")
			return
		}

		p, err := svc.Update(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "petID"), UpdateInput{
			Name:        req.Name,
			Type:        req.Type,
			Breed:       req.Breed,
			Age:         req.Age,
			Gender:      req.Gender,
			Description: req.Description,
			Price:       req.Price,
			ForSale:     req.ForSale,
		})
		if err != nil {
			httpjson.Error(w, r, log, err)
			return
		}

		httpjson.Write(w, http.StatusOK, petEnvelope{
			Success: true,
			Message: "pet updated successfully",
			Pet:     toPetResponse(p),
		})
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Name:        p.Name,
		Type:        p.Type,
		Breed:       p.Breed,
		Age:         p.Age,
		Gender:      p.Gender,
		Description: p.Description,
		Price:       p.Price,
		ForSale:     p.ForSale,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toListingResponse(l Listing) listingResponse {
	return listingResponse{
		petResponse: toPetResponse(l.Pet),
		Owner:       l.Owner,
	}
}
