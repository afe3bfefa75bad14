package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"pet-marketplace/internal/platform/apperr"
	"pet-marketplace/internal/ports/auth"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	// en caracteres, no bytes
	MinPasswordLen = 6
	// bcrypt ignora lo que pase de 72 bytes; lo rechazamos explícitamente.
	MaxPasswordBytes = 72
)

// validEmail acepta solo una dirección desnuda (sin nombre ni <>) con dominio
// de al menos dos etiquetas.
func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndexByte(email, '@')
	domain := email[at+1:]
	return strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}

// mismo mensaje para email inexistente y password incorrecto
const invalidCredentialsMsg = "invalid credentials"

type Service struct {
	repo   Repository
	tokens auth.TokenIssuer
	cost   int
	now    func() time.Time

	// hash de referencia para igualar el costo de login con emails inexistentes
	dummyHash []byte
}

func NewService(repo Repository, tokens auth.TokenIssuer, bcryptCost int) (*Service, error) {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("users: init dummy hash: %w", err)
	}
	return &Service{
		repo:      repo,
		tokens:    tokens,
		cost:      bcryptCost,
		now:       time.Now,
		dummyHash: dummy,
	}, nil
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
	UserType string
}

// AuthResult es lo que devuelven register y login.
type AuthResult struct {
	User      PublicUser
	Token     string
	ExpiresAt time.Time
}

func (in RegisterInput) validate() (RegisterInput, error) {
	out := RegisterInput{
		Name:     strings.TrimSpace(in.Name),
		Email:    NormalizeEmail(in.Email),
		Password: in.Password,
		Phone:    strings.TrimSpace(in.Phone),
		Address:  strings.TrimSpace(in.Address),
		UserType: strings.ToLower(strings.TrimSpace(in.UserType)),
	}
	if out.UserType == "" {
		out.UserType = string(UserTypeAdopter)
	}

	var v apperr.Validator
	v.Check(out.Name != "", "name", "name is required")
	switch {
	case out.Email == "":
		v.Add("email", "email is required")
	case !validEmail(out.Email):
		v.Add("email", "email is invalid")
	}
	switch {
	case out.Password == "":
		v.Add("password", "password is required")
	case utf8.RuneCountInString(out.Password) < MinPasswordLen:
		v.Add("password", fmt.Sprintf("password must be at least %d characters", MinPasswordLen))
	case len(out.Password) > MaxPasswordBytes:
		v.Add("password", fmt.Sprintf("password must be at most %d bytes", MaxPasswordBytes))
	}
	v.Check(out.Phone != "", "phone", "phone is required")
	v.Check(out.Address != "", "address", "address is required")
	v.Check(UserType(out.UserType).Valid(), "userType", "userType must be one of adopter, seller, both")

	return out, v.Err()
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	in, err := in.validate()
	if err != nil {
		return AuthResult{}, err
	}

	// chequeo temprano; la garantía real es el Create atómico del repo
	if _, err := s.repo.GetByEmail(ctx, in.Email); err == nil {
		return AuthResult{}, apperr.Conflict(ErrEmailTaken.Error())
	} else if !errors.Is(err, ErrNotFound) {
		return AuthResult{}, apperr.Internal(fmt.Errorf("lookup email: %w", err))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return AuthResult{}, apperr.Internal(fmt.Errorf("hash password: %w", err))
	}

	u := User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Phone:        in.Phone,
		Address:      in.Address,
		UserType:     UserType(in.UserType),
		CreatedAt:    s.now().UTC(),
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return AuthResult{}, apperr.Conflict(ErrEmailTaken.Error())
		}
		return AuthResult{}, apperr.Internal(fmt.Errorf("create user: %w", err))
	}

	return s.authResult(u)
}

func (s *Service) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return AuthResult{}, apperr.Unauthorized(invalidCredentialsMsg)
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return AuthResult{}, apperr.Internal(fmt.Errorf("lookup email: %w", err))
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return AuthResult{}, apperr.Unauthorized(invalidCredentialsMsg)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return AuthResult{}, apperr.Unauthorized(invalidCredentialsMsg)
	}

	return s.authResult(u)
}

func (s *Service) GetCurrentUser(ctx context.Context, userID string) (PublicUser, error) {
	u, err := s.get(ctx, userID)
	if err != nil {
		return PublicUser{}, err
	}
	return u.Public(), nil
}

func (s *Service) get(ctx context.Context, userID string) (User, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return User{}, apperr.NotFound(ErrNotFound.Error())
	}
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, apperr.NotFound(ErrNotFound.Error())
		}
		return User{}, apperr.Internal(fmt.Errorf("get user: %w", err))
	}
	return u, nil
}

func (s *Service) authResult(u User) (AuthResult, error) {
	tok, err := s.tokens.Issue(u.ID)
	if err != nil {
		return AuthResult{}, apperr.Internal(fmt.Errorf("issue token: %w", err))
	}
	return AuthResult{User: u.Public(), Token: tok.Value, ExpiresAt: tok.ExpiresAt}, nil
}
