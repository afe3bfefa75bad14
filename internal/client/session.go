package client

import (
	"errors"
	"strings"
	"sync"
	"time"
)

type State int

const (
	Unresolved State = iota
	Authenticated
	Anonymous
)

func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	default:
		return "unresolved"
	}
}

var (
	// ErrUnresolved: la sesión todavía no se hidrató; la UI debe mostrar
	// "cargando", no mandar al login.
	ErrUnresolved = errors.New("session not resolved yet")
	// ErrNotAuthenticated: sesión resuelta y sin usuario.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// Session guarda el usuario y token actuales y los sincroniza con un
// SessionStore. Es seguro usarla desde varias goroutines.
type Session struct {
	mu    sync.Mutex
	store SessionStore
	now   func() time.Time

	state     State
	token     string
	expiresAt time.Time
	user      User

	nextSub int
	subs    map[int]func(State)
}

func NewSession(store SessionStore) *Session {
	return &Session{
		store: store,
		now:   time.Now,
		subs:  map[int]func(State){},
	}
}

// Hydrate carga la sesión persistida de forma síncrona. Un token vencido o
// un archivo ilegible dejan la sesión Anonymous (y se limpia lo guardado).
func (s *Session) Hydrate() error {
	p, loadErr := s.store.Load()

	s.mu.Lock()
	if loadErr == nil && p != nil && p.Token != "" && (p.ExpiresAt.IsZero() || s.now().Before(p.ExpiresAt)) {
		s.state = Authenticated
		s.token = p.Token
		s.expiresAt = p.ExpiresAt
		s.user = p.User
		s.mu.Unlock()
		s.notify(Authenticated)
		return nil
	}
	s.resetLocked()
	s.mu.Unlock()

	if loadErr != nil || p != nil {
		if err := s.store.Clear(); err != nil {
			return err
		}
	}
	s.notify(Anonymous)
	return loadErr
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Token devuelve el bearer actual o "" si no hay sesión.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Authenticated {
		return ""
	}
	return s.token
}

// RequireAuthenticated es el guard de las vistas protegidas.
func (s *Session) RequireAuthenticated() (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case Unresolved:
		return User{}, ErrUnresolved
	case Anonymous:
		return User{}, ErrNotAuthenticated
	}
	return s.user, nil
}

// Subscribe registra fn para cada cambio de estado; devuelve la baja.
func (s *Session) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// SignIn pasa a Authenticated y persiste token + usuario.
func (s *Session) SignIn(token string, expiresAt time.Time, u User) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("empty token")
	}
	s.mu.Lock()
	s.state = Authenticated
	s.token = token
	s.expiresAt = expiresAt
	s.user = u
	s.mu.Unlock()

	err := s.store.Save(Persisted{Token: token, ExpiresAt: expiresAt, User: u})
	s.notify(Authenticated)
	return err
}

// SignOut pasa a Anonymous y borra lo persistido.
func (s *Session) SignOut() error {
	s.mu.Lock()
	s.resetLocked()
	s.mu.Unlock()

	err := s.store.Clear()
	s.notify(Anonymous)
	return err
}

// expire es SignOut solo si el token rechazado sigue siendo el vigente;
// un login concurrente posterior no se pisa.
func (s *Session) expire(token string) {
	s.mu.Lock()
	if s.state != Authenticated || s.token != token {
		s.mu.Unlock()
		return
	}
	s.resetLocked()
	s.mu.Unlock()

	_ = s.store.Clear()
	s.notify(Anonymous)
}

func (s *Session) resetLocked() {
	s.state = Anonymous
	s.token = ""
	s.expiresAt = time.Time{}
	s.user = User{}
}

func (s *Session) notify(st State) {
	s.mu.Lock()
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(st)
	}
}
