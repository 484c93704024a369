// Package session owns the signed-in identity of one front end: token persistence,
// startup hydration, and logout.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"quiz-portal/internal/auth"
	"quiz-portal/internal/models"
	"quiz-portal/pkg/storage"
)

//go:generate mockgen -source=session.go -destination=mock/client_mock.go

// Client is the part of the data service the session depends on.
type Client interface {
	Login(ctx context.Context, creds models.Credentials) (models.Response[models.AuthPayload], error)
	Register(ctx context.Context, reg models.Registration) (models.Response[models.AuthPayload], error)
	CurrentAccount(ctx context.Context) (models.Response[models.Account], error)
}

type State int

const (
	Uninitialized State = iota
	Unauthenticated
	Authenticated
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Authenticated:
		return "authenticated"
	default:
		return "uninitialized"
	}
}

// LoginPath is where Logout sends the front end.
const LoginPath = "/login"

var ErrInvalidResponse = errors.New("invalid response from server")

type Options struct {
	Now      func() time.Time
	Navigate func(path string)
	Log      *zap.Logger
}

// Session is safe for concurrent use. Build one per front end and pass it down.
type Session struct {
	client   Client
	local    storage.Store
	scoped   storage.Store
	now      func() time.Time
	navigate func(path string)
	log      *zap.Logger

	mu      sync.RWMutex
	state   State
	account *models.Account
	token   string
}

// New builds a session over the persistent store local and the store scoped cleared at logout.
func New(client Client, local, scoped storage.Store, opts Options) *Session {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Navigate == nil {
		opts.Navigate = func(string) {}
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	return &Session{
		client:   client,
		local:    local,
		scoped:   scoped,
		now:      opts.Now,
		navigate: opts.Navigate,
		log:      opts.Log,
	}
}

// Bootstrap restores the session from the persisted token. An expired or undecodable
// token is deleted. Only storage failures are returned.
func (s *Session) Bootstrap(ctx context.Context) error {
	token, err := s.local.Get(ctx, storage.KeyToken)
	if errors.Is(err, storage.ErrNotFound) {
		s.setUnauthenticated()
		return nil
	}
	if err != nil {
		s.setUnauthenticated()
		return fmt.Errorf("read token: %w", err)
	}

	if auth.TokenExpired(token, s.now()) {
		s.log.Info("persisted token expired")
		return s.removeToken(ctx)
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	resp, err := s.client.CurrentAccount(ctx)
	if err != nil || !resp.Success || resp.Data == nil {
		s.log.Info("current account unavailable", zap.Error(err))
		return s.removeToken(ctx)
	}

	return s.saveAccount(ctx, *resp.Data)
}

func (s *Session) Login(ctx context.Context, email, password string) error {
	resp, err := s.client.Login(ctx, models.Credentials{Email: email, Password: password})
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return s.accept(ctx, resp, "Login failed")
}

func (s *Session) Register(ctx context.Context, reg models.Registration) error {
	resp, err := s.client.Register(ctx, reg)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return s.accept(ctx, resp, "Registration failed")
}

// accept hydrates the session from a login or registration envelope. A failed envelope
// comes back as its own *models.APIError.
func (s *Session) accept(ctx context.Context, resp models.Response[models.AuthPayload], fallback string) error {
	if !resp.Success || resp.Data == nil {
		if resp.Error != nil && resp.Error.Message != "" {
			return resp.Error
		}
		return &models.APIError{Message: fallback}
	}
	if resp.Data.Token == "" || resp.Data.User.ID == 0 {
		return ErrInvalidResponse
	}

	if err := s.local.Set(ctx, storage.KeyToken, resp.Data.Token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}

	account := resp.Data.User
	s.mu.Lock()
	s.token = resp.Data.Token
	s.account = &account
	s.state = Authenticated
	s.mu.Unlock()
	return nil
}

// Logout forgets the token and the session-scoped store, then navigates to LoginPath.
func (s *Session) Logout(ctx context.Context) error {
	err := s.removeToken(ctx)
	if cerr := s.scoped.Clear(ctx); cerr != nil && err == nil {
		err = fmt.Errorf("clear session storage: %w", cerr)
	}
	s.navigate(LoginPath)
	return err
}

// IsAuthenticated only checks that a token is persisted. Expiry is looked at by
// Bootstrap alone.
func (s *Session) IsAuthenticated(ctx context.Context) bool {
	_, err := s.local.Get(ctx, storage.KeyToken)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		s.log.Warn("read token", zap.Error(err))
	}
	return err == nil
}

// RefreshAccount re-reads the current account; a failure logs the session out.
func (s *Session) RefreshAccount(ctx context.Context) error {
	if !s.IsAuthenticated(ctx) {
		return nil
	}
	resp, err := s.client.CurrentAccount(ctx)
	if err != nil || !resp.Success || resp.Data == nil {
		s.log.Info("refresh account failed", zap.Error(err))
		return s.Logout(ctx)
	}

	account := *resp.Data
	s.mu.Lock()
	s.account = &account
	s.mu.Unlock()
	return nil
}

// RefreshToken is not supported by the backend and always reports false.
func (s *Session) RefreshToken(context.Context) bool {
	return false
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) Account() (models.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.account == nil {
		return models.Account{}, false
	}
	return *s.account, true
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) saveAccount(ctx context.Context, account models.Account) error {
	s.mu.Lock()
	s.account = &account
	s.state = Authenticated
	s.mu.Unlock()

	if err := s.local.Set(ctx, storage.KeyUserRole, string(account.Role)); err != nil {
		return fmt.Errorf("persist role: %w", err)
	}
	if err := s.local.Set(ctx, storage.KeyUserName, account.Name); err != nil {
		return fmt.Errorf("persist name: %w", err)
	}
	return nil
}

func (s *Session) removeToken(ctx context.Context) error {
	s.setUnauthenticated()
	if err := s.local.Delete(ctx, storage.KeyToken); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

func (s *Session) setUnauthenticated() {
	s.mu.Lock()
	s.state = Unauthenticated
	s.account = nil
	s.token = ""
	s.mu.Unlock()
}
