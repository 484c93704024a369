// internal/auth/service.go
package auth

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"quiz-portal/internal/models"
	"quiz-portal/pkg/latency"
	"quiz-portal/pkg/storage"
	"quiz-portal/pkg/validator"
)

const (
	loginDelay   = 400 * time.Millisecond
	currentDelay = 200 * time.Millisecond

	msgInvalidCredentials = "Geçersiz e-posta veya şifre"
	msgNotAuthenticated   = "Not authenticated"
)

// Seeder fills the sample collections for a freshly signed-in account.
type Seeder interface {
	Seed(ctx context.Context, accountID int) error
}

type Options struct {
	TokenTTL time.Duration
	Latency  latency.Simulator
	Now      func() time.Time
	Rand     *rand.Rand
}

type Service struct {
	repo   *Repository
	store  storage.Store
	seeder Seeder
	log    *zap.Logger
	opts   Options

	randMu sync.Mutex
}

func NewService(repo *Repository, store storage.Store, seeder Seeder, log *zap.Logger, opts Options) *Service {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = DefaultTokenTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		repo:   repo,
		store:  store,
		seeder: seeder,
		log:    log,
		opts:   opts,
	}
}

func (s *Service) Login(ctx context.Context, creds models.Credentials) (models.Response[models.AuthPayload], error) {
	if err := s.opts.Latency.Wait(ctx, loginDelay); err != nil {
		return models.Response[models.AuthPayload]{}, err
	}

	account, err := s.repo.VerifyPassword(creds.Email, creds.Password)
	if err != nil {
		s.log.Info("login rejected", zap.String("email", creds.Email), zap.Error(err))
		return models.Fail[models.AuthPayload](models.Unauthorized(msgInvalidCredentials)), nil
	}

	payload, err := s.startSession(ctx, account)
	if err != nil {
		return models.Response[models.AuthPayload]{}, err
	}
	s.log.Info("login", zap.Int("user_id", account.ID), zap.String("role", string(account.Role)))
	return models.OK(payload), nil
}

// Register never checks whether the email is taken; a second registration replaces the first.
func (s *Service) Register(ctx context.Context, reg models.Registration) (models.Response[models.AuthPayload], error) {
	if err := s.opts.Latency.Wait(ctx, loginDelay); err != nil {
		return models.Response[models.AuthPayload]{}, err
	}

	if err := validator.ValidateStruct(reg); err != nil {
		return models.Fail[models.AuthPayload](models.InvalidInput(err.Error())), nil
	}

	account := models.NewAccount(s.randomID(), reg.DisplayName(), reg.Email, reg.Role)
	if err := s.repo.CreateUser(account, reg.Password); err != nil {
		return models.Response[models.AuthPayload]{}, fmt.Errorf("store credential: %w", err)
	}

	payload, err := s.startSession(ctx, account)
	if err != nil {
		return models.Response[models.AuthPayload]{}, err
	}
	s.log.Info("registered", zap.Int("user_id", account.ID), zap.String("email", account.Email))
	return models.OK(payload), nil
}

func (s *Service) CurrentAccount(ctx context.Context) (models.Response[models.Account], error) {
	if err := s.opts.Latency.Wait(ctx, currentDelay); err != nil {
		return models.Response[models.Account]{}, err
	}

	var account models.Account
	ok, err := storage.GetJSON(ctx, s.store, storage.KeyUser, &account)
	if err != nil {
		return models.Response[models.Account]{}, err
	}
	if !ok {
		return models.Fail[models.Account](models.Unauthorized(msgNotAuthenticated)), nil
	}
	return models.OK(account), nil
}

func (s *Service) startSession(ctx context.Context, account models.Account) (models.AuthPayload, error) {
	token, err := MintToken(s.opts.Now(), s.opts.TokenTTL)
	if err != nil {
		return models.AuthPayload{}, fmt.Errorf("mint token: %w", err)
	}
	if err := storage.SetJSON(ctx, s.store, storage.KeyUser, account); err != nil {
		return models.AuthPayload{}, err
	}
	if err := s.store.Set(ctx, storage.KeyToken, token); err != nil {
		return models.AuthPayload{}, fmt.Errorf("persist token: %w", err)
	}
	if s.seeder != nil {
		if err := s.seeder.Seed(ctx, account.ID); err != nil {
			return models.AuthPayload{}, fmt.Errorf("seed collections: %w", err)
		}
	}
	return models.AuthPayload{User: account, Token: token}, nil
}

// randomID picks an id in [3, 10002], clear of the seed accounts.
func (s *Service) randomID() int {
	s.randMu.Lock()
	defer s.randMu.Unlock()
	return s.opts.Rand.Intn(10000) + 3
}
