// internal/auth/repository.go
package auth

import (
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"quiz-portal/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

// SeedPassword is shared by the two demo accounts.
const SeedPassword = "123456"

type credential struct {
	account      models.Account
	passwordHash []byte
}

// Repository is the credential directory. It lives in process memory only, so
// registrations are gone after a restart.
type Repository struct {
	mu    sync.RWMutex
	cost  int
	users map[string]credential
}

// NewRepository returns a directory holding the two seed accounts, hashed with cost.
func NewRepository(cost int) (*Repository, error) {
	r := &Repository{
		cost:  cost,
		users: make(map[string]credential),
	}
	seeds := []models.Account{
		models.NewAccount(1, "Öğretmen", "teacher@example.com", models.RoleTeacher),
		models.NewAccount(2, "Öğrenci", "student@example.com", models.RoleStudent),
	}
	for _, a := range seeds {
		if err := r.CreateUser(a, SeedPassword); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// CreateUser stores the account under its email, replacing any previous entry.
func (r *Repository) CreateUser(account models.Account, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), r.cost)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[account.Email] = credential{account: account, passwordHash: hash}
	return nil
}

func (r *Repository) GetUserByEmail(email string) (models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.users[email]
	if !ok {
		return models.Account{}, ErrUserNotFound
	}
	return c.account, nil
}

// VerifyPassword returns the account when email and password match.
func (r *Repository) VerifyPassword(email, password string) (models.Account, error) {
	r.mu.RLock()
	c, ok := r.users[email]
	r.mu.RUnlock()
	if !ok {
		return models.Account{}, ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword(c.passwordHash, []byte(password)); err != nil {
		return models.Account{}, errors.New("invalid password")
	}
	return c.account, nil
}
