// pkg/storage/storage.go
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Keys of the client-side namespace. Values are JSON except Token and the two mirrors.
const (
	KeyUser     = "demo_user"
	KeyToken    = "token"
	KeyQuizzes  = "demo_quizzes"
	KeyResults  = "demo_results"
	KeyUserRole = "user_role"
	KeyUserName = "user_name"
)

var ErrNotFound = errors.New("storage: key not found")

// Store is a flat namespace of string keys to string values.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// GetJSON decodes the value under key into v. It reports false when the key is absent.
func GetJSON(ctx context.Context, s Store, key string, v interface{}) (bool, error) {
	raw, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func SetJSON(ctx context.Context, s Store, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, key, string(data))
}
