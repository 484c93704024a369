// internal/quiz/repository.go
package quiz

import (
	"context"
	"fmt"
	"time"

	"quiz-portal/internal/models"
	"quiz-portal/pkg/storage"
)

// Repository keeps the quiz and result collections as whole JSON arrays in the store.
// Every read of an absent collection writes the sample set first.
type Repository struct {
	store storage.Store
	now   func() time.Time
}

func NewRepository(store storage.Store, now func() time.Time) *Repository {
	if now == nil {
		now = time.Now
	}
	return &Repository{store: store, now: now}
}

func (r *Repository) GetQuizzes(ctx context.Context) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	ok, err := storage.GetJSON(ctx, r.store, storage.KeyQuizzes, &quizzes)
	if err != nil {
		return nil, err
	}
	if ok {
		return quizzes, nil
	}

	quizzes = models.SampleQuizzes(r.now().UTC())
	if err := r.SaveQuizzes(ctx, quizzes); err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *Repository) SaveQuizzes(ctx context.Context, quizzes []models.Quiz) error {
	if quizzes == nil {
		quizzes = []models.Quiz{}
	}
	if err := storage.SetJSON(ctx, r.store, storage.KeyQuizzes, quizzes); err != nil {
		return fmt.Errorf("save quizzes: %w", err)
	}
	return nil
}

// GetResults seeds the result collection for userID when none is stored yet. An existing
// collection is returned as is, whoever it was seeded for.
func (r *Repository) GetResults(ctx context.Context, userID int) ([]models.Result, error) {
	var results []models.Result
	ok, err := storage.GetJSON(ctx, r.store, storage.KeyResults, &results)
	if err != nil {
		return nil, err
	}
	if ok {
		return results, nil
	}

	results = models.SampleResults(userID, r.now().UTC())
	if err := storage.SetJSON(ctx, r.store, storage.KeyResults, results); err != nil {
		return nil, fmt.Errorf("save results: %w", err)
	}
	return results, nil
}
