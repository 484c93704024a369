// internal/quiz/service.go
package quiz

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"quiz-portal/internal/models"
	"quiz-portal/pkg/latency"
	"quiz-portal/pkg/validator"
)

const (
	listDelay     = 300 * time.Millisecond
	getDelay      = 200 * time.Millisecond
	writeDelay    = 300 * time.Millisecond
	deleteDelay   = 200 * time.Millisecond
	resultsDelay  = 300 * time.Millisecond
	feedbackDelay = 500 * time.Millisecond

	msgQuizNotFound = "Quiz not found"
)

// Notifier receives quiz collection changes.
type Notifier interface {
	Publish(event models.QuizEvent)
}

type Service struct {
	repo     *Repository
	log      *zap.Logger
	latency  latency.Simulator
	notifier Notifier
	now      func() time.Time

	// serializes every store write, seeding included
	mu sync.Mutex
}

func NewService(repo *Repository, log *zap.Logger, lat latency.Simulator, notifier Notifier) *Service {
	return &Service{
		repo:     repo,
		log:      log,
		latency:  lat,
		notifier: notifier,
		now:      time.Now,
	}
}

// Seed writes the sample quizzes and results unless they already exist.
func (s *Service) Seed(ctx context.Context, accountID int) error {
	if _, err := s.quizzes(ctx); err != nil {
		return err
	}
	_, err := s.results(ctx, accountID)
	return err
}

// quizzes reads the collection under mu; the first read of an absent collection
// writes the samples.
func (s *Service) quizzes(ctx context.Context) ([]models.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.GetQuizzes(ctx)
}

func (s *Service) results(ctx context.Context, accountID int) ([]models.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.GetResults(ctx, accountID)
}

func (s *Service) GetQuizzes(ctx context.Context) (models.Response[[]models.Quiz], error) {
	if err := s.latency.Wait(ctx, listDelay); err != nil {
		return models.Response[[]models.Quiz]{}, err
	}
	quizzes, err := s.quizzes(ctx)
	if err != nil {
		return models.Response[[]models.Quiz]{}, err
	}
	return models.OK(quizzes), nil
}

// GetMyQuizzes returns the whole collection; quizzes carry no owner to filter on.
func (s *Service) GetMyQuizzes(ctx context.Context) (models.Response[[]models.Quiz], error) {
	return s.GetQuizzes(ctx)
}

func (s *Service) GetQuizByID(ctx context.Context, id int) (models.Response[models.Quiz], error) {
	if err := s.latency.Wait(ctx, getDelay); err != nil {
		return models.Response[models.Quiz]{}, err
	}
	quizzes, err := s.quizzes(ctx)
	if err != nil {
		return models.Response[models.Quiz]{}, err
	}
	for _, q := range quizzes {
		if q.ID == id {
			return models.OK(q), nil
		}
	}
	return models.Fail[models.Quiz](models.NotFound(msgQuizNotFound)), nil
}

func (s *Service) CreateQuiz(ctx context.Context, draft models.QuizDraft) (models.Response[models.Quiz], error) {
	if err := s.latency.Wait(ctx, writeDelay); err != nil {
		return models.Response[models.Quiz]{}, err
	}
	if err := validator.ValidateStruct(draft); err != nil {
		return models.Fail[models.Quiz](models.InvalidInput(err.Error())), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	quizzes, err := s.repo.GetQuizzes(ctx)
	if err != nil {
		return models.Response[models.Quiz]{}, err
	}

	quiz := models.NewQuiz(nextID(quizzes), draft, s.now().UTC())
	if err := s.repo.SaveQuizzes(ctx, append(quizzes, quiz)); err != nil {
		return models.Response[models.Quiz]{}, err
	}

	s.log.Info("quiz created", zap.Int("quiz_id", quiz.ID), zap.String("title", quiz.Title))
	s.publish(models.QuizEvent{Type: models.EventQuizCreated, ID: quiz.ID, Quiz: &quiz})
	return models.OK(quiz), nil
}

func (s *Service) UpdateQuiz(ctx context.Context, id int, patch models.QuizPatch) (models.Response[models.Quiz], error) {
	if err := s.latency.Wait(ctx, writeDelay); err != nil {
		return models.Response[models.Quiz]{}, err
	}
	if err := validator.ValidateStruct(patch); err != nil {
		return models.Fail[models.Quiz](models.InvalidInput(err.Error())), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	quizzes, err := s.repo.GetQuizzes(ctx)
	if err != nil {
		return models.Response[models.Quiz]{}, err
	}

	idx := -1
	for i, q := range quizzes {
		if q.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return models.Fail[models.Quiz](models.NotFound(msgQuizNotFound)), nil
	}

	updated := patch.Apply(quizzes[idx])
	quizzes[idx] = updated
	if err := s.repo.SaveQuizzes(ctx, quizzes); err != nil {
		return models.Response[models.Quiz]{}, err
	}

	s.log.Info("quiz updated", zap.Int("quiz_id", id))
	s.publish(models.QuizEvent{Type: models.EventQuizUpdated, ID: id, Quiz: &updated})
	return models.OK(updated), nil
}

// DeleteQuiz reports success whether or not the id existed.
func (s *Service) DeleteQuiz(ctx context.Context, id int) (models.Response[struct{}], error) {
	if err := s.latency.Wait(ctx, deleteDelay); err != nil {
		return models.Response[struct{}]{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	quizzes, err := s.repo.GetQuizzes(ctx)
	if err != nil {
		return models.Response[struct{}]{}, err
	}

	kept := make([]models.Quiz, 0, len(quizzes))
	for _, q := range quizzes {
		if q.ID != id {
			kept = append(kept, q)
		}
	}
	if err := s.repo.SaveQuizzes(ctx, kept); err != nil {
		return models.Response[struct{}]{}, err
	}

	if len(kept) != len(quizzes) {
		s.log.Info("quiz deleted", zap.Int("quiz_id", id))
		s.publish(models.QuizEvent{Type: models.EventQuizDeleted, ID: id})
	}
	return models.OK(struct{}{}), nil
}

// GetStudentResults returns the same answer sheet for every account.
func (s *Service) GetStudentResults(ctx context.Context, accountID int) (models.Response[models.StudentResults], error) {
	if err := s.latency.Wait(ctx, resultsDelay); err != nil {
		return models.Response[models.StudentResults]{}, err
	}
	if _, err := s.results(ctx, accountID); err != nil {
		return models.Response[models.StudentResults]{}, err
	}

	answers := models.SampleAnswers()
	return models.OK(models.StudentResults{
		TotalScore: models.TotalScore(answers),
		Answers:    answers,
	}), nil
}

// GetAIFeedback answers with a canned explanation; no model is consulted.
func (s *Service) GetAIFeedback(ctx context.Context, answerID int) (models.Response[models.Feedback], error) {
	if err := s.latency.Wait(ctx, feedbackDelay); err != nil {
		return models.Response[models.Feedback]{}, err
	}
	return models.OK(models.Feedback{
		AnswerID:    answerID,
		QuestionID:  0,
		Explanation: models.CannedFeedback,
		Cached:      false,
		Timestamp:   s.now().Unix(),
	}), nil
}

func (s *Service) publish(event models.QuizEvent) {
	if s.notifier != nil {
		s.notifier.Publish(event)
	}
}

// nextID is one past the largest id, or 1 for an empty collection.
func nextID(quizzes []models.Quiz) int {
	highest := 0
	for _, q := range quizzes {
		if q.ID > highest {
			highest = q.ID
		}
	}
	return highest + 1
}
