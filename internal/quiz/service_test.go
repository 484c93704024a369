package quiz

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"quiz-portal/internal/models"
	"quiz-portal/pkg/latency"
	"quiz-portal/pkg/storage"
)

var fixedNow = time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)

type eventLog struct {
	mu     sync.Mutex
	events []models.QuizEvent
}

func (l *eventLog) Publish(event models.QuizEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
}

func (l *eventLog) types() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, 0, len(l.events))
	for _, e := range l.events {
		out = append(out, e.Type)
	}
	return out
}

func newTestService(t *testing.T) (*Service, *storage.MemoryStore, *eventLog) {
	t.Helper()
	store := storage.NewMemoryStore()
	events := &eventLog{}
	svc := NewService(NewRepository(store, func() time.Time { return fixedNow }), zap.NewNop(), latency.Off, events)
	svc.now = func() time.Time { return fixedNow }
	return svc, store, events
}

func strPtr(s string) *string { return &s }

func TestService_GetQuizzesSeedsOnce(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.GetQuizzes(ctx)
	require.NoError(t, err)
	require.True(t, first.Success)
	assert.Len(t, *first.Data, 3)

	require.NoError(t, svc.Seed(ctx, 2))
	require.NoError(t, svc.Seed(ctx, 2))

	again, err := svc.GetMyQuizzes(ctx)
	require.NoError(t, err)
	assert.Equal(t, *first.Data, *again.Data)

	var results []models.Result
	ok, err := storage.GetJSON(ctx, store, storage.KeyResults, &results)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, results, 2)
}

func TestService_EmptyCollectionStaysEmpty(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	for _, id := range []int{1, 2, 3} {
		_, err := svc.DeleteQuiz(ctx, id)
		require.NoError(t, err)
	}

	resp, err := svc.GetQuizzes(ctx)
	require.NoError(t, err)
	assert.Empty(t, *resp.Data)

	created, err := svc.CreateQuiz(ctx, models.QuizDraft{Title: "Only"})
	require.NoError(t, err)
	assert.Equal(t, 1, created.Data.ID)
}

func TestService_CreateThenGet(t *testing.T) {
	svc, _, events := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateQuiz(ctx, models.QuizDraft{
		Title:      "Go Concurrency",
		Category:   "Backend",
		TimeLimit:  45,
		Difficulty: models.DifficultyHard,
	})
	require.NoError(t, err)
	require.True(t, created.Success)

	quiz := *created.Data
	assert.Equal(t, 4, quiz.ID)
	assert.Equal(t, fixedNow, quiz.CreatedAt)
	assert.Equal(t, 45, quiz.TimeLimit)

	got, err := svc.GetQuizByID(ctx, quiz.ID)
	require.NoError(t, err)
	require.True(t, got.Success)
	assert.Equal(t, quiz, *got.Data)

	assert.Equal(t, []string{models.EventQuizCreated}, events.types())
}

func TestService_CreateAssignsFreshIDs(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.DeleteQuiz(ctx, 2)
	require.NoError(t, err)

	seen := map[int]bool{1: true, 3: true}
	for i := 0; i < 5; i++ {
		resp, err := svc.CreateQuiz(ctx, models.QuizDraft{})
		require.NoError(t, err)
		id := resp.Data.ID
		assert.False(t, seen[id], "id %d reused", id)
		for existing := range seen {
			assert.Greater(t, id, existing)
		}
		seen[id] = true
	}
}

func TestService_CreateDefaults(t *testing.T) {
	svc, _, _ := newTestService(t)

	resp, err := svc.CreateQuiz(context.Background(), models.QuizDraft{})
	require.NoError(t, err)
	quiz := *resp.Data
	assert.Equal(t, models.DefaultQuizTitle, quiz.Title)
	assert.Equal(t, models.DefaultQuizCategory, quiz.Category)
	assert.Equal(t, models.DefaultQuizTimeLimit, quiz.TimeLimit)
	assert.Equal(t, models.DefaultQuizDifficulty, quiz.Difficulty)
	assert.Equal(t, 0, quiz.QuestionsCount)
}

func TestService_CreateInvalid(t *testing.T) {
	svc, _, events := newTestService(t)

	resp, err := svc.CreateQuiz(context.Background(), models.QuizDraft{Difficulty: "impossible"})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, http.StatusBadRequest, resp.Status())
	assert.Empty(t, events.types())
}

func TestService_GetMissing(t *testing.T) {
	svc, _, _ := newTestService(t)

	resp, err := svc.GetQuizByID(context.Background(), 999)
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Nil(t, resp.Data)
	assert.Equal(t, http.StatusNotFound, resp.Status())
	assert.Equal(t, msgQuizNotFound, resp.Error.Message)
}

func TestService_UpdateMergesFields(t *testing.T) {
	svc, _, events := newTestService(t)
	ctx := context.Background()

	before, err := svc.GetQuizByID(ctx, 2)
	require.NoError(t, err)

	resp, err := svc.UpdateQuiz(ctx, 2, models.QuizPatch{Title: strPtr("React 19")})
	require.NoError(t, err)
	require.True(t, resp.Success)

	want := *before.Data
	want.Title = "React 19"
	assert.Equal(t, want, *resp.Data)

	after, err := svc.GetQuizByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, want, *after.Data)

	assert.Equal(t, []string{models.EventQuizUpdated}, events.types())
}

func TestService_UpdateMissing(t *testing.T) {
	svc, _, events := newTestService(t)

	resp, err := svc.UpdateQuiz(context.Background(), 42, models.QuizPatch{Title: strPtr("x")})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.Status())
	assert.Empty(t, events.types())
}

func TestService_DeleteIsIdempotent(t *testing.T) {
	svc, _, events := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		resp, err := svc.DeleteQuiz(ctx, 1)
		require.NoError(t, err)
		assert.True(t, resp.Success)
	}

	got, err := svc.GetQuizByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, got.Status())

	list, err := svc.GetQuizzes(ctx)
	require.NoError(t, err)
	assert.Len(t, *list.Data, 2)

	assert.Equal(t, []string{models.EventQuizDeleted}, events.types())
}

func TestService_ConcurrentCreates(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateQuiz(ctx, models.QuizDraft{})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	list, err := svc.GetQuizzes(ctx)
	require.NoError(t, err)
	ids := make(map[int]bool)
	for _, q := range *list.Data {
		ids[q.ID] = true
	}
	assert.Len(t, ids, 13)
}

func TestService_StudentResults(t *testing.T) {
	svc, _, _ := newTestService(t)

	resp, err := svc.GetStudentResults(context.Background(), 7)
	require.NoError(t, err)
	require.True(t, resp.Success)
	assert.Equal(t, 50, resp.Data.TotalScore)
	assert.Len(t, resp.Data.Answers, 2)
}

func TestService_AIFeedback(t *testing.T) {
	svc, _, _ := newTestService(t)

	resp, err := svc.GetAIFeedback(context.Background(), 9)
	require.NoError(t, err)
	require.True(t, resp.Success)
	assert.Equal(t, 9, resp.Data.AnswerID)
	assert.Equal(t, 0, resp.Data.QuestionID)
	assert.False(t, resp.Data.Cached)
	assert.Equal(t, models.CannedFeedback, resp.Data.Explanation)
	assert.Equal(t, fixedNow.Unix(), resp.Data.Timestamp)
}

func TestService_CancelledBeforeWrite(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewService(NewRepository(store, nil), zap.NewNop(), latency.New(true), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.CreateQuiz(ctx, models.QuizDraft{Title: "never"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, store.Len())
}

type slowStore struct {
	*storage.MemoryStore
	delay time.Duration
}

func (s slowStore) Get(ctx context.Context, key string) (string, error) {
	time.Sleep(s.delay)
	return s.MemoryStore.Get(ctx, key)
}

func TestService_FirstReadDoesNotClobberCreate(t *testing.T) {
	store := slowStore{MemoryStore: storage.NewMemoryStore(), delay: 20 * time.Millisecond}
	svc := NewService(NewRepository(store, nil), zap.NewNop(), latency.Off, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		resp, err := svc.CreateQuiz(ctx, models.QuizDraft{Title: "mine"})
		assert.NoError(t, err)
		assert.True(t, resp.Success)
	}()
	go func() {
		defer wg.Done()
		time.Sleep(5 * time.Millisecond)
		_, err := svc.GetQuizzes(ctx)
		assert.NoError(t, err)
	}()
	wg.Wait()

	list, err := svc.GetQuizzes(ctx)
	require.NoError(t, err)
	assert.Len(t, *list.Data, 4)
}

func TestService_SeedRacingCreate(t *testing.T) {
	store := slowStore{MemoryStore: storage.NewMemoryStore(), delay: 20 * time.Millisecond}
	svc := NewService(NewRepository(store, nil), zap.NewNop(), latency.Off, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := svc.CreateQuiz(ctx, models.QuizDraft{Title: "mine"})
		assert.NoError(t, err)
	}()
	go func() {
		defer wg.Done()
		time.Sleep(5 * time.Millisecond)
		assert.NoError(t, svc.Seed(ctx, 2))
	}()
	wg.Wait()

	list, err := svc.GetQuizzes(ctx)
	require.NoError(t, err)
	assert.Len(t, *list.Data, 4)
}
