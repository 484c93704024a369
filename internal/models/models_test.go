package models

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuiz_Defaults(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name  string
		draft QuizDraft
		want  Quiz
	}{
		{
			name:  "empty draft",
			draft: QuizDraft{},
			want: Quiz{ID: 4, Title: DefaultQuizTitle, CreatedAt: now, Category: DefaultQuizCategory,
				TimeLimit: DefaultQuizTimeLimit, Difficulty: DifficultyMedium},
		},
		{
			name: "questions override count",
			draft: QuizDraft{Title: "Go", QuestionsCount: 9,
				Questions: []json.RawMessage{json.RawMessage(`{}`), json.RawMessage(`{}`)}},
			want: Quiz{ID: 4, Title: "Go", QuestionsCount: 2, CreatedAt: now, Category: DefaultQuizCategory,
				TimeLimit: DefaultQuizTimeLimit, Difficulty: DifficultyMedium},
		},
		{
			name: "explicit fields kept",
			draft: QuizDraft{Title: "Go", Description: "d", Category: "Lang", TimeLimit: 15,
				Difficulty: DifficultyHard, QuestionsCount: 5},
			want: Quiz{ID: 4, Title: "Go", Description: "d", QuestionsCount: 5, CreatedAt: now,
				Category: "Lang", TimeLimit: 15, Difficulty: DifficultyHard},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewQuiz(4, tt.draft, now))
		})
	}
}

func TestQuizPatch_Apply(t *testing.T) {
	orig := SampleQuizzes(time.Now())[1]
	title := "X"

	got := QuizPatch{Title: &title}.Apply(orig)

	want := orig
	want.Title = "X"
	assert.Equal(t, want, got)
}

func TestQuizPatch_Decode(t *testing.T) {
	var p QuizPatch
	require.NoError(t, json.Unmarshal([]byte(`{"time_limit":0,"difficulty":"hard"}`), &p))
	require.NotNil(t, p.TimeLimit)
	assert.Equal(t, 0, *p.TimeLimit)
	assert.Equal(t, DifficultyHard, *p.Difficulty)
	assert.Nil(t, p.Title)
}

func TestTotalScore(t *testing.T) {
	assert.Equal(t, 50, TotalScore(SampleAnswers()))
	assert.Equal(t, 0, TotalScore(nil))
	assert.Equal(t, 67, TotalScore([]Answer{{IsCorrect: true}, {IsCorrect: true}, {}}))
}

func TestNewAccount(t *testing.T) {
	assert.True(t, NewAccount(1, "a", "a@x.io", RoleTeacher).IsTeacher)
	assert.False(t, NewAccount(2, "b", "b@x.io", RoleStudent).IsTeacher)
}

func TestRegistration_DisplayName(t *testing.T) {
	assert.Equal(t, "Ada", Registration{Name: "Ada", FullName: "Ada L"}.DisplayName())
	assert.Equal(t, "Ada L", Registration{FullName: "Ada L"}.DisplayName())
	assert.Equal(t, DefaultDisplayName, Registration{Name: "  "}.DisplayName())
}

func TestResponse(t *testing.T) {
	ok := OK(Quiz{ID: 1})
	assert.Equal(t, http.StatusOK, ok.Status())
	data, err := json.Marshal(ok)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"error"`)

	fail := Fail[Quiz](NotFound("Quiz not found"))
	assert.Equal(t, http.StatusNotFound, fail.Status())
	data, err = json.Marshal(fail)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":{"message":"Quiz not found","status_code":404}}`, string(data))

	assert.Equal(t, http.StatusInternalServerError, Fail[Quiz](&APIError{Message: "boom"}).Status())
}
