// internal/models/quiz.go
package models

import (
	"encoding/json"
	"time"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Defaults applied when a draft leaves a field empty.
const (
	DefaultQuizTitle      = "Yeni Quiz"
	DefaultQuizCategory   = "General"
	DefaultQuizTimeLimit  = 30
	DefaultQuizDifficulty = DifficultyMedium
)

type Quiz struct {
	ID             int        `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	QuestionsCount int        `json:"questions_count"`
	CreatedAt      time.Time  `json:"created_at"`
	Category       string     `json:"category"`
	TimeLimit      int        `json:"time_limit"`
	Difficulty     Difficulty `json:"difficulty"`
}

// QuizDraft is the input of quiz creation. Questions are only counted.
type QuizDraft struct {
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	Category       string            `json:"category"`
	TimeLimit      int               `json:"time_limit" validate:"gte=0"`
	Difficulty     Difficulty        `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	QuestionsCount int               `json:"questions_count" validate:"gte=0"`
	Questions      []json.RawMessage `json:"questions,omitempty"`
}

// NewQuiz builds a stored quiz from a draft, filling defaults.
func NewQuiz(id int, d QuizDraft, now time.Time) Quiz {
	q := Quiz{
		ID:             id,
		Title:          d.Title,
		Description:    d.Description,
		QuestionsCount: d.QuestionsCount,
		CreatedAt:      now,
		Category:       d.Category,
		TimeLimit:      d.TimeLimit,
		Difficulty:     d.Difficulty,
	}
	if d.Questions != nil {
		q.QuestionsCount = len(d.Questions)
	}
	if q.Title == "" {
		q.Title = DefaultQuizTitle
	}
	if q.Category == "" {
		q.Category = DefaultQuizCategory
	}
	if q.TimeLimit == 0 {
		q.TimeLimit = DefaultQuizTimeLimit
	}
	if q.Difficulty == "" {
		q.Difficulty = DefaultQuizDifficulty
	}
	return q
}

// QuizPatch holds the fields an update may overwrite; nil means untouched.
type QuizPatch struct {
	Title          *string     `json:"title,omitempty"`
	Description    *string     `json:"description,omitempty"`
	Category       *string     `json:"category,omitempty"`
	TimeLimit      *int        `json:"time_limit,omitempty" validate:"omitempty,gte=0"`
	Difficulty     *Difficulty `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard"`
	QuestionsCount *int        `json:"questions_count,omitempty" validate:"omitempty,gte=0"`
}

func (p QuizPatch) Apply(q Quiz) Quiz {
	if p.Title != nil {
		q.Title = *p.Title
	}
	if p.Description != nil {
		q.Description = *p.Description
	}
	if p.Category != nil {
		q.Category = *p.Category
	}
	if p.TimeLimit != nil {
		q.TimeLimit = *p.TimeLimit
	}
	if p.Difficulty != nil {
		q.Difficulty = *p.Difficulty
	}
	if p.QuestionsCount != nil {
		q.QuestionsCount = *p.QuestionsCount
	}
	return q
}

// SampleQuizzes is the collection written the first time quizzes are read.
func SampleQuizzes(now time.Time) []Quiz {
	return []Quiz{
		{ID: 1, Title: "JavaScript Temelleri", Description: "Değişkenler, fonksiyonlar ve döngüler", QuestionsCount: 10, CreatedAt: now, Category: "Web", TimeLimit: 30, Difficulty: DifficultyEasy},
		{ID: 2, Title: "React 18", Description: "Hooks, Context ve Concurrent özellikleri", QuestionsCount: 12, CreatedAt: now, Category: "Frontend", TimeLimit: 40, Difficulty: DifficultyMedium},
		{ID: 3, Title: "TypeScript", Description: "Tipler, generics ve gelişmiş patternler", QuestionsCount: 8, CreatedAt: now, Category: "Language", TimeLimit: 25, Difficulty: DifficultyHard},
	}
}

// QuizEvent is pushed to dashboards when the quiz collection changes.
type QuizEvent struct {
	Type string `json:"type"`
	Quiz *Quiz  `json:"quiz,omitempty"`
	ID   int    `json:"id"`
}

const (
	EventQuizCreated = "quiz_created"
	EventQuizUpdated = "quiz_updated"
	EventQuizDeleted = "quiz_deleted"
)
