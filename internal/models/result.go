// internal/models/result.go
package models

import (
	"math"
	"time"
)

type Result struct {
	ID      int       `json:"id"`
	UserID  int       `json:"user_id"`
	QuizID  int       `json:"quiz_id"`
	Score   int       `json:"score"`
	TakenAt time.Time `json:"taken_at"`
}

func SampleResults(userID int, now time.Time) []Result {
	return []Result{
		{ID: 101, UserID: userID, QuizID: 1, Score: 85, TakenAt: now},
		{ID: 102, UserID: userID, QuizID: 2, Score: 72, TakenAt: now},
	}
}

type Question struct {
	Text          string `json:"text"`
	CorrectOption string `json:"correct_option"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
}

type Answer struct {
	ID             int      `json:"id"`
	QuestionID     int      `json:"question_id"`
	SelectedOption string   `json:"selected_option"`
	IsCorrect      bool     `json:"is_correct"`
	Score          int      `json:"score"`
	Question       Question `json:"question"`
}

type StudentResults struct {
	TotalScore int      `json:"total_score"`
	Answers    []Answer `json:"answers"`
}

// SampleAnswers is the answer sheet every student sees.
func SampleAnswers() []Answer {
	return []Answer{
		{
			ID:             1,
			QuestionID:     11,
			SelectedOption: "A",
			IsCorrect:      true,
			Score:          10,
			Question: Question{
				Text:          "JavaScript değişken tanımlama anahtar kelimeleri hangileridir?",
				CorrectOption: "A",
				OptionA:       "var, let, const",
				OptionB:       "int, char, float",
				OptionC:       "define, declare, const",
				OptionD:       "make, set, assign",
			},
		},
		{
			ID:             2,
			QuestionID:     12,
			SelectedOption: "B",
			IsCorrect:      false,
			Score:          0,
			Question: Question{
				Text:          "React Hook hangisidir?",
				CorrectOption: "C",
				OptionA:       "render()",
				OptionB:       "componentWillMount",
				OptionC:       "useEffect",
				OptionD:       "getDerivedStateFromProps",
			},
		},
	}
}

// TotalScore is the share of correct answers as a rounded percentage.
func TotalScore(answers []Answer) int {
	if len(answers) == 0 {
		return 0
	}
	correct := 0
	for _, a := range answers {
		if a.IsCorrect {
			correct++
		}
	}
	return int(math.Round(float64(correct) / float64(len(answers)) * 100))
}

type Feedback struct {
	AnswerID    int    `json:"answerId"`
	QuestionID  int    `json:"questionId"`
	Explanation string `json:"explanation"`
	Cached      bool   `json:"cached"`
	Timestamp   int64  `json:"timestamp"`
}

const CannedFeedback = "Cevabınızın mantığı doğru. Daha yüksek puan için örnek ve karşı örnekler ekleyin."
