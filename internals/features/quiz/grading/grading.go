// Package grading scores a submitted answer map against stored questions.
// Everything here is pure: no clock, no store, no randomness.
package grading

import (
	"github.com/google/uuid"

	"quizku_backend/internals/features/quiz/questions/model"
)

const (
	StatusCorrect    = "correct"
	StatusIncorrect  = "incorrect"
	StatusUnanswered = "unanswered"
)

type Outcome struct {
	QuestionID uuid.UUID `json:"questionId"`
	Status     string    `json:"status"`
}

type Result struct {
	Score      int       `json:"score"`
	Total      int       `json:"totalQuestions"`
	Percentage float64   `json:"percentage"`
	Outcomes   []Outcome `json:"-"`
}

func (r Result) Unanswered() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == StatusUnanswered {
			n++
		}
	}
	return n
}

// Grade counts answers[q.ID] == q.CorrectAnswer over questions. Total is
// len(questions); answers for ids outside questions are ignored.
func Grade(questions []model.QuestionModel, answers map[uuid.UUID]int) Result {
	res := Result{Total: len(questions), Outcomes: make([]Outcome, 0, len(questions))}
	for _, q := range questions {
		status := StatusUnanswered
		if a, ok := answers[q.ID]; ok {
			status = StatusIncorrect
			if q.IsCorrect(a) {
				status = StatusCorrect
				res.Score++
			}
		}
		res.Outcomes = append(res.Outcomes, Outcome{QuestionID: q.ID, Status: status})
	}
	res.Percentage = Percentage(res.Score, res.Total)
	return res
}

// Percentage is 100*score/total, 0 when total is 0.
func Percentage(score, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(score) / float64(total) * 100
}

