package grading

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"quizku_backend/internals/features/quiz/questions/model"
)

func q(correct int) model.QuestionModel {
	return model.QuestionModel{ID: uuid.New(), CorrectAnswer: correct, Options: []string{"a", "b", "c", "d"}}
}

func TestGrade(t *testing.T) {
	q1, q2 := q(1), q(0)
	sample := []model.QuestionModel{q1, q2}

	tests := []struct {
		name    string
		answers map[uuid.UUID]int
		score   int
		pct     float64
	}{
		{"one right one wrong", map[uuid.UUID]int{q1.ID: 1, q2.ID: 1}, 1, 50},
		{"unanswered counts against", map[uuid.UUID]int{q2.ID: 0}, 1, 50},
		{"all right", map[uuid.UUID]int{q1.ID: 1, q2.ID: 0}, 2, 100},
		{"nothing answered", map[uuid.UUID]int{}, 0, 0},
		{"foreign ids ignored", map[uuid.UUID]int{uuid.New(): 1}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Grade(sample, tt.answers)
			assert.Equal(t, tt.score, got.Score)
			assert.Equal(t, 2, got.Total)
			assert.InDelta(t, tt.pct, got.Percentage, 1e-9)
		})
	}
}

func TestGrade_Outcomes(t *testing.T) {
	q1, q2, q3 := q(1), q(0), q(3)
	got := Grade([]model.QuestionModel{q1, q2, q3}, map[uuid.UUID]int{q1.ID: 1, q2.ID: 2})

	assert.Equal(t, []Outcome{
		{q1.ID, StatusCorrect},
		{q2.ID, StatusIncorrect},
		{q3.ID, StatusUnanswered},
	}, got.Outcomes)
	assert.Equal(t, 1, got.Unanswered())
}

func TestGrade_EmptySet(t *testing.T) {
	got := Grade(nil, map[uuid.UUID]int{uuid.New(): 0})
	assert.Zero(t, got.Total)
	assert.Zero(t, got.Score)
	assert.Zero(t, got.Percentage)
}

func TestGrade_Pure(t *testing.T) {
	q1 := q(2)
	answers := map[uuid.UUID]int{q1.ID: 2}
	first := Grade([]model.QuestionModel{q1}, answers)
	second := Grade([]model.QuestionModel{q1}, answers)
	assert.Equal(t, first, second)
	assert.Equal(t, map[uuid.UUID]int{q1.ID: 2}, answers)
}

func TestPercentage_Bounds(t *testing.T) {
	for total := 0; total <= 7; total++ {
		for score := 0; score <= total; score++ {
			p := Percentage(score, total)
			assert.GreaterOrEqual(t, p, 0.0)
			assert.LessOrEqual(t, p, 100.0)
		}
	}
}
