package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizku_backend/internals/helpers/apperr"
)

func valid() QuestionModel {
	return QuestionModel{
		Language:      "  JavaScript ",
		Question:      "Which method removes the last element from an array?",
		Options:       []string{"pop()", "push()", "shift()", "unshift()"},
		CorrectAnswer: 0,
		Explanation:   "pop() removes and returns the last element.",
	}
}

func TestNormalize_Defaults(t *testing.T) {
	q := valid()
	q.Normalize()
	assert.Equal(t, "javascript", q.Language)
	assert.Equal(t, "medium", q.Difficulty)
	assert.NoError(t, q.Validate())
}

func TestValidate_ReportsAllViolations(t *testing.T) {
	q := QuestionModel{
		Options:       []string{"a", "b", ""},
		CorrectAnswer: 5,
		Difficulty:    "extreme",
	}
	err := q.Validate()
	require.Error(t, err)

	var ae *apperr.Error
	require.True(t, errors.As(err, &ae))
	for _, f := range []string{"language", "question", "explanation", "options", "correctAnswer", "difficulty"} {
		assert.Contains(t, ae.Fields, f)
	}
	assert.Len(t, ae.Fields["options"], 2)
}

func TestValidate_CorrectAnswerBounds(t *testing.T) {
	for _, idx := range []int{-1, 4} {
		q := valid()
		q.Normalize()
		q.CorrectAnswer = idx
		assert.ErrorIs(t, q.Validate(), apperr.ErrValidation, "index %d", idx)
	}
	q := valid()
	q.Normalize()
	q.CorrectAnswer = 3
	assert.NoError(t, q.Validate())
}
