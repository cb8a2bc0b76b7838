package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"quizku_backend/internals/features/quiz/results/model"
)

func res(score, total int) model.QuizResultModel {
	return model.QuizResultModel{Score: score, TotalQuestions: total}
}

func TestComputeStatistics_Empty(t *testing.T) {
	st := ComputeStatistics(nil, nil)
	assert.Zero(t, st.AverageScore)
	assert.Zero(t, st.TotalQuizzesTaken)
	assert.Empty(t, st.TopPerformers)
}

func TestComputeStatistics_AverageAndTop(t *testing.T) {
	var accounts []Account
	byUser := map[uuid.UUID][]model.QuizResultModel{}
	scores := [][]int{{1, 2}, {5}, {3, 3}, {4}, {6}, {2}, {}}
	names := []string{"a", "b", "c", "d", "e", "f", "g"}
	for i, s := range scores {
		id := uuid.New()
		accounts = append(accounts, Account{ID: id, Username: names[i]})
		for _, sc := range s {
			byUser[id] = append(byUser[id], res(sc, 6))
		}
	}

	st := ComputeStatistics(accounts, byUser)

	// (1+2+5+3+3+4+6+2)/8 = 3.25
	assert.Equal(t, 3.25, st.AverageScore)
	assert.Equal(t, 8, st.TotalQuizzesTaken)
	assert.Equal(t, []Performer{
		{"e", 6}, {"b", 5}, {"d", 4}, {"c", 3}, {"a", 2},
	}, st.TopPerformers)
}

func TestComputeStatistics_TiesKeepAccountOrder(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	st := ComputeStatistics(
		[]Account{{ID: a, Username: "first"}, {ID: b, Username: "second"}},
		map[uuid.UUID][]model.QuizResultModel{a: {res(4, 6)}, b: {res(4, 6)}},
	)
	assert.Equal(t, "first", st.TopPerformers[0].Username)
	assert.Equal(t, "second", st.TopPerformers[1].Username)
}

func TestComputeStatistics_RoundsToTwoDecimals(t *testing.T) {
	id := uuid.New()
	st := ComputeStatistics(
		[]Account{{ID: id, Username: "x"}},
		map[uuid.UUID][]model.QuizResultModel{id: {res(1, 6), res(1, 6), res(2, 6)}},
	)
	assert.Equal(t, 1.33, st.AverageScore)
}
