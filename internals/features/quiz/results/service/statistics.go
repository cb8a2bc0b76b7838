package service

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"quizku_backend/internals/features/quiz/results/model"
)

const TopPerformersLimit = 5

type Account struct {
	ID       uuid.UUID
	Username string
}

type Performer struct {
	Username  string `json:"username"`
	BestScore int    `json:"bestScore"`
}

type Statistics struct {
	AverageScore      float64     `json:"averageScore"`
	TotalQuizzesTaken int         `json:"totalQuizzesTaken"`
	TopPerformers     []Performer `json:"topPerformers"`
}

// ComputeStatistics aggregates raw scores. accounts fixes tie order.
func ComputeStatistics(accounts []Account, byUser map[uuid.UUID][]model.QuizResultModel) Statistics {
	total, count := 0, 0
	tops := make([]Performer, 0)
	for _, a := range accounts {
		rs := byUser[a.ID]
		if len(rs) == 0 {
			continue
		}
		best := rs[0].Score
		for _, r := range rs {
			total += r.Score
			count++
			if r.Score > best {
				best = r.Score
			}
		}
		tops = append(tops, Performer{Username: a.Username, BestScore: best})
	}

	sort.SliceStable(tops, func(i, j int) bool { return tops[i].BestScore > tops[j].BestScore })
	if len(tops) > TopPerformersLimit {
		tops = tops[:TopPerformersLimit]
	}

	st := Statistics{TotalQuizzesTaken: count, TopPerformers: tops}
	if count > 0 {
		st.AverageScore = round2(float64(total) / float64(count))
	}
	return st
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
