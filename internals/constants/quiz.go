package constants

import "time"

const (
	DefaultSampleSize = 6
	DefaultTimeLimit  = 300 * time.Second

	// IntegrityThreshold is the number of focus losses that forces a submit.
	IntegrityThreshold = 3

	OptionsPerQuestion = 4
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

var Difficulties = []string{DifficultyEasy, DifficultyMedium, DifficultyHard}
