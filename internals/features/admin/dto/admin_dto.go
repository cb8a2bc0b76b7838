package dto

import (
	resultModel "quizku_backend/internals/features/quiz/results/model"
	userModel "quizku_backend/internals/features/users/user/model"
)

// AccountResults is one account with its result log.
type AccountResults struct {
	ID        string                        `json:"id"`
	Username  string                        `json:"username"`
	IsBlocked bool                          `json:"isBlocked"`
	Results   []resultModel.QuizResultModel `json:"quizResults"`
}

func ToAccountResults(u userModel.UserModel, results []resultModel.QuizResultModel) AccountResults {
	if results == nil {
		results = []resultModel.QuizResultModel{}
	}
	return AccountResults{
		ID:        u.ID.String(),
		Username:  u.UserName,
		IsBlocked: u.IsBlocked,
		Results:   results,
	}
}

type BlockResponse struct {
	Username  string `json:"username"`
	IsBlocked bool   `json:"isBlocked"`
}
