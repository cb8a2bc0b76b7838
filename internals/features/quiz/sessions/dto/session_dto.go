package dto

import (
	"encoding/json"

	"github.com/google/uuid"
)

// SubmitRequest is the body of POST /api/quiz/submit. Answer values stay raw
// so that non-integer options can be reported instead of silently coerced.
type SubmitRequest struct {
	Answers     map[string]json.RawMessage `json:"answers"`
	Language    string                     `json:"language"`
	QuestionIDs []string                   `json:"questionIds,omitempty"`
	Forced      bool                       `json:"forced,omitempty"`
	Trigger     string                     `json:"trigger,omitempty"`
}

type CertificateRef struct {
	FilePath string `json:"filePath"`
	FileName string `json:"fileName"`
}

type SubmitResponse struct {
	ResultID       *uuid.UUID      `json:"resultId,omitempty"`
	Score          int             `json:"score"`
	TotalQuestions int             `json:"totalQuestions"`
	Percentage     float64         `json:"percentage"`
	Forced         bool            `json:"forced"`
	Certificate    *CertificateRef `json:"certificate,omitempty"`
}
