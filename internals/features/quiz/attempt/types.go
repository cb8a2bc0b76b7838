// Package attempt drives one quiz attempt on the client: answering under a
// countdown, counting focus losses, and submitting exactly once.
package attempt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

type State int

const (
	Selecting State = iota
	InProgress
	Submitting
	Graded
	Failed
)

func (s State) String() string {
	switch s {
	case Selecting:
		return "selecting"
	case InProgress:
		return "in_progress"
	case Submitting:
		return "submitting"
	case Graded:
		return "graded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Submission triggers, matching the server's metric labels.
const (
	TriggerUser      = "user"
	TriggerTimeout   = "timeout"
	TriggerIntegrity = "integrity"
)

type Question struct {
	ID         string   `json:"id"`
	Language   string   `json:"language"`
	Prompt     string   `json:"question"`
	Options    []string `json:"options"`
	Difficulty string   `json:"difficulty"`
	TimeLimit  int      `json:"timeLimit"`
}

type Sample struct {
	Questions []Question
	TimeLimit time.Duration
}

type Submission struct {
	Language    string         `json:"language"`
	Answers     map[string]int `json:"answers"`
	QuestionIDs []string       `json:"questionIds"`
	Forced      bool           `json:"forced"`
	Trigger     string         `json:"trigger"`
}

type Result struct {
	Score           int     `json:"score"`
	TotalQuestions  int     `json:"totalQuestions"`
	Percentage      float64 `json:"percentage"`
	Forced          bool    `json:"forced"`
	CertificateURL  string  `json:"-"`
	CertificateName string  `json:"-"`
}

// API is the server side of an attempt.
type API interface {
	FetchSample(ctx context.Context, language string) (Sample, error)
	Submit(ctx context.Context, s Submission) (Result, error)
}

var (
	ErrBlocked             = errors.New("account is blocked")
	ErrNoQuiz              = errors.New("no quiz available for this language")
	ErrInvalidState        = errors.New("operation not allowed in the current state")
	ErrAlreadySubmitted    = errors.New("attempt already submitted")
	ErrUnknownQuestion     = errors.New("question is not part of this attempt")
	ErrInvalidOption       = errors.New("option index out of range")
	ErrOutOfRange          = errors.New("question index out of range")
	ErrUnansweredQuestions = errors.New("unanswered questions")
)

// UnansweredError lists what is still open. Numbers are 1-based positions.
type UnansweredError struct {
	Numbers []int
	IDs     []string
}

func (e *UnansweredError) Error() string {
	parts := make([]string, len(e.Numbers))
	for i, n := range e.Numbers {
		parts[i] = fmt.Sprint(n)
	}
	return fmt.Sprintf("%d unanswered question(s): %s", len(e.Numbers), strings.Join(parts, ", "))
}

func (e *UnansweredError) Is(target error) bool { return target == ErrUnansweredQuestions }

// Retryable is implemented by API errors worth another submit try.
type Retryable interface {
	Retryable() bool
}

func isRetryable(err error) bool {
	var r Retryable
	return errors.As(err, &r) && r.Retryable()
}

type EventKind int

const (
	EventStarted EventKind = iota
	EventWarning
	EventTimeUp
	EventGraded
	EventSubmitFailed
)

// Event is everything the attempt reports to its owner.
// AttemptsLeft is set on warnings, Result on EventGraded, Err on failures.
type Event struct {
	Kind         EventKind
	Trigger      string
	AttemptsLeft int
	Result       *Result
	Err          error
	Retryable    bool
}
