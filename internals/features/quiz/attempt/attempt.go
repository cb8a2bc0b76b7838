package attempt

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"quizku_backend/internals/constants"
)

type Options struct {
	// Threshold is the focus-loss count that forces a submission.
	Threshold int
	// EventBuffer sizes the Events channel.
	EventBuffer int
	// RetryBackoff is the shortest wait before an automatic retry after a
	// retryable submit failure.
	RetryBackoff time.Duration
	Now          func() time.Time
}

const DefaultRetryBackoff = 2 * time.Second

type Attempt struct {
	api       API
	threshold int
	backoff   time.Duration
	now       func() time.Time
	events    chan Event

	mu         sync.Mutex
	ctx        context.Context
	cancel     context.CancelFunc
	state      State
	language   string
	questions  []Question
	answers    map[string]int
	current    int
	startedAt  time.Time
	limit      time.Duration
	timer      *time.Timer
	violations int
	forced     bool
	result     *Result
	lastErr    error
	done       chan struct{}
}

func New(api API, opts Options) *Attempt {
	if opts.Threshold <= 0 {
		opts.Threshold = constants.IntegrityThreshold
	}
	if opts.EventBuffer <= 0 {
		opts.EventBuffer = 16
	}
	if opts.RetryBackoff <= 0 {
		opts.RetryBackoff = DefaultRetryBackoff
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Attempt{
		api:       api,
		threshold: opts.Threshold,
		backoff:   opts.RetryBackoff,
		now:       opts.Now,
		events:    make(chan Event, opts.EventBuffer),
		state:     Selecting,
		done:      make(chan struct{}),
	}
}

// Events is the single channel every notification goes through.
func (a *Attempt) Events() <-chan Event { return a.events }

// emit blocks until the event is buffered or the attempt is closed.
func (a *Attempt) emit(ctx context.Context, ev Event) {
	select {
	case a.events <- ev:
	case <-ctx.Done():
	}
}

func (a *Attempt) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

/* =========================================================
   Selecting -> InProgress
========================================================= */

// Start fetches a sample for language and starts the countdown. On any error
// the attempt stays in Selecting.
func (a *Attempt) Start(ctx context.Context, language string) error {
	a.mu.Lock()
	if a.state != Selecting {
		a.mu.Unlock()
		return ErrInvalidState
	}
	a.mu.Unlock()

	language = strings.ToLower(strings.TrimSpace(language))
	sample, err := a.api.FetchSample(ctx, language)
	if err != nil {
		return err
	}
	if len(sample.Questions) == 0 {
		return ErrNoQuiz
	}
	limit := sample.TimeLimit
	if limit <= 0 {
		limit = constants.DefaultTimeLimit
	}

	a.mu.Lock()
	if a.state != Selecting {
		a.mu.Unlock()
		return ErrInvalidState
	}
	a.ctx, a.cancel = context.WithCancel(context.WithoutCancel(ctx))
	actx := a.ctx
	a.language = language
	a.questions = sample.Questions
	a.answers = make(map[string]int, len(sample.Questions))
	a.current = 0
	a.violations = 0
	a.forced = false
	a.startedAt = a.now()
	a.limit = limit
	a.state = InProgress
	a.timer = time.AfterFunc(limit, a.onTimeout)
	a.mu.Unlock()

	a.emit(actx, Event{Kind: EventStarted})
	return nil
}

// Reset returns a finished attempt to Selecting.
func (a *Attempt) Reset() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != Graded && a.state != Failed {
		return ErrInvalidState
	}
	a.state = Selecting
	a.questions = nil
	a.answers = nil
	a.result = nil
	a.lastErr = nil
	a.done = make(chan struct{})
	return nil
}

// Close stops the countdown and releases a blocked event send.
func (a *Attempt) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.timer != nil {
		a.timer.Stop()
	}
	if a.cancel != nil {
		a.cancel()
	}
}

/* =========================================================
   Answering and navigation
========================================================= */

func (a *Attempt) Questions() []Question {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Question(nil), a.questions...)
}

// Answer records option for questionID; a later answer replaces it.
func (a *Attempt) Answer(questionID string, option int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != InProgress {
		return ErrInvalidState
	}
	for _, q := range a.questions {
		if q.ID == questionID {
			if option < 0 || option >= len(q.Options) {
				return ErrInvalidOption
			}
			a.answers[questionID] = option
			return nil
		}
	}
	return ErrUnknownQuestion
}

// AnswerCurrent answers the question under the cursor.
func (a *Attempt) AnswerCurrent(option int) error {
	a.mu.Lock()
	if a.state != InProgress {
		a.mu.Unlock()
		return ErrInvalidState
	}
	id := a.questions[a.current].ID
	a.mu.Unlock()
	return a.Answer(id, option)
}

// Answers returns a copy of the recorded answers.
func (a *Attempt) Answers() map[string]int {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[string]int, len(a.answers))
	for k, v := range a.answers {
		out[k] = v
	}
	return out
}

// Current returns the question under the cursor and its 0-based index.
func (a *Attempt) Current() (Question, int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.questions) == 0 {
		return Question{}, 0, ErrInvalidState
	}
	return a.questions[a.current], a.current, nil
}

func (a *Attempt) GoTo(i int) (Question, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != InProgress {
		return Question{}, ErrInvalidState
	}
	if i < 0 || i >= len(a.questions) {
		return Question{}, ErrOutOfRange
	}
	a.current = i
	return a.questions[i], nil
}

func (a *Attempt) Next() (Question, error) {
	a.mu.Lock()
	i := a.current + 1
	a.mu.Unlock()
	return a.GoTo(i)
}

func (a *Attempt) Prev() (Question, error) {
	a.mu.Lock()
	i := a.current - 1
	a.mu.Unlock()
	return a.GoTo(i)
}

func (a *Attempt) unansweredLocked() *UnansweredError {
	var ue UnansweredError
	for i, q := range a.questions {
		if _, ok := a.answers[q.ID]; !ok {
			ue.Numbers = append(ue.Numbers, i+1)
			ue.IDs = append(ue.IDs, q.ID)
		}
	}
	if len(ue.IDs) == 0 {
		return nil
	}
	return &ue
}

/* =========================================================
   Countdown and integrity
========================================================= */

// Remaining is the time left on the countdown, 0 outside InProgress.
func (a *Attempt) Remaining() time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != InProgress {
		return 0
	}
	left := a.limit - a.now().Sub(a.startedAt)
	if left < 0 {
		return 0
	}
	return left
}

func (a *Attempt) Violations() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.violations
}

// onTimeout fires when the countdown ends and again for automatic retries.
// A forced attempt keeps its integrity trigger on retry.
func (a *Attempt) onTimeout() {
	a.mu.Lock()
	active := a.state == InProgress
	forced := a.forced
	ctx := a.ctx
	a.mu.Unlock()
	if !active {
		return
	}
	if forced {
		_, _ = a.submit(ctx, TriggerIntegrity)
		return
	}
	a.emit(ctx, Event{Kind: EventTimeUp, Trigger: TriggerTimeout})
	_, _ = a.submit(ctx, TriggerTimeout)
}

// rearmLocked restarts the countdown after a retryable failure. Whatever the
// remaining time, the wait is at least the retry backoff, and a forced
// attempt retries after the backoff alone.
func (a *Attempt) rearmLocked() {
	wait := a.limit - a.now().Sub(a.startedAt)
	if a.forced || wait < a.backoff {
		wait = a.backoff
	}
	a.timer = time.AfterFunc(wait, a.onTimeout)
}

// FocusLost counts one tab switch. Below the threshold it warns; reaching
// it submits the attempt as forced. Calls outside InProgress are ignored.
func (a *Attempt) FocusLost() {
	a.mu.Lock()
	if a.state != InProgress {
		a.mu.Unlock()
		return
	}
	a.violations++
	left := a.threshold - a.violations
	ctx := a.ctx
	if left <= 0 {
		a.forced = true
	}
	a.mu.Unlock()

	if left > 0 {
		a.emit(ctx, Event{Kind: EventWarning, Trigger: TriggerIntegrity, AttemptsLeft: left})
		return
	}
	_, _ = a.submit(ctx, TriggerIntegrity)
}

/* =========================================================
   Submit
========================================================= */

// Finish submits on the user's request. Unless confirmUnanswered is set it
// refuses while questions are still open.
func (a *Attempt) Finish(ctx context.Context, confirmUnanswered bool) (Result, error) {
	a.mu.Lock()
	if a.state != InProgress {
		st := a.state
		a.mu.Unlock()
		if st == Submitting || st == Graded {
			return Result{}, ErrAlreadySubmitted
		}
		return Result{}, ErrInvalidState
	}
	if ue := a.unansweredLocked(); ue != nil && !confirmUnanswered {
		a.mu.Unlock()
		return Result{}, ue
	}
	a.mu.Unlock()
	return a.submit(ctx, TriggerUser)
}

// submit is the one guarded path to the API. Only the caller that moves the
// attempt from InProgress to Submitting talks to the server.
func (a *Attempt) submit(ctx context.Context, trigger string) (Result, error) {
	a.mu.Lock()
	if a.state != InProgress {
		a.mu.Unlock()
		return Result{}, ErrAlreadySubmitted
	}
	a.state = Submitting
	if a.timer != nil {
		a.timer.Stop()
	}
	if trigger == TriggerIntegrity {
		a.forced = true
	}
	actx := a.ctx
	sub := Submission{
		Language:    a.language,
		Answers:     make(map[string]int, len(a.answers)),
		QuestionIDs: make([]string, 0, len(a.questions)),
		Forced:      a.forced,
		Trigger:     trigger,
	}
	for k, v := range a.answers {
		sub.Answers[k] = v
	}
	for _, q := range a.questions {
		sub.QuestionIDs = append(sub.QuestionIDs, q.ID)
	}
	a.mu.Unlock()

	res, err := a.api.Submit(ctx, sub)

	a.mu.Lock()
	if err != nil {
		retry := isRetryable(err) && !errors.Is(err, ErrBlocked)
		a.lastErr = err
		if retry {
			a.state = InProgress
			a.rearmLocked()
		} else {
			a.state = Failed
			close(a.done)
		}
		a.mu.Unlock()
		a.emit(actx, Event{Kind: EventSubmitFailed, Trigger: trigger, Err: err, Retryable: retry})
		return Result{}, err
	}
	a.result = &res
	a.state = Graded
	close(a.done)
	a.mu.Unlock()

	a.emit(actx, Event{Kind: EventGraded, Trigger: trigger, Result: &res})
	return res, nil
}

// Wait blocks until the attempt is graded or has failed for good.
func (a *Attempt) Wait(ctx context.Context) (Result, error) {
	a.mu.Lock()
	done := a.done
	a.mu.Unlock()

	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case <-done:
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.result != nil {
		return *a.result, nil
	}
	return Result{}, a.lastErr
}
