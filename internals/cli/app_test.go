package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizku_backend/internals/client"
	"quizku_backend/internals/features/quiz/attempt"
)

type fakeBackend struct {
	mu        sync.Mutex
	sample    attempt.Sample
	sampleErr error
	subs      []attempt.Submission
}

func (f *fakeBackend) Login(context.Context, string, string) (string, error) { return "user", nil }

func (f *fakeBackend) Languages(context.Context) ([]client.Language, error) {
	return []client.Language{{Language: "go", Count: 2}, {Language: "python", Count: 3}}, nil
}

func (f *fakeBackend) FetchSample(_ context.Context, language string) (attempt.Sample, error) {
	return f.sample, f.sampleErr
}

func (f *fakeBackend) Submit(_ context.Context, s attempt.Submission) (attempt.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs = append(f.subs, s)
	score := 0
	for _, v := range s.Answers {
		if v == 0 {
			score++
		}
	}
	return attempt.Result{
		Score: score, TotalQuestions: len(s.QuestionIDs),
		Percentage: float64(score) / float64(len(s.QuestionIDs)) * 100,
		Forced:     s.Forced, CertificateURL: "http://localhost/temp/c.pdf",
	}, nil
}

func (f *fakeBackend) submissions() []attempt.Submission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]attempt.Submission(nil), f.subs...)
}

func twoQuestions() attempt.Sample {
	return attempt.Sample{
		TimeLimit: time.Minute,
		Questions: []attempt.Question{
			{ID: "q1", Prompt: "first", Options: []string{"a", "b", "c", "d"}, Difficulty: "easy"},
			{ID: "q2", Prompt: "second", Options: []string{"a", "b", "c", "d"}, Difficulty: "hard"},
		},
	}
}

func run(t *testing.T, b *fakeBackend, cfg Config, in io.Reader, focus <-chan struct{}) (string, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var out bytes.Buffer
	err := Run(ctx, b, cfg, in, &out, focus)
	return out.String(), err
}

func TestRun_AnswersAndSubmitOnEOF(t *testing.T) {
	b := &fakeBackend{sample: twoQuestions()}
	out, err := run(t, b, Config{Username: "ana", Language: "go"}, strings.NewReader("a\nb\n"), nil)
	require.NoError(t, err)

	assert.Contains(t, out, "Q1/2 [easy]")
	assert.Contains(t, out, "Score: 1/2 (50.0%)")
	assert.Contains(t, out, "Certificate: http://localhost/temp/c.pdf")

	subs := b.submissions()
	require.Len(t, subs, 1)
	assert.Equal(t, map[string]int{"q1": 0, "q2": 1}, subs[0].Answers)
	assert.Equal(t, attempt.TriggerUser, subs[0].Trigger)
}

func TestRun_ConfirmsUnanswered(t *testing.T) {
	b := &fakeBackend{sample: twoQuestions()}
	out, err := run(t, b, Config{Username: "ana", Language: "go"}, strings.NewReader("a\ns\nn\ns\ny\n"), nil)
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(out, "Submit anyway?"))
	subs := b.submissions()
	require.Len(t, subs, 1)
	assert.Len(t, subs[0].Answers, 1)
}

func TestRun_PicksLanguageByNumber(t *testing.T) {
	b := &fakeBackend{sample: twoQuestions()}
	out, err := run(t, b, Config{Username: "ana"}, strings.NewReader("9\n2\na\na\n"), nil)
	require.NoError(t, err)
	assert.Contains(t, out, "Unknown language.")
	assert.Equal(t, "python", b.submissions()[0].Language)
}

func TestRun_FocusLossForcesSubmit(t *testing.T) {
	b := &fakeBackend{sample: twoQuestions()}
	focus := make(chan struct{}, 3)
	for i := 0; i < 3; i++ {
		focus <- struct{}{}
	}
	pr, pw := io.Pipe()
	defer pw.Close()

	out, err := run(t, b, Config{Username: "ana", Language: "go", Threshold: 3}, pr, focus)
	require.NoError(t, err)

	assert.Contains(t, out, "2 more and the quiz is submitted automatically")
	assert.Contains(t, out, "1 more and the quiz is submitted automatically")
	assert.Contains(t, out, "submitted automatically after repeated window switches")
	subs := b.submissions()
	require.Len(t, subs, 1)
	assert.True(t, subs[0].Forced)
	assert.Equal(t, attempt.TriggerIntegrity, subs[0].Trigger)
}

func TestRun_NoQuizAndBlocked(t *testing.T) {
	b := &fakeBackend{sampleErr: attempt.ErrNoQuiz}
	out, err := run(t, b, Config{Username: "ana", Language: "rust"}, strings.NewReader(""), nil)
	require.NoError(t, err)
	assert.Contains(t, out, "No quiz available for rust.")

	b = &fakeBackend{sampleErr: attempt.ErrBlocked}
	out, err = run(t, b, Config{Username: "ana", Language: "go"}, strings.NewReader(""), nil)
	assert.ErrorIs(t, err, attempt.ErrBlocked)
	assert.Contains(t, out, "blocked")
}

func TestClock(t *testing.T) {
	assert.Equal(t, "4:05", clock(245*time.Second))
	assert.Equal(t, "0:00", clock(0))
}
