// Package cli is the interactive terminal quiz.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"quizku_backend/internals/client"
	"quizku_backend/internals/features/quiz/attempt"
)

// Backend is what the terminal needs from the server.
type Backend interface {
	attempt.API
	Login(ctx context.Context, username, password string) (string, error)
	Languages(ctx context.Context) ([]client.Language, error)
}

type Config struct {
	Username string
	Password string
	// Language skips the language prompt when set.
	Language string
	// Threshold overrides the focus-loss limit, mostly for tests.
	Threshold int
}

type session struct {
	ctx     context.Context
	out     io.Writer
	a       *attempt.Attempt
	confirm bool
	eof     bool
}

// Run logs in, picks a language and plays one attempt. Every value on focus
// counts as one focus loss.
func Run(ctx context.Context, b Backend, cfg Config, in io.Reader, out io.Writer, focus <-chan struct{}) error {
	lines := readLines(in)

	if _, err := b.Login(ctx, cfg.Username, cfg.Password); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	fmt.Fprintf(out, "Logged in as %s\n", cfg.Username)

	language := strings.TrimSpace(cfg.Language)
	if language == "" {
		var err error
		if language, err = chooseLanguage(ctx, b, out, lines); err != nil {
			return err
		}
	}

	a := attempt.New(b, attempt.Options{Threshold: cfg.Threshold})
	defer a.Close()
	if err := a.Start(ctx, language); err != nil {
		switch {
		case errors.Is(err, attempt.ErrNoQuiz):
			fmt.Fprintf(out, "No quiz available for %s.\n", language)
			return nil
		case errors.Is(err, attempt.ErrBlocked):
			fmt.Fprintln(out, "Your account is blocked. You cannot take quizzes.")
			return err
		}
		return err
	}

	s := &session{ctx: ctx, out: out, a: a}
	printHelp(out)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-focus:
			a.FocusLost()

		case ev := <-a.Events():
			done, err := s.handleEvent(ev)
			if done || err != nil {
				return err
			}

		case line, ok := <-lines:
			if !ok {
				// input closed: hand in what we have
				lines = nil
				s.eof = true
				s.finish(true)
				continue
			}
			s.handleLine(line)
		}
	}
}

func (s *session) handleEvent(ev attempt.Event) (bool, error) {
	switch ev.Kind {
	case attempt.EventStarted:
		s.printCurrent()
	case attempt.EventWarning:
		fmt.Fprintf(s.out, "\nWarning: you left the quiz window. %d more and the quiz is submitted automatically.\n", ev.AttemptsLeft)
	case attempt.EventTimeUp:
		fmt.Fprintln(s.out, "\nTime is up. Submitting your answers.")
	case attempt.EventGraded:
		printResult(s.out, *ev.Result)
		return true, nil
	case attempt.EventSubmitFailed:
		if ev.Retryable && !s.eof {
			if ev.Trigger == attempt.TriggerUser {
				fmt.Fprintf(s.out, "\nSubmit failed: %v. Type s to try again.\n", ev.Err)
			} else {
				fmt.Fprintf(s.out, "\nSubmit failed: %v. Retrying shortly.\n", ev.Err)
			}
			return false, nil
		}
		fmt.Fprintf(s.out, "\nSubmit failed: %v\n", ev.Err)
		return true, ev.Err
	}
	return false, nil
}

func (s *session) handleLine(line string) {
	line = strings.TrimSpace(line)
	if s.confirm {
		s.confirm = false
		if yes(line) {
			s.finish(true)
		} else {
			s.printCurrent()
		}
		return
	}

	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		s.printCurrent()
		return
	}
	switch cmd := fields[0]; {
	case len(cmd) == 1 && cmd[0] >= 'a' && cmd[0] <= 'z' && !isCommand(cmd):
		if err := s.a.AnswerCurrent(int(cmd[0] - 'a')); err != nil {
			fmt.Fprintf(s.out, "Invalid answer: %v\n", err)
			return
		}
		if _, err := s.a.Next(); err != nil {
			fmt.Fprintln(s.out, "Last question answered. Type s to submit.")
			return
		}
		s.printCurrent()
	case cmd == "n":
		s.move(s.a.Next())
	case cmd == "p":
		s.move(s.a.Prev())
	case cmd == "g":
		if len(fields) < 2 {
			fmt.Fprintln(s.out, "Usage: g <number>")
			return
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			fmt.Fprintln(s.out, "Usage: g <number>")
			return
		}
		s.move(s.a.GoTo(n - 1))
	case cmd == "s":
		s.finish(false)
	case cmd == "h":
		printHelp(s.out)
	default:
		fmt.Fprintf(s.out, "Unknown command %q\n", cmd)
	}
}

func isCommand(cmd string) bool {
	switch cmd {
	case "n", "p", "g", "s", "h":
		return true
	}
	return false
}

func (s *session) move(_ attempt.Question, err error) {
	if err != nil {
		fmt.Fprintln(s.out, "No question there.")
		return
	}
	s.printCurrent()
}

func (s *session) finish(confirmed bool) {
	_, err := s.a.Finish(s.ctx, confirmed)
	var ue *attempt.UnansweredError
	switch {
	case err == nil:
	case errors.As(err, &ue):
		fmt.Fprintf(s.out, "%v. Submit anyway? (y/n) ", ue)
		s.confirm = true
	case errors.Is(err, attempt.ErrAlreadySubmitted):
	default:
		// reported through EventSubmitFailed
	}
}

func (s *session) printCurrent() {
	q, i, err := s.a.Current()
	if err != nil {
		return
	}
	answers := s.a.Answers()
	total := len(s.a.Questions())
	fmt.Fprintf(s.out, "\nQ%d/%d [%s] (%s left)\n%s\n", i+1, total, q.Difficulty, clock(s.a.Remaining()), q.Prompt)
	chosen, answered := answers[q.ID]
	for j, opt := range q.Options {
		mark := " "
		if answered && chosen == j {
			mark = "*"
		}
		fmt.Fprintf(s.out, " %s %c. %s\n", mark, 'A'+j, opt)
	}
	fmt.Fprint(s.out, "> ")
}

func chooseLanguage(ctx context.Context, b Backend, out io.Writer, lines <-chan string) (string, error) {
	langs, err := b.Languages(ctx)
	if err != nil {
		return "", fmt.Errorf("languages: %w", err)
	}
	if len(langs) == 0 {
		return "", errors.New("no quiz languages available")
	}
	fmt.Fprintln(out, "Languages:")
	for i, l := range langs {
		fmt.Fprintf(out, "  %d. %s (%d questions)\n", i+1, l.Language, l.Count)
	}
	for {
		fmt.Fprint(out, "Pick a language: ")
		var line string
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case l, ok := <-lines:
			if !ok {
				return "", io.EOF
			}
			line = strings.TrimSpace(l)
		}
		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(langs) {
			return langs[n-1].Language, nil
		}
		for _, l := range langs {
			if strings.EqualFold(l.Language, line) {
				return l.Language, nil
			}
		}
		fmt.Fprintln(out, "Unknown language.")
	}
}

// readLines feeds in line by line and closes the channel at EOF.
func readLines(in io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			ch <- sc.Text()
		}
	}()
	return ch
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  a-d        answer the current question")
	fmt.Fprintln(out, "  n / p      next / previous question")
	fmt.Fprintln(out, "  g <number> jump to a question")
	fmt.Fprintln(out, "  s          submit")
	fmt.Fprintln(out, "  h          help")
}

func printResult(out io.Writer, r attempt.Result) {
	fmt.Fprintf(out, "\nScore: %d/%d (%.1f%%)\n", r.Score, r.TotalQuestions, r.Percentage)
	if r.Forced {
		fmt.Fprintln(out, "The quiz was submitted automatically after repeated window switches.")
	}
	if r.CertificateURL != "" {
		fmt.Fprintf(out, "Certificate: %s\n", r.CertificateURL)
	}
}

func clock(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

func yes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true
	}
	return false
}
