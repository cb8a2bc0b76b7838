// Package client is the HTTP side of the terminal quiz client.
package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"quizku_backend/internals/features/quiz/attempt"
)

const (
	defaultServer  = "http://127.0.0.1:3001"
	DefaultTimeout = 10 * time.Second
	maxBody        = 4 << 20
)

var ErrServiceUnavailable = errors.New("quiz service unavailable")

// APIError is a non-2xx answer in the server's error envelope.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Fields     map[string][]string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

// Retryable: the gateway or a dependency failed, the request itself was fine.
func (e *APIError) Retryable() bool {
	switch e.StatusCode {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout, http.StatusTooManyRequests:
		return true
	}
	return false
}

// NetworkError wraps transport failures, including client timeouts.
type NetworkError struct{ Err error }

func (e *NetworkError) Error() string { return fmt.Sprintf("%v: %v", ErrServiceUnavailable, e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }
func (e *NetworkError) Is(t error) bool { return t == ErrServiceUnavailable }
func (e *NetworkError) Retryable() bool { return true }

type envelope[T any] struct {
	Success   bool                `json:"success"`
	Message   string              `json:"message"`
	Data      T                   `json:"data"`
	ErrorCode string              `json:"error_code"`
	Errors    map[string][]string `json:"errors"`
}

type Language struct {
	Language string `json:"language"`
	Count    int64  `json:"count"`
}

type HistoryEntry struct {
	ID             string    `json:"id"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	Language       string    `json:"language"`
	Forced         bool      `json:"forced"`
	Date           time.Time `json:"date"`
}

type loginResponse struct {
	Token string `json:"token"`
	User  struct {
		Username string `json:"username"`
		Role     string `json:"role"`
	} `json:"user"`
}

type submitResponse struct {
	Score          int     `json:"score"`
	TotalQuestions int     `json:"totalQuestions"`
	Percentage     float64 `json:"percentage"`
	Forced         bool    `json:"forced"`
	Certificate    *struct {
		FilePath string `json:"filePath"`
		FileName string `json:"fileName"`
	} `json:"certificate"`
}

// Client implements attempt.API against the quiz HTTP API. Every call is
// bounded by the http.Client timeout.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

var _ attempt.API = (*Client)(nil)

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: timeout})
}

func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultServer
	}
	if hc == nil {
		hc = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{baseURL: baseURL, httpClient: hc}
}

func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) SetToken(token string) { c.token = token }

// Login stores the token for later calls and returns the account role.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body := map[string]string{"username": username, "password": password}
	out, err := call[loginResponse](ctx, c, http.MethodPost, "/api/auth/login", body)
	if err != nil {
		return "", err
	}
	c.token = out.Token
	return out.User.Role, nil
}

func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil)
	c.token = ""
	return err
}

func (c *Client) Languages(ctx context.Context) ([]Language, error) {
	return call[[]Language](ctx, c, http.MethodGet, "/api/quiz/languages", nil)
}

func (c *Client) History(ctx context.Context) ([]HistoryEntry, error) {
	return call[[]HistoryEntry](ctx, c, http.MethodGet, "/api/quiz/history", nil)
}

func (c *Client) FetchSample(ctx context.Context, language string) (attempt.Sample, error) {
	qs, err := call[[]attempt.Question](ctx, c, http.MethodGet, "/api/quiz/questions/"+url.PathEscape(language), nil)
	if err != nil {
		return attempt.Sample{}, mapForbidden(err)
	}
	if len(qs) == 0 {
		return attempt.Sample{}, attempt.ErrNoQuiz
	}
	return attempt.Sample{
		Questions: qs,
		TimeLimit: time.Duration(qs[0].TimeLimit) * time.Second,
	}, nil
}

func (c *Client) Submit(ctx context.Context, s attempt.Submission) (attempt.Result, error) {
	out, err := call[submitResponse](ctx, c, http.MethodPost, "/api/quiz/submit", s)
	if err != nil {
		return attempt.Result{}, mapForbidden(err)
	}
	res := attempt.Result{
		Score:          out.Score,
		TotalQuestions: out.TotalQuestions,
		Percentage:     out.Percentage,
		Forced:         out.Forced,
	}
	if out.Certificate != nil {
		res.CertificateURL = out.Certificate.FilePath
		res.CertificateName = out.Certificate.FileName
	}
	return res, nil
}

// mapForbidden turns the blocked-account answer into attempt.ErrBlocked and
// keeps the server message.
func mapForbidden(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: %s", attempt.ErrBlocked, apiErr.Message)
	}
	return err
}

// call decodes the data member of a success envelope into T.
func call[T any](ctx context.Context, c *Client, method, path string, reqBody any) (T, error) {
	var env envelope[T]
	raw, err := c.do(ctx, method, path, reqBody)
	if err != nil {
		return env.Data, err
	}
	if err := sonic.Unmarshal(raw, &env); err != nil {
		return env.Data, fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return env.Data, nil
}

// do sends one request and returns the raw body of a 2xx answer.
func (c *Client) do(ctx context.Context, method, path string, reqBody any) ([]byte, error) {
	var body io.Reader
	if reqBody != nil {
		raw, err := sonic.Marshal(reqBody)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var env envelope[struct{}]
		if sonic.Unmarshal(raw, &env) == nil {
			apiErr.Code = env.ErrorCode
			apiErr.Message = env.Message
			apiErr.Fields = env.Errors
		}
		if apiErr.Message == "" {
			apiErr.Message = resp.Status
		}
		return nil, apiErr
	}
	return raw, nil
}
