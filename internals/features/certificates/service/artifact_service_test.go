package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"quizku_backend/internals/helpers/apperr"
)

type mockMirror struct{ mock.Mock }

func (m *mockMirror) Key(name string) string { return "certs/" + name }

func (m *mockMirror) UploadStream(ctx context.Context, key string, r io.Reader, ct string) error {
	body, _ := io.ReadAll(r)
	return m.Called(key, len(body) > 0, ct).Error(0)
}

func (m *mockMirror) SignedURL(key string, ttl time.Duration) (string, error) {
	args := m.Called(key, ttl)
	return args.String(0), args.Error(1)
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	s := New(store, "http://localhost:3001")
	fixed := time.UnixMilli(1700000000123)
	s.Now = func() time.Time { return fixed }
	return s
}

func TestGenerateCertificate_LocalLink(t *testing.T) {
	s := newTestService(t)

	art, err := s.GenerateCertificate(context.Background(), CertificateData{
		Username: "ana@example.com", Score: 4, Total: 6, Language: "go",
	})
	require.NoError(t, err)

	assert.Equal(t, "certificate_ana@example.com_1700000000123.pdf", art.FileName)
	assert.Equal(t, "http://localhost:3001/temp/"+art.FileName, art.FilePath)

	raw, err := os.ReadFile(art.LocalPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestGenerateCertificate_RejectsEmptySet(t *testing.T) {
	s := newTestService(t)
	_, err := s.GenerateCertificate(context.Background(), CertificateData{Username: "ana"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestGenerateCertificate_MirrorSignedURL(t *testing.T) {
	s := newTestService(t)
	m := new(mockMirror)
	s.WithMirror(m, time.Hour)

	m.On("UploadStream", mock.MatchedBy(func(k string) bool { return strings.HasPrefix(k, "certs/certificate_") }), true, "application/pdf").Return(nil)
	m.On("SignedURL", mock.Anything, time.Hour).Return("https://bucket/signed", nil)

	art, err := s.GenerateCertificate(context.Background(), CertificateData{Username: "ana", Score: 1, Total: 2, Language: "go"})
	require.NoError(t, err)
	assert.Equal(t, "https://bucket/signed", art.FilePath)
	m.AssertExpectations(t)
}

func TestGenerateCertificate_MirrorFailureFallsBack(t *testing.T) {
	s := newTestService(t)
	m := new(mockMirror)
	s.WithMirror(m, 0)
	m.On("UploadStream", mock.Anything, true, "application/pdf").Return(errors.New("oss down"))

	art, err := s.GenerateCertificate(context.Background(), CertificateData{Username: "ana", Score: 1, Total: 2, Language: "go"})
	require.NoError(t, err)
	assert.Equal(t, s.PublicURL(art.FileName), art.FilePath)
	m.AssertNotCalled(t, "SignedURL", mock.Anything, mock.Anything)
}

func TestGenerateResultsReport(t *testing.T) {
	s := newTestService(t)
	rows := []ReportRow{
		{Language: "go", Score: 3, Total: 6, Date: time.Now()},
		{Language: "python", Score: 6, Total: 6, Date: time.Now()},
	}
	art, err := s.GenerateResultsReport(context.Background(), "john doe", rows)
	require.NoError(t, err)
	assert.Equal(t, "quiz_results_john_doe_1700000000123.pdf", art.FileName)
	assert.FileExists(t, art.LocalPath)
}

func TestReportSummary(t *testing.T) {
	n, avg := ReportData{}.Summary()
	assert.Equal(t, 0, n)
	assert.Zero(t, avg)

	n, avg = ReportData{Rows: []ReportRow{{Score: 1, Total: 2}, {Score: 2, Total: 2}}}.Summary()
	assert.Equal(t, 2, n)
	assert.InDelta(t, 75.0, avg, 0.001)
}
