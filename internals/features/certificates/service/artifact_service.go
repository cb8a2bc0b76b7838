package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"quizku_backend/internals/helpers/apperr"
	"quizku_backend/internals/logger"
)

// Mirror is an optional remote copy of generated artifacts.
type Mirror interface {
	Key(name string) string
	UploadStream(ctx context.Context, key string, r io.Reader, contentType string) error
	SignedURL(key string, ttl time.Duration) (string, error)
}

// Artifact references one generated document.
type Artifact struct {
	FileName  string `json:"fileName"`
	FilePath  string `json:"filePath"`
	LocalPath string `json:"-"`
}

type Service struct {
	Store     *Store
	BaseURL   string
	Mirror    Mirror
	SignedTTL time.Duration
	Now       func() time.Time
	log       *logrus.Entry
}

func New(store *Store, baseURL string) *Service {
	return &Service{
		Store:     store,
		BaseURL:   baseURL,
		SignedTTL: 24 * time.Hour,
		Now:       time.Now,
		log:       logger.L().WithField("component", "artifacts"),
	}
}

func (s *Service) WithMirror(m Mirror, ttl time.Duration) *Service {
	s.Mirror = m
	if ttl > 0 {
		s.SignedTTL = ttl
	}
	return s
}

func (s *Service) fileName(kind, username string) string {
	return fmt.Sprintf("%s_%s_%d.pdf", kind, SanitizeName(username), s.Now().UnixMilli())
}

// PublicURL is the static link for a stored file.
func (s *Service) PublicURL(fileName string) string {
	return s.BaseURL + "/temp/" + fileName
}

// GenerateCertificate renders the landscape completion certificate.
func (s *Service) GenerateCertificate(ctx context.Context, d CertificateData) (Artifact, error) {
	if d.Total <= 0 {
		return Artifact{}, apperr.Invalid("totalQuestions", "must be greater than 0")
	}
	if d.IssuedAt.IsZero() {
		d.IssuedAt = s.Now()
	}
	name := s.fileName("certificate", d.Username)
	path := filepath.Join(s.Store.Dir, name)
	if err := renderCertificate(path, d); err != nil {
		_ = os.Remove(path)
		return Artifact{}, apperr.Dependency("failed to generate certificate", err)
	}

	art := Artifact{FileName: name, FilePath: s.PublicURL(name), LocalPath: path}
	if s.Mirror != nil {
		if url, err := s.mirror(ctx, path, name); err != nil {
			s.log.WithError(err).WithField("file", name).Warn("certificate mirror failed, using local link")
		} else {
			art.FilePath = url
		}
	}
	return art, nil
}

func (s *Service) mirror(ctx context.Context, path, name string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	key := s.Mirror.Key(name)
	if err := s.Mirror.UploadStream(ctx, key, f, "application/pdf"); err != nil {
		return "", err
	}
	return s.Mirror.SignedURL(key, s.SignedTTL)
}

// GenerateResultsReport renders the portrait history report for username.
func (s *Service) GenerateResultsReport(ctx context.Context, username string, rows []ReportRow) (Artifact, error) {
	name := s.fileName("quiz_results", username)
	path := filepath.Join(s.Store.Dir, name)
	err := renderReport(path, ReportData{Username: username, GeneratedAt: s.Now(), Rows: rows})
	if err != nil {
		_ = os.Remove(path)
		return Artifact{}, apperr.Dependency("failed to generate results report", err)
	}
	return Artifact{FileName: name, FilePath: s.PublicURL(name), LocalPath: path}, nil
}

// RemoveLater deletes an on-demand export once it has been streamed.
func (s *Service) RemoveLater(fileName string, after time.Duration) {
	time.AfterFunc(after, func() {
		if err := s.Store.Remove(fileName); err != nil {
			s.log.WithError(err).WithField("file", fileName).Warn("remove export failed")
		}
	})
}
