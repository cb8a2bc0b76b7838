package service

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"quizku_backend/internals/helpers/apperr"
)

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._@-]`)

// SanitizeName makes a username safe to embed in a file name.
func SanitizeName(s string) string {
	s = unsafeNameChars.ReplaceAllString(strings.TrimSpace(s), "_")
	s = strings.Trim(s, ".")
	if s == "" {
		return "user"
	}
	return s
}

// Store is the local artifact directory, served under /temp.
type Store struct {
	Dir string
}

func NewStore(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		dir = "temp"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{Dir: dir}, nil
}

// Resolve maps a client supplied file name to a path inside Dir.
// Anything that is not a bare file name is rejected.
func (s *Store) Resolve(fileName string) (string, error) {
	if fileName == "" ||
		fileName != filepath.Base(fileName) ||
		strings.ContainsAny(fileName, `/\`) ||
		fileName == "." || fileName == ".." ||
		strings.HasPrefix(fileName, ".") {
		return "", apperr.Invalid("fileName", "must be a plain file name")
	}
	return filepath.Join(s.Dir, fileName), nil
}

// Open returns the path of an existing artifact or a NotFound error.
func (s *Store) Open(fileName string) (string, error) {
	p, err := s.Resolve(fileName)
	if err != nil {
		return "", err
	}
	st, err := os.Stat(p)
	if errors.Is(err, os.ErrNotExist) || (err == nil && st.IsDir()) {
		return "", apperr.NotFound("certificate not found")
	}
	if err != nil {
		return "", apperr.Internal("failed to read artifact", err)
	}
	return p, nil
}

func (s *Store) Remove(fileName string) error {
	p, err := s.Resolve(fileName)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Reap deletes regular files older than retention and returns how many went.
func (s *Store) Reap(now time.Time, retention time.Duration) (int, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return 0, err
	}
	cutoff := now.Add(-retention)
	n := 0
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(s.Dir, e.Name())); err == nil {
				n++
			}
		}
	}
	return n, nil
}
