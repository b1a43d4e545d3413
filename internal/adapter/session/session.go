package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/mokhtarjo21/storehub-client/internal/core/domain"
)

type sessionData struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *domain.User `json:"user,omitempty"`
}

// FileSession persists the token pair and user blob to a JSON file, the
// desktop analogue of the web client's local storage.
type FileSession struct {
	mu   sync.RWMutex
	path string
	data sessionData
}

func NewFileSession(path string) (*FileSession, error) {
	s := &FileSession{path: path}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("reading session file %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("parsing session file %s: %w", path, err)
	}
	return s, nil
}

func (s *FileSession) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.AccessToken
}

func (s *FileSession) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.RefreshToken
}

func (s *FileSession) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.User
}

// AccessExpired inspects the access token's exp claim without verifying the
// signature; the backend owns verification, the client only needs to know
// when to refresh.
func (s *FileSession) AccessExpired(leeway time.Duration) bool {
	s.mu.RLock()
	token := s.data.AccessToken
	s.mu.RUnlock()

	if token == "" {
		return true
	}
	claims := jwt.RegisteredClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, &claims)
	if err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return time.Until(claims.ExpiresAt.Time) < leeway
}

func (s *FileSession) SetSession(access, refresh string, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = sessionData{AccessToken: access, RefreshToken: refresh, User: user}
	return s.persist()
}

func (s *FileSession) SetAccessToken(access string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.AccessToken = access
	return s.persist()
}

func (s *FileSession) ClearSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = sessionData{}
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing session file %s: %w", s.path, err)
	}
	return nil
}

func (s *FileSession) persist() error {
	raw, err := json.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("creating session dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("writing session file %s: %w", s.path, err)
	}
	return nil
}
