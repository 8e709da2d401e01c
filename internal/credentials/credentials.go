// Package credentials persists the single API credential used by the console.
package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/and161185/hr-console/internal/client"
)

// ErrEmptyEmail rejects a registration attempt before any request is sent.
var ErrEmptyEmail = errors.New("email is required")

// Store reads and writes the cached credential file.
type Store struct {
	path string
}

// NewStore creates a store over the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

type credentialFile struct {
	APIKey string `json:"api_key"`
}

// Load returns the cached credential, or an empty string when none has been
// saved yet. A missing file is not an error.
func (s *Store) Load() (string, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read credentials: %w", err)
	}
	var c credentialFile
	if err := json.Unmarshal(b, &c); err != nil {
		return "", fmt.Errorf("parse credentials: %w", err)
	}
	return c.APIKey, nil
}

// Save writes the credential, creating the parent directory if needed.
func (s *Store) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}
	b, err := json.Marshal(credentialFile{APIKey: token})
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

// Registration is the backend's answer to a successful email registration.
type Registration struct {
	APIKey string `json:"api_key"`
	Email  string `json:"user_email"`
}

// Register obtains a new API key for the given email and caches it in the
// store and on the client. A non-2xx response is returned for display and
// leaves the cached credential untouched.
func Register(ctx context.Context, clnt *client.Client, store *Store, email string) (*Registration, *client.Response, error) {
	if email == "" {
		return nil, nil, ErrEmptyEmail
	}

	resp, err := clnt.Do(ctx, http.MethodPost, "/register", nil, map[string]string{"email": email})
	if err != nil {
		return nil, nil, err
	}
	if !resp.OK() {
		return nil, resp, nil
	}

	var reg Registration
	if err := resp.DecodeJSON(&reg); err != nil {
		return nil, resp, err
	}
	if err := store.Save(reg.APIKey); err != nil {
		return nil, resp, err
	}
	clnt.SetToken(reg.APIKey)
	return &reg, resp, nil
}
