// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package session

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirseerhq/octopi/internal/auth"
)

// ErrNoSession is returned by Load when no session file exists.
var ErrNoSession = errors.New("no saved session")

// DefaultPath returns the standard session location.
// Returns: ~/.octopi/session.json
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".octopi", "session.json")
}

// Save atomically writes s to path, stamping its version and checksum.
func Save(s *Session, path string) error {
	s.Version = CurrentVersion
	s.Checksum = ""

	checksum, err := calculateChecksum(s)
	if err != nil {
		return fmt.Errorf("failed to calculate checksum: %w", err)
	}
	s.Checksum = checksum

	if mkdirErr := os.MkdirAll(filepath.Dir(path), 0o700); mkdirErr != nil {
		return fmt.Errorf("failed to create session directory: %w", mkdirErr)
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	tempFile := path + ".tmp"
	if writeErr := os.WriteFile(tempFile, data, 0o600); writeErr != nil {
		return fmt.Errorf("failed to write temporary session file: %w", writeErr)
	}

	file, err := os.Open(tempFile)
	if err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to open temp file for sync: %w", err)
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tempFile, path); err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Load reads and validates the session at path. A missing file yields an
// error matching ErrNoSession.
func Load(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s. Run 'octopi login' first", ErrNoSession, path)
		}
		return nil, fmt.Errorf("failed to read session file %s: %w", path, err)
	}

	var s Session
	if unmarshalErr := json.Unmarshal(data, &s); unmarshalErr != nil {
		return nil, fmt.Errorf("session file is corrupted (invalid JSON): %w", unmarshalErr)
	}

	if s.Version != CurrentVersion {
		return nil, fmt.Errorf("session file version (%d) is incompatible with current version (%d)",
			s.Version, CurrentVersion)
	}

	saved := s.Checksum
	calculated, err := calculateChecksum(&s)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate checksum for validation: %w", err)
	}
	if saved != calculated {
		return nil, fmt.Errorf("session file is corrupted (checksum mismatch)")
	}

	if err := s.Credentials().Validate(); err != nil {
		return nil, fmt.Errorf("session file holds an unusable credential: %w", err)
	}
	return &s, nil
}

// Delete removes the session file. A missing file is not an error.
func Delete(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete session file: %w", err)
	}
	return nil
}

// Restore loads the session at path into ac. When no session exists ac is
// left untouched and nil is returned.
func Restore(ac *auth.Context, path string) (*Session, error) {
	s, err := Load(path)
	if errors.Is(err, ErrNoSession) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := ac.Authenticate(s.Credentials()); err != nil {
		return nil, err
	}
	return s, nil
}

// calculateChecksum computes the SHA256 hash of s with Checksum cleared.
func calculateChecksum(s *Session) (string, error) {
	sessionCopy := *s
	sessionCopy.Checksum = ""

	data, err := json.Marshal(sessionCopy)
	if err != nil {
		return "", err
	}

	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:]), nil
}
