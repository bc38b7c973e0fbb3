// Package settings manages the editable database connection settings
// persisted in a JSON file next to the process. The password is encrypted
// at rest and never returned to a client.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/pacsboard/pacsboard/internal/crypto"
	"github.com/rs/zerolog/log"
)

// DBSettings is the persisted connection record. On disk db_pass holds
// "iv_hex:ciphertext_hex".
type DBSettings struct {
	DBHost string `json:"db_host"`
	DBPort string `json:"db_port"`
	DBName string `json:"db_name"`
	DBUser string `json:"db_user"`
	DBPass string `json:"db_pass"`
}

// Store reads and writes the settings file.
type Store struct {
	mu       sync.Mutex
	path     string
	key      []byte
	defaults DBSettings
}

// NewStore creates a store. defaults come from process configuration and
// are served when no file has been written yet; their password is only
// ever used for connecting, never returned by Load.
func NewStore(path string, key []byte, defaults DBSettings) *Store {
	return &Store{path: path, key: key, defaults: defaults}
}

// Load returns the current settings for display. The password field is
// always blanked, whether or not a record exists.
func (s *Store) Load() (DBSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.read()
	if errors.Is(err, os.ErrNotExist) {
		masked := s.defaults
		masked.DBPass = ""
		return masked, nil
	}
	if err != nil {
		return DBSettings{}, err
	}

	current.DBPass = ""
	return current, nil
}

// Save merges the incoming settings over the stored record and persists
// it. A supplied password is encrypted; an omitted one keeps the stored
// value, except that a legacy plaintext value is encrypted in place.
func (s *Store) Save(incoming DBSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.read()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	var pass string
	switch {
	case incoming.DBPass != "":
		pass, err = crypto.Encrypt(incoming.DBPass, s.key)
		if err != nil {
			return fmt.Errorf("encrypting password: %w", err)
		}
	case current.DBPass != "" && !crypto.IsEncrypted(current.DBPass):
		// One-time migration of a legacy plaintext password.
		log.Info().Msg("Encrypting legacy plain-text database password")
		pass, err = crypto.Encrypt(current.DBPass, s.key)
		if err != nil {
			return fmt.Errorf("encrypting legacy password: %w", err)
		}
	default:
		pass = current.DBPass
	}

	next := DBSettings{
		DBHost: firstNonEmpty(incoming.DBHost, current.DBHost),
		DBPort: firstNonEmpty(incoming.DBPort, current.DBPort),
		DBName: firstNonEmpty(incoming.DBName, current.DBName),
		DBUser: firstNonEmpty(incoming.DBUser, current.DBUser),
		DBPass: pass,
	}

	data, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing settings file: %w", err)
	}
	return nil
}

// Resolve returns the stored settings with the password decrypted, for
// establishing the connection pool. When no file exists the process
// defaults are returned as-is. A decryption failure here is a fatal
// configuration error for the caller.
func (s *Store) Resolve() (DBSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.read()
	if errors.Is(err, os.ErrNotExist) {
		return s.defaults, nil
	}
	if err != nil {
		return DBSettings{}, err
	}

	if current.DBPass != "" && crypto.IsEncrypted(current.DBPass) {
		plain, err := crypto.Decrypt(current.DBPass, s.key)
		if err != nil {
			return DBSettings{}, fmt.Errorf("decrypting stored database password (check CONFIG_ENCRYPTION_KEY): %w", err)
		}
		current.DBPass = plain
	}
	return current, nil
}

func (s *Store) read() (DBSettings, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return DBSettings{}, err
	}
	var out DBSettings
	if err := json.Unmarshal(data, &out); err != nil {
		return DBSettings{}, fmt.Errorf("parsing settings file: %w", err)
	}
	return out, nil
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
