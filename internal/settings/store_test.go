package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/pacsboard/pacsboard/internal/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db_config.json")
	defaults := DBSettings{
		DBHost: "localhost",
		DBPort: "5432",
		DBName: "pacsdb",
		DBUser: "pacsboard",
		DBPass: "env-password", // must never leak through Load
	}
	return NewStore(path, testKey, defaults), path
}

func readRaw(t *testing.T, path string) DBSettings {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out DBSettings
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestLoadWithoutFileReturnsDefaultsWithoutPassword(t *testing.T) {
	store, _ := newTestStore(t)

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "localhost", got.DBHost)
	assert.Equal(t, "", got.DBPass)
}

func TestSaveEncryptsPassword(t *testing.T) {
	store, path := newTestStore(t)

	require.NoError(t, store.Save(DBSettings{
		DBHost: "db01",
		DBPort: "5432",
		DBName: "pacsdb",
		DBUser: "app",
		DBPass: "supersecret",
	}))

	raw := readRaw(t, path)
	assert.NotEqual(t, "supersecret", raw.DBPass)
	assert.True(t, crypto.IsEncrypted(raw.DBPass))

	// Load masks the password.
	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "db01", got.DBHost)
	assert.Equal(t, "", got.DBPass)

	// Resolve decrypts it.
	resolved, err := store.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "supersecret", resolved.DBPass)
}

func TestSaveWithoutPasswordKeepsStoredValue(t *testing.T) {
	store, path := newTestStore(t)

	require.NoError(t, store.Save(DBSettings{DBHost: "db01", DBPass: "supersecret"}))
	before := readRaw(t, path).DBPass

	require.NoError(t, store.Save(DBSettings{DBHost: "db02"}))
	after := readRaw(t, path)

	assert.Equal(t, "db02", after.DBHost)
	assert.Equal(t, before, after.DBPass, "stored ciphertext must be untouched")
}

func TestSaveMigratesLegacyPlaintextPassword(t *testing.T) {
	store, path := newTestStore(t)

	// Simulate a config file written before encryption existed.
	legacy := DBSettings{DBHost: "db01", DBPort: "5432", DBName: "pacsdb", DBUser: "app", DBPass: "plainpass"}
	data, err := json.Marshal(legacy)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	require.NoError(t, store.Save(DBSettings{DBHost: "db01"}))

	raw := readRaw(t, path)
	assert.True(t, crypto.IsEncrypted(raw.DBPass))

	resolved, err := store.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "plainpass", resolved.DBPass)
}

func TestResolveFailsOnCorruptedCiphertext(t *testing.T) {
	store, path := newTestStore(t)

	bad := DBSettings{DBHost: "db01", DBPass: "deadbeefdeadbeefdeadbeefdeadbeef:notvalidhex"}
	data, err := json.Marshal(bad)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	_, err = store.Resolve()
	assert.Error(t, err)
}

func TestResolveWithoutFileUsesDefaults(t *testing.T) {
	store, _ := newTestStore(t)

	got, err := store.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "localhost", got.DBHost)
	assert.Equal(t, "env-password", got.DBPass)
}
