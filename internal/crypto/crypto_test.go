package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func TestEncryptDecryptRoundTrip(t *testing.T) {
	for _, plaintext := range []string{"", "secret", "a longer password with spaces and symbols !@#$%", "exactly-16-bytes"} {
		encrypted, err := Encrypt(plaintext, testKey)
		require.NoError(t, err)

		assert.True(t, IsEncrypted(encrypted))
		if plaintext != "" {
			assert.NotContains(t, encrypted, plaintext)
		}

		decrypted, err := Decrypt(encrypted, testKey)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	}
}

func TestEncryptProducesUniqueIVs(t *testing.T) {
	a, err := Encrypt("same input", testKey)
	require.NoError(t, err)
	b, err := Encrypt("same input", testKey)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestDecryptWrongKey(t *testing.T) {
	encrypted, err := Encrypt("secret", testKey)
	require.NoError(t, err)

	// A wrong key either fails the padding check or yields garbage.
	otherKey := []byte("ffffffffffffffffffffffffffffffff")
	out, err := Decrypt(encrypted, otherKey)
	if err == nil {
		assert.NotEqual(t, "secret", out)
	}
}

func TestDecryptMalformedValue(t *testing.T) {
	cases := []string{
		"",
		"no-separator",
		"nothex:deadbeef",
		"deadbeef:nothex",
		"dead:beef", // iv too short
	}
	for _, c := range cases {
		_, err := Decrypt(c, testKey)
		assert.Error(t, err, "value %q should not decrypt", c)
	}
}

func TestDecryptTamperedCiphertext(t *testing.T) {
	encrypted, err := Encrypt("secret", testKey)
	require.NoError(t, err)

	// Flip the final hex digit of the ciphertext.
	last := encrypted[len(encrypted)-1]
	replacement := "0"
	if last == '0' {
		replacement = "1"
	}
	tampered := encrypted[:len(encrypted)-1] + replacement

	out, err := Decrypt(tampered, testKey)
	if err == nil {
		assert.NotEqual(t, "secret", out)
	}
}

func TestInvalidKeyLength(t *testing.T) {
	_, err := Encrypt("x", []byte("short"))
	assert.ErrorIs(t, err, ErrInvalidKey)

	_, err = Decrypt("aa:bb", []byte("short"))
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestIsEncrypted(t *testing.T) {
	assert.False(t, IsEncrypted("plaintextpassword"))
	assert.True(t, IsEncrypted(strings.Repeat("ab", 16)+":deadbeef"))
}
