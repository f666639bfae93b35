package lib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "0123456789abcdef0123456789abcdef"

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	plaintext := "live_secret_key_12345"

	ciphertext, err := Encrypt(plaintext, testKey)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, ciphertext)

	decrypted, err := Decrypt(ciphertext, testKey)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestEncrypt_NoncesDiffer(t *testing.T) {
	a, err := Encrypt("same input", testKey)
	require.NoError(t, err)
	b, err := Encrypt("same input", testKey)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestDecrypt_WrongKey(t *testing.T) {
	ciphertext, err := Encrypt("secret", testKey)
	require.NoError(t, err)

	_, err = Decrypt(ciphertext, "ffffffffffffffffffffffffffffffff")
	assert.Error(t, err)
}

func TestEncrypt_RejectsShortKey(t *testing.T) {
	_, err := Encrypt("secret", "too-short")
	assert.Error(t, err)

	_, err = Decrypt("whatever", "too-short")
	assert.Error(t, err)
}

func TestEncryptDecrypt_EmptyString(t *testing.T) {
	ciphertext, err := Encrypt("", testKey)
	require.NoError(t, err)
	assert.Empty(t, ciphertext)

	decrypted, err := Decrypt("", testKey)
	require.NoError(t, err)
	assert.Empty(t, decrypted)
}

func TestDecrypt_GarbageInput(t *testing.T) {
	_, err := Decrypt("not-base64!!!", testKey)
	assert.Error(t, err)

	_, err = Decrypt("c2hvcnQ=", testKey) // valid base64, shorter than a nonce
	assert.Error(t, err)
}
