package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "0123456789abcdef0123456789abcdef"

func TestFieldCipher_SealOpen(t *testing.T) {
	c, err := NewFieldCipher(testKey)
	require.NoError(t, err)

	sealed, err := c.Seal("DE89 3704 0044 0532 0130 00")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "3704")

	other, err := c.Seal("DE89 3704 0044 0532 0130 00")
	require.NoError(t, err)
	assert.NotEqual(t, sealed, other, "fresh nonce per seal")

	plain, err := c.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "DE89 3704 0044 0532 0130 00", plain)
}

func TestFieldCipher_Errors(t *testing.T) {
	_, err := NewFieldCipher("short")
	assert.Error(t, err)

	c, err := NewFieldCipher(testKey)
	require.NoError(t, err)

	_, err = c.Open("!!not base64!!")
	assert.Error(t, err)

	_, err = c.Open("YWJj")
	assert.ErrorIs(t, err, ErrCiphertextTooShort)

	sealed, err := c.Seal("secret")
	require.NoError(t, err)
	wrong, err := NewFieldCipher("fedcba9876543210fedcba9876543210")
	require.NoError(t, err)
	_, err = wrong.Open(sealed)
	assert.Error(t, err)
}
