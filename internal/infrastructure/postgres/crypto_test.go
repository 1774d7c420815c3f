package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldCipher_IdaYVuelta(t *testing.T) {
	c, err := NewFieldCipher("clave-de-prueba")
	require.NoError(t, err)

	enc, err := c.Encrypt("42.50")
	require.NoError(t, err)
	assert.NotEqual(t, "42.50", enc, "el valor cifrado nunca debe ser el plano")

	plain, err := c.Decrypt(enc)
	require.NoError(t, err)
	assert.Equal(t, "42.50", plain)
}

func TestFieldCipher_NoncePorValor(t *testing.T) {
	c, err := NewFieldCipher("clave-de-prueba")
	require.NoError(t, err)

	enc1, err := c.Encrypt("42.50")
	require.NoError(t, err)
	enc2, err := c.Encrypt("42.50")
	require.NoError(t, err)
	assert.NotEqual(t, enc1, enc2,
		"el mismo valor cifrado dos veces debe producir ciphertexts distintos")
}

func TestFieldCipher_ClaveIncorrecta(t *testing.T) {
	c1, err := NewFieldCipher("clave-uno")
	require.NoError(t, err)
	c2, err := NewFieldCipher("clave-dos")
	require.NoError(t, err)

	enc, err := c1.Encrypt("42.50")
	require.NoError(t, err)

	_, err = c2.Decrypt(enc)
	assert.Error(t, err, "descifrar con otra clave debe fallar, no devolver basura")
}

func TestFieldCipher_EntradasInvalidas(t *testing.T) {
	_, err := NewFieldCipher("")
	assert.Error(t, err, "la passphrase vacía se rechaza en la construcción")

	c, err := NewFieldCipher("clave-de-prueba")
	require.NoError(t, err)

	_, err = c.Decrypt("no-es-base64!!!")
	assert.Error(t, err)

	_, err = c.Decrypt("YWJj") // base64 válido pero más corto que el nonce
	assert.Error(t, err)
}
