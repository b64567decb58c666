package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-pos/pkg/jwt"
)

func TestGenerateParse(t *testing.T) {
	token, err := jwt.Generate("secreto", "maria", true, "ventas-pos", 5)
	require.NoError(t, err)

	claims, err := jwt.Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, "maria", claims.Username)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "ventas-pos", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate("secreto", "maria", false, "ventas-pos", 5)
	require.NoError(t, err)

	_, err = jwt.Parse("otro", token)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	token, err := jwt.Generate("secreto", "maria", false, "ventas-pos", -1)
	require.NoError(t, err)

	_, err = jwt.Parse("secreto", token)
	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "maria", false, "x", 5)
	assert.ErrorIs(t, err, jwt.ErrEmptySecret)

	_, err = jwt.Parse("", "a.b.c")
	assert.ErrorIs(t, err, jwt.ErrEmptySecret)
}
