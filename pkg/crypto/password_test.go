package crypto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_ComparePassword(t *testing.T) {
	hashed, err := HashPassword("password123")
	require.NoError(t, err)

	require.NoError(t, ComparePassword(hashed, "password123"))
	require.Error(t, ComparePassword(hashed, "wrong-password"))
}
