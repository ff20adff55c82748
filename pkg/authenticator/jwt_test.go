package authenticator

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
)

type testObject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func Test_jwtTokenEngine(t *testing.T) {
	engine := NewTokenEngine("secret")

	token, err := engine.Generate(time.Minute, testObject{ID: "user1", Name: "foo"})
	require.NoError(t, err)

	var obj testObject
	require.NoError(t, engine.Verify(token, &obj))
	require.Equal(t, "user1", obj.ID)
	require.Equal(t, "foo", obj.Name)
}

func Test_jwtTokenEngine_expired(t *testing.T) {
	engine := NewTokenEngine("secret")

	token, err := engine.Generate(-time.Minute, testObject{ID: "user1"})
	require.NoError(t, err)

	var obj testObject
	err = engine.Verify(token, &obj)
	require.Error(t, err)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func Test_jwtTokenEngine_wrongSecret(t *testing.T) {
	token, err := NewTokenEngine("secret").Generate(time.Minute, testObject{ID: "user1"})
	require.NoError(t, err)

	var obj testObject
	require.Error(t, NewTokenEngine("another").Verify(token, &obj))
}
