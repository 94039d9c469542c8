package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func createTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:", zap.NewNop())
	require.NoError(t, err)
	return s
}

func TestStoreSetGet(t *testing.T) {
	s := createTestStore(t)

	_, ok, err := s.Get(KeyAccessToken)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(KeyAccessToken, "tok-1"))
	v, ok, err := s.Get(KeyAccessToken)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tok-1", v)

	// Overwrite
	require.NoError(t, s.Set(KeyAccessToken, "tok-2"))
	v, _, _ = s.Get(KeyAccessToken)
	assert.Equal(t, "tok-2", v)

	require.NoError(t, s.Delete(KeyAccessToken))
	_, ok, err = s.Get(KeyAccessToken)
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting again is fine
	require.NoError(t, s.Delete(KeyAccessToken))
}

func TestStoreJSONRoundTrip(t *testing.T) {
	s := createTestStore(t)

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.NoError(t, s.SetJSON("payload", payload{Name: "x", Count: 3}))

	var out payload
	ok, err := s.GetJSON("payload", &out)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, payload{Name: "x", Count: 3}, out)

	ok, err = s.GetJSON("missing", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreFlags(t *testing.T) {
	s := createTestStore(t)

	v, err := s.Flag(KeyTourCompleted)
	require.NoError(t, err)
	assert.False(t, v)

	require.NoError(t, s.SetFlag(KeyTourCompleted, true))
	v, err = s.Flag(KeyTourCompleted)
	require.NoError(t, err)
	assert.True(t, v)

	require.NoError(t, s.SetFlag(KeyTourCompleted, false))
	v, _ = s.Flag(KeyTourCompleted)
	assert.False(t, v)
}
