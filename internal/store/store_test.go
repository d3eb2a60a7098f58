package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoltStore_PutGetDelete(t *testing.T) {
	s, err := NewBoltStore(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	_, ok, err := s.Get("currentUser")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Put("currentUser", []byte(`{"id":"1"}`)))

	got, ok, err := s.Get("currentUser")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"id":"1"}`, string(got))

	require.NoError(t, s.Delete("currentUser"))
	_, ok, err = s.Get("currentUser")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting a missing key is fine
	require.NoError(t, s.Delete("currentUser"))
}

func TestBoltStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := NewBoltStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Put("currentUser", []byte(`{"username":"user"}`)))
	require.NoError(t, s.Close())

	reopened, err := NewBoltStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, ok, err := reopened.Get("currentUser")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"username":"user"}`, string(got))
}

func TestBoltStore_ReturnsCopies(t *testing.T) {
	s := NewMemoryStore()

	value := []byte("abc")
	require.NoError(t, s.Put("k", value))
	value[0] = 'x'

	got, ok, err := s.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "abc", string(got))

	got[0] = 'y'
	again, _, _ := s.Get("k")
	assert.Equal(t, "abc", string(again))
}

func TestNewBoltStore_EmptyDirIsMemoryOnly(t *testing.T) {
	s, err := NewBoltStore("")
	require.NoError(t, err)
	assert.Nil(t, s.db)
	require.NoError(t, s.Put("k", []byte("v")))
	require.NoError(t, s.Close())
}
