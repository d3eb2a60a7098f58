package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, kv domain.KeyValueStore) *Store {
	t.Helper()
	s := NewStore(kv, WithLoginDelay(0))
	s.newToken = func() string { return "token-1" }
	return s
}

func TestLogin_Success(t *testing.T) {
	kv := store.NewMemoryStore()
	s := newTestStore(t, kv)
	require.False(t, s.IsAuthenticated())

	record, err := s.Login(context.Background(), "user", "password")
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.Equal(t, &domain.SessionRecord{ID: "1", Username: "user", Token: "token-1"}, record)
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "user", s.CurrentUser().Username)
	assert.Equal(t, domain.Authenticated, s.State())

	data, ok, err := kv.Get(StorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"id":"1","username":"user","token":"token-1"}`, string(data))
}

func TestLogin_WrongPasswordIsNotAnError(t *testing.T) {
	kv := store.NewMemoryStore()
	s := newTestStore(t, kv)

	record, err := s.Login(context.Background(), "user", "wrong")
	require.NoError(t, err)
	assert.Nil(t, record)
	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.CurrentUser())

	_, ok, _ := kv.Get(StorageKey)
	assert.False(t, ok)
}

func TestLogin_WrongPasswordKeepsExistingSession(t *testing.T) {
	s := newTestStore(t, store.NewMemoryStore())

	_, err := s.Login(context.Background(), "user", "password")
	require.NoError(t, err)

	record, err := s.Login(context.Background(), "user", "wrong")
	require.NoError(t, err)
	assert.Nil(t, record)
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "user", s.CurrentUser().Username)
}

func TestLogin_SurvivesRestart(t *testing.T) {
	dir := t.TempDir()

	kv, err := store.NewBoltStore(dir)
	require.NoError(t, err)
	s := newTestStore(t, kv)
	_, err = s.Login(context.Background(), "user", "password")
	require.NoError(t, err)
	require.NoError(t, kv.Close())

	reopened, err := store.NewBoltStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	restarted := NewStore(reopened)
	assert.True(t, restarted.IsAuthenticated())
	assert.Equal(t, &domain.SessionRecord{ID: "1", Username: "user", Token: "token-1"}, restarted.CurrentUser())
}

func TestLogin_HonoursContextDuringDelay(t *testing.T) {
	s := NewStore(store.NewMemoryStore(), WithLoginDelay(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	record, err := s.Login(ctx, "user", "password")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, record)
	assert.False(t, s.IsAuthenticated())
}

func TestLogin_CustomAuthenticator(t *testing.T) {
	s := NewStore(store.NewMemoryStore(),
		WithLoginDelay(0),
		WithAuthenticator(StaticAuthenticator{UserID: "42", Username: "ada", Password: "lovelace"}),
	)

	record, err := s.Login(context.Background(), "user", "password")
	require.NoError(t, err)
	assert.Nil(t, record)

	record, err = s.Login(context.Background(), "ada", "lovelace")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "42", record.ID)
	assert.NotEmpty(t, record.Token)
}

// failingStore rejects every write
type failingStore struct {
	*store.BoltStore
}

var errDiskFull = errors.New("disk full")

func (f failingStore) Put(string, []byte) error { return errDiskFull }
func (f failingStore) Delete(string) error      { return errDiskFull }

func TestLogin_StorageFailureLeavesStateUnchanged(t *testing.T) {
	s := newTestStore(t, failingStore{store.NewMemoryStore()})

	record, err := s.Login(context.Background(), "user", "password")
	assert.ErrorIs(t, err, errDiskFull)
	assert.Nil(t, record)
	assert.False(t, s.IsAuthenticated())
}

// deleteFailingStore accepts writes but cannot remove keys
type deleteFailingStore struct {
	*store.BoltStore
}

func (f deleteFailingStore) Delete(string) error { return errDiskFull }

func TestLogout_StorageFailureStillSignsOut(t *testing.T) {
	s := newTestStore(t, deleteFailingStore{store.NewMemoryStore()})

	var changes []domain.SessionChange
	s.Subscribe(domain.ObserverFunc(func(c domain.SessionChange) { changes = append(changes, c) }))

	_, err := s.Login(context.Background(), "user", "password")
	require.NoError(t, err)
	require.True(t, s.IsAuthenticated())

	err = s.Logout()
	assert.ErrorIs(t, err, errDiskFull)
	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.CurrentUser())
	require.Len(t, changes, 2)
	assert.Equal(t, domain.Anonymous, changes[1].To)
}

func TestLogout_ClearsStorage(t *testing.T) {
	kv := store.NewMemoryStore()
	s := newTestStore(t, kv)

	_, err := s.Login(context.Background(), "user", "password")
	require.NoError(t, err)

	require.NoError(t, s.Logout())
	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.CurrentUser())
	_, ok, _ := kv.Get(StorageKey)
	assert.False(t, ok)

	// Idempotent
	require.NoError(t, s.Logout())
	assert.False(t, s.IsAuthenticated())
}

func TestNewStore_DiscardsInvalidRecord(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"not json", `{"id":`},
		{"missing token", `{"id":"1","username":"user"}`},
		{"missing username", `{"id":"1","token":"t"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := store.NewMemoryStore()
			require.NoError(t, kv.Put(StorageKey, []byte(tt.value)))

			s := NewStore(kv)
			assert.False(t, s.IsAuthenticated())

			_, ok, _ := kv.Get(StorageKey)
			assert.False(t, ok)
		})
	}
}

func TestCurrentUser_ReturnsCopy(t *testing.T) {
	s := newTestStore(t, store.NewMemoryStore())
	_, err := s.Login(context.Background(), "user", "password")
	require.NoError(t, err)

	s.CurrentUser().Username = "mallory"
	assert.Equal(t, "user", s.CurrentUser().Username)
}

func TestSubscribe_SeesEveryTransitionInOrder(t *testing.T) {
	s := newTestStore(t, store.NewMemoryStore())

	var first, second []domain.SessionChange
	s.Subscribe(domain.ObserverFunc(func(c domain.SessionChange) { first = append(first, c) }))
	unsubscribe := s.Subscribe(domain.ObserverFunc(func(c domain.SessionChange) { second = append(second, c) }))

	_, err := s.Login(context.Background(), "user", "password")
	require.NoError(t, err)
	_, err = s.Login(context.Background(), "user", "wrong")
	require.NoError(t, err)
	require.NoError(t, s.Logout())
	require.NoError(t, s.Logout())

	unsubscribe()
	unsubscribe()
	_, err = s.Login(context.Background(), "user", "password")
	require.NoError(t, err)

	require.Len(t, first, 3)
	assert.Equal(t, domain.Anonymous, first[0].From)
	assert.Equal(t, domain.Authenticated, first[0].To)
	assert.Equal(t, "user", first[0].User.Username)
	assert.Equal(t, domain.Authenticated, first[1].From)
	assert.Equal(t, domain.Anonymous, first[1].To)
	assert.Nil(t, first[1].User)
	assert.Equal(t, domain.Authenticated, first[2].To)

	assert.Len(t, second, 2)
}
