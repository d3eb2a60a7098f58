package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/marquee/internal/domain"
)

// StorageKey is the durable storage key holding the current session record
const StorageKey = "currentUser"

// DefaultLoginDelay simulates the round trip of a remote credential check
const DefaultLoginDelay = 500 * time.Millisecond

// Authenticator decides whether a credential pair is accepted.
// It returns the user id for accepted pairs.
type Authenticator interface {
	Authenticate(username, password string) (userID string, ok bool)
}

// StaticAuthenticator accepts exactly one username/password pair.
// It is a local stand-in, not a security boundary.
type StaticAuthenticator struct {
	UserID   string
	Username string
	Password string
}

// DefaultAuthenticator accepts user/password
var DefaultAuthenticator = StaticAuthenticator{UserID: "1", Username: "user", Password: "password"}

func (a StaticAuthenticator) Authenticate(username, password string) (string, bool) {
	if username == a.Username && password == a.Password {
		return a.UserID, true
	}
	return "", false
}

// Store owns the single current session record and its durable copy
type Store struct {
	kv    domain.KeyValueStore
	auth  Authenticator
	delay time.Duration
	// newToken is replaceable in tests
	newToken func() string
	logger   *slog.Logger

	mu        sync.RWMutex // Protects current
	current   *domain.SessionRecord
	observers map[int]domain.SessionObserver
	nextObsID int
	obsMu     sync.Mutex // Serializes notifications so observers see transitions in order
}

// Option configures a Store
type Option func(*Store)

// WithAuthenticator replaces the default credential check
func WithAuthenticator(a Authenticator) Option {
	return func(s *Store) {
		if a != nil {
			s.auth = a
		}
	}
}

// WithLoginDelay sets the simulated login latency (0 disables it)
func WithLoginDelay(d time.Duration) Option {
	return func(s *Store) {
		if d >= 0 {
			s.delay = d
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore creates a Store and seeds its state from durable storage.
// A missing or unreadable record starts the store Anonymous.
func NewStore(kv domain.KeyValueStore, opts ...Option) *Store {
	s := &Store{
		kv:        kv,
		auth:      DefaultAuthenticator,
		delay:     DefaultLoginDelay,
		newToken:  func() string { return uuid.NewString() },
		logger:    slog.Default(),
		observers: make(map[int]domain.SessionObserver),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.current = s.restore()
	return s
}

// restore reads the persisted record once at startup
func (s *Store) restore() *domain.SessionRecord {
	data, ok, err := s.kv.Get(StorageKey)
	if err != nil {
		s.logger.Warn("failed to read stored session", "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	var record domain.SessionRecord
	if err := json.Unmarshal(data, &record); err != nil || !record.Valid() {
		s.logger.Warn("discarding invalid stored session", "error", err)
		if err := s.kv.Delete(StorageKey); err != nil {
			s.logger.Warn("failed to remove invalid session", "error", err)
		}
		return nil
	}

	s.logger.Info("restored session", "username", record.Username)
	return &record
}

// Login checks the credentials after the simulated delay.
// A rejected pair returns (nil, nil) and leaves the state untouched.
func (s *Store) Login(ctx context.Context, username, password string) (*domain.SessionRecord, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		}
	}

	userID, ok := s.auth.Authenticate(username, password)
	if !ok {
		s.logger.Info("login rejected", "username", username)
		return nil, nil
	}

	record := &domain.SessionRecord{
		ID:       userID,
		Username: username,
		Token:    s.newToken(),
	}
	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session: %w", err)
	}

	s.obsMu.Lock()
	defer s.obsMu.Unlock()

	if err := s.kv.Put(StorageKey, data); err != nil {
		s.logger.Error("failed to persist session", "error", err)
		return nil, err
	}

	s.mu.Lock()
	prev := s.current
	s.current = record
	s.mu.Unlock()

	s.logger.Info("logged in", "username", username)
	s.notify(domain.SessionChange{From: stateOf(prev), To: domain.Authenticated, User: copyRecord(record)})

	return copyRecord(record), nil
}

// Logout always switches to Anonymous. A failure to remove the persisted
// record is returned after the switch.
func (s *Store) Logout() error {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()

	delErr := s.kv.Delete(StorageKey)
	if delErr != nil {
		s.logger.Error("failed to remove session", "error", delErr)
	}

	s.mu.Lock()
	prev := s.current
	s.current = nil
	s.mu.Unlock()

	if prev != nil {
		s.logger.Info("logged out", "username", prev.Username)
		s.notify(domain.SessionChange{From: domain.Authenticated, To: domain.Anonymous})
	}
	if delErr != nil {
		return fmt.Errorf("failed to remove session: %w", delErr)
	}
	return nil
}

// IsAuthenticated returns true if a session record is present
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// CurrentUser returns a copy of the current record, or nil
func (s *Store) CurrentUser() *domain.SessionRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyRecord(s.current)
}

// State returns the current session state
func (s *Store) State() domain.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return stateOf(s.current)
}

// Subscribe registers an observer for every future transition.
// Observers run synchronously and must not call back into the Store.
// The returned function removes the observer.
func (s *Store) Subscribe(obs domain.SessionObserver) (unsubscribe func()) {
	s.obsMu.Lock()
	id := s.nextObsID
	s.nextObsID++
	s.observers[id] = obs
	s.obsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.obsMu.Lock()
			delete(s.observers, id)
			s.obsMu.Unlock()
		})
	}
}

// notify must be called with obsMu held
func (s *Store) notify(change domain.SessionChange) {
	ids := make([]int, 0, len(s.observers))
	for id := range s.observers {
		ids = append(ids, id)
	}
	// Registration order
	slices.Sort(ids)
	for _, id := range ids {
		s.observers[id].OnSessionChange(change)
	}
}

func stateOf(r *domain.SessionRecord) domain.SessionState {
	if r == nil {
		return domain.Anonymous
	}
	return domain.Authenticated
}

func copyRecord(r *domain.SessionRecord) *domain.SessionRecord {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}
