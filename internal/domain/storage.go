package domain

// KeyValueStore is durable local storage for small JSON values.
// A missing key is reported as (nil, false, nil).
type KeyValueStore interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// SessionState is the authentication state of the process
type SessionState int

const (
	Anonymous SessionState = iota
	Authenticated
)

func (s SessionState) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

// SessionChange reports one transition between session states.
// User is the record after the transition (nil when Anonymous).
type SessionChange struct {
	From SessionState
	To   SessionState
	User *SessionRecord
}

// SessionObserver receives every session transition, in order.
type SessionObserver interface {
	OnSessionChange(change SessionChange)
}

// ObserverFunc adapts a plain function to SessionObserver.
type ObserverFunc func(SessionChange)

func (f ObserverFunc) OnSessionChange(change SessionChange) { f(change) }
