package domain

// SessionRecord represents a locally logged-in user.
// Its presence is the only signal that a user is authenticated.
type SessionRecord struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// Valid returns true if the record carries the fields a session needs
func (r *SessionRecord) Valid() bool {
	return r != nil && r.Username != "" && r.Token != ""
}
