package state

import tele "gopkg.in/telebot.v4"

// State identifies a finite-state-machine step of a conversation.
type State string

// Idle means no conversation is active for the user.
const Idle State = "idle"

// Session carries the FSM state and the collected dialogue data of one user.
// Values are strings so any backend can persist them verbatim.
type Session struct {
	State State             `json:"state"`
	Data  map[string]string `json:"data,omitempty"`
}

// NewSession returns an idle session with empty data.
func NewSession() Session {
	return Session{State: Idle, Data: make(map[string]string)}
}

// Manager orchestrates per-user sessions and FSM transitions. Implementations
// must be safe for concurrent use; updates from distinct users never block
// each other beyond the backend's own locking.
type Manager interface {
	// Session returns a copy of the user's session, idle if none exists.
	Session(userID int64) Session

	SetState(userID int64, st State)
	Current(userID int64) State
	InProgress(userID int64) bool

	Set(userID int64, key, value string)
	SetInt(userID int64, key string, value int)
	Get(userID int64, key string) (string, bool)
	GetInt(userID int64, key string) (int, bool)
	Drop(userID int64, key string)

	// Reset returns the user to idle and discards all collected data.
	Reset(userID int64)

	// Dispatch invokes the handler registered for the user's current state.
	Dispatch(c tele.Context) error
}
