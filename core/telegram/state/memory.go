package state

import (
	"strconv"
	"sync"

	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/xuelxng/exchange-bot/core/logger"
	tghelpers "github.com/xuelxng/exchange-bot/core/telegram/helpers"
)

type memoryManager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewMemoryManager constructs an in-process Manager. Sessions live until
// Reset and are lost on restart.
func NewMemoryManager() Manager {
	return &memoryManager{sessions: make(map[int64]*Session)}
}

// session returns the stored session, creating one when missing.
// Callers must hold the write lock.
func (m *memoryManager) session(userID int64) *Session {
	sess, ok := m.sessions[userID]
	if !ok {
		s := NewSession()
		sess = &s
		m.sessions[userID] = sess
	}
	return sess
}

func (m *memoryManager) Session(userID int64) Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[userID]
	if !ok {
		return NewSession()
	}
	out := Session{State: sess.State, Data: make(map[string]string, len(sess.Data))}
	for k, v := range sess.Data {
		out.Data[k] = v
	}
	return out
}

func (m *memoryManager) SetState(userID int64, st State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session(userID).State = st
}

func (m *memoryManager) Current(userID int64) State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if sess, ok := m.sessions[userID]; ok {
		return sess.State
	}
	return Idle
}

func (m *memoryManager) InProgress(userID int64) bool {
	return m.Current(userID) != Idle
}

func (m *memoryManager) Set(userID int64, key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session(userID).Data[key] = value
}

func (m *memoryManager) SetInt(userID int64, key string, value int) {
	m.Set(userID, key, strconv.Itoa(value))
}

func (m *memoryManager) Get(userID int64, key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[userID]
	if !ok {
		return "", false
	}
	v, ok := sess.Data[key]
	return v, ok
}

func (m *memoryManager) GetInt(userID int64, key string) (int, bool) {
	raw, ok := m.Get(userID, key)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (m *memoryManager) Drop(userID int64, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sess, ok := m.sessions[userID]; ok {
		delete(sess.Data, key)
	}
}

func (m *memoryManager) Reset(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

// Dispatch runs the handler registered for the user's current state.
// An unregistered state is a no-op, not an error.
func (m *memoryManager) Dispatch(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	current := m.Current(sender.ID)
	ctx := tghelpers.BuildContext(c)
	logger.Debug(ctx, "tg", "fsm.dispatch",
		slog.String("status", "ok"),
		slog.Int64("user_id", sender.ID),
		slog.String("state", string(current)),
	)
	if handler, ok := handlerFor(current); ok {
		return handler(c)
	}
	return nil
}
