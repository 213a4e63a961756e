package state

import (
	"sync"

	tele "gopkg.in/telebot.v4"
)

// Handlers are registered during wiring and only read afterwards, but the
// lock keeps late registration from tests safe.
var (
	handlersMu  sync.RWMutex
	fsmHandlers = map[State]tele.HandlerFunc{}
)

// RegisterHandler associates a state with its handler. The handler runs when
// Dispatch sees a user in that state.
func RegisterHandler(st State, h tele.HandlerFunc) {
	if st == "" || h == nil {
		return
	}
	handlersMu.Lock()
	fsmHandlers[st] = h
	handlersMu.Unlock()
}

func handlerFor(st State) (tele.HandlerFunc, bool) {
	handlersMu.RLock()
	defer handlersMu.RUnlock()
	h, ok := fsmHandlers[st]
	return h, ok
}
