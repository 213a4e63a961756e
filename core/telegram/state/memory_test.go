package state

import "testing"

func TestMemoryManagerLifecycle(t *testing.T) {
	m := NewMemoryManager()
	const user int64 = 42

	if m.InProgress(user) {
		t.Fatal("fresh user must be idle")
	}
	if got := m.Current(user); got != Idle {
		t.Fatalf("Current = %q, expected idle", got)
	}

	m.SetState(user, State("exchange:amount"))
	if !m.InProgress(user) {
		t.Fatal("expected in-progress after SetState")
	}

	m.Set(user, "amount", "100")
	m.SetInt(user, "order_message", 555)

	if v, ok := m.Get(user, "amount"); !ok || v != "100" {
		t.Fatalf("Get amount = %q/%v", v, ok)
	}
	if v, ok := m.GetInt(user, "order_message"); !ok || v != 555 {
		t.Fatalf("GetInt order_message = %d/%v", v, ok)
	}
	if _, ok := m.GetInt(user, "amount_missing"); ok {
		t.Fatal("missing key must report !ok")
	}

	m.Drop(user, "amount")
	if _, ok := m.Get(user, "amount"); ok {
		t.Fatal("dropped key must be gone")
	}

	m.Reset(user)
	if m.InProgress(user) {
		t.Fatal("reset user must be idle")
	}
	if len(m.Session(user).Data) != 0 {
		t.Fatal("reset user must have empty data")
	}
}

func TestMemoryManagerSessionIsolation(t *testing.T) {
	m := NewMemoryManager()
	m.SetState(1, State("exchange:amount"))
	m.Set(1, "amount", "100")
	m.SetState(2, State("payment:category"))

	if got := m.Current(2); got != State("payment:category") {
		t.Fatalf("user 2 state = %q", got)
	}
	if _, ok := m.Get(2, "amount"); ok {
		t.Fatal("user 2 must not see user 1 data")
	}

	// Mutating a returned copy must not leak into the store.
	sess := m.Session(1)
	sess.Data["amount"] = "tampered"
	if v, _ := m.Get(1, "amount"); v != "100" {
		t.Fatalf("stored amount changed to %q", v)
	}

	m.Reset(1)
	if !m.InProgress(2) {
		t.Fatal("resetting user 1 must not touch user 2")
	}
}

func TestMemoryManagerGetIntRejectsGarbage(t *testing.T) {
	m := NewMemoryManager()
	m.Set(7, "order_message", "not-a-number")
	if _, ok := m.GetInt(7, "order_message"); ok {
		t.Fatal("non-numeric value must report !ok")
	}
}
