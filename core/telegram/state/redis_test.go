package state

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisManager(t *testing.T, opts RedisOptions) (Manager, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisManager(rdb, opts), srv
}

func TestRedisManagerLifecycle(t *testing.T) {
	m, _ := newTestRedisManager(t, RedisOptions{})
	const user int64 = 42

	if m.InProgress(user) {
		t.Fatal("fresh user must be idle")
	}

	m.SetState(user, State("payment:amount"))
	m.Set(user, "category", "digital_goods")
	m.SetInt(user, "order_message", 900)

	if got := m.Current(user); got != State("payment:amount") {
		t.Fatalf("Current = %q", got)
	}
	if v, ok := m.Get(user, "category"); !ok || v != "digital_goods" {
		t.Fatalf("Get category = %q/%v", v, ok)
	}
	if v, ok := m.GetInt(user, "order_message"); !ok || v != 900 {
		t.Fatalf("GetInt = %d/%v", v, ok)
	}

	m.Drop(user, "category")
	if _, ok := m.Get(user, "category"); ok {
		t.Fatal("dropped key must be gone")
	}

	m.Reset(user)
	if m.InProgress(user) {
		t.Fatal("reset user must be idle")
	}
}

func TestRedisManagerSurvivesReconnect(t *testing.T) {
	srv := miniredis.RunT(t)
	const user int64 = 7

	first := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	m1 := NewRedisManager(first, RedisOptions{})
	m1.SetState(user, State("exchange:account"))
	m1.Set(user, "amount", "250.5")
	_ = first.Close()

	// A new client against the same backend sees the dialogue.
	second := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	defer second.Close()
	m2 := NewRedisManager(second, RedisOptions{})

	if got := m2.Current(user); got != State("exchange:account") {
		t.Fatalf("state after reconnect = %q", got)
	}
	if v, ok := m2.Get(user, "amount"); !ok || v != "250.5" {
		t.Fatalf("amount after reconnect = %q/%v", v, ok)
	}
}

func TestRedisManagerTTLExpiresSession(t *testing.T) {
	m, srv := newTestRedisManager(t, RedisOptions{TTL: time.Minute})
	const user int64 = 11

	m.SetState(user, State("exchange:amount"))
	if !m.InProgress(user) {
		t.Fatal("expected in-progress session")
	}

	srv.FastForward(2 * time.Minute)
	if m.InProgress(user) {
		t.Fatal("session must expire after TTL")
	}
}

func TestRedisManagerKeyPrefix(t *testing.T) {
	m, srv := newTestRedisManager(t, RedisOptions{KeyPrefix: "dlg:"})
	m.SetState(3, State("payment:link"))

	if !srv.Exists("dlg:3") {
		t.Fatalf("expected key dlg:3, have %v", srv.Keys())
	}
}
