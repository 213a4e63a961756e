package texts

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeStore struct {
	rows map[string]string
	err  error
}

func (s fakeStore) ResolveSet(_ context.Context, keys []string, _ string) (map[string]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := map[string]string{}
	for _, k := range keys {
		if v, ok := s.rows[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func TestResolveStoredOverrideWins(t *testing.T) {
	r := NewResolver(fakeStore{rows: map[string]string{"greetings": "custom hello"}})
	got := r.Resolve(context.Background(), []string{"greetings", "enter_bank"}, "en")
	assert.Equal(t, "custom hello", got["greetings"])
	assert.Equal(t, "Enter bank name.", got["enter_bank"])
}

func TestResolveBuiltinLanguageFallback(t *testing.T) {
	r := NewResolver(fakeStore{})
	// No German catalog entry; English builtin serves.
	got := r.Resolve(context.Background(), []string{"order_sent"}, "de")
	assert.Equal(t, "Order sent successfully!", got["order_sent"])
}

func TestResolveMissingKeyPlaceholder(t *testing.T) {
	r := NewResolver(fakeStore{})

	got := r.Resolve(context.Background(), []string{"no_such_key"}, "en")
	assert.Contains(t, got["no_such_key"], "no_such_key")
	assert.Contains(t, got["no_such_key"], "Text needs to be added")

	got = r.Resolve(context.Background(), []string{"no_such_key"}, "ru")
	assert.Contains(t, got["no_such_key"], "no_such_key")
	assert.Contains(t, got["no_such_key"], "Нужно добавить текст")
}

func TestResolveSurvivesStoreError(t *testing.T) {
	r := NewResolver(fakeStore{err: errors.New("db down")})
	got := r.Resolve(context.Background(), []string{"greetings"}, "ru")
	assert.Equal(t, builtin["greetings"]["ru"], got["greetings"])
}

func TestResolveNilStore(t *testing.T) {
	r := NewResolver(nil)
	got := r.Resolve(context.Background(), []string{"agree_button"}, "ru")
	assert.Equal(t, "✅ Соглашаюсь", got["agree_button"])
}

func TestFill(t *testing.T) {
	out := Fill("Amount: {amount}, bank: {bank}", map[string]string{
		"amount": "100",
		"bank":   "Kaspi",
	})
	assert.Equal(t, "Amount: 100, bank: Kaspi", out)

	// Unknown placeholders stay visible.
	out = Fill("Hi {name}", map[string]string{"amount": "1"})
	assert.Equal(t, "Hi {name}", out)
}
