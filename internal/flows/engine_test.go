package flows

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xuelxng/exchange-bot/core/telegram/state"
	"github.com/xuelxng/exchange-bot/internal/models"
	"github.com/xuelxng/exchange-bot/internal/texts"
)

const reviewChat int64 = -400123

type edit struct {
	ref  Ref
	text string
	kb   Keyboard
}

type forward struct {
	chatID int64
	html   string
}

type fakeTransport struct {
	edits      []edit
	forwards   []forward
	forwardErr error
}

func (f *fakeTransport) Edit(_ context.Context, ref Ref, text string, kb Keyboard) error {
	f.edits = append(f.edits, edit{ref: ref, text: text, kb: kb})
	return nil
}

func (f *fakeTransport) Forward(_ context.Context, chatID int64, html string) error {
	if f.forwardErr != nil {
		return f.forwardErr
	}
	f.forwards = append(f.forwards, forward{chatID: chatID, html: html})
	return nil
}

func (f *fakeTransport) lastEdit(t *testing.T) edit {
	t.Helper()
	require.NotEmpty(t, f.edits)
	return f.edits[len(f.edits)-1]
}

type fakeJanitor struct {
	discarded []Ref
}

func (f *fakeJanitor) Discard(ref Ref) { f.discarded = append(f.discarded, ref) }

type fakeCurrencies struct{}

func (fakeCurrencies) ListActive(context.Context) ([]models.Currency, error) {
	return []models.Currency{
		{ID: 1, Symbol: "kzt", Name: "🇰🇿 KZT", Rate: 1},
		{ID: 2, Symbol: "rub", Name: "🇷🇺 RUB", Rate: 1},
	}, nil
}

func (fakeCurrencies) BySymbol(_ context.Context, symbol string) (models.Currency, error) {
	switch symbol {
	case "kzt":
		return models.Currency{ID: 1, Symbol: "kzt", Name: "🇰🇿 KZT", Rate: 1}, nil
	case "rub":
		return models.Currency{ID: 2, Symbol: "rub", Name: "🇷🇺 RUB", Rate: 1}, nil
	}
	return models.Currency{}, errors.New("unknown currency")
}

type fakeCategories struct{}

func (fakeCategories) ListActive(_ context.Context, language string) ([]models.PaymentCategory, error) {
	name := map[string]string{"goods": "Товары", "digital_goods": "Цифровые товары"}
	if language == "en" {
		name = map[string]string{"goods": "Goods", "digital_goods": "Digital Goods"}
	}
	return []models.PaymentCategory{
		{ID: 1, UniqueName: "goods", Name: name["goods"], Language: language},
		{ID: 2, UniqueName: "digital_goods", Name: name["digital_goods"], Language: language},
	}, nil
}

func (fakeCategories) Get(ctx context.Context, uniqueName, language string) (models.PaymentCategory, error) {
	all, _ := fakeCategories{}.ListActive(ctx, language)
	for _, c := range all {
		if c.UniqueName == uniqueName {
			return c, nil
		}
	}
	return models.PaymentCategory{}, errors.New("unknown category")
}

type harness struct {
	engine    *Engine
	states    state.Manager
	transport *fakeTransport
	janitor   *fakeJanitor
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		states:    state.NewMemoryManager(),
		transport: &fakeTransport{},
		janitor:   &fakeJanitor{},
	}
	h.engine = NewEngine(Config{
		States:       h.states,
		Texts:        texts.NewResolver(nil),
		Currencies:   fakeCurrencies{},
		Categories:   fakeCategories{},
		Transport:    h.transport,
		Janitor:      h.janitor,
		ReviewChatID: reviewChat,
	})
	return h
}

func (h *harness) handle(t *testing.T, actor Actor, ev Event) {
	t.Helper()
	require.NoError(t, h.engine.Handle(context.Background(), actor, ev))
}
