package flows

import "context"

// Flow selects one of the two order dialogues.
type Flow string

const (
	FlowExchange Flow = "exchange"
	FlowPayment  Flow = "payment"
)

// Actor identifies the user driving a dialogue.
type Actor struct {
	ID        int64
	FirstName string
	Username  string
	Language  string
}

// Ref addresses one message in one chat.
type Ref struct {
	ChatID    int64
	MessageID int
}

// Event is one discriminated dialogue trigger. The engine never sees raw
// transport updates; the surrounding bot layer converts commands, button
// presses and free text into these.
type Event interface{ isEvent() }

// Start opens a flow. Anchor is the message that will be edited in place
// for the rest of the dialogue.
type Start struct {
	Flow   Flow
	Anchor Ref
}

// CurrencySelected is the button press answering the currency prompt.
type CurrencySelected struct {
	Symbol string
	Anchor Ref
}

// CategorySelected is the button press answering the category prompt.
type CategorySelected struct {
	Key    string
	Anchor Ref
}

// TextEntered is free text sent while a flow awaits input. Message
// addresses the user's own message so it can be cleaned up.
type TextEntered struct {
	Text    string
	Message Ref
}

// Submit confirms the reviewed order.
type Submit struct {
	Flow   Flow
	Anchor Ref
}

// StartOver discards all collected fields and re-enters the flow's first
// prompt.
type StartOver struct {
	Flow   Flow
	Anchor Ref
}

func (Start) isEvent()            {}
func (CurrencySelected) isEvent() {}
func (CategorySelected) isEvent() {}
func (TextEntered) isEvent()      {}
func (Submit) isEvent()           {}
func (StartOver) isEvent()        {}

// Button is one inline key. Key and Data become the callback routing pair.
type Button struct {
	Text string
	Key  string
	Data string
}

// Keyboard is rows of buttons attached to a rendered prompt.
type Keyboard [][]Button

// Transport renders dialogue output. Implementations adapt a concrete
// messaging platform; Edit and Forward are synchronous because the next
// step depends on their result.
type Transport interface {
	// Edit replaces the anchor message's text and keyboard. A nil keyboard
	// removes any existing one.
	Edit(ctx context.Context, ref Ref, text string, kb Keyboard) error
	// Forward delivers a completed order summary to the review chat with
	// rich-text formatting enabled.
	Forward(ctx context.Context, chatID int64, html string) error
}

// Janitor removes transient user messages in the background. Submission
// returns immediately; failures stay inside the implementation.
type Janitor interface {
	Discard(ref Ref)
}
