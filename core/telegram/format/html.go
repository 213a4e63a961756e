// Package format holds small text helpers for outbound Telegram messages.
package format

import (
	"fmt"
	"html"
	"strconv"
)

// EscapeHTML escapes user-supplied text for HTML parse mode.
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}

// UserLink renders a tg:// mention that works for users without a username.
// The display name is escaped; Telegram resolves the link client-side.
func UserLink(userID int64, display string) string {
	return fmt.Sprintf("<a href='tg://user?id=%d'>%s</a>", userID, EscapeHTML(display))
}

// Amount renders a float the shortest way that round-trips, so "100"
// stays "100" and "250.5" stays "250.5".
func Amount(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
