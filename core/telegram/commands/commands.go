// Package commands defines the metadata attached to registry commands.
package commands

import tele "gopkg.in/telebot.v4"

// Command couples a handler with how the command is listed and gated.
// Hidden commands work but stay out of the Telegram menu; AdminOnly ones are
// additionally wrapped with the admin gate by the router.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	AdminOnly   bool
	Hidden      bool
	Aliases     []string
}
