// Package format provides formatting helpers shared by the renderers.
package format

import "strings"

// Entry states shown by the status view
const (
	StateOK      = "ok"
	StatePending = "pending"
	StateBlocked = "blocked"
)

// HandlerEmoji returns an emoji for the handler that processed an item
func HandlerEmoji(handler string) string {
	switch strings.ToLower(handler) {
	case "symlink":
		return "🔗"
	case "sourceable":
		return "🐚"
	case "directory":
		return "📁"
	case "command":
		return "🔧"
	default:
		return "⚙️"
	}
}

// StateSymbol returns a one-character marker for an outcome
func StateSymbol(state string) string {
	switch state {
	case StateOK:
		return "✓"
	case StatePending:
		return "•"
	case StateBlocked:
		return "✗"
	default:
		return "?"
	}
}
