// Package discord holds the wire types for commands sent to the gateway
// service. The backend never talks to Discord directly; it publishes these
// payloads and the gateway renders them.
package discord

// Embed mirrors the subset of the Discord embed object the quest board uses.
type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
	Footer      *EmbedFooter `json:"footer,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
}

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type EmbedFooter struct {
	Text string `json:"text"`
}

// Button styles, matching Discord's component style constants.
const (
	ButtonStylePrimary   = 1
	ButtonStyleSecondary = 2
	ButtonStyleSuccess   = 3
	ButtonStyleDanger    = 4
)

// Button is a message component button. CustomID carries the action routing
// key the gateway echoes back on click.
type Button struct {
	Label    string `json:"label"`
	Style    int    `json:"style"`
	CustomID string `json:"custom_id"`
	Emoji    string `json:"emoji,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
}

// ActionRow groups up to five buttons on a message.
type ActionRow struct {
	Buttons []Button `json:"buttons"`
}
