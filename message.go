package slackhook

import (
	"github.com/goccy/go-json"
)

// Semantic attachment colors understood by Slack. Any hex string such as
// "#36a64f" is also accepted by the webhook endpoint.
const (
	ColorWarning = "warning"
	ColorDanger  = "danger"
)

// Message is the top-level payload posted to the webhook. A fresh Message
// is built for every event; instances are never reused.
type Message struct {
	Channel     string       `json:"channel,omitempty"`
	Username    string       `json:"username,omitempty"`
	IconURL     string       `json:"icon_url,omitempty"`
	IconEmoji   string       `json:"icon_emoji,omitempty"`
	Text        string       `json:"text"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Attachment is a metadata block rendered below the message text.
// Fallback is required and must be non-empty whenever an Attachment exists.
type Attachment struct {
	Fallback string   `json:"fallback"`
	Pretext  string   `json:"pretext,omitempty"`
	Text     string   `json:"text,omitempty"`
	Color    string   `json:"color,omitempty"`
	Fields   []Field  `json:"fields,omitempty"`
	MrkdwnIn []string `json:"mrkdwn_in,omitempty"`
}

// Field is a titled value inside an attachment. Short hints that the field
// may be laid out side-by-side with its neighbor.
type Field struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

// Marshal returns the wire JSON for the message.
func (m Message) Marshal() ([]byte, error) {
	return json.Marshal(m)
}
