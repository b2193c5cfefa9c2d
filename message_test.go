package slackhook

import (
	"reflect"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

// TestMessage_Marshal checks the documented wire field names.
func TestMessage_Marshal(t *testing.T) {
	m := Message{
		Channel:  "#ops",
		Username: "Bot",
		IconURL:  "https://example.com/icon.png",
		Text:     "boom",
		Attachments: []Attachment{{
			Fallback: "[error] App in worker on host01",
			Color:    ColorDanger,
			Fields: []Field{
				{Title: "Logger", Value: "App", Short: true},
			},
			MrkdwnIn: []string{"fields"},
		}},
	}

	b, err := m.Marshal()
	if err != nil {
		t.Fatalf("Marshal() returned an error: %v", err)
	}

	s := string(b)

	for _, want := range []string{
		`"channel":"#ops"`,
		`"username":"Bot"`,
		`"icon_url":"https://example.com/icon.png"`,
		`"text":"boom"`,
		`"fallback":"[error] App in worker on host01"`,
		`"color":"danger"`,
		`"fields":[{"title":"Logger","value":"App","short":true}]`,
		`"mrkdwn_in":["fields"]`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %s: %s", want, s)
		}
	}
}

// TestMessage_MarshalOmitsEmptyOptionals checks that unset optional fields
// stay off the wire entirely.
func TestMessage_MarshalOmitsEmptyOptionals(t *testing.T) {
	b, err := Message{Text: "started"}.Marshal()
	if err != nil {
		t.Fatalf("Marshal() returned an error: %v", err)
	}

	s := string(b)

	for _, absent := range []string{"channel", "username", "icon_url", "icon_emoji", "attachments"} {
		if strings.Contains(s, `"`+absent+`"`) {
			t.Errorf("output should omit %q: %s", absent, s)
		}
	}
	if !strings.Contains(s, `"text":"started"`) {
		t.Errorf("output missing text: %s", s)
	}
}

// TestMessage_RoundTrip verifies field-for-field equality after a
// marshal/unmarshal cycle.
func TestMessage_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
	}{
		{"Text only", Message{Text: "started"}},
		{"Emoji icon", Message{Text: "hi", IconEmoji: ":ghost:", Username: "Bot"}},
		{
			"Full attachment",
			Message{
				Channel:  "#ops",
				Username: "Bot",
				Text:     "boom",
				Attachments: []Attachment{{
					Fallback: "[warn] App in worker on host01",
					Pretext:  "heads up",
					Text:     "details",
					Color:    ColorWarning,
					Fields: []Field{
						{Title: "Exception Message", Value: "", Short: true},
						{Title: "Logger", Value: "App", Short: true},
					},
					MrkdwnIn: []string{"fields"},
				}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := tt.msg.Marshal()
			if err != nil {
				t.Fatalf("Marshal() returned an error: %v", err)
			}

			var got Message
			if err := json.Unmarshal(b, &got); err != nil {
				t.Fatalf("Unmarshal() returned an error: %v", err)
			}

			if !reflect.DeepEqual(got, tt.msg) {
				t.Errorf("round-trip mismatch:\ngot:  %+v\nwant: %+v", got, tt.msg)
			}
		})
	}
}
