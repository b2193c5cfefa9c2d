package slackhook

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Sink forwards log events to a Slack webhook. It formats each Event into a
// Message and hands it to its Transport. Instances of Sink are safe for
// concurrent use; Fire never blocks on network I/O and never reports a
// delivery failure to the caller.
type Sink struct {
	cfg      Config
	minLevel levelValue

	// process and machine identity are captured once at construction.
	process string
	machine string

	transport Transport
}

// Option configures a Sink.
type Option func(*Sink)

// WithTransport sets the transport used for delivery. Useful for the
// console preview transport or a capture transport in tests.
func WithTransport(t Transport) Option {
	return func(s *Sink) {
		if t != nil {
			s.transport = t
		}
	}
}

// WithMinLevel sets the minimum severity an event must have to be forwarded.
// It panics if the provided level is not a valid Level.
func WithMinLevel(level Level) Option {
	lv, ok := levelMap[level]
	if !ok {
		panic(fmt.Sprintf("slackhook: invalid level provided to WithMinLevel: %q", level))
	}

	return func(s *Sink) {
		s.minLevel = lv
	}
}

// New creates a Sink for the given configuration. Unless WithTransport is
// supplied, deliveries go through a WebhookTransport posting to
// cfg.WebhookURL with cfg.Timeout.
func New(cfg Config, opts ...Option) (*Sink, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Sink{
		cfg:     cfg,
		process: processName(),
		machine: machineName(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.transport == nil {
		s.transport = NewWebhookTransport(cfg.WebhookURL, WithTimeout(cfg.Timeout))
	}

	return s, nil
}

// Fire formats the event and dispatches it for delivery. It returns as soon
// as the delivery has been handed to the transport.
func (s *Sink) Fire(e Event) {
	if levelMap[e.Level] < s.minLevel {
		return
	}

	s.transport.Send(s.buildMessage(e))
}

// Flush blocks until all in-flight deliveries have completed or failed,
// when the transport supports it.
func (s *Sink) Flush() {
	if f, ok := s.transport.(interface{ Flush() }); ok {
		f.Flush()
	}
}

// Close flushes outstanding deliveries and releases the transport.
func (s *Sink) Close() error {
	if c, ok := s.transport.(io.Closer); ok {
		return c.Close()
	}

	return nil
}

// buildMessage maps an event to its webhook payload. It is pure given the
// event, the configuration and the cached process/host identity; blank
// inputs render blank and no input can make it fail.
func (s *Sink) buildMessage(e Event) Message {
	m := Message{
		Channel:   s.cfg.Channel,
		Username:  s.cfg.Username,
		IconURL:   s.cfg.IconURL,
		IconEmoji: s.cfg.IconEmoji,
		Text:      e.Message,
	}

	if s.cfg.UsernameAppendLoggerName {
		m.Username = s.cfg.Username + " - " + e.Logger
	}

	if !s.cfg.AddAttachment {
		return m
	}

	a := Attachment{
		Fallback: fmt.Sprintf("[%s] %s in %s on %s",
			strings.ToLower(string(e.Level)), e.Logger, s.process, s.machine),
		Color:    colorForLevel(e.Level),
		MrkdwnIn: []string{"fields"},
	}

	// Field order is part of the contract: exception message first, logger
	// second unless it is already embedded in the username.
	a.Fields = append(a.Fields, Field{Title: "Exception Message", Value: e.Exception, Short: true})

	if !s.cfg.UsernameAppendLoggerName {
		a.Fields = append(a.Fields, Field{Title: "Logger", Value: e.Logger, Short: true})
	}

	a.Fields = append(a.Fields,
		Field{Title: "Process", Value: s.process, Short: true},
		Field{Title: "Machine", Value: s.machine, Short: true},
	)

	m.Attachments = []Attachment{a}

	return m
}

// colorForLevel returns the attachment color for a severity: "warning" for
// WARN, "danger" for ERROR and FATAL, empty otherwise.
func colorForLevel(level Level) string {
	switch level {
	case LevelWarn:
		return ColorWarning
	case LevelError, LevelFatal:
		return ColorDanger
	default:
		return ""
	}
}

func processName() string {
	if len(os.Args) == 0 || os.Args[0] == "" {
		return "unknown"
	}

	return filepath.Base(os.Args[0])
}

func machineName() string {
	host, err := os.Hostname()
	if err != nil {
		return "unknown"
	}

	return host
}
