package slackhook

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Handler adapts a Sink to the log/slog framework, so the sink can be
// registered as an ordinary slog backend:
//
//	sink, _ := slackhook.New(cfg)
//	logger := slog.New(slackhook.NewHandler(sink, nil))
//
// The logger name is taken from a "logger" attribute when present, falling
// back to the handler's group path joined with dots. An "error"-valued
// attribute becomes the event's exception text.
type Handler struct {
	sink   *Sink
	level  slog.Leveler
	groups []string
	attrs  []slog.Attr
}

// HandlerOptions configures a Handler.
type HandlerOptions struct {
	// Level reports the minimum record level the handler forwards.
	// Defaults to slog.LevelInfo when nil.
	Level slog.Leveler
}

// NewHandler creates a slog handler forwarding records to sink.
// opts may be nil.
func NewHandler(sink *Sink, opts *HandlerOptions) *Handler {
	h := &Handler{sink: sink}

	if opts != nil {
		h.level = opts.Level
	}

	return h
}

// Enabled reports whether records at the given level are forwarded.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	min := slog.LevelInfo
	if h.level != nil {
		min = h.level.Level()
	}

	return level >= min
}

// Handle converts the record into an Event and fires the sink.
// It never returns a delivery error; the sink is fire-and-forget.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	e := Event{
		Level:   levelFromSlog(r.Level),
		Message: r.Message,
		Time:    r.Time,
	}

	apply := func(a slog.Attr) {
		switch a.Key {
		case "logger":
			e.Logger = a.Value.String()
		case "error":
			e.Exception = exceptionString(a.Value)
		}
	}

	for _, a := range h.attrs {
		apply(a)
	}

	r.Attrs(func(a slog.Attr) bool {
		apply(h.qualify(a))

		return true
	})

	if e.Logger == "" && len(h.groups) > 0 {
		e.Logger = strings.Join(h.groups, ".")
	}

	h.sink.Fire(e)

	return nil
}

// WithAttrs returns a handler whose records carry the additional attributes.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	h2 := h.clone()

	for _, a := range attrs {
		h2.attrs = append(h2.attrs, h.qualify(a))
	}

	return h2
}

// WithGroup returns a handler with the group opened. Group names double as
// the logger-name path for forwarded events.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	h2 := h.clone()
	h2.groups = append(h2.groups, name)

	return h2
}

func (h *Handler) clone() *Handler {
	return &Handler{
		sink:   h.sink,
		level:  h.level,
		groups: append([]string(nil), h.groups...),
		attrs:  append([]slog.Attr(nil), h.attrs...),
	}
}

// qualify prefixes an attribute key with the open group path, matching how
// text and JSON handlers scope grouped attributes.
func (h *Handler) qualify(a slog.Attr) slog.Attr {
	if len(h.groups) == 0 {
		return a
	}

	a.Key = strings.Join(h.groups, ".") + "." + a.Key

	return a
}

func levelFromSlog(l slog.Level) Level {
	switch {
	case l < slog.LevelInfo:
		return LevelDebug
	case l < slog.LevelWarn:
		return LevelInfo
	case l < slog.LevelError:
		return LevelWarn
	case l < slog.LevelError+4:
		return LevelError
	default:
		return LevelFatal
	}
}

func exceptionString(v slog.Value) string {
	if v.Kind() == slog.KindAny {
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}

		return fmt.Sprint(v.Any())
	}

	return v.String()
}
