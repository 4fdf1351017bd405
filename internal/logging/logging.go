// Package logging installs the process-wide slog logger. Records go to
// stderr and are mirrored into the in-game log panel.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Sink receives one formatted line per record.
type Sink interface {
	Append(level slog.Level, line string)
}

// ParseLevel maps debug|info|warn|error to a level; anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup builds a logger writing text records to w and, if sink is non-nil,
// to sink. It becomes the slog default.
func Setup(level string, w io.Writer, sink Sink) *slog.Logger {
	lvl := ParseLevel(level)
	var h slog.Handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	if sink != nil {
		h = &teeHandler{handlers: []slog.Handler{h, &sinkHandler{sink: sink, level: lvl}}}
	}
	logger := slog.New(h)
	slog.SetDefault(logger)
	logger.Debug("logger initialized", "component", "logging", "level", lvl)
	return logger
}

type teeHandler struct {
	handlers []slog.Handler
}

func (t *teeHandler) Enabled(ctx context.Context, l slog.Level) bool {
	for _, h := range t.handlers {
		if h.Enabled(ctx, l) {
			return true
		}
	}
	return false
}

func (t *teeHandler) Handle(ctx context.Context, r slog.Record) error {
	var first error
	for _, h := range t.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (t *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	hs := make([]slog.Handler, len(t.handlers))
	for i, h := range t.handlers {
		hs[i] = h.WithAttrs(attrs)
	}
	return &teeHandler{handlers: hs}
}

func (t *teeHandler) WithGroup(name string) slog.Handler {
	hs := make([]slog.Handler, len(t.handlers))
	for i, h := range t.handlers {
		hs[i] = h.WithGroup(name)
	}
	return &teeHandler{handlers: hs}
}

// sinkHandler renders "[component] msg key=value ..." lines.
type sinkHandler struct {
	sink   Sink
	level  slog.Level
	attrs  []slog.Attr
	prefix string
}

func (s *sinkHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= s.level
}

func (s *sinkHandler) Handle(_ context.Context, r slog.Record) error {
	component := ""
	var rest []slog.Attr
	for _, a := range s.attrs {
		if a.Key == "component" {
			component = a.Value.String()
			continue
		}
		rest = append(rest, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "component" && s.prefix == "" {
			component = a.Value.String()
			return true
		}
		a.Key = s.prefix + a.Key
		rest = append(rest, a)
		return true
	})

	var b strings.Builder
	if component != "" {
		fmt.Fprintf(&b, "[%s] ", component)
	}
	b.WriteString(r.Message)
	for _, a := range rest {
		fmt.Fprintf(&b, " %s=%v", a.Key, a.Value.Resolve())
	}
	s.sink.Append(r.Level, b.String())
	return nil
}

func (s *sinkHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *s
	c.attrs = append([]slog.Attr(nil), s.attrs...)
	for _, a := range attrs {
		if s.prefix != "" {
			a.Key = s.prefix + a.Key
		}
		c.attrs = append(c.attrs, a)
	}
	return &c
}

func (s *sinkHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	c := *s
	c.prefix = s.prefix + name + "."
	return &c
}
