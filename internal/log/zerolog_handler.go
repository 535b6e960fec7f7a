package log

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/rs/zerolog"
)

// ConsoleTimeFormat is the timestamp layout of the pretty format.
const ConsoleTimeFormat = "15:04:05.000"

// zerologHandler is a slog.Handler backed by zerolog. Group names are
// flattened into dotted keys.
type zerologHandler struct {
	zl     zerolog.Logger
	level  slog.Leveler
	attrs  []slog.Attr
	groups []string
}

func newZerologHandler(w io.Writer, level slog.Leveler, console bool) *zerologHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	if console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: ConsoleTimeFormat}
	}
	return &zerologHandler{
		zl:    zerolog.New(w).Level(zerolog.TraceLevel),
		level: level,
	}
}

func (h *zerologHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *zerologHandler) Handle(_ context.Context, r slog.Record) error {
	ev := h.zl.WithLevel(zerologLevel(r.Level))
	if ev == nil {
		return nil
	}
	if !r.Time.IsZero() {
		ev = ev.Time(zerolog.TimestampFieldName, r.Time)
	}
	for _, a := range h.attrs {
		addField(ev, nil, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		addField(ev, h.groups, a)
		return true
	})
	ev.Msg(r.Message)
	return nil
}

func (h *zerologHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	next.attrs = append(next.attrs, h.attrs...)
	// Attributes added here belong to the groups open at this point.
	for _, a := range attrs {
		next.attrs = append(next.attrs, prefixed(h.groups, a))
	}
	return &next
}

func (h *zerologHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.groups = append(append([]string{}, h.groups...), name)
	return &next
}

func zerologLevel(l slog.Level) zerolog.Level {
	switch {
	case l < slog.LevelInfo:
		return zerolog.DebugLevel
	case l < slog.LevelWarn:
		return zerolog.InfoLevel
	case l < slog.LevelError:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

// prefixed returns a with its key qualified by groups. The returned attr is
// emitted without further prefixing.
func prefixed(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 {
		return a
	}
	return slog.Attr{Key: strings.Join(groups, ".") + "." + a.Key, Value: a.Value}
}

func addField(ev *zerolog.Event, groups []string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		inner := groups
		if a.Key != "" {
			inner = append(append([]string{}, groups...), a.Key)
		}
		for _, ga := range a.Value.Group() {
			addField(ev, inner, ga)
		}
		return
	}

	key := a.Key
	if len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + key
	}

	v := a.Value
	switch v.Kind() {
	case slog.KindString:
		ev.Str(key, v.String())
	case slog.KindInt64:
		ev.Int64(key, v.Int64())
	case slog.KindUint64:
		ev.Uint64(key, v.Uint64())
	case slog.KindFloat64:
		ev.Float64(key, v.Float64())
	case slog.KindBool:
		ev.Bool(key, v.Bool())
	case slog.KindDuration:
		ev.Dur(key, v.Duration())
	case slog.KindTime:
		ev.Time(key, v.Time())
	default:
		if err, ok := v.Any().(error); ok {
			ev.AnErr(key, err)
			return
		}
		ev.Interface(key, v.Any())
	}
}
