package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// consoleHandler writes one line per record:
//
//	2026-10-12T08:00:00Z INFO poller: cycle finished stored=3 skipped=1
//
// The component attribute is hoisted in front of the message. Level labels
// are colored only when the output is a terminal.
type consoleHandler struct {
	mu        *sync.Mutex
	writer    io.Writer
	level     slog.Leveler
	addSource bool
	color     bool

	component string
	preset    []byte // pre-encoded attrs from WithAttrs
	prefix    string // dotted group prefix from WithGroup
}

func newConsoleHandler(w io.Writer, lvl slog.Leveler, addSource, color bool) *consoleHandler {
	return &consoleHandler{mu: &sync.Mutex{}, writer: w, level: lvl, addSource: addSource, color: color}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	ts := record.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	component := h.component
	attrs := make([]byte, 0, 64)
	record.Attrs(func(a slog.Attr) bool {
		if h.prefix == "" && a.Key == FieldComponent && component == "" {
			component = valueText(a.Value)
			return true
		}
		attrs = appendAttr(attrs, h.prefix, a)
		return true
	})

	buf := make([]byte, 0, 96+len(h.preset)+len(attrs))
	buf = ts.UTC().AppendFormat(buf, time.RFC3339)
	buf = append(buf, ' ')
	buf = h.appendLevel(buf, record.Level)
	buf = append(buf, ' ')
	if component != "" {
		buf = append(buf, component...)
		buf = append(buf, ": "...)
	}
	msg := strings.TrimSpace(record.Message)
	if msg == "" {
		msg = "(no message)"
	}
	buf = append(buf, msg...)
	if h.addSource && record.PC != 0 {
		if src := record.Source(); src != nil {
			buf = append(buf, " ["...)
			buf = append(buf, filepath.Base(src.File)...)
			buf = append(buf, ':')
			buf = strconv.AppendInt(buf, int64(src.Line), 10)
			buf = append(buf, ']')
		}
	}
	buf = append(buf, h.preset...)
	buf = append(buf, attrs...)
	buf = append(buf, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.writer.Write(buf)
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.preset = append([]byte(nil), h.preset...)
	for _, a := range attrs {
		if h.prefix == "" && a.Key == FieldComponent {
			clone.component = valueText(a.Value)
			continue
		}
		clone.preset = appendAttr(clone.preset, h.prefix, a)
	}
	return &clone
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = joinKey(h.prefix, name)
	return &clone
}

var levelColors = map[string]string{
	"DEBUG": "\x1b[90m",
	"INFO":  "\x1b[36m",
	"WARN":  "\x1b[33m",
	"ERROR": "\x1b[31m",
}

func (h *consoleHandler) appendLevel(buf []byte, level slog.Level) []byte {
	label := levelLabel(level)
	if !h.color {
		return append(buf, label...)
	}
	buf = append(buf, levelColors[label]...)
	buf = append(buf, label...)
	return append(buf, "\x1b[0m"...)
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}

// appendAttr encodes " key=value", flattening groups into dotted keys.
func appendAttr(buf []byte, prefix string, a slog.Attr) []byte {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return buf
	}
	if a.Value.Kind() == slog.KindGroup {
		next := prefix
		if a.Key != "" {
			next = joinKey(prefix, a.Key)
		}
		for _, child := range a.Value.Group() {
			buf = appendAttr(buf, next, child)
		}
		return buf
	}
	if a.Key == "" {
		return buf
	}
	buf = append(buf, ' ')
	buf = append(buf, joinKey(prefix, a.Key)...)
	buf = append(buf, '=')
	return appendValue(buf, a.Value)
}

func appendValue(buf []byte, v slog.Value) []byte {
	switch v.Kind() {
	case slog.KindBool:
		return strconv.AppendBool(buf, v.Bool())
	case slog.KindInt64:
		return strconv.AppendInt(buf, v.Int64(), 10)
	case slog.KindUint64:
		return strconv.AppendUint(buf, v.Uint64(), 10)
	case slog.KindFloat64:
		return strconv.AppendFloat(buf, v.Float64(), 'f', -1, 64)
	case slog.KindDuration:
		return append(buf, v.Duration().String()...)
	case slog.KindTime:
		return v.Time().UTC().AppendFormat(buf, time.RFC3339)
	default:
		return appendText(buf, valueText(v))
	}
}

func valueText(v slog.Value) string {
	v = v.Resolve()
	if v.Kind() == slog.KindAny {
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
		return fmt.Sprint(v.Any())
	}
	return v.String()
}

// appendText writes s bare when it is a single printable token and quoted
// otherwise.
func appendText(buf []byte, s string) []byte {
	if s == "" {
		return append(buf, `""`...)
	}
	if !utf8.ValidString(s) || strings.ContainsFunc(s, func(r rune) bool { return r <= ' ' || r == '=' || r == '"' }) {
		return strconv.AppendQuote(buf, s)
	}
	return append(buf, s...)
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
