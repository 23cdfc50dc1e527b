package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// palette holds the colors used by the pretty handlers.
//
// Colors are forced on: whether pretty output is appropriate for a writer is
// decided once, by [isTerminal], when the handler is created.
type palette struct {
	key      *color.Color
	str      *color.Color
	num      *color.Color
	yes      *color.Color
	no       *color.Color
	duration *color.Color
	time     *color.Color
	null     *color.Color

	trace *color.Color
	debug *color.Color
	info  *color.Color
	warn  *color.Color
	err   *color.Color
}

var colors = sync.OnceValue(func() *palette {
	force := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		c.EnableColor()

		return c
	}

	return &palette{
		key:      force(color.FgHiBlack),
		str:      force(color.FgCyan),
		num:      force(color.FgYellow),
		yes:      force(color.FgGreen),
		no:       force(color.FgRed),
		duration: force(color.FgMagenta),
		time:     force(color.FgBlue),
		null:     force(color.FgHiBlack),

		trace: force(color.FgHiBlack),
		debug: force(color.FgBlue),
		info:  force(color.FgGreen),
		warn:  force(color.FgYellow),
		err:   force(color.FgRed, color.Bold),
	}
})

func (p *palette) level(level slog.Level) *color.Color {
	switch {
	case level >= slog.LevelError:
		return p.err
	case level >= slog.LevelWarn:
		return p.warn
	case level >= slog.LevelInfo:
		return p.info
	case level >= slog.LevelDebug:
		return p.debug
	default:
		return p.trace
	}
}

// isTerminal reports whether pretty output suits w. Files must be terminals;
// any other writer was chosen by the caller and is trusted.
func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return true
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// prettyTextHandler implements a colorized text handler for log messages.
type prettyTextHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	attrs  []slog.Attr
	groups []string
}

func newPrettyTextHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyTextHandler {
	return &prettyTextHandler{
		opts:   *opts,
		mu:     &sync.Mutex{},
		w:      w,
		groups: []string{},
	}
}

func (h *prettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if !r.Time.IsZero() {
		h.writeAttr(buf, slog.Time(slog.TimeKey, r.Time))
	}

	h.writeAttr(buf, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			h.writeAttr(buf, slog.String(slog.SourceKey,
				fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	h.writeAttr(buf, slog.String(slog.MessageKey, r.Message))

	for _, a := range h.attrs {
		h.writeAttr(buf, a)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(buf, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyTextHandler{
		opts:   h.opts,
		mu:     h.mu,
		w:      h.w,
		attrs:  append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...),
		groups: h.groups,
	}
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	return &prettyTextHandler{
		opts:   h.opts,
		mu:     h.mu,
		w:      h.w,
		attrs:  h.attrs,
		groups: append(h.groups[:len(h.groups):len(h.groups)], name),
	}
}

func (h *prettyTextHandler) writeAttr(buf *bytes.Buffer, a slog.Attr) {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		for _, g := range a.Value.Group() {
			if a.Key != "" {
				g.Key = a.Key + "." + g.Key
			}

			h.writeAttr(buf, g)
		}

		return
	}

	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	buf.WriteString(colors().key.Sprint(a.Key))
	buf.WriteByte('=')

	h.writeValue(buf, a.Value)
}

func (h *prettyTextHandler) writeValue(buf *bytes.Buffer, v slog.Value) {
	p := colors()

	switch v.Kind() {
	case slog.KindString:
		buf.WriteString(p.str.Sprint(v.String()))

	case slog.KindInt64:
		buf.WriteString(p.num.Sprint(strconv.FormatInt(v.Int64(), 10)))

	case slog.KindUint64:
		buf.WriteString(p.num.Sprint(strconv.FormatUint(v.Uint64(), 10)))

	case slog.KindFloat64:
		buf.WriteString(p.num.Sprint(strconv.FormatFloat(v.Float64(), 'g', -1, 64)))

	case slog.KindBool:
		if v.Bool() {
			buf.WriteString(p.yes.Sprint("true"))
		} else {
			buf.WriteString(p.no.Sprint("false"))
		}

	case slog.KindDuration:
		buf.WriteString(p.duration.Sprint(v.Duration().String()))

	case slog.KindTime:
		buf.WriteString(p.time.Sprint(v.Time().String()))

	case slog.KindAny:
		if level, ok := v.Any().(slog.Level); ok {
			buf.WriteString(p.level(level).Sprint(Level(level).String()))

			return
		}

		buf.WriteString(p.str.Sprint(v.String()))

	default:
		buf.WriteString(p.str.Sprint(v.String()))
	}
}

// prettyJSONHandler implements a pretty-printed JSON handler for log messages.
type prettyJSONHandler struct {
	opts  slog.HandlerOptions
	mu    *sync.Mutex
	w     io.Writer
	attrs []slog.Attr
}

func newPrettyJSONHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyJSONHandler {
	return &prettyJSONHandler{
		opts: *opts,
		mu:   &sync.Mutex{},
		w:    w,
	}
}

func (h *prettyJSONHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyJSONHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	buf.WriteString("{\n")

	first := true
	if !r.Time.IsZero() {
		h.writeJSONField(
			buf,
			slog.TimeKey,
			r.Time.Format("2006-01-02T15:04:05Z07:00"),
			&first,
		)
	}

	h.writeJSONField(buf, slog.LevelKey, r.Level, &first)

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			h.writeJSONField(buf, slog.SourceKey,
				fmt.Sprintf("%s:%d", src.File, src.Line), &first)
		}
	}

	h.writeJSONField(buf, slog.MessageKey, r.Message, &first)

	for _, a := range h.attrs {
		h.writeJSONField(buf, a.Key, a.Value.Resolve().Any(), &first)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.writeJSONField(buf, a.Key, a.Value.Resolve().Any(), &first)

		return true
	})

	buf.WriteString("\n}\n")

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &prettyJSONHandler{
		opts:  h.opts,
		mu:    h.mu,
		w:     h.w,
		attrs: append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...),
	}
}

func (h *prettyJSONHandler) WithGroup(string) slog.Handler {
	return &prettyJSONHandler{
		opts:  h.opts,
		mu:    h.mu,
		w:     h.w,
		attrs: h.attrs,
	}
}

func (h *prettyJSONHandler) writeJSONField(
	buf *bytes.Buffer,
	key string,
	value any,
	first *bool,
) {
	if !*first {
		buf.WriteString(",\n")
	}

	*first = false

	buf.WriteString("  ")
	buf.WriteString(colors().key.Sprint(key))
	buf.WriteString(": ")

	h.writeJSONValue(buf, value)
}

func (h *prettyJSONHandler) writeJSONValue(buf *bytes.Buffer, v any) {
	p := colors()

	switch val := v.(type) {
	case string:
		buf.WriteString(p.str.Sprint(val))

	case slog.Level:
		buf.WriteString(p.level(val).Sprint(Level(val).String()))

	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		buf.WriteString(p.num.Sprint(val))

	case bool:
		if val {
			buf.WriteString(p.yes.Sprint("true"))
		} else {
			buf.WriteString(p.no.Sprint("false"))
		}

	case nil:
		buf.WriteString(p.null.Sprint("null"))

	case []slog.Attr:
		buf.WriteByte('{')

		for i, a := range val {
			if i > 0 {
				buf.WriteString(", ")
			}

			buf.WriteString(p.key.Sprint(a.Key))
			buf.WriteString(": ")
			h.writeJSONValue(buf, a.Value.Resolve().Any())
		}

		buf.WriteByte('}')

	default:
		buf.WriteString(p.str.Sprint(fmt.Sprint(val)))
	}
}
