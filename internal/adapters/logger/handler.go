package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/parcel/internal/ui/output"
	"go.trai.ch/parcel/internal/ui/style"
)

// PrettyHandler is a slog.Handler that writes one colored line per record.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	attrs []slog.Attr
	group string
}

// NewPrettyHandler creates a new PrettyHandler writing to w.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	level := slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level.Level()
	}

	levelVar := &slog.LevelVar{}
	levelVar.Set(level)

	return &PrettyHandler{
		out:   output.New(w),
		level: levelVar,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and outputs the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	msg := r.Message
	color := termenv.RGBColor(string(style.Slate))

	switch {
	case r.Level >= slog.LevelError:
		msg = style.Cross + " " + msg
		color = termenv.RGBColor(string(style.Red))
	case r.Level >= slog.LevelWarn:
		msg = style.Warning + " " + msg
		color = termenv.RGBColor(string(style.Yellow))
	}

	var (
		subject = make(map[string]string, len(subjectKeys))
		reason  string
		rest    []string
	)
	collect := func(attr slog.Attr) bool {
		switch {
		case h.group == "" && slices.Contains(subjectKeys, attr.Key):
			subject[attr.Key] = attr.Value.String()
		case h.group == "" && attr.Key == reasonKey:
			reason = attr.Value.String()
		default:
			rest = append(rest, formatAttr(h.group, attr))
		}
		return true
	}
	for _, attr := range h.attrs {
		collect(attr)
	}
	r.Attrs(collect)

	msg = withSubject(msg, subject, reason)
	if len(rest) > 0 {
		msg += " " + strings.Join(rest, " ")
	}

	styled := h.out.String(msg).Foreground(color)
	_, err := h.out.WriteString(styled.String() + "\n")
	return err
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	newAttrs = append(newAttrs, h.attrs...)
	newAttrs = append(newAttrs, attrs...)

	return &PrettyHandler{out: h.out, level: h.level, attrs: newAttrs, group: h.group}
}

// WithGroup returns a new Handler with the given group name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	return &PrettyHandler{out: h.out, level: h.level, attrs: h.attrs, group: name}
}

// subjectKeys name the catalog entries an error is about. They are shown on
// the headline instead of as key=value pairs.
var subjectKeys = []string{"asset", "bundle"}

// reasonKey carries a domain.FailureReason.
const reasonKey = "reason"

// withSubject appends "(asset X, bundle Y) [reason]" to the first line of msg.
func withSubject(msg string, subject map[string]string, reason string) string {
	var parts []string
	for _, key := range subjectKeys {
		if v, ok := subject[key]; ok {
			parts = append(parts, key+" "+v)
		}
	}
	if len(parts) == 0 && reason == "" {
		return msg
	}

	head, tail, multiline := strings.Cut(msg, "\n")
	if len(parts) > 0 {
		head += " (" + strings.Join(parts, ", ") + ")"
	}
	if reason != "" {
		head += " [" + reason + "]"
	}
	if multiline {
		return head + "\n" + tail
	}
	return head
}

func formatAttr(group string, attr slog.Attr) string {
	key := attr.Key
	if group != "" {
		key = group + "." + key
	}
	return key + "=" + attr.Value.String()
}
