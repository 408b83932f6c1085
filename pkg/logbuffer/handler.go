package logbuffer

import (
	"context"
	"log/slog"
)

// CategoryKey is the slog attribute key that selects the record category.
const CategoryKey = "category"

// HandlerOption configures the slog bridge.
type HandlerOption func(*Handler)

// WithDefaultCategory sets the category used when a record has no category attribute.
// Default: "application".
func WithDefaultCategory(category string) HandlerOption {
	return func(h *Handler) {
		if category != "" {
			h.category = category
		}
	}
}

// WithMinLevel sets the minimum slog level forwarded to the buffer.
// Default: slog.LevelDebug.
func WithMinLevel(level slog.Leveler) HandlerOption {
	return func(h *Handler) {
		if level != nil {
			h.level = level
		}
	}
}

// Handler is a slog.Handler that turns slog records into buffered records.
//
// Each slog record becomes a structured payload holding "msg" and the
// record attributes. A top-level "error" or "exception" attribute that
// holds an error is stored under "exception". A top-level "category"
// string attribute selects the record category.
type Handler struct {
	fallback *Logger
	level    slog.Leveler
	category string
	preset   []groupedAttr
	groups   []string
}

type groupedAttr struct {
	groups []string
	attr   slog.Attr
}

// NewHandler creates a slog bridge. Records go to the Logger stored in the
// context by NewContext, or to fallback when there is none. A nil fallback
// discards records logged outside such a context.
func NewHandler(fallback *Logger, opts ...HandlerOption) *Handler {
	h := &Handler{
		fallback: fallback,
		level:    slog.LevelDebug,
		category: "application",
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle converts rec and buffers it.
func (h *Handler) Handle(ctx context.Context, rec slog.Record) error {
	target := FromContext(ctx)
	if target == nil {
		target = h.fallback
	}
	if target == nil {
		return nil
	}

	payload := map[string]any{"msg": rec.Message}
	category := h.category

	add := func(groups []string, a slog.Attr) {
		if len(groups) == 0 {
			switch a.Key {
			case CategoryKey:
				if c := a.Value.Resolve().String(); c != "" {
					category = c
				}
				return
			case "error", "exception":
				if err, ok := a.Value.Resolve().Any().(error); ok {
					payload["exception"] = err
					return
				}
			}
		}
		putAttr(payload, groups, a)
	}

	for _, p := range h.preset {
		add(p.groups, p.attr)
	}
	rec.Attrs(func(a slog.Attr) bool {
		add(h.groups, a)
		return true
	})

	target.Log(ctx, payload, levelFromSlog(rec.Level), category)
	return nil
}

// WithAttrs returns a handler that adds attrs to every record.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := h.clone()
	for _, a := range attrs {
		h2.preset = append(h2.preset, groupedAttr{groups: h.groups, attr: a})
	}
	return h2
}

// WithGroup returns a handler that nests subsequent attributes under name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := h.clone()
	h2.groups = append(append([]string(nil), h.groups...), name)
	return h2
}

func (h *Handler) clone() *Handler {
	return &Handler{
		fallback: h.fallback,
		level:    h.level,
		category: h.category,
		preset:   append([]groupedAttr(nil), h.preset...),
		groups:   h.groups,
	}
}

func levelFromSlog(l slog.Level) Level {
	switch {
	case l < slog.LevelInfo:
		return LevelTrace
	case l < slog.LevelWarn:
		return LevelInfo
	case l < slog.LevelError:
		return LevelWarning
	default:
		return LevelError
	}
}

func putAttr(dst map[string]any, groups []string, a slog.Attr) {
	v := a.Value.Resolve()
	if a.Key == "" && v.Kind() != slog.KindGroup {
		return
	}

	for _, g := range groups {
		next, ok := dst[g].(map[string]any)
		if !ok {
			next = make(map[string]any)
			dst[g] = next
		}
		dst = next
	}

	if v.Kind() == slog.KindGroup {
		members := v.Group()
		if len(members) == 0 {
			return
		}
		// Inline groups (empty key) merge into the current level.
		var sub []string
		if a.Key != "" {
			sub = []string{a.Key}
		}
		for _, m := range members {
			putAttr(dst, sub, m)
		}
		return
	}

	dst[a.Key] = attrValue(v)
}

func attrValue(v slog.Value) any {
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindInt64:
		return v.Int64()
	case slog.KindUint64:
		return v.Uint64()
	case slog.KindFloat64:
		return v.Float64()
	case slog.KindBool:
		return v.Bool()
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time()
	default:
		return v.Any()
	}
}
