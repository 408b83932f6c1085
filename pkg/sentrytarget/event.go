package sentrytarget

import (
	"fmt"
	"maps"
	"strconv"

	"github.com/dmitrymomot/logtarget/pkg/logbuffer"
)

// Reserved keys of a structured payload.
const (
	KeyMsg       = "msg"
	KeyMessage   = "message"
	KeyTags      = "tags"
	KeyException = "exception"
	KeyCategory  = "category"
	KeyContext   = "context"
)

// Event is a log record reshaped for the error tracker.
// It lives for a single dispatch and is never shared between records.
type Event struct {
	Tags  map[string]string
	Extra map[string]any
	// AttachedError is the error carried by the record. For an error payload
	// it is the payload itself; for a structured payload it is the
	// "exception" entry when that entry holds an error.
	AttachedError error
	Message       string
	Severity      Severity
	// Exception reports that the payload itself was an error value.
	// Such events are captured as exceptions instead of messages.
	Exception bool
}

// Normalize reshapes a record into an Event.
//
// The record category is always stored in Tags["category"] and is never
// overridden by payload tags. For structured payloads "message" wins over
// "msg" when both are set; without either, the message is the printed
// payload. A "tags" mapping is merged into Tags, and an
// "exception" entry holding an error is extracted into AttachedError; all
// remaining entries become Extra.
func Normalize(rec logbuffer.Record) Event {
	ev := Event{
		Tags:     map[string]string{},
		Extra:    map[string]any{},
		Severity: SeverityOf(rec.Level),
	}

	p := PayloadOf(rec.Payload)
	switch p.Kind() {
	case PayloadError:
		ev.Message = p.Text()
		ev.AttachedError = p.Err()
		ev.Exception = true

	case PayloadStructured:
		fields := p.Fields()

		hasMessage := false
		for _, key := range []string{KeyMsg, KeyMessage} {
			if v, ok := fields[key]; ok && v != nil {
				ev.Message = stringify(v)
				hasMessage = true
			}
			delete(fields, key)
		}
		if !hasMessage {
			// fmt prints maps with sorted keys.
			ev.Message = fmt.Sprint(rec.Payload)
		}

		if tags, ok := tagMap(fields[KeyTags]); ok {
			for k, v := range tags {
				ev.Tags[k] = tagValue(v)
			}
			delete(fields, KeyTags)
		}

		if err, ok := fields[KeyException].(error); ok {
			ev.AttachedError = err
			delete(fields, KeyException)
		}

		maps.Copy(ev.Extra, fields)

	default:
		ev.Message = p.Text()
	}

	ev.Tags[KeyCategory] = rec.Category
	return ev
}

// Truthy reports whether a tag value is kept when the scope is populated.
// Empty strings and "0" are dropped.
func Truthy(v string) bool {
	return v != "" && v != "0"
}

func tagMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out, true
	default:
		return nil, false
	}
}

// tagValue stringifies a tag so that falsy values become falsy strings.
func tagValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case bool:
		if x {
			return "true"
		}
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	case error:
		return x.Error()
	default:
		return fmt.Sprint(x)
	}
}
