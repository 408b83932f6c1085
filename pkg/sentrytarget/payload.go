package sentrytarget

import (
	"fmt"
	"maps"
)

// PayloadKind identifies which variant a Payload holds.
type PayloadKind uint8

const (
	// PayloadScalar is a plain message.
	PayloadScalar PayloadKind = iota
	// PayloadStructured is a key/value mapping.
	PayloadStructured
	// PayloadError is an error value logged directly.
	PayloadError
)

func (k PayloadKind) String() string {
	switch k {
	case PayloadStructured:
		return "structured"
	case PayloadError:
		return "error"
	default:
		return "scalar"
	}
}

// Payload is the tagged variant of a logged value.
type Payload struct {
	fields map[string]any
	err    error
	text   string
	kind   PayloadKind
}

// PayloadOf classifies a logged value.
//
// Errors become PayloadError, map[string]any and map[string]string become
// PayloadStructured, and everything else is stringified into PayloadScalar.
func PayloadOf(v any) Payload {
	switch x := v.(type) {
	case nil:
		return Payload{kind: PayloadScalar}
	case error:
		return Payload{kind: PayloadError, err: x, text: x.Error()}
	case map[string]any:
		return Payload{kind: PayloadStructured, fields: maps.Clone(x)}
	case map[string]string:
		fields := make(map[string]any, len(x))
		for k, s := range x {
			fields[k] = s
		}
		return Payload{kind: PayloadStructured, fields: fields}
	case string:
		return Payload{kind: PayloadScalar, text: x}
	case []byte:
		return Payload{kind: PayloadScalar, text: string(x)}
	case fmt.Stringer:
		return Payload{kind: PayloadScalar, text: x.String()}
	default:
		return Payload{kind: PayloadScalar, text: fmt.Sprint(x)}
	}
}

// Kind reports the variant.
func (p Payload) Kind() PayloadKind { return p.kind }

// Text returns the scalar text, or the error message for PayloadError.
func (p Payload) Text() string { return p.text }

// Fields returns a copy of the structured mapping; nil for other variants.
func (p Payload) Fields() map[string]any { return maps.Clone(p.fields) }

// Err returns the error value of a PayloadError; nil for other variants.
func (p Payload) Err() error { return p.err }
