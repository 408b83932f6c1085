package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrymomot/logtarget/pkg/logbuffer"
	"github.com/dmitrymomot/logtarget/pkg/sentrytarget"
)

// ErrInvalidRecord is returned for input lines that are not valid records.
var ErrInvalidRecord = errors.New("cli: invalid record")

// lineRecord is one JSON line of ship input.
type lineRecord struct {
	Payload  any             `json:"payload"`
	Category string          `json:"category"`
	Level    json.RawMessage `json:"level"`
}

// parseRecord decodes a JSON line. The level may be a name ("error") or its
// numeric value (1) and defaults to info. A string "exception" field of an
// object payload becomes an error value, so it reaches Sentry as the event cause.
func parseRecord(line []byte) (logbuffer.Record, error) {
	var lr lineRecord
	if err := json.Unmarshal(line, &lr); err != nil {
		return logbuffer.Record{}, errors.Join(ErrInvalidRecord, err)
	}

	level, err := parseLineLevel(lr.Level)
	if err != nil {
		return logbuffer.Record{}, errors.Join(ErrInvalidRecord, err)
	}

	payload := lr.Payload
	if fields, ok := payload.(map[string]any); ok {
		if s, ok := fields[sentrytarget.KeyException].(string); ok && s != "" {
			fields[sentrytarget.KeyException] = errors.New(s)
		}
	}

	return logbuffer.Record{
		Payload:  payload,
		Level:    level,
		Category: lr.Category,
	}, nil
}

func parseLineLevel(raw json.RawMessage) (logbuffer.Level, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return logbuffer.LevelInfo, nil
	}
	if raw[0] == '"' {
		s, err := strconv.Unquote(string(raw))
		if err != nil {
			return 0, fmt.Errorf("level: %w", err)
		}
		return logbuffer.ParseLevel(s)
	}
	return logbuffer.ParseLevel(string(raw))
}
