// Package event defines the authoring-interaction event model shared with
// editor surfaces, and validates inbound event logs against a JSON schema
// before they reach the analyzers.
package event

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Kind identifies how content entered the editor.
type Kind string

// Event kinds produced by editor surfaces.
const (
	KindPaste     Kind = "paste"
	KindKeystroke Kind = "keystroke"
)

// Event is one authoring interaction, ordered by time of occurrence.
// Timestamps are integer milliseconds; CharCount is set for paste events.
type Event struct {
	Kind      Kind  `json:"kind"`
	Timestamp int64 `json:"timestamp"`
	CharCount int   `json:"charCount,omitempty"`
}

// ErrMalformedLog is returned when an inbound event log violates the wire
// contract. This is a caller bug, not a degraded-input condition: the
// analyzers never see a log that failed validation.
var ErrMalformedLog = errors.New("event: malformed interaction log")

// logSchema is the wire contract for interaction logs. Validation is strict:
// unknown fields and unknown kinds are rejected rather than coerced.
const logSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "interaction-log",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["kind", "timestamp"],
    "additionalProperties": false,
    "properties": {
      "kind": {
        "type": "string",
        "enum": ["paste", "keystroke"]
      },
      "timestamp": {
        "type": "integer",
        "minimum": 0
      },
      "charCount": {
        "type": "integer",
        "minimum": 0
      }
    }
  }
}`

var logSchema = jsonschema.MustCompileString("interaction-log.schema.json", logSchemaJSON)

// DecodeLog validates raw JSON against the interaction-log schema and decodes
// it. A nil or empty payload decodes to an empty log, which the behavior
// analyzer treats as fully trusted.
func DecodeLog(data []byte) ([]Event, error) {
	if len(data) == 0 {
		return []Event{}, nil
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedLog, err)
	}
	if err := logSchema.Validate(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedLog, err)
	}

	var events []Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedLog, err)
	}
	return events, nil
}
