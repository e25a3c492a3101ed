package entity

import (
	"encoding/json"
	"fmt"
	"time"
)

// WireFormat is the timestamp form used in JSON payloads and persisted
// documents: ISO-8601, UTC, millisecond precision, Z suffix.
const WireFormat = "2006-01-02T15:04:05.000Z"

// parse layouts accepted on input. RFC3339Nano covers both Z-suffixed and
// offset-suffixed forms; the zoneless layouts are treated as UTC.
var parseLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// Timestamp is a time.Time that round-trips through the wire format.
type Timestamp struct {
	time.Time
}

func Now() Timestamp {
	return Timestamp{time.Now().UTC().Truncate(time.Millisecond)}
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t.UTC().Truncate(time.Millisecond)}
}

func ParseTimestamp(s string) (Timestamp, error) {
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{t.UTC()}, nil
		}
	}

	return Timestamp{}, fmt.Errorf("parse timestamp %q", s)
}

func (t Timestamp) String() string {
	return t.UTC().Format(WireFormat)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("unmarshal timestamp: %v", err)
	}

	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}

	*t = parsed

	return nil
}
