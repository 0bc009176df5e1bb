package model

import (
	"encoding/json"
	"time"
)

// Timestamp is the single internal timestamp representation. Payloads written
// by older exports and foreign backups carry timestamps in several shapes:
// RFC3339-ish strings, epoch-millisecond numbers, or database-style wrapper
// objects with seconds/nanoseconds fields. All of them normalize here, at the
// ingestion boundary, so the statistics code never branches on type.
//
// Null, missing, or unparseable input normalizes to the Unix epoch.
type Timestamp struct {
	time.Time
}

// At wraps a time.Time.
func At(t time.Time) Timestamp {
	return Timestamp{t}
}

// Now returns the current instant.
func Now() Timestamp {
	return Timestamp{time.Now()}
}

// Millis returns milliseconds since the Unix epoch.
func (t Timestamp) Millis() int64 {
	if t.Time.IsZero() {
		return 0
	}
	return t.Time.UnixMilli()
}

// IsZero reports whether the timestamp is unset (epoch or zero value).
func (t Timestamp) IsZero() bool {
	return t.Time.IsZero() || t.Time.UnixMilli() == 0
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

// stringLayouts are tried in order for string-typed timestamps. The
// datetime-local layout covers manually backdated logs from the form input.
var stringLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	t.Time = time.UnixMilli(0)

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case nil:
		// stays at epoch
	case string:
		if v == "" {
			return nil
		}
		for _, layout := range stringLayouts {
			if parsed, err := time.ParseInLocation(layout, v, time.Local); err == nil {
				t.Time = parsed
				return nil
			}
		}
		// unparseable string stays at epoch
	case float64:
		t.Time = time.UnixMilli(int64(v))
	case map[string]any:
		// Firestore-style {seconds, nanoseconds} wrapper.
		secs, ok := v["seconds"].(float64)
		if !ok {
			return nil
		}
		nanos, _ := v["nanoseconds"].(float64)
		t.Time = time.Unix(int64(secs), int64(nanos))
	}
	return nil
}
