package explore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Timestamp decodes the catalogue's timestamps. The backend sends either its
// document representation, {"seconds": n, "nanoseconds": n} (also seen with
// leading underscores), or an RFC3339 string. Null and absent values decode
// to the zero time.
type Timestamp struct {
	time.Time
}

type documentTimestamp struct {
	Seconds      *int64 `json:"seconds"`
	Nanoseconds  int64  `json:"nanoseconds"`
	USeconds     *int64 `json:"_seconds"`
	UNanoseconds int64  `json:"_nanoseconds"`
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			t.Time = time.Time{}
			return nil
		}
		parsed, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return fmt.Errorf("invalid timestamp %q: %w", s, err)
		}
		t.Time = parsed.UTC()
		return nil

	case '{':
		var doc documentTimestamp
		if err := json.Unmarshal(data, &doc); err != nil {
			return err
		}
		switch {
		case doc.Seconds != nil:
			t.Time = time.Unix(*doc.Seconds, doc.Nanoseconds).UTC()
		case doc.USeconds != nil:
			t.Time = time.Unix(*doc.USeconds, doc.UNanoseconds).UTC()
		default:
			return fmt.Errorf("timestamp object has no seconds: %s", data)
		}
		return nil

	default:
		// bare numbers are unix seconds
		var seconds float64
		if err := json.Unmarshal(data, &seconds); err != nil {
			return fmt.Errorf("invalid timestamp %s: %w", data, err)
		}
		whole := int64(seconds)
		t.Time = time.Unix(whole, int64((seconds-float64(whole))*1e9)).UTC()
		return nil
	}
}
