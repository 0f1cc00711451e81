package pocket

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	dateLayout,
}

// parseTimestamp accepts the timestamp shapes the API has been seen to emit.
func parseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", raw)
}

// timestamp decodes a JSON string (or null) through parseTimestamp.
type timestamp struct {
	time.Time
	set bool
}

func (t *timestamp) UnmarshalJSON(b []byte) error {
	if isNull(b) {
		*t = timestamp{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	parsed, err := parseTimestamp(raw)
	if err != nil {
		return err
	}
	*t = timestamp{Time: parsed, set: raw != ""}
	return nil
}

func (t timestamp) ptr() *time.Time {
	if !t.set {
		return nil
	}
	v := t.Time
	return &v
}

// flexInt accepts JSON numbers and numeric strings.
type flexInt int

func (n *flexInt) UnmarshalJSON(b []byte) error {
	f, err := flexNumber(b)
	if err != nil {
		return fmt.Errorf("integer: %w", err)
	}
	*n = flexInt(int(f))
	return nil
}

// flexFloat accepts JSON numbers and numeric strings.
type flexFloat float64

func (n *flexFloat) UnmarshalJSON(b []byte) error {
	f, err := flexNumber(b)
	if err != nil {
		return fmt.Errorf("number: %w", err)
	}
	*n = flexFloat(f)
	return nil
}

func flexNumber(b []byte) (float64, error) {
	if isNull(b) {
		return 0, nil
	}
	s := string(bytes.TrimSpace(b))
	if strings.HasPrefix(s, `"`) {
		if err := json.Unmarshal(b, &s); err != nil {
			return 0, err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, nil
		}
	}
	return strconv.ParseFloat(s, 64)
}

// flexBool accepts booleans, 0/1 and their string forms.
type flexBool bool

func (v *flexBool) UnmarshalJSON(b []byte) error {
	if isNull(b) {
		*v = false
		return nil
	}
	s := strings.Trim(string(bytes.TrimSpace(b)), `"`)
	switch strings.ToLower(s) {
	case "true", "1":
		*v = true
	case "false", "0", "":
		*v = false
	default:
		return fmt.Errorf("boolean: unexpected %s", b)
	}
	return nil
}

func isNull(b []byte) bool {
	return bytes.Equal(bytes.TrimSpace(b), []byte("null"))
}
