package pocket

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Query holds flat query parameters. Nil values, nil pointers, empty
// strings, empty slices and zero times are dropped before encoding.
type Query map[string]any

// Values converts the query into url.Values, dropping empty entries.
func (q Query) Values() url.Values {
	out := make(url.Values, len(q))
	for key, raw := range q {
		if val, ok := queryValue(raw); ok {
			out.Set(key, val)
		}
	}
	return out
}

// Encode returns the URL-encoded query string ("" when nothing survives).
func (q Query) Encode() string {
	return q.Values().Encode()
}

func queryValue(raw any) (string, bool) {
	switch v := raw.(type) {
	case nil:
		return "", false
	case string:
		return v, v != ""
	case *string:
		if v == nil {
			return "", false
		}
		return *v, *v != ""
	case int:
		return strconv.Itoa(v), true
	case *int:
		if v == nil {
			return "", false
		}
		return strconv.Itoa(*v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	case *bool:
		if v == nil {
			return "", false
		}
		return strconv.FormatBool(*v), true
	case []string:
		joined := strings.Join(v, ",")
		return joined, joined != ""
	case time.Time:
		if v.IsZero() {
			return "", false
		}
		return v.Format(dateLayout), true
	case fmt.Stringer:
		s := v.String()
		return s, s != ""
	default:
		s := fmt.Sprint(v)
		return s, s != ""
	}
}
