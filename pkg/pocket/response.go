package pocket

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Adda-Baaj/pocket-sync/pkg/httpclient"
)

// Exchange records one logical call: what was sent and, when a response
// arrived, what came back. It is returned to the caller instead of being
// kept on the client.
type Exchange struct {
	Method        string
	URL           string
	RequestHeader http.Header
	Attempts      int

	// Populated from the final response; zero when none was received.
	StatusCode   int
	Header       http.Header
	EffectiveURL string
}

func (ex *Exchange) record(resp httpclient.Response) {
	ex.StatusCode = resp.StatusCode()
	ex.Header = resp.Header()
	ex.EffectiveURL = resp.URL()
	if ex.EffectiveURL == "" {
		ex.EffectiveURL = ex.URL
	}
}

// Envelope is a successful, normalised response: the decoded top-level JSON
// object plus transport metadata.
type Envelope struct {
	Fields     map[string]json.RawMessage
	StatusCode int
	Header     http.Header
	URI        string
	Exchange   Exchange

	body []byte
}

// Body returns the raw response body.
func (e *Envelope) Body() []byte { return e.body }

// Has reports whether the top-level field is present.
func (e *Envelope) Has(field string) bool {
	_, ok := e.Fields[field]
	return ok
}

// Decode unmarshals a top-level field into v.
func (e *Envelope) Decode(field string, v any) error {
	raw, ok := e.Fields[field]
	if !ok {
		return fmt.Errorf("response field %q missing", field)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode response field %q: %w", field, err)
	}
	return nil
}

// normalize turns the final HTTP response into an envelope or an *Error.
func normalize(resp httpclient.Response, ex Exchange) (*Envelope, error) {
	status := resp.StatusCode()
	body := resp.Body()

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		var decoded map[string]any
		if err := json.Unmarshal(body, &decoded); err != nil || decoded == nil {
			decoded = map[string]any{}
		}
		perr := Classify(status, decoded, resp.Header())
		perr.Exchange = &ex
		return nil, perr
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, invalidJSONError(&ex, err)
	}
	if fields == nil {
		return nil, invalidJSONError(&ex, fmt.Errorf("response body is not a json object"))
	}

	if successFalse(fields) {
		var decoded map[string]any
		_ = json.Unmarshal(body, &decoded)
		perr := Classify(status, decoded, resp.Header())
		perr.Exchange = &ex
		return nil, perr
	}

	return &Envelope{
		Fields:     fields,
		StatusCode: status,
		Header:     ex.Header,
		URI:        ex.EffectiveURL,
		Exchange:   ex,
		body:       body,
	}, nil
}

func successFalse(fields map[string]json.RawMessage) bool {
	raw, ok := fields["success"]
	if !ok {
		return false
	}
	var success *bool
	if err := json.Unmarshal(raw, &success); err != nil || success == nil {
		return false
	}
	return !*success
}
