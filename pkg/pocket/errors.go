package pocket

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Kind is the closed set of failures the client reports.
type Kind int

const (
	// KindGeneric covers unclassified statuses, malformed bodies and transport failures.
	KindGeneric Kind = iota
	KindAuthentication
	KindNotFound
	KindRateLimit
	KindValidation
	KindServer
)

// String returns a stable lower-case name for the kind.
func (k Kind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication"
	case KindNotFound:
		return "not_found"
	case KindRateLimit:
		return "rate_limit"
	case KindValidation:
		return "validation"
	case KindServer:
		return "server"
	default:
		return "generic"
	}
}

const (
	msgAuthentication = "Invalid API key"
	msgNotFound       = "Resource not found"
	msgRateLimit      = "Rate limit exceeded"
	msgValidation     = "Validation failed"
	msgUnknown        = "An unknown error occurred"
	msgInvalidJSON    = "Invalid JSON response from API"
	prefixServer      = "Server error: "
	prefixTransport   = "Request failed: "
)

var (
	// ErrInvalidJSON is the cause attached when a 2xx body cannot be decoded.
	ErrInvalidJSON = errors.New("pocket: invalid json response")
	// ErrTransport is the cause attached when no response was ever received.
	ErrTransport = errors.New("pocket: transport failure")
)

// Error is the single error type returned by the client. Kind selects the
// variant; RetryAfter is only set for KindRateLimit.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int
	Details    map[string]any
	RetryAfter *int
	// Exchange describes the request that failed; nil for errors raised
	// before anything was sent.
	Exchange *Exchange

	cause error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Code mirrors the HTTP status that produced the error (0 when none).
func (e *Error) Code() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

// Classify maps an HTTP status and decoded error body to an *Error. The
// status alone decides the kind; the body only supplies message and details.
func Classify(status int, body map[string]any, header http.Header) *Error {
	switch {
	case status == http.StatusUnauthorized:
		return &Error{Kind: KindAuthentication, StatusCode: status, Message: bodyMessage(body, msgAuthentication), Details: map[string]any{}}
	case status == http.StatusNotFound:
		return &Error{Kind: KindNotFound, StatusCode: status, Message: bodyMessage(body, msgNotFound), Details: map[string]any{}}
	case status == http.StatusTooManyRequests:
		return &Error{
			Kind:       KindRateLimit,
			StatusCode: status,
			Message:    bodyMessage(body, msgRateLimit),
			Details:    map[string]any{},
			RetryAfter: retryAfter(header),
		}
	case status == http.StatusBadRequest:
		return &Error{Kind: KindValidation, StatusCode: status, Message: bodyMessage(body, msgValidation), Details: bodyDetails(body)}
	case status >= http.StatusInternalServerError:
		underlying := bodyMessage(body, "")
		if underlying == "" {
			underlying = fmt.Sprintf("%d %s", status, http.StatusText(status))
		}
		return &Error{Kind: KindServer, StatusCode: status, Message: prefixServer + underlying, Details: map[string]any{}}
	default:
		return &Error{Kind: KindGeneric, StatusCode: status, Message: bodyMessage(body, msgUnknown), Details: bodyDetails(body)}
	}
}

func invalidJSONError(ex *Exchange, cause error) *Error {
	return &Error{
		Kind:     KindGeneric,
		Message:  msgInvalidJSON,
		Details:  map[string]any{},
		Exchange: ex,
		cause:    errors.Join(ErrInvalidJSON, cause),
	}
}

func transportError(ex *Exchange, cause error) *Error {
	return &Error{
		Kind:     KindGeneric,
		Message:  prefixTransport + cause.Error(),
		Details:  map[string]any{},
		Exchange: ex,
		cause:    errors.Join(ErrTransport, cause),
	}
}

func bodyMessage(body map[string]any, fallback string) string {
	if msg, ok := body["error"].(string); ok {
		return msg
	}
	return fallback
}

func bodyDetails(body map[string]any) map[string]any {
	if details, ok := body["details"].(map[string]any); ok {
		return details
	}
	return map[string]any{}
}

// retryAfter reads the Retry-After header as integer seconds.
// HTTP-date values are ignored.
func retryAfter(header http.Header) *int {
	if header == nil {
		return nil
	}
	raw := strings.TrimSpace(header.Get("Retry-After"))
	if raw == "" {
		return nil
	}
	secs, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &secs
}

// AsError extracts the client error from err's chain.
func AsError(err error) (*Error, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// KindOf returns the kind of a client error, or KindGeneric for foreign errors.
func KindOf(err error) Kind {
	if pe, ok := AsError(err); ok {
		return pe.Kind
	}
	return KindGeneric
}

func IsAuthentication(err error) bool { return isKind(err, KindAuthentication) }
func IsNotFound(err error) bool       { return isKind(err, KindNotFound) }
func IsRateLimit(err error) bool      { return isKind(err, KindRateLimit) }
func IsValidation(err error) bool     { return isKind(err, KindValidation) }
func IsServer(err error) bool         { return isKind(err, KindServer) }

func isKind(err error, k Kind) bool {
	pe, ok := AsError(err)
	return ok && pe.Kind == k
}
