package indy

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sbca/indy-go/pkg/indy/ffi"
)

var (
	// ErrNotInitialized is returned when a command is called before Init.
	ErrNotInitialized = errors.New("libindy not initialized")

	// ErrAlreadyInitialized is returned by a second Init or Initialize.
	ErrAlreadyInitialized = errors.New("libindy already initialized")

	// ErrUnsupportedType marks a parameter or result type that has no built-in
	// encoding and no override.
	ErrUnsupportedType = errors.New("unsupported semantic type")

	// ErrInvalidDescriptor marks a malformed command declaration.
	ErrInvalidDescriptor = errors.New("invalid command descriptor")

	// ErrArgument marks call arguments that do not match the declaration.
	ErrArgument = errors.New("invalid command argument")

	// ErrProtocolViolation is reported when libindy completes a handle that
	// is unknown or already completed.
	ErrProtocolViolation = errors.New("libindy protocol violation")

	// ErrMalformedResult is returned when a completion carries values that do
	// not fit the declared results.
	ErrMalformedResult = errors.New("malformed libindy result")

	// ErrUnknownCode is wrapped by every *UnknownCodeError.
	ErrUnknownCode = errors.New("unknown libindy error code")

	ErrNotImplemented      = ffi.ErrNotImplemented
	ErrUnsupportedPlatform = ffi.ErrUnsupportedPlatform
	ErrNotBuilt            = ffi.ErrNotBuilt
)

// Error is a failure reported by libindy with a catalogued code.
type Error struct {
	Code      ErrorCode
	Message   string
	Backtrace string
}

// Name returns the symbolic name of the code.
func (e *Error) Name() string { return e.Code.String() }

// ParamIndex returns the 1-based parameter index for CommonInvalidParam
// errors and 0 otherwise.
func (e *Error) ParamIndex() int { return e.Code.ParamIndex() }

func (e *Error) Error() string {
	return fmt.Sprintf("indy: %s (%d): %s", e.Code.String(), int32(e.Code), e.Message)
}

// Is matches another *Error or a bare ErrorCode with the same code.
func (e *Error) Is(target error) bool {
	switch t := target.(type) {
	case ErrorCode:
		return e.Code == t
	case *Error:
		return t != nil && e.Code == t.Code
	}
	return false
}

// UnknownCodeError is returned for status codes outside the catalogue.
type UnknownCodeError struct {
	Code      int32
	Message   string
	Backtrace string
}

func (e *UnknownCodeError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("indy: unknown error code %d", e.Code)
	}
	return fmt.Sprintf("indy: unknown error code %d: %s", e.Code, e.Message)
}

func (e *UnknownCodeError) Unwrap() error { return ErrUnknownCode }

// errorDetail is the JSON document returned by indy_get_current_error.
type errorDetail struct {
	Message   string `json:"message"`
	Backtrace string `json:"backtrace"`
}

func parseErrorDetail(raw string) errorDetail {
	var d errorDetail
	if raw == "" {
		return d
	}
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return errorDetail{}
	}
	return d
}

func defaultMessage(code ErrorCode) string {
	if n := code.ParamIndex(); n > 0 {
		return fmt.Sprintf("libindy received invalid parameter %d", n)
	}
	return fmt.Sprintf("libindy raised an error %s (%d)", code.String(), int32(code))
}

// NewError builds the error value for a libindy status code. It returns nil
// for Success, an *Error for catalogued codes and an *UnknownCodeError
// otherwise. An empty message is replaced by a generated default.
func NewError(code int32, message, backtrace string) error {
	c := ErrorCode(code)
	switch {
	case c == Success:
		return nil
	case !c.Known():
		return &UnknownCodeError{Code: code, Message: message, Backtrace: backtrace}
	}
	if message == "" {
		message = defaultMessage(c)
	}
	return &Error{Code: c, Message: message, Backtrace: backtrace}
}
