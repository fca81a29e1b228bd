// Package errors provides structured error reporting for the xframes bridge.
//
// Errors raised at the renderer boundary cannot always be returned to a caller:
// callbacks run on the renderer's threads and have nowhere to send an error.
// Such failures are wrapped in a BridgeError and passed to Report, which hands
// them to the installed ErrorHandler.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindEncoding indicates application data that cannot be represented
	// in the transport document format.
	KindEncoding
	// KindProtocol indicates a caller violated the session protocol, such as
	// submitting before init or referencing an unsubmitted element.
	KindProtocol
	// KindPayload indicates an inbound callback carried a null handle or an
	// invalid count.
	KindPayload
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindConfig indicates an invalid host configuration.
	KindConfig
	// KindNative indicates the native renderer could not be loaded or started.
	KindNative

	numKinds
)

func (k ErrorKind) String() string {
	switch k {
	case KindEncoding:
		return "encoding"
	case KindProtocol:
		return "protocol"
	case KindPayload:
		return "payload"
	case KindPanic:
		return "panic"
	case KindConfig:
		return "config"
	case KindNative:
		return "native"
	default:
		return "unknown"
	}
}

// NoElement is the ElementID of a BridgeError that is not about one element.
const NoElement = -1

// BridgeError represents a structured error in the bridge.
type BridgeError struct {
	// Op is the operation that failed (e.g., "session.SubmitElement").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// ElementID is the element the error concerns, or NoElement.
	ElementID int
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

// New returns a BridgeError with no element attached.
func New(op string, kind ErrorKind, err error) *BridgeError {
	return &BridgeError{Op: op, Kind: kind, ElementID: NoElement, Err: err}
}

// ForElement returns a BridgeError about the element with the given id.
func ForElement(op string, kind ErrorKind, id int, err error) *BridgeError {
	return &BridgeError{Op: op, Kind: kind, ElementID: id, Err: err}
}

func (e *BridgeError) Error() string {
	if e.ElementID >= 0 {
		return fmt.Sprintf("%s [%s] element=%d: %v", e.Op, e.Kind, e.ElementID, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *BridgeError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "inbound.TextChanged").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// PayloadError describes an inbound callback payload that could not be read.
type PayloadError struct {
	// Event is the callback name (e.g., "text-changed").
	Event string
	// Reason says what was wrong with the payload.
	Reason string
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("invalid %s payload: %s", e.Event, e.Reason)
}

// ErrorHandler receives errors reported by the bridge.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *BridgeError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
