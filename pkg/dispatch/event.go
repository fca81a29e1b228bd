// Package dispatch routes renderer callbacks to application handlers.
//
// The renderer reports user interaction through a fixed set of six callbacks,
// plus a one-time init callback. Table is the Go shape of that set. Router is
// a Table that routes each event by kind, and optionally by element ID, to
// registered handlers.
//
// Callbacks may arrive on any renderer thread and may re-enter application
// code that is itself blocked in a renderer call. Router never holds a lock
// while running a handler.
package dispatch

import (
	"fmt"

	"github.com/go-xframes/xframes/pkg/element"
)

// EventKind identifies one of the renderer's event callbacks.
type EventKind int

const (
	TextChangedEvent EventKind = iota
	ComboChangedEvent
	NumericChangedEvent
	BooleanChangedEvent
	MultiNumericChangedEvent
	ClickEvent
)

// Kinds lists every event kind in declaration order.
var Kinds = []EventKind{
	TextChangedEvent,
	ComboChangedEvent,
	NumericChangedEvent,
	BooleanChangedEvent,
	MultiNumericChangedEvent,
	ClickEvent,
}

func (k EventKind) String() string {
	switch k {
	case TextChangedEvent:
		return "text-changed"
	case ComboChangedEvent:
		return "combo-changed"
	case NumericChangedEvent:
		return "numeric-changed"
	case BooleanChangedEvent:
		return "boolean-changed"
	case MultiNumericChangedEvent:
		return "multi-numeric-changed"
	case ClickEvent:
		return "click"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is one user interaction reported by the renderer. The set of
// implementations is closed; switch on the concrete type to read the payload.
type Event interface {
	// Target is the element the event is about.
	Target() element.ID
	// Kind is the callback that produced the event.
	Kind() EventKind

	isEvent()
}

// TextChanged reports new content of a text input.
type TextChanged struct {
	ID   element.ID
	Text string
}

// ComboChanged reports the selected index of a combo box.
type ComboChanged struct {
	ID    element.ID
	Index int
}

// NumericChanged reports a new numeric value, such as a slider position.
type NumericChanged struct {
	ID    element.ID
	Value float32
}

// BooleanChanged reports a toggled value, such as a checkbox.
type BooleanChanged struct {
	ID    element.ID
	Value bool
}

// MultiNumericChanged reports a set of numeric values, such as a color
// editor. Values never aliases renderer memory; all handlers of one event
// share it.
type MultiNumericChanged struct {
	ID     element.ID
	Values []float32
}

// Click reports a click on an element.
type Click struct {
	ID element.ID
}

func (e TextChanged) Target() element.ID         { return e.ID }
func (e ComboChanged) Target() element.ID        { return e.ID }
func (e NumericChanged) Target() element.ID      { return e.ID }
func (e BooleanChanged) Target() element.ID      { return e.ID }
func (e MultiNumericChanged) Target() element.ID { return e.ID }
func (e Click) Target() element.ID               { return e.ID }

func (TextChanged) Kind() EventKind         { return TextChangedEvent }
func (ComboChanged) Kind() EventKind        { return ComboChangedEvent }
func (NumericChanged) Kind() EventKind      { return NumericChangedEvent }
func (BooleanChanged) Kind() EventKind      { return BooleanChangedEvent }
func (MultiNumericChanged) Kind() EventKind { return MultiNumericChangedEvent }
func (Click) Kind() EventKind               { return ClickEvent }

func (TextChanged) isEvent()         {}
func (ComboChanged) isEvent()        {}
func (NumericChanged) isEvent()      {}
func (BooleanChanged) isEvent()      {}
func (MultiNumericChanged) isEvent() {}
func (Click) isEvent()               {}

// Deliver calls the Table method matching ev's kind.
func Deliver(t Table, ev Event) {
	switch e := ev.(type) {
	case TextChanged:
		t.OnTextChanged(e.ID, e.Text)
	case ComboChanged:
		t.OnComboChanged(e.ID, e.Index)
	case NumericChanged:
		t.OnNumericChanged(e.ID, e.Value)
	case BooleanChanged:
		t.OnBooleanChanged(e.ID, e.Value)
	case MultiNumericChanged:
		t.OnMultiNumericChanged(e.ID, e.Values)
	case Click:
		t.OnClick(e.ID)
	}
}
