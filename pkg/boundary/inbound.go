package boundary

import (
	"unsafe"

	"github.com/go-xframes/xframes/pkg/dispatch"
	"github.com/go-xframes/xframes/pkg/element"
	"github.com/go-xframes/xframes/pkg/errors"
)

// Inbound holds the raw entry points the renderer calls. Each entry point
// validates its arguments, copies any borrowed payload, and forwards a typed
// call to the Table. Bad payloads are reported and dropped. Panics from the
// Table are recovered so they never unwind into the renderer.
type Inbound struct {
	table dispatch.Table
}

// NewInbound returns entry points forwarding to t.
func NewInbound(t dispatch.Table) *Inbound {
	return &Inbound{table: t}
}

func dropped(event string, id int32, reason string) {
	errors.Report(errors.ForElement("boundary.Inbound", errors.KindPayload, int(id),
		&errors.PayloadError{Event: event, Reason: reason}))
}

func checkTarget(event string, id int32) (element.ID, bool) {
	if id < 0 {
		dropped(event, id, "negative element id")
		return 0, false
	}
	return element.ID(id), true
}

// Init signals that the renderer is ready.
func (in *Inbound) Init() {
	defer errors.Recover("inbound.Init")
	in.table.OnInit()
}

// TextChanged receives a borrowed NUL-terminated string.
func (in *Inbound) TextChanged(id int32, text unsafe.Pointer) {
	defer errors.Recover("inbound.TextChanged")
	const event = "text-changed"
	target, ok := checkTarget(event, id)
	if !ok {
		return
	}
	s, err := CopyCString(text)
	if err != nil {
		dropped(event, id, err.Error())
		return
	}
	in.table.OnTextChanged(target, s)
}

// ComboChanged receives the selected index.
func (in *Inbound) ComboChanged(id, index int32) {
	defer errors.Recover("inbound.ComboChanged")
	if target, ok := checkTarget("combo-changed", id); ok {
		in.table.OnComboChanged(target, int(index))
	}
}

// NumericChanged receives a new numeric value.
func (in *Inbound) NumericChanged(id int32, value float32) {
	defer errors.Recover("inbound.NumericChanged")
	if target, ok := checkTarget("numeric-changed", id); ok {
		in.table.OnNumericChanged(target, value)
	}
}

// BooleanChanged receives a new boolean value.
func (in *Inbound) BooleanChanged(id int32, value bool) {
	defer errors.Recover("inbound.BooleanChanged")
	if target, ok := checkTarget("boolean-changed", id); ok {
		in.table.OnBooleanChanged(target, value)
	}
}

// MultiNumericChanged receives a borrowed array of count floats.
func (in *Inbound) MultiNumericChanged(id int32, values unsafe.Pointer, count int32) {
	defer errors.Recover("inbound.MultiNumericChanged")
	const event = "multi-numeric-changed"
	target, ok := checkTarget(event, id)
	if !ok {
		return
	}
	vs, err := CopyFloats(values, count)
	if err != nil {
		dropped(event, id, err.Error())
		return
	}
	in.table.OnMultiNumericChanged(target, vs)
}

// Click receives a click.
func (in *Inbound) Click(id int32) {
	defer errors.Recover("inbound.Click")
	if target, ok := checkTarget("click", id); ok {
		in.table.OnClick(target)
	}
}
