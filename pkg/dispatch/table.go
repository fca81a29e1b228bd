package dispatch

import "github.com/go-xframes/xframes/pkg/element"

// Table is the fixed set of entry points the renderer calls. It is supplied
// once, when the session starts, and must stay valid until the session ends.
type Table interface {
	// OnInit is called once, when the renderer is ready to accept elements.
	OnInit()
	OnTextChanged(id element.ID, text string)
	OnComboChanged(id element.ID, index int)
	OnNumericChanged(id element.ID, value float32)
	OnBooleanChanged(id element.ID, value bool)
	OnMultiNumericChanged(id element.ID, values []float32)
	OnClick(id element.ID)
}

// TableFuncs adapts a set of functions to Table. Nil functions ignore their
// event.
type TableFuncs struct {
	Init                func()
	TextChanged         func(id element.ID, text string)
	ComboChanged        func(id element.ID, index int)
	NumericChanged      func(id element.ID, value float32)
	BooleanChanged      func(id element.ID, value bool)
	MultiNumericChanged func(id element.ID, values []float32)
	Click               func(id element.ID)
}

var _ Table = TableFuncs{}

func (f TableFuncs) OnInit() {
	if f.Init != nil {
		f.Init()
	}
}

func (f TableFuncs) OnTextChanged(id element.ID, text string) {
	if f.TextChanged != nil {
		f.TextChanged(id, text)
	}
}

func (f TableFuncs) OnComboChanged(id element.ID, index int) {
	if f.ComboChanged != nil {
		f.ComboChanged(id, index)
	}
}

func (f TableFuncs) OnNumericChanged(id element.ID, value float32) {
	if f.NumericChanged != nil {
		f.NumericChanged(id, value)
	}
}

func (f TableFuncs) OnBooleanChanged(id element.ID, value bool) {
	if f.BooleanChanged != nil {
		f.BooleanChanged(id, value)
	}
}

func (f TableFuncs) OnMultiNumericChanged(id element.ID, values []float32) {
	if f.MultiNumericChanged != nil {
		f.MultiNumericChanged(id, values)
	}
}

func (f TableFuncs) OnClick(id element.ID) {
	if f.Click != nil {
		f.Click(id)
	}
}
