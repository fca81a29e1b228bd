//go:build cgo && xframes

package native

/*
#include <stdbool.h>
*/
import "C"

import "unsafe"

// The functions below are the C entry points handed to init. Callbacks that
// arrive before Start installed the entry points are ignored.

//export xfOnInit
func xfOnInit() {
	if in := inbound.Load(); in != nil {
		in.Init()
	}
}

//export xfOnTextChanged
func xfOnTextChanged(id C.int, text *C.char) {
	if in := inbound.Load(); in != nil {
		in.TextChanged(int32(id), unsafe.Pointer(text))
	}
}

//export xfOnComboChanged
func xfOnComboChanged(id, index C.int) {
	if in := inbound.Load(); in != nil {
		in.ComboChanged(int32(id), int32(index))
	}
}

//export xfOnNumericValueChanged
func xfOnNumericValueChanged(id C.int, value C.float) {
	if in := inbound.Load(); in != nil {
		in.NumericChanged(int32(id), float32(value))
	}
}

//export xfOnBooleanValueChanged
func xfOnBooleanValueChanged(id C.int, value C.bool) {
	if in := inbound.Load(); in != nil {
		in.BooleanChanged(int32(id), bool(value))
	}
}

//export xfOnMultipleNumericValuesChanged
func xfOnMultipleNumericValuesChanged(id C.int, values *C.float, count C.int) {
	if in := inbound.Load(); in != nil {
		in.MultiNumericChanged(int32(id), unsafe.Pointer(values), int32(count))
	}
}

//export xfOnClick
func xfOnClick(id C.int) {
	if in := inbound.Load(); in != nil {
		in.Click(int32(id))
	}
}
