package rendertest

import "unsafe"

// scrub overwrites borrowed memory once a callback has returned, so any
// reference the application kept to it would read garbage.
func scrub(b []byte) {
	for i := range b {
		b[i] = 0xA5
	}
}

// EmitText sends a text change with text held in renderer-owned memory.
func (r *Renderer) EmitText(id int32, text string) {
	buf := append([]byte(text), 0)
	r.inbound().TextChanged(id, unsafe.Pointer(&buf[0]))
	scrub(buf)
}

// EmitNullText sends a text change with a null handle.
func (r *Renderer) EmitNullText(id int32) {
	r.inbound().TextChanged(id, nil)
}

// EmitCombo sends a combo selection.
func (r *Renderer) EmitCombo(id, index int32) {
	r.inbound().ComboChanged(id, index)
}

// EmitNumeric sends a numeric value change.
func (r *Renderer) EmitNumeric(id int32, value float32) {
	r.inbound().NumericChanged(id, value)
}

// EmitBoolean sends a boolean value change.
func (r *Renderer) EmitBoolean(id int32, value bool) {
	r.inbound().BooleanChanged(id, value)
}

// EmitMultiNumeric sends values in renderer-owned memory with an explicit
// count. The backing array holds one extra sentinel value past count.
func (r *Renderer) EmitMultiNumeric(id int32, values ...float32) {
	buf := make([]float32, len(values)+1)
	copy(buf, values)
	buf[len(values)] = -12345
	r.inbound().MultiNumericChanged(id, unsafe.Pointer(&buf[0]), int32(len(values)))
	for i := range buf {
		buf[i] = -1
	}
}

// EmitMultiNumericRaw sends an arbitrary handle and count.
func (r *Renderer) EmitMultiNumericRaw(id int32, values unsafe.Pointer, count int32) {
	r.inbound().MultiNumericChanged(id, values, count)
}

// EmitClick sends a click.
func (r *Renderer) EmitClick(id int32) {
	r.inbound().Click(id)
}

// EmitInit calls the init entry point again.
func (r *Renderer) EmitInit() {
	r.inbound().Init()
}
