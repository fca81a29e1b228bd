package dispatch

import (
	"testing"

	"github.com/go-xframes/xframes/pkg/element"
	"github.com/google/go-cmp/cmp"
)

func TestRouterRoutesByKind(t *testing.T) {
	r := NewRouter()
	var got []Event
	for _, k := range Kinds {
		r.Handle(k, func(ev Event) { got = append(got, ev) })
	}

	r.OnTextChanged(1, "Hello, world")
	r.OnComboChanged(2, 3)
	r.OnNumericChanged(3, 1.5)
	r.OnBooleanChanged(4, true)
	r.OnMultiNumericChanged(5, []float32{1, 2, 3})
	r.OnClick(6)

	want := []Event{
		TextChanged{ID: 1, Text: "Hello, world"},
		ComboChanged{ID: 2, Index: 3},
		NumericChanged{ID: 3, Value: 1.5},
		BooleanChanged{ID: 4, Value: true},
		MultiNumericChanged{ID: 5, Values: []float32{1, 2, 3}},
		Click{ID: 6},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("dispatched events mismatch (-want +got):\n%s", diff)
	}
}

func TestRouterKindIsolation(t *testing.T) {
	r := NewRouter()
	clicks := 0
	r.Handle(ClickEvent, func(Event) { clicks++ })

	r.OnTextChanged(1, "x")
	r.OnBooleanChanged(1, false)
	if clicks != 0 {
		t.Errorf("click handler ran %d times for non-click events", clicks)
	}
}

func TestRouterElementBeforeKind(t *testing.T) {
	r := NewRouter()
	var order []string
	r.Handle(ClickEvent, func(Event) { order = append(order, "kind") })
	r.HandleClick(7, func() { order = append(order, "element-a") })
	r.HandleClick(7, func() { order = append(order, "element-b") })
	r.HandleClick(8, func() { order = append(order, "other") })

	r.OnClick(7)

	if diff := cmp.Diff([]string{"element-a", "element-b", "kind"}, order); diff != "" {
		t.Errorf("handler order mismatch (-want +got):\n%s", diff)
	}
}

func TestRouterUnknownIDPassesThrough(t *testing.T) {
	r := NewRouter()
	var got []element.ID
	r.Handle(TextChangedEvent, func(ev Event) { got = append(got, ev.Target()) })
	r.HandleText(1, func(string) {})

	r.OnTextChanged(999, "who")
	if diff := cmp.Diff([]element.ID{999}, got); diff != "" {
		t.Errorf("unknown id not passed through (-want +got):\n%s", diff)
	}
}

func TestRouterTypedHelpers(t *testing.T) {
	r := NewRouter()
	var (
		text    string
		index   int
		value   float32
		checked bool
		values  []float32
		clicked bool
	)
	r.HandleText(1, func(s string) { text = s })
	r.HandleCombo(2, func(i int) { index = i })
	r.HandleNumeric(3, func(v float32) { value = v })
	r.HandleBoolean(4, func(b bool) { checked = b })
	r.HandleMultiNumeric(5, func(v []float32) { values = v })
	r.HandleClick(6, func() { clicked = true })

	r.OnTextChanged(1, "abc")
	r.OnComboChanged(2, 4)
	r.OnNumericChanged(3, 0.25)
	r.OnBooleanChanged(4, true)
	r.OnMultiNumericChanged(5, []float32{})
	r.OnClick(6)

	if text != "abc" || index != 4 || value != 0.25 || !checked || values == nil || len(values) != 0 || !clicked {
		t.Errorf("helpers saw text=%q index=%d value=%v checked=%v values=%#v clicked=%v",
			text, index, value, checked, values, clicked)
	}
}

func TestRouterRemove(t *testing.T) {
	r := NewRouter()
	n := 0
	remove := r.Handle(ClickEvent, func(Event) { n++ })
	removeEl := r.HandleClick(1, func() { n += 10 })

	r.OnClick(1)
	remove()
	removeEl()
	remove()
	r.OnClick(1)

	if n != 11 {
		t.Errorf("handlers ran total %d, want 11", n)
	}
}

// Handlers may register and remove handlers while being dispatched.
func TestRouterReentrantRegistration(t *testing.T) {
	r := NewRouter()
	late := 0
	var remove func()
	remove = r.Handle(ClickEvent, func(Event) {
		remove()
		r.Handle(ClickEvent, func(Event) { late++ })
		r.OnTextChanged(1, "nested")
	})
	nested := false
	r.HandleText(1, func(string) { nested = true })

	r.OnClick(1)
	if late != 0 {
		t.Errorf("handler registered during dispatch ran in the same dispatch")
	}
	if !nested {
		t.Error("nested dispatch from a handler did not run")
	}
	r.OnClick(1)
	if late != 1 {
		t.Errorf("late handler ran %d times, want 1", late)
	}
}

func TestRouterInit(t *testing.T) {
	r := NewRouter()
	var calls []int
	r.HandleInit(func() { calls = append(calls, 1) })
	remove := r.HandleInit(func() { calls = append(calls, 2) })
	r.HandleInit(func() { calls = append(calls, 3) })
	remove()

	r.OnInit()
	if diff := cmp.Diff([]int{1, 3}, calls); diff != "" {
		t.Errorf("init calls mismatch (-want +got):\n%s", diff)
	}
}

func TestDeliver(t *testing.T) {
	var got []Event
	rec := TableFuncs{
		TextChanged:         func(id element.ID, s string) { got = append(got, TextChanged{id, s}) },
		ComboChanged:        func(id element.ID, i int) { got = append(got, ComboChanged{id, i}) },
		NumericChanged:      func(id element.ID, v float32) { got = append(got, NumericChanged{id, v}) },
		BooleanChanged:      func(id element.ID, v bool) { got = append(got, BooleanChanged{id, v}) },
		MultiNumericChanged: func(id element.ID, v []float32) { got = append(got, MultiNumericChanged{id, v}) },
		Click:               func(id element.ID) { got = append(got, Click{id}) },
	}
	events := []Event{
		TextChanged{1, "a"},
		ComboChanged{2, 1},
		NumericChanged{3, 2},
		BooleanChanged{4, true},
		MultiNumericChanged{5, []float32{1}},
		Click{6},
	}
	for _, ev := range events {
		Deliver(rec, ev)
	}
	if diff := cmp.Diff(events, got); diff != "" {
		t.Errorf("Deliver mismatch (-want +got):\n%s", diff)
	}

	// A zero TableFuncs ignores everything.
	for _, ev := range events {
		Deliver(TableFuncs{}, ev)
	}
	TableFuncs{}.OnInit()
}

func TestEventKindString(t *testing.T) {
	want := []string{
		"text-changed", "combo-changed", "numeric-changed",
		"boolean-changed", "multi-numeric-changed", "click",
	}
	for i, k := range Kinds {
		if k.String() != want[i] {
			t.Errorf("%d.String() = %q, want %q", int(k), k.String(), want[i])
		}
	}
	if got := EventKind(42).String(); got != "EventKind(42)" {
		t.Errorf("EventKind(42).String() = %q", got)
	}
}
