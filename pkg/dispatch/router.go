package dispatch

import (
	"sync"
	"sync/atomic"

	"github.com/go-xframes/xframes/pkg/element"
)

// Handler receives one event.
type Handler func(Event)

type entry[F any] struct {
	id uint64
	fn F
}

type elementKey struct {
	id   element.ID
	kind EventKind
}

// Router is a Table that fans events out to registered handlers.
//
// For each event, handlers registered for the event's element and kind run
// first, then handlers registered for the kind across all elements, each
// group in registration order. Events for IDs with no element handler still
// reach the kind-wide handlers: the router keeps no registry of live
// elements.
//
// The zero Router is not ready for use; call NewRouter.
type Router struct {
	mu       sync.RWMutex
	init     []entry[func()]
	byKind   map[EventKind][]entry[Handler]
	byTarget map[elementKey][]entry[Handler]
	nextID   atomic.Uint64
}

var _ Table = (*Router)(nil)

// NewRouter returns a router with no handlers.
func NewRouter() *Router {
	return &Router{
		byKind:   make(map[EventKind][]entry[Handler]),
		byTarget: make(map[elementKey][]entry[Handler]),
	}
}

// HandleInit registers fn to run when the renderer signals readiness.
func (r *Router) HandleInit(fn func()) (remove func()) {
	id := r.nextID.Add(1)
	r.mu.Lock()
	r.init = append(r.init, entry[func()]{id: id, fn: fn})
	r.mu.Unlock()
	return r.remover(func() {
		r.init = removeEntry(r.init, id)
	})
}

// Handle registers h for every event of kind, whatever its target.
func (r *Router) Handle(kind EventKind, h Handler) (remove func()) {
	id := r.nextID.Add(1)
	r.mu.Lock()
	r.byKind[kind] = append(r.byKind[kind], entry[Handler]{id: id, fn: h})
	r.mu.Unlock()
	return r.remover(func() {
		if l := removeEntry(r.byKind[kind], id); len(l) > 0 {
			r.byKind[kind] = l
		} else {
			delete(r.byKind, kind)
		}
	})
}

// HandleElement registers h for events of kind targeting one element.
func (r *Router) HandleElement(target element.ID, kind EventKind, h Handler) (remove func()) {
	key := elementKey{id: target, kind: kind}
	id := r.nextID.Add(1)
	r.mu.Lock()
	r.byTarget[key] = append(r.byTarget[key], entry[Handler]{id: id, fn: h})
	r.mu.Unlock()
	return r.remover(func() {
		if l := removeEntry(r.byTarget[key], id); len(l) > 0 {
			r.byTarget[key] = l
		} else {
			delete(r.byTarget, key)
		}
	})
}

// HandleText registers fn for text changes of one element.
func (r *Router) HandleText(target element.ID, fn func(text string)) (remove func()) {
	return r.HandleElement(target, TextChangedEvent, func(ev Event) {
		fn(ev.(TextChanged).Text)
	})
}

// HandleCombo registers fn for combo selections of one element.
func (r *Router) HandleCombo(target element.ID, fn func(index int)) (remove func()) {
	return r.HandleElement(target, ComboChangedEvent, func(ev Event) {
		fn(ev.(ComboChanged).Index)
	})
}

// HandleNumeric registers fn for numeric value changes of one element.
func (r *Router) HandleNumeric(target element.ID, fn func(value float32)) (remove func()) {
	return r.HandleElement(target, NumericChangedEvent, func(ev Event) {
		fn(ev.(NumericChanged).Value)
	})
}

// HandleBoolean registers fn for boolean value changes of one element.
func (r *Router) HandleBoolean(target element.ID, fn func(value bool)) (remove func()) {
	return r.HandleElement(target, BooleanChangedEvent, func(ev Event) {
		fn(ev.(BooleanChanged).Value)
	})
}

// HandleMultiNumeric registers fn for multi-value changes of one element.
func (r *Router) HandleMultiNumeric(target element.ID, fn func(values []float32)) (remove func()) {
	return r.HandleElement(target, MultiNumericChangedEvent, func(ev Event) {
		fn(ev.(MultiNumericChanged).Values)
	})
}

// HandleClick registers fn for clicks on one element.
func (r *Router) HandleClick(target element.ID, fn func()) (remove func()) {
	return r.HandleElement(target, ClickEvent, func(Event) {
		fn()
	})
}

// Dispatch delivers ev to its handlers.
func (r *Router) Dispatch(ev Event) {
	if ev == nil {
		return
	}
	key := elementKey{id: ev.Target(), kind: ev.Kind()}

	r.mu.RLock()
	targeted := r.byTarget[key]
	general := r.byKind[key.kind]
	handlers := make([]Handler, 0, len(targeted)+len(general))
	for _, e := range targeted {
		handlers = append(handlers, e.fn)
	}
	for _, e := range general {
		handlers = append(handlers, e.fn)
	}
	r.mu.RUnlock()

	for _, h := range handlers {
		h(ev)
	}
}

// OnInit runs the init handlers.
func (r *Router) OnInit() {
	r.mu.RLock()
	fns := make([]func(), len(r.init))
	for i, e := range r.init {
		fns[i] = e.fn
	}
	r.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
}

func (r *Router) OnTextChanged(id element.ID, text string) {
	r.Dispatch(TextChanged{ID: id, Text: text})
}

func (r *Router) OnComboChanged(id element.ID, index int) {
	r.Dispatch(ComboChanged{ID: id, Index: index})
}

func (r *Router) OnNumericChanged(id element.ID, value float32) {
	r.Dispatch(NumericChanged{ID: id, Value: value})
}

func (r *Router) OnBooleanChanged(id element.ID, value bool) {
	r.Dispatch(BooleanChanged{ID: id, Value: value})
}

func (r *Router) OnMultiNumericChanged(id element.ID, values []float32) {
	r.Dispatch(MultiNumericChanged{ID: id, Values: values})
}

func (r *Router) OnClick(id element.ID) {
	r.Dispatch(Click{ID: id})
}

func (r *Router) remover(fn func()) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			fn()
			r.mu.Unlock()
		})
	}
}

func removeEntry[F any](list []entry[F], id uint64) []entry[F] {
	for i, e := range list {
		if e.id == id {
			out := make([]entry[F], 0, len(list)-1)
			out = append(out, list[:i]...)
			return append(out, list[i+1:]...)
		}
	}
	return list
}
