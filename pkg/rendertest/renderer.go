// Package rendertest provides an in-memory renderer for tests and dry runs.
//
// Renderer implements boundary.Renderer. It decodes every submission the way
// the native renderer would, keeps the resulting retained tree, and can emit
// user events through the same raw entry points the native binding uses,
// including borrowed handles that it invalidates as soon as the callback
// returns.
//
//	r := rendertest.New()
//	s := session.New(r, session.WithOnInit(buildTree))
//	go s.Run(ctx, cfg)
//	<-s.Ready()
//	r.EmitText(1, "Hello")
//	fmt.Print(r.Dump())
package rendertest

import (
	"fmt"
	"slices"
	"sync"
	"unsafe"

	"github.com/go-xframes/xframes/pkg/boundary"
	"github.com/go-xframes/xframes/pkg/element"
)

// CallKind names a boundary call.
type CallKind string

const (
	CallStart       CallKind = "start"
	CallSetElement  CallKind = "setElement"
	CallSetChildren CallKind = "setChildren"
)

// Call records one boundary call and the document it carried.
type Call struct {
	Kind     CallKind
	Parent   element.ID
	Document string
}

// Renderer is an in-memory boundary.Renderer.
type Renderer struct {
	blocking bool
	onSet    func(element.Descriptor)

	mu       sync.Mutex
	in       *boundary.Inbound
	cfg      boundary.StartConfig
	starts   int
	elements map[element.ID]element.Descriptor
	children map[element.ID][]element.ID
	calls    []Call
	errs     []error
	stop     chan struct{}
	stopOnce sync.Once
}

var _ boundary.Renderer = (*Renderer)(nil)

// Option configures a Renderer.
type Option func(*Renderer)

// Blocking makes Start block until Close, like a renderer that runs its event
// loop on the calling thread.
func Blocking() Option {
	return func(r *Renderer) { r.blocking = true }
}

// OnSetElement registers fn to run inside every SetElement call, after the
// descriptor was decoded. Use it to fire callbacks while the application is
// blocked in a submission.
func OnSetElement(fn func(element.Descriptor)) Option {
	return func(r *Renderer) { r.onSet = fn }
}

// New returns an empty renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		elements: make(map[element.ID]element.Descriptor),
		children: make(map[element.ID][]element.ID),
		stop:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start stores the entry points and calls the init entry point.
func (r *Renderer) Start(cfg boundary.StartConfig, in *boundary.Inbound) error {
	r.mu.Lock()
	r.starts++
	if r.starts > 1 {
		r.mu.Unlock()
		return fmt.Errorf("rendertest: Start called %d times", r.starts)
	}
	r.in = in
	r.cfg = cfg
	r.calls = append(r.calls, Call{Kind: CallStart, Document: string(cfg.FontDefs)})
	r.mu.Unlock()

	in.Init()
	if r.blocking {
		<-r.stop
	}
	return nil
}

// Close releases a Blocking Start.
func (r *Renderer) Close() {
	r.stopOnce.Do(func() { close(r.stop) })
}

func (r *Renderer) fail(err error) {
	r.mu.Lock()
	r.errs = append(r.errs, err)
	r.mu.Unlock()
}

func terminated(b *boundary.Buffer) bool {
	return *(*byte)(unsafe.Add(b.Pointer(), b.Len())) == 0
}

// SetElement decodes the descriptor and creates or replaces the element.
func (r *Renderer) SetElement(b *boundary.Buffer) {
	if !terminated(b) {
		r.fail(fmt.Errorf("setElement: buffer not NUL-terminated"))
		return
	}
	doc := b.String()
	d, err := element.Decode(b.Bytes())
	if err != nil {
		r.fail(fmt.Errorf("setElement %s: %w", doc, err))
		return
	}
	r.mu.Lock()
	r.calls = append(r.calls, Call{Kind: CallSetElement, Parent: d.ID, Document: doc})
	r.elements[d.ID] = d
	r.mu.Unlock()

	if r.onSet != nil {
		r.onSet(d)
	}
}

// SetChildren decodes the child list and replaces parent's children.
// Unknown parents are ignored, as the native renderer does.
func (r *Renderer) SetChildren(parent int32, b *boundary.Buffer) {
	if !terminated(b) {
		r.fail(fmt.Errorf("setChildren: buffer not NUL-terminated"))
		return
	}
	doc := b.String()
	ids, err := element.DecodeIDs(b.Bytes())
	if err != nil {
		r.fail(fmt.Errorf("setChildren %d %s: %w", parent, doc, err))
		return
	}
	p := element.ID(parent)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Kind: CallSetChildren, Parent: p, Document: doc})
	if _, ok := r.elements[p]; !ok {
		r.errs = append(r.errs, fmt.Errorf("setChildren: unknown parent %d", parent))
		return
	}
	r.children[p] = ids
}

// StartConfig returns the configuration passed to Start.
func (r *Renderer) StartConfig() boundary.StartConfig {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cfg
}

// Element returns the current descriptor for id.
func (r *Renderer) Element(id element.ID) (element.Descriptor, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.elements[id]
	return d, ok
}

// Children returns the current children of parent.
func (r *Renderer) Children(parent element.ID) []element.ID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.children[parent])
}

// Calls returns every boundary call in order.
func (r *Renderer) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.calls)
}

// Errors returns every submission the renderer could not accept.
func (r *Renderer) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.errs)
}

func (r *Renderer) inbound() *boundary.Inbound {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.in == nil {
		panic("rendertest: event emitted before Start")
	}
	return r.in
}
