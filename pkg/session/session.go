// Package session controls the lifetime of the one renderer session a
// process may have.
//
// A Session is created with New and driven by Run, which installs the
// dispatch table in the renderer and hands it control. The renderer's init
// callback moves the session to Ready; only then may the application submit
// elements and child lists. Shutdown stops all further boundary calls.
//
//	s := session.New(renderer, session.WithOnInit(func(s *session.Session) {
//	    s.SubmitElement(element.RootNode(0))
//	    s.SubmitElement(element.UnformattedText(1, "Hello, world"))
//	    s.SetChildren(0, []element.ID{1})
//	}))
//	err := s.Run(ctx, cfg) // returns after ctx is done
//
// Every operation that needs the session takes the handle explicitly; there
// is no package-level session.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/go-xframes/xframes/pkg/boundary"
	"github.com/go-xframes/xframes/pkg/dispatch"
	"github.com/go-xframes/xframes/pkg/element"
	"github.com/go-xframes/xframes/pkg/errors"
	"github.com/go-xframes/xframes/pkg/topology"
)

// Session is one renderer session.
type Session struct {
	renderer boundary.Renderer
	router   *dispatch.Router
	codec    element.Codec
	log      *slog.Logger
	onInit   func(*Session)

	out  *boundary.Outbound
	tree *topology.Registry

	state    atomic.Int32
	ready    chan struct{}
	done     chan struct{}
	shutdown sync.Once

	mu        sync.Mutex
	submitted map[element.ID]element.Kind
	root      element.ID
	hasRoot   bool
}

// Option configures a Session.
type Option func(*Session)

// WithRouter routes events through r instead of a fresh router.
func WithRouter(r *dispatch.Router) Option {
	return func(s *Session) { s.router = r }
}

// WithIDFormat selects how element IDs are written.
func WithIDFormat(f element.IDFormat) Option {
	return func(s *Session) { s.codec.IDFormat = f }
}

// WithLogger sets the logger for lifecycle messages.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithOnInit sets the function that builds the initial tree. It runs on the
// renderer's init callback, after the session is Ready and before the
// router's init handlers.
func WithOnInit(fn func(*Session)) Option {
	return func(s *Session) { s.onInit = fn }
}

// New returns an Uninitialized session bound to r.
func New(r boundary.Renderer, opts ...Option) *Session {
	s := &Session{
		renderer:  r,
		ready:     make(chan struct{}),
		done:      make(chan struct{}),
		submitted: make(map[element.ID]element.Kind),
		tree:      topology.NewRegistry(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.router == nil {
		s.router = dispatch.NewRouter()
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	s.out = boundary.NewOutbound(r, s.codec)
	return s
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return State(s.state.Load())
}

// Router returns the router events are dispatched through.
func (s *Session) Router() *dispatch.Router {
	return s.router
}

// Ready returns a channel closed once the renderer signalled init and the
// init handlers have returned.
func (s *Session) Ready() <-chan struct{} {
	return s.ready
}

// Done returns a channel closed when the session is Terminated.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Run starts the renderer and blocks until ctx is done, Shutdown is called,
// or the renderer fails to start. All callbacks are installed in the
// renderer before it gets control; they stay installed for the life of the
// process.
//
// The renderer's start call runs on its own locked OS thread. It may block
// for the whole session or return once the renderer runs by itself; either
// way Run keeps the session alive until ctx is done. Run may be called once.
func (s *Session) Run(ctx context.Context, cfg boundary.StartConfig) error {
	const op = "session.Run"
	if !s.state.CompareAndSwap(int32(Uninitialized), int32(Initializing)) {
		return s.violation(op, errors.NoElement, ErrAlreadyStarted)
	}
	s.log.Info("starting renderer", "assets", cfg.AssetsPath)

	in := boundary.NewInbound(&table{s: s})
	started := make(chan error, 1)
	go func() {
		runtime.LockOSThread()
		defer func() {
			if r := recover(); r != nil {
				started <- fmt.Errorf("renderer start panicked: %v", r)
			}
		}()
		started <- s.renderer.Start(cfg, in)
	}()

	select {
	case <-ctx.Done():
	case <-s.done:
	case err := <-started:
		if err != nil {
			s.Shutdown()
			return errors.Report(errors.New(op, errors.KindNative, err))
		}
		s.log.Debug("renderer start returned; waiting for shutdown")
		select {
		case <-ctx.Done():
		case <-s.done:
		}
	}
	s.Shutdown()
	return nil
}

// Shutdown stops the session. It is idempotent. Submissions and inbound
// events after Shutdown begins are refused; a submission already inside the
// renderer is not waited for.
func (s *Session) Shutdown() {
	s.shutdown.Do(func() {
		prev := State(s.state.Swap(int32(ShuttingDown)))
		s.log.Info("session shutting down", "from", prev.String())
		s.state.Store(int32(Terminated))
		close(s.done)
	})
}

// SubmitElement sends d to the renderer, creating or replacing the element
// with d's ID. The session must be Ready. A descriptor that cannot be
// encoded is not sent.
func (s *Session) SubmitElement(d element.Descriptor) error {
	const op = "session.SubmitElement"
	if err := s.checkReady(op, int(d.ID)); err != nil {
		return err
	}

	s.mu.Lock()
	if d.Root && s.hasRoot && s.root != d.ID {
		root := s.root
		s.mu.Unlock()
		return s.violation(op, int(d.ID), fmt.Errorf("%w (root is %d)", ErrDuplicateRoot, root))
	}
	// Record before the call: the renderer may call back about this element
	// before SetElement returns.
	prevKind, existed := s.submitted[d.ID]
	s.submitted[d.ID] = d.Kind
	claimedRoot := d.Root && !s.hasRoot
	if claimedRoot {
		s.root, s.hasRoot = d.ID, true
	}
	s.mu.Unlock()

	if !element.Known(d.Kind) {
		s.log.Debug("submitting renderer-defined kind", "id", int(d.ID), "kind", string(d.Kind))
	}
	// A Shutdown after checkReady does not stop this call.
	if err := s.out.SubmitElement(d); err != nil {
		s.mu.Lock()
		if existed {
			s.submitted[d.ID] = prevKind
		} else {
			delete(s.submitted, d.ID)
		}
		if claimedRoot {
			s.root, s.hasRoot = 0, false
		}
		s.mu.Unlock()
		return errors.Report(errors.ForElement(op, errors.KindEncoding, int(d.ID), err))
	}
	return nil
}

// SetChildren replaces the child list of parent. The parent and every child
// must have been submitted through this session.
func (s *Session) SetChildren(parent element.ID, children []element.ID) error {
	const op = "session.SetChildren"
	if err := s.checkReady(op, int(parent)); err != nil {
		return err
	}

	s.mu.Lock()
	unknown := errors.NoElement
	if _, ok := s.submitted[parent]; !ok {
		unknown = int(parent)
	} else {
		for _, c := range children {
			if _, ok := s.submitted[c]; !ok {
				unknown = int(c)
				break
			}
		}
	}
	s.mu.Unlock()
	if unknown != errors.NoElement {
		return s.violation(op, unknown, ErrUnknownElement)
	}

	// A Shutdown after checkReady does not stop this call.
	if err := s.out.SubmitChildren(parent, children); err != nil {
		return errors.Report(errors.ForElement(op, errors.KindEncoding, int(parent), err))
	}
	s.tree.Set(parent, children)
	return nil
}

// Children returns the last child list set for parent.
func (s *Session) Children(parent element.ID) ([]element.ID, bool) {
	return s.tree.Children(parent)
}

// Topology returns every child list set so far, ordered by parent.
func (s *Session) Topology() []topology.Entry {
	return s.tree.Entries()
}

// Submitted reports whether an element with id has been submitted.
func (s *Session) Submitted(id element.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.submitted[id]
	return ok
}

// Elements returns the submitted IDs in ascending order.
func (s *Session) Elements() []element.ID {
	s.mu.Lock()
	ids := make([]element.ID, 0, len(s.submitted))
	for id := range s.submitted {
		ids = append(ids, id)
	}
	s.mu.Unlock()
	slices.Sort(ids)
	return ids
}

// Root returns the root element's ID once one has been submitted.
func (s *Session) Root() (element.ID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.root, s.hasRoot
}

func (s *Session) checkReady(op string, id int) error {
	switch st := s.State(); st {
	case Ready:
		return nil
	case ShuttingDown, Terminated:
		return s.violation(op, id, ErrShutdown)
	default:
		return s.violation(op, id, fmt.Errorf("%w (state %s)", ErrNotReady, st))
	}
}

func (s *Session) violation(op string, id int, err error) error {
	return errors.Report(errors.ForElement(op, errors.KindProtocol, id, err))
}
