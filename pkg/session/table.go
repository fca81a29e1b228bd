package session

import (
	"github.com/go-xframes/xframes/pkg/dispatch"
	"github.com/go-xframes/xframes/pkg/element"
	"github.com/go-xframes/xframes/pkg/errors"
)

// table is the dispatch table a session installs in the renderer. It owns the
// Initializing -> Ready transition and gates events on the session state.
type table struct {
	s *Session
}

var _ dispatch.Table = (*table)(nil)

func (t *table) OnInit() {
	s := t.s
	if !s.state.CompareAndSwap(int32(Initializing), int32(Ready)) {
		if st := s.State(); st == Ready {
			s.violation("session.OnInit", errors.NoElement, ErrRepeatedInit)
		}
		return
	}
	defer close(s.ready)
	s.log.Info("renderer ready")
	if s.onInit != nil {
		s.onInit(s)
	}
	s.router.OnInit()
}

// live reports whether events may reach the application.
func (t *table) live(kind dispatch.EventKind, id element.ID) bool {
	if st := t.s.State(); st != Ready {
		t.s.log.Debug("dropping event", "kind", kind.String(), "id", int(id), "state", st.String())
		return false
	}
	return true
}

func (t *table) OnTextChanged(id element.ID, text string) {
	if t.live(dispatch.TextChangedEvent, id) {
		t.s.router.OnTextChanged(id, text)
	}
}

func (t *table) OnComboChanged(id element.ID, index int) {
	if t.live(dispatch.ComboChangedEvent, id) {
		t.s.router.OnComboChanged(id, index)
	}
}

func (t *table) OnNumericChanged(id element.ID, value float32) {
	if t.live(dispatch.NumericChangedEvent, id) {
		t.s.router.OnNumericChanged(id, value)
	}
}

func (t *table) OnBooleanChanged(id element.ID, value bool) {
	if t.live(dispatch.BooleanChangedEvent, id) {
		t.s.router.OnBooleanChanged(id, value)
	}
}

func (t *table) OnMultiNumericChanged(id element.ID, values []float32) {
	if t.live(dispatch.MultiNumericChangedEvent, id) {
		t.s.router.OnMultiNumericChanged(id, values)
	}
}

func (t *table) OnClick(id element.ID) {
	if t.live(dispatch.ClickEvent, id) {
		t.s.router.OnClick(id)
	}
}
