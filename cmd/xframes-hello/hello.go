package main

import (
	"log/slog"

	"github.com/go-xframes/xframes/pkg/dispatch"
	"github.com/go-xframes/xframes/pkg/element"
	"github.com/go-xframes/xframes/pkg/session"
)

const (
	rootID element.ID = 0
	textID element.ID = 1
)

// buildHello submits the initial tree. Failures are already reported by the
// session, so it stops at the first one.
func buildHello(s *session.Session) {
	for _, d := range []element.Descriptor{
		element.RootNode(rootID),
		element.UnformattedText(textID, "Hello, world"),
	} {
		if err := s.SubmitElement(d); err != nil {
			return
		}
	}
	s.SetChildren(rootID, []element.ID{textID})
}

func logEvents(r *dispatch.Router, log *slog.Logger) {
	for _, kind := range dispatch.Kinds {
		r.Handle(kind, func(ev dispatch.Event) {
			log.Info(ev.Kind().String(), eventAttrs(ev)...)
		})
	}
}

func eventAttrs(ev dispatch.Event) []any {
	attrs := []any{"id", int(ev.Target())}
	switch e := ev.(type) {
	case dispatch.TextChanged:
		attrs = append(attrs, "text", e.Text)
	case dispatch.ComboChanged:
		attrs = append(attrs, "index", e.Index)
	case dispatch.NumericChanged:
		attrs = append(attrs, "value", e.Value)
	case dispatch.BooleanChanged:
		attrs = append(attrs, "value", e.Value)
	case dispatch.MultiNumericChanged:
		attrs = append(attrs, "values", e.Values)
	}
	return attrs
}
