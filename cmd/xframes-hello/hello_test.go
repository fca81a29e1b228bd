package main

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-xframes/xframes/pkg/config"
	"github.com/go-xframes/xframes/pkg/dispatch"
	"github.com/go-xframes/xframes/pkg/errors"
)

func TestDryRunPrintsHelloTree(t *testing.T) {
	res, err := config.Resolve(filepath.Join(t.TempDir(), config.FileName))
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := dryRun(context.Background(), &out, res, newLogger(io.Discard, false)); err != nil {
		t.Fatalf("dryRun() error = %v", err)
	}
	want := "node#0(root)\n  unformatted-text#1 \"Hello, world\"\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestEventAttrs(t *testing.T) {
	tests := []struct {
		ev   dispatch.Event
		want []any
	}{
		{dispatch.TextChanged{ID: 1, Text: "hi"}, []any{"id", 1, "text", "hi"}},
		{dispatch.ComboChanged{ID: 2, Index: 3}, []any{"id", 2, "index", 3}},
		{dispatch.NumericChanged{ID: 3, Value: 1.5}, []any{"id", 3, "value", float32(1.5)}},
		{dispatch.BooleanChanged{ID: 4, Value: true}, []any{"id", 4, "value", true}},
		{dispatch.MultiNumericChanged{ID: 5, Values: []float32{1, 2}}, []any{"id", 5, "values", []float32{1, 2}}},
		{dispatch.Click{ID: 6}, []any{"id", 6}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, eventAttrs(tt.ev)); diff != "" {
			t.Errorf("eventAttrs(%v) mismatch (-want +got):\n%s", tt.ev.Kind(), diff)
		}
	}
}

func TestEventsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	r := dispatch.NewRouter()
	logEvents(r, newLogger(&buf, false))
	r.OnClick(7)
	r.OnTextChanged(1, "typed")

	got := buf.String()
	for _, want := range []string{`msg=click id=7`, `msg=text-changed id=1 text=typed`} {
		if !strings.Contains(got, want) {
			t.Errorf("log %q does not contain %q", got, want)
		}
	}
	if strings.Contains(got, "time=") || strings.Contains(got, "level=INFO") {
		t.Errorf("log %q should omit time and INFO level", got)
	}
}

func TestReportSummary(t *testing.T) {
	errors.SetHandler(discard{})
	t.Cleanup(func() { errors.SetHandler(nil) })
	errors.ResetCounts()
	t.Cleanup(errors.ResetCounts)

	var buf bytes.Buffer
	log := newLogger(&buf, false)
	logReportSummary(log)
	if buf.Len() != 0 {
		t.Errorf("summary logged with no reports: %q", buf.String())
	}

	errors.Report(errors.New("x", errors.KindProtocol, io.EOF))
	errors.Report(errors.New("y", errors.KindPayload, io.EOF))
	errors.Report(errors.New("z", errors.KindPayload, io.EOF))
	logReportSummary(log)
	if got, want := buf.String(), "level=WARN msg=\"errors reported\" protocol=1 payload=2\n"; got != want {
		t.Errorf("summary = %q, want %q", got, want)
	}
}

type discard struct{}

func (discard) HandleError(*errors.BridgeError) {}
func (discard) HandlePanic(*errors.PanicError)  {}
