package errors

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"
	"time"
)

func TestBridgeErrorString(t *testing.T) {
	err := New("test.operation", KindEncoding, &PayloadError{Event: "click", Reason: "null"})
	got := err.Error()
	want := "test.operation [encoding]: invalid click payload: null"
	if got != want {
		t.Errorf("BridgeError.Error() = %q, want %q", got, want)
	}
}

func TestBridgeErrorWithElement(t *testing.T) {
	err := ForElement("session.SetChildren", KindProtocol, 0, stderrors.New("boom"))
	got := err.Error()
	want := "element=0"
	if !strings.Contains(got, want) {
		t.Errorf("error string %q should contain %q", got, want)
	}
}

func TestBridgeErrorUnwrap(t *testing.T) {
	sentinel := stderrors.New("sentinel")
	err := New("op", KindProtocol, sentinel)
	if !stderrors.Is(err, sentinel) {
		t.Error("errors.Is should find the wrapped sentinel")
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindEncoding, "encoding"},
		{KindProtocol, "protocol"},
		{KindPayload, "payload"},
		{KindPanic, "panic"},
		{KindConfig, "config"},
		{KindNative, "native"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Value: "test panic", Timestamp: time.Now()}
	if got, want := err.Error(), "panic: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}

	err.Op = "inbound.Click"
	if got, want := err.Error(), "panic in inbound.Click: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestReport(t *testing.T) {
	var captured *BridgeError
	SetHandler(&testHandler{onError: func(err *BridgeError) { captured = err }})
	defer SetHandler(nil)

	returned := Report(New("test.op", KindConfig, stderrors.New("bad")))

	if captured == nil {
		t.Fatal("expected error to be captured")
	}
	if captured != returned {
		t.Error("Report should return the reported error")
	}
	if captured.Op != "test.op" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.op")
	}
	if captured.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestReportNil(t *testing.T) {
	called := false
	SetHandler(&testHandler{onError: func(*BridgeError) { called = true }})
	defer SetHandler(nil)

	if Report(nil) != nil {
		t.Error("Report(nil) should return nil")
	}
	if called {
		t.Error("handler should not see nil errors")
	}
}

func TestRecover(t *testing.T) {
	var captured *PanicError
	SetHandler(&testHandler{onPanic: func(err *PanicError) { captured = err }})
	defer SetHandler(nil)

	func() {
		defer Recover("test.recover")
		panic("intentional test panic")
	}()

	if captured == nil {
		t.Fatal("expected panic to be recovered and captured")
	}
	if captured.Value != "intentional test panic" {
		t.Errorf("Value = %v, want %q", captured.Value, "intentional test panic")
	}
	if captured.Op != "test.recover" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.recover")
	}
	if captured.StackTrace == "" {
		t.Error("expected a stack trace")
	}
}

func TestSetHandlerNil(t *testing.T) {
	SetHandler(nil)
	if _, ok := Handler().(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should set LogHandler, got %T", Handler())
	}
}

func TestLogHandler(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Out: &buf}

	h.HandleError(ForElement("session.SetChildren", KindProtocol, 3, stderrors.New("unknown element")))
	if got, want := buf.String(), "[xframes protocol] session.SetChildren: unknown element\n"; got != want {
		t.Errorf("HandleError wrote %q, want %q", got, want)
	}

	buf.Reset()
	h.Verbose = true
	h.HandleError(ForElement("session.SetChildren", KindProtocol, 3, stderrors.New("unknown element")))
	if !strings.Contains(buf.String(), "element=3") {
		t.Errorf("verbose output %q should name the element", buf.String())
	}

	buf.Reset()
	h.HandlePanic(&PanicError{Op: "inbound.Click", Value: "x"})
	if got, want := buf.String(), "[xframes panic] inbound.Click: x\n"; got != want {
		t.Errorf("HandlePanic wrote %q, want %q", got, want)
	}
}

func TestLogHandlerColor(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Out: &buf, Color: true}
	h.HandleError(New("op", KindPayload, stderrors.New("null")))
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("colored output %q should contain an escape sequence", buf.String())
	}
}

type testHandler struct {
	onError func(*BridgeError)
	onPanic func(*PanicError)
}

func (h *testHandler) HandleError(err *BridgeError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}

func TestCounts(t *testing.T) {
	SetHandler(&testHandler{})
	defer SetHandler(nil)
	ResetCounts()
	defer ResetCounts()

	Report(New("a", KindPayload, stderrors.New("x")))
	Report(ForElement("b", KindPayload, 3, stderrors.New("y")))
	Report(New("c", KindProtocol, stderrors.New("z")))
	func() {
		defer Recover("d")
		panic("boom")
	}()

	if got := Count(KindPayload); got != 2 {
		t.Errorf("Count(payload) = %d, want 2", got)
	}
	if got := Count(KindPanic); got != 1 {
		t.Errorf("Count(panic) = %d, want 1", got)
	}
	if got := Count(ErrorKind(99)); got != 0 {
		t.Errorf("Count(99) = %d, want 0", got)
	}
	want := map[ErrorKind]uint64{KindPayload: 2, KindProtocol: 1, KindPanic: 1}
	got := Counts()
	if len(got) != len(want) {
		t.Fatalf("Counts() = %v, want %v", got, want)
	}
	for k, n := range want {
		if got[k] != n {
			t.Errorf("Counts()[%v] = %d, want %d", k, got[k], n)
		}
	}
}

func TestCaptureStackSkipsHelperFrames(t *testing.T) {
	stack := CaptureStack()
	if !strings.Contains(stack, "errors.TestCaptureStackSkipsHelperFrames") {
		t.Errorf("stack does not include the caller:\n%s", stack)
	}
	if strings.Contains(stack, "errors.CaptureStack") {
		t.Errorf("stack includes CaptureStack itself:\n%s", stack)
	}
}

func TestRecoverStackStartsAtPanic(t *testing.T) {
	var got *PanicError
	SetHandler(&testHandler{onPanic: func(err *PanicError) { got = err }})
	defer SetHandler(nil)
	defer ResetCounts()

	func() {
		defer Recover("test.panic")
		panic("boom")
	}()
	if got == nil {
		t.Fatal("panic was not reported")
	}
	stack := got.StackTrace
	if !strings.Contains(stack, "errors.TestRecoverStackStartsAtPanic") {
		t.Errorf("stack does not include the panicking caller:\n%s", stack)
	}
	for _, helper := range []string{"errors.Recover", "errors.CaptureStack", "runtime.gopanic"} {
		if strings.Contains(stack, helper) {
			t.Errorf("stack includes %s:\n%s", helper, stack)
		}
	}
}

func TestSkipFrame(t *testing.T) {
	tests := []struct {
		fn   string
		want bool
	}{
		{pkgPrefix + "CaptureStack", true},
		{pkgPrefix + "Recover", true},
		{pkgPrefix + "Report", true},
		{pkgPrefix + "ReportPanic", true},
		{"runtime.gopanic", true},
		{pkgPrefix + "TestSkipFrame", false},
		{pkgPrefix + "New", false},
		{"github.com/go-xframes/xframes/pkg/boundary.(*Inbound).Click", false},
	}
	for _, tt := range tests {
		if got := skipFrame(tt.fn); got != tt.want {
			t.Errorf("skipFrame(%q) = %v, want %v", tt.fn, got, tt.want)
		}
	}
}
