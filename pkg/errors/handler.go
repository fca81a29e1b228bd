package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync/atomic"
	"time"
)

// The handler and counters are read from renderer threads without locks.
type handlerBox struct{ h ErrorHandler }

var (
	current atomic.Pointer[handlerBox]

	reported [numKinds]atomic.Uint64
	panics   atomic.Uint64
)

func init() {
	current.Store(&handlerBox{NewLogHandler(false)})
}

// SetHandler installs h as the handler for every report.
// Pass nil to restore a LogHandler on stderr.
func SetHandler(h ErrorHandler) {
	if h == nil {
		h = NewLogHandler(false)
	}
	current.Store(&handlerBox{h})
}

// Handler returns the installed handler.
func Handler() ErrorHandler {
	return current.Load().h
}

// Report sends err to the handler and returns it, so call sites can report
// and return in one statement. A zero Timestamp is set to now.
func Report(err *BridgeError) *BridgeError {
	if err == nil {
		return nil
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	if k := err.Kind; k >= 0 && k < numKinds {
		reported[k].Add(1)
	}
	Handler().HandleError(err)
	return err
}

// ReportPanic sends a recovered panic to the handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	panics.Add(1)
	Handler().HandlePanic(err)
}

// Recover reports a panic instead of letting it unwind further. Callback
// entry points defer it so a panicking handler never unwinds into the
// renderer.
//
//	defer errors.Recover("inbound.Click")
func Recover(op string) {
	if r := recover(); r != nil {
		ReportPanic(&PanicError{
			Op:         op,
			Value:      r,
			StackTrace: CaptureStack(),
			Timestamp:  time.Now(),
		})
	}
}

// Count returns how many errors of kind have been reported. KindPanic counts
// recovered panics.
func Count(kind ErrorKind) uint64 {
	if kind == KindPanic {
		return panics.Load() + reported[KindPanic].Load()
	}
	if kind < 0 || kind >= numKinds {
		return 0
	}
	return reported[kind].Load()
}

// Counts returns the non-zero report counts by kind.
func Counts() map[ErrorKind]uint64 {
	out := make(map[ErrorKind]uint64)
	for k := ErrorKind(0); k < numKinds; k++ {
		if n := Count(k); n > 0 {
			out[k] = n
		}
	}
	return out
}

// ResetCounts zeroes every counter.
func ResetCounts() {
	for i := range reported {
		reported[i].Store(0)
	}
	panics.Store(0)
}

const pkgPrefix = "github.com/go-xframes/xframes/pkg/errors."

// skipFrame reports whether fn is one of the reporting helpers or part of
// the runtime's panic machinery.
func skipFrame(fn string) bool {
	if strings.HasPrefix(fn, "runtime.") {
		return true
	}
	name, ok := strings.CutPrefix(fn, pkgPrefix)
	if !ok {
		return false
	}
	switch name {
	case "CaptureStack", "Recover", "Report", "ReportPanic":
		return true
	}
	return false
}

// CaptureStack returns the caller's stack, without the reporting helpers or
// the runtime's panic machinery.
func CaptureStack() string {
	const maxDepth = 32
	var pcs [maxDepth]uintptr
	n := runtime.Callers(2, pcs[:])
	if n == 0 {
		return ""
	}

	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		frame, more := frames.Next()
		if !skipFrame(frame.Function) {
			fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		}
		if !more {
			break
		}
	}
	return sb.String()
}
