package errors

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// LogHandler is an ErrorHandler that writes errors to a stream, stderr by default.
type LogHandler struct {
	// Out receives the log lines. Nil means os.Stderr.
	Out io.Writer
	// Verbose enables detailed output including stack traces.
	Verbose bool
	// Color enables ANSI coloring of the message prefix.
	Color bool
}

// NewLogHandler returns a LogHandler on stderr, colored when stderr is a terminal.
func NewLogHandler(verbose bool) *LogHandler {
	fd := os.Stderr.Fd()
	return &LogHandler{
		Verbose: verbose,
		Color:   isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
	}
}

func (h *LogHandler) out() io.Writer {
	if h.Out == nil {
		return os.Stderr
	}
	return h.Out
}

func (h *LogHandler) prefix(label string, attr color.Attribute) string {
	if !h.Color {
		return label
	}
	c := color.New(attr, color.Bold)
	c.EnableColor()
	return c.Sprint(label)
}

func (h *LogHandler) kindColor(kind ErrorKind) color.Attribute {
	switch kind {
	case KindPayload:
		return color.FgYellow
	case KindProtocol, KindNative:
		return color.FgRed
	default:
		return color.FgMagenta
	}
}

// HandleError logs a BridgeError.
func (h *LogHandler) HandleError(err *BridgeError) {
	if err == nil {
		return
	}
	w := h.out()
	p := h.prefix("[xframes "+err.Kind.String()+"]", h.kindColor(err.Kind))
	if h.Verbose {
		fmt.Fprintf(w, "%s %s", p, err.Op)
		if err.ElementID >= 0 {
			fmt.Fprintf(w, " element=%d", err.ElementID)
		}
		fmt.Fprintf(w, ": %v\n", err.Err)
		if err.StackTrace != "" {
			fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
		}
	} else {
		fmt.Fprintf(w, "%s %s: %v\n", p, err.Op, err.Err)
	}
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	w := h.out()
	p := h.prefix("[xframes panic]", color.FgRed)
	if err.Op != "" {
		fmt.Fprintf(w, "%s %s: %v\n", p, err.Op, err.Value)
	} else {
		fmt.Fprintf(w, "%s %v\n", p, err.Value)
	}
	if h.Verbose && err.StackTrace != "" {
		fmt.Fprintf(w, "Stack trace:\n%s\n", err.StackTrace)
	}
}
