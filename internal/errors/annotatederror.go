// Package errors extends the standard library errors with slog annotations and
// source information so that failures can be logged with full context.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
)

// AnnotatedError carries a message, optional slog attributes, the program
// counter of the construction site, and an optional wrapped error.
type AnnotatedError struct {
	msg   string
	attrs []slog.Attr
	pc    uintptr
	err   error
}

// NewSentinel creates an error meant to be used as a sentinel value for
// comparisons with [Is].
func NewSentinel(msg string) error {
	return &AnnotatedError{msg: msg, attrs: nil, pc: callerPC(1), err: nil}
}

// Wrap annotates err with a message and optional slog attributes.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	return &AnnotatedError{msg: msg, attrs: attrs, pc: callerPC(1), err: err}
}

// DecoratePanic converts a recovered panic value into an error pointing at the
// panicking frame instead of the recover machinery.
func DecoratePanic(excp any) error {
	var pcs [16]uintptr
	n := runtime.Callers(2, pcs[:]) //nolint:mnd // skip Callers and DecoratePanic.
	var pc uintptr
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if !strings.HasPrefix(frame.Function, "runtime.") && frame.PC != 0 {
			pc = frame.PC
			break
		}
		if !more {
			break
		}
	}
	return &AnnotatedError{msg: fmt.Sprintf("panic: %v", excp), attrs: nil, pc: pc, err: nil}
}

func (e *AnnotatedError) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *AnnotatedError) Unwrap() error {
	return e.err
}

// SlogError renders err as a group attribute containing the message, the
// annotations collected from the whole error chain, and the source location of
// the outermost annotated error.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}

	args := []any{slog.String("message", err.Error())}

	var (
		annotations []slog.Attr
		source      string
	)
	collectAnnotations(err, &annotations, &source)

	if source != "" {
		args = append(args, slog.String("source", source))
	}
	if len(annotations) > 0 {
		annotationArgs := make([]any, 0, len(annotations))
		for _, attr := range annotations {
			annotationArgs = append(annotationArgs, attr)
		}
		args = append(args, slog.Group("annotations", annotationArgs...))
	}

	return slog.Group("error", args...)
}

// collectAnnotations walks the error chain including joined errors and gathers
// annotations outermost first. The source is taken from the outermost
// annotated error that recorded a program counter.
func collectAnnotations(err error, annotations *[]slog.Attr, source *string) {
	for err != nil {
		var annotated *AnnotatedError
		if ok := errors.As(err, &annotated); !ok {
			return
		}
		*annotations = append(*annotations, annotated.attrs...)
		if *source == "" && annotated.pc != 0 {
			frame, _ := runtime.CallersFrames([]uintptr{annotated.pc}).Next()
			if frame.File != "" {
				*source = fmt.Sprintf("%s:%d", frame.File, frame.Line)
			}
		}
		if joined, ok := annotated.err.(interface{ Unwrap() []error }); ok {
			for _, inner := range joined.Unwrap() {
				collectAnnotations(inner, annotations, source)
			}
			return
		}
		err = annotated.err
	}
}

// callerPC returns the program counter skip frames above the caller.
func callerPC(skip int) uintptr {
	var pcs [1]uintptr
	if n := runtime.Callers(skip+2, pcs[:]); n == 0 { //nolint:mnd // skip Callers and callerPC.
		return 0
	}
	return pcs[0]
}

// The remaining functions mirror the standard library so that callers only
// need a single errors import.

func New(text string) error { return errors.New(text) }

func Is(err, target error) bool { return errors.Is(err, target) }

func As(err error, target any) bool { return errors.As(err, target) }

func Unwrap(err error) error { return errors.Unwrap(err) }

func Join(errs ...error) error { return errors.Join(errs...) }
