// Package errors wraps the standard library errors with slog annotations and the source location where an error
// was created or wrapped.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
)

type annotatedError struct {
	msg      string
	err      error
	attrs    []slog.Attr
	location string
}

func (e *annotatedError) Error() string {
	if e.err == nil {
		return e.msg
	}
	return e.msg + ": " + e.err.Error()
}

func (e *annotatedError) Unwrap() error {
	return e.err
}

// NewSentinel creates an error meant to be compared with [Is]. It carries no location because it is created at
// package initialisation.
func NewSentinel(msg string) error {
	return errors.New(msg) //nolint:err113 // sentinel constructor.
}

// New creates an error annotated with attrs and the caller's location.
func New(msg string, attrs ...slog.Attr) error {
	return &annotatedError{msg: msg, err: nil, attrs: attrs, location: callerLocation(2)} //nolint:mnd // caller of New.
}

// Wrap annotates err with a message, attrs and the caller's location.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	return &annotatedError{msg: msg, err: err, attrs: attrs, location: callerLocation(2)} //nolint:mnd // caller of Wrap.
}

// DecoratePanic converts a recovered panic value into an error located at the panicking line. It returns nil
// when excp is nil.
func DecoratePanic(excp any) error {
	if excp == nil {
		return nil
	}
	location := panicLocation()
	if err, ok := excp.(error); ok {
		return &annotatedError{msg: "panic", err: err, attrs: nil, location: location}
	}
	return &annotatedError{msg: fmt.Sprintf("panic: %v", excp), err: nil, attrs: nil, location: location}
}

// SlogError renders err as an slog group with the message, the location of the outermost annotation and every
// annotation attribute in the chain.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.Any("error", nil)
	}
	var (
		attrs    []slog.Attr
		location string
	)
	walk(err, func(ae *annotatedError) {
		if location == "" {
			location = ae.location
		}
		attrs = append(attrs, ae.attrs...)
	})

	group := []any{slog.String("message", err.Error())}
	if location != "" {
		group = append(group, slog.String("location", location))
	}
	if len(attrs) > 0 {
		group = append(group, slog.Attr{Key: "annotations", Value: slog.GroupValue(attrs...)})
	}
	return slog.Group("error", group...)
}

// walk visits every annotated error in the tree rooted at err, outermost first.
func walk(err error, visit func(*annotatedError)) {
	if err == nil {
		return
	}
	if ae, ok := err.(*annotatedError); ok { //nolint:errorlint // walking the tree manually.
		visit(ae)
	}
	switch u := err.(type) { //nolint:errorlint // walking the tree manually.
	case interface{ Unwrap() error }:
		walk(u.Unwrap(), visit)
	case interface{ Unwrap() []error }:
		for _, e := range u.Unwrap() {
			walk(e, visit)
		}
	}
}

func callerLocation(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	return file + ":" + strconv.Itoa(line)
}

// panicLocation finds the frame that called panic. It falls back to the caller of DecoratePanic.
func panicLocation() string {
	const maxDepth = 32
	pcs := make([]uintptr, maxDepth)
	n := runtime.Callers(3, pcs) //nolint:mnd // skip Callers, panicLocation and DecoratePanic.
	frames := runtime.CallersFrames(pcs[:n])
	var (
		fallback   string
		afterPanic bool
	)
	for {
		frame, more := frames.Next()
		location := frame.File + ":" + strconv.Itoa(frame.Line)
		if fallback == "" {
			fallback = location
		}
		if afterPanic {
			return location
		}
		if frame.Function == "runtime.gopanic" {
			afterPanic = true
		}
		if !more {
			break
		}
	}
	return fallback
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// Join returns an error that wraps the given errors.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
