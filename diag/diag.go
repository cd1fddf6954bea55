// Package diag defines the closed set of conditions raised while lexing,
// parsing and running a robot program, and the sinks that receive them.
package diag

import (
	"errors"
	"fmt"
)

type Kind int

const (
	SyntaxError Kind = iota + 1
	MissingEntryPoint
	UndeclaredVariable
	UndeclaredProcedure
	Redeclaration
	ConstantAssignment
	TypeMismatch
	UnexpectedType
	RecursionLimitExceeded
	LoopLimitExceeded
	IllegalCharacter
	UnexpectedInternal
)

var kindNames = map[Kind]string{
	SyntaxError:            "syntax error",
	MissingEntryPoint:      "missing entry point",
	UndeclaredVariable:     "undeclared variable",
	UndeclaredProcedure:    "undeclared procedure",
	Redeclaration:          "redeclaration",
	ConstantAssignment:     "constant assignment",
	TypeMismatch:           "type mismatch",
	UnexpectedType:         "unexpected type",
	RecursionLimitExceeded: "recursion limit exceeded",
	LoopLimitExceeded:      "loop limit exceeded",
	IllegalCharacter:       "illegal character",
	UnexpectedInternal:     "unexpected internal error",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Fatal reports whether a condition of this kind terminates the whole run.
func (k Kind) Fatal() bool {
	return k == LoopLimitExceeded || k == MissingEntryPoint
}

// Diagnostic is one emitted condition. Line is zero when no source position
// applies.
type Diagnostic struct {
	Kind    Kind
	Line    int
	Message string
}

func (d Diagnostic) String() string {
	msg := d.Kind.String()
	if d.Message != "" {
		msg += ": " + d.Message
	}
	if d.Line > 0 {
		return fmt.Sprintf("line %d: %s", d.Line, msg)
	}
	return msg
}

// Sink receives diagnostics. Implementations must not panic; the core never
// inspects a return value.
type Sink interface {
	Raise(d Diagnostic)
}

type SinkFunc func(d Diagnostic)

func (f SinkFunc) Raise(d Diagnostic) { f(d) }

// Discard drops everything.
var Discard Sink = SinkFunc(func(Diagnostic) {})

type multiSink []Sink

func (m multiSink) Raise(d Diagnostic) {
	for _, s := range m {
		s.Raise(d)
	}
}

// Multi fans a diagnostic out to every non-nil sink.
func Multi(sinks ...Sink) Sink {
	out := make(multiSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	if len(out) == 1 {
		return out[0]
	}
	return out
}

// Collector records diagnostics in emission order.
type Collector struct {
	items []Diagnostic
}

func (c *Collector) Raise(d Diagnostic) {
	c.items = append(c.items, d)
}

func (c *Collector) Diagnostics() []Diagnostic {
	return append([]Diagnostic(nil), c.items...)
}

func (c *Collector) Len() int {
	return len(c.items)
}

// Count returns how many diagnostics of kind k were recorded.
func (c *Collector) Count(k Kind) int {
	n := 0
	for _, d := range c.items {
		if d.Kind == k {
			n++
		}
	}
	return n
}

func (c *Collector) Has(k Kind) bool {
	return c.Count(k) > 0
}

func (c *Collector) Reset() {
	c.items = c.items[:0]
}

// Error carries a condition through Go error returns until a handler turns
// it into a Diagnostic.
type Error struct {
	Kind    Kind
	Line    int
	Message string
}

func Errorf(kind Kind, line int, format string, args ...any) *Error {
	return &Error{Kind: kind, Line: line, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return e.Diagnostic().String()
}

func (e *Error) Diagnostic() Diagnostic {
	return Diagnostic{Kind: e.Kind, Line: e.Line, Message: e.Message}
}

// KindOf extracts the condition kind from err.
func KindOf(err error) (Kind, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return 0, false
}

// IsFatal reports whether err carries a fatal condition.
func IsFatal(err error) bool {
	k, ok := KindOf(err)
	return ok && k.Fatal()
}

// AtLine fills in a missing line number on a condition.
func AtLine(err error, line int) error {
	var de *Error
	if errors.As(err, &de) && de.Line == 0 {
		de.Line = line
	}
	return err
}
