// Package syncerr defines the error types the sync engine reports.
// Per-artifact failures (parse, validation) are collected and returned
// alongside successful results; only adapter contract violations and
// filesystem failures abort a run.
package syncerr

import (
	"fmt"
	"strings"
)

// ParseError reports a malformed canonical or tool artifact. It is scoped
// to a single file and never fatal to the run.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError reports frontmatter that parses but fails the kind or
// tool schema. Same scoping as ParseError.
type ValidationError struct {
	Path   string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validate %s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("validate %s: field %q: %s", e.Path, e.Field, e.Reason)
}

// UnsupportedOperationError reports a conversion an adapter declares it
// cannot perform, e.g. a root rule for a tool that has no root path in the
// requested scope. Fatal to that (tool, kind) pair only.
type UnsupportedOperationError struct {
	Tool  string
	Kind  string
	Scope string
	Op    string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("%s does not support %s for %s in %s scope", e.Tool, e.Op, e.Kind, e.Scope)
}

// List accumulates per-artifact errors for one batch. A nil or empty List
// means the batch fully succeeded.
type List []error

func (l List) Error() string {
	if len(l) == 0 {
		return "no errors"
	}
	msgs := make([]string, len(l))
	for i, err := range l {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Append adds err to the list if it is non-nil.
func (l List) Append(err error) List {
	if err == nil {
		return l
	}
	return append(l, err)
}
