// Package ggraphErr defines the error kinds shared across the pipeline and
// their mapping to process exit codes.
package ggraphErr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies a pipeline failure so the CLI driver can pick an exit code
// without string-matching error text.
type Kind int

const (
	// KindUsage covers CLI flag validation failures.
	KindUsage Kind = iota
	// KindRepositoryNotFound means the path has no enclosing repository.
	KindRepositoryNotFound
	// KindInvalidModel covers regex compile failures and schema violations.
	KindInvalidModel
	// KindGitAccess covers underlying object-store failures.
	KindGitAccess
	// KindBadFormatSpec covers unknown placeholders or unterminated modifiers.
	KindBadFormatSpec
	// KindRender covers output-stream failures.
	KindRender
	// KindIO covers pager, clipboard, and other ambient I/O failures.
	KindIO
)

// ExitCode maps a failure kind to a process exit code: 0 success, 1 usage error,
// 2 repository not found, 3 model load failure, 4 other I/O error.
func (k Kind) ExitCode() int {
	switch k {
	case KindUsage:
		return 1
	case KindRepositoryNotFound:
		return 2
	case KindInvalidModel:
		return 3
	case KindGitAccess, KindBadFormatSpec, KindRender, KindIO:
		return 4
	default:
		return 4
	}
}

// Error is a typed pipeline error. It wraps an underlying cause with
// pkg/errors so callers can still unwrap to the root failure.
type Error struct {
	Kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Cause exposes the wrapped error for github.com/pkg/errors.Cause / errors.Is.
func (e *Error) Cause() error { return e.err }

// Unwrap supports the standard library errors.Is/As chain too.
func (e *Error) Unwrap() error { return e.err }

// New builds a bare Error with no wrapped cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, msg: msg}
}

// Wrap attaches msg and kind to an existing error, preserving the chain.
func Wrap(kind Kind, err error, msg string) *Error {
	return &Error{Kind: kind, msg: msg, err: errors.WithStack(err)}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, msg: fmt.Sprintf(format, args...), err: errors.WithStack(err)}
}

// InvalidModel builds a KindInvalidModel error naming the offending pattern
// and its 1-based position in its list.
func InvalidModel(list string, pos int, pattern string, cause error) *Error {
	return Wrapf(KindInvalidModel, cause, "invalid regex in %s[%d] (%q)", list, pos, pattern)
}
