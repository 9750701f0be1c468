package jsonschema

import "strings"

// Error is a single validation failure (spec §3.5). Errors form a
// singly-linked list in the order they were recorded; the list is
// caller-owned once a validate call returns it, and is released by
// FreeErrors (Go's GC does the actual reclaiming — FreeErrors exists to
// keep the public API symmetric with the C original's destroy pair).
type Error struct {
	Message string
	Path    string
	Next    *Error
}

// newError builds a path-less Error, for call sites that attach the path
// once the surrounding evaluation context is known.
func newError(message string) *Error {
	return &Error{Message: message}
}

// Error implements the error interface so an *Error can be returned or
// wrapped anywhere a plain Go error is expected.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Path == "" {
		return e.Message
	}
	return e.Path + ": " + e.Message
}

// errorList accumulates Errors during one evaluation, capping at MaxErrors
// (spec §4.4, default 10) and tracking whether the cap was hit so callers
// can tell a short list apart from a list that was truncated.
type errorList struct {
	head, tail *Error
	count      int
	max        int
	truncated  bool
}

func newErrorList(max int) *errorList {
	if max <= 0 {
		max = 10
	}
	return &errorList{max: max}
}

// add appends an error at path, unless the list is already at capacity.
func (l *errorList) add(path string, e *Error) {
	if e == nil || l.count >= l.max {
		if e != nil {
			l.truncated = true
		}
		return
	}
	e.Path = path
	if l.head == nil {
		l.head = e
		l.tail = e
	} else {
		l.tail.Next = e
		l.tail = e
	}
	l.count++
}

// addAll appends every error in a suppressed sub-evaluation's list, still
// subject to this list's cap. None of the combinator evaluators call it:
// allOf evaluates its children directly into the caller's list, and
// anyOf/oneOf/not/if report only their own summary error.
func (l *errorList) addAll(sub *errorList) {
	if sub == nil {
		return
	}
	for e := sub.head; e != nil; {
		next := e.Next
		e.Next = nil
		l.add(e.Path, e)
		e = next
	}
}

func (l *errorList) empty() bool { return l.head == nil }

func (l *errorList) first() *Error { return l.head }

// renderPath joins path tokens with "/" and a leading slash, escaping each
// token per RFC 6901 (spec §3.4, §9 "Path tracking" — this is the fix for
// the source's documented bug where the path buffer is never actually
// updated on descent).
func renderPath(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, t := range tokens {
		sb.WriteByte('/')
		sb.WriteString(escapePointerToken(t))
	}
	return sb.String()
}
