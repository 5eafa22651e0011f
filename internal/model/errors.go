package model

import (
	"errors"
	"fmt"
)

var (
	// ErrParse is matched by every *ParseError.
	ErrParse = errors.New("parse error")
	// ErrSubstitution is matched by every *SubstitutionError.
	ErrSubstitution = errors.New("substitution error")
)

// ParseError reports source text a driver could not parse.
type ParseError struct {
	Line    int
	Column  int
	Offset  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Column, e.Message)
}

// Is makes errors.Is(err, ErrParse) hold.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// SubstitutionError reports a replacement referencing a name the match did not bind.
type SubstitutionError struct {
	Name   string
	Reason string
}

func (e *SubstitutionError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("substitution error: variable %q is not bound", e.Name)
	}

	return fmt.Sprintf("substitution error: variable %q: %s", e.Name, e.Reason)
}

// Is makes errors.Is(err, ErrSubstitution) hold.
func (e *SubstitutionError) Is(target error) bool {
	return target == ErrSubstitution
}
