// Package sltypes provides the Second Life primitive values that appear
// inside chat log lines together with prefix parsers for them.
//
// Every parser has the shape
//
//	func ParseX(s string) (value X, rest string, err error)
//
// It consumes a value from the start of s and returns the unconsumed
// remainder. A failed parse returns an error wrapping [ErrNoMatch] and
// leaves the caller free to try another alternative on the same input.
package sltypes

import "errors"

// ErrNoMatch is returned (wrapped) by every parser in this package when the
// input does not start with the expected value.
var ErrNoMatch = errors.New("sltypes: no match")
