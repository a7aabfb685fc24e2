// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sbat

import (
	"errors"
	"fmt"
)

// Status is the outcome of a parse or verify call as seen by the boot
// verification caller. Anything other than StatusSuccess means the
// component must not be booted.
type Status int

// Statuses
const (
	StatusSuccess Status = iota
	StatusInvalidParameter
	StatusOutOfResources
	StatusSecurityViolation
)

var statusName = map[Status]string{
	StatusSuccess:           "Success",
	StatusInvalidParameter:  "Invalid Parameter",
	StatusOutOfResources:    "Out of Resources",
	StatusSecurityViolation: "Security Violation",
}

func (s Status) String() string {
	if n, ok := statusName[s]; ok {
		return n
	}
	return "UNKNOWN"
}

// Sentinel errors, one per failing Status.
var (
	ErrInvalidParameter  = errors.New("invalid parameter")
	ErrOutOfResources    = errors.New("out of resources")
	ErrSecurityViolation = errors.New("security violation")
)

// StatusOf maps an error returned by this package onto the status
// taxonomy. known is false for errors that were passed through from a
// VariableReader.
func StatusOf(err error) (status Status, known bool) {
	switch {
	case err == nil:
		return StatusSuccess, true
	case errors.Is(err, ErrSecurityViolation):
		return StatusSecurityViolation, true
	case errors.Is(err, ErrOutOfResources):
		return StatusOutOfResources, true
	case errors.Is(err, ErrInvalidParameter):
		return StatusInvalidParameter, true
	}
	return StatusInvalidParameter, false
}

// ParseError describes malformed input. It unwraps to ErrInvalidParameter.
type ParseError struct {
	// What is being parsed, "section" or "level".
	What string
	// Line is the 1-based line of the offending record, 0 if the input
	// was rejected as a whole.
	Line   int
	Reason string
}

func (err *ParseError) Error() string {
	if err.Line == 0 {
		return fmt.Sprintf("malformed SBAT %s: %s", err.What, err.Reason)
	}
	return fmt.Sprintf("malformed SBAT %s, line %d: %s", err.What, err.Line, err.Reason)
}

// Unwrap returns ErrInvalidParameter.
func (err *ParseError) Unwrap() error {
	return ErrInvalidParameter
}

// LimitError reports that a collection could not grow any further. It
// unwraps to ErrOutOfResources.
type LimitError struct {
	Limit int
}

func (err *LimitError) Error() string {
	return fmt.Sprintf("SBAT section exceeds %d entries", err.Limit)
}

// Unwrap returns ErrOutOfResources.
func (err *LimitError) Unwrap() error {
	return ErrOutOfResources
}

// RevokedError reports a component whose generation is below the level's
// minimum. It unwraps to ErrSecurityViolation.
type RevokedError struct {
	Component  string
	Generation uint32
	Minimum    uint32
}

func (err *RevokedError) Error() string {
	return fmt.Sprintf("component %s, generation %d, was revoked by SBAT level (minimum generation %d)",
		err.Component, err.Generation, err.Minimum)
}

// Unwrap returns ErrSecurityViolation.
func (err *RevokedError) Unwrap() error {
	return ErrSecurityViolation
}
