// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sbat

import (
	"github.com/hashicorp/go-multierror"

	"github.com/linuxboot/sbat/pkg/log"
)

func checkArgs(s *Section, l *Level) error {
	if s == nil {
		return &ParseError{What: "section", Reason: "no section"}
	}
	if l.Len() == 0 {
		log.Debugf("SBAT variable not present or malformed")
		return &ParseError{What: "level", Reason: "level is empty or absent"}
	}
	return nil
}

// verifyEntry checks e against a single revocation. Revocations for other
// components are ignored.
func verifyEntry(e *Entry, r Revocation) error {
	if e.ComponentName != r.Name {
		return nil
	}
	log.Debugf("component %s has a matching SBAT variable entry, verifying", e.ComponentName)

	gen, minimum := e.Generation(), r.Minimum()
	if gen < minimum {
		log.Debugf("component %s, generation %d, was revoked by SBAT variable", e.ComponentName, gen)
		return &RevokedError{Component: e.ComponentName, Generation: gen, Minimum: minimum}
	}
	return nil
}

// Verify checks every entry of s against every revocation of l and
// returns an error wrapping ErrSecurityViolation at the first entry whose
// generation is below a matching minimum. Entries without a matching
// revocation are allowed.
//
// A nil section or an empty, absent or already released level is an
// error wrapping ErrInvalidParameter: no level never means nothing is
// revoked. In every other case Verify releases l before returning.
func Verify(s *Section, l *Level) error {
	if err := checkArgs(s, l); err != nil {
		return err
	}
	defer l.Release()

	for _, e := range s.Entries {
		for _, r := range l.Revocations {
			if err := verifyEntry(e, r); err != nil {
				log.Errorf("image did not pass SBAT verification: %v", err)
				return err
			}
		}
	}
	log.Debugf("all entries from SBAT section verified")
	return nil
}

// Audit is Verify without stopping at the first revoked entry: it
// returns every violation, aggregated in a *multierror.Error. Unlike
// Verify it leaves l untouched, so it suits reporting tools rather than
// boot decisions.
func Audit(s *Section, l *Level) error {
	if err := checkArgs(s, l); err != nil {
		return err
	}
	var result *multierror.Error
	for _, e := range s.Entries {
		for _, r := range l.Revocations {
			if err := verifyEntry(e, r); err != nil {
				result = multierror.Append(result, err)
			}
		}
	}
	return result.ErrorOrNil()
}
