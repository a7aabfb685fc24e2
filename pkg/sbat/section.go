// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sbat implements parsing and verification of SBAT (Secure Boot
// Advanced Targeting) data.
//
// A signed boot component carries a .sbat section listing the components
// it is built from and their generations. The platform holds a separately
// trusted SBAT level listing the minimum generation still allowed per
// component. A component whose declared generation is below that minimum
// has been revoked and must not boot.
//
// Every call in this package fails closed: malformed input is rejected as
// a whole, and no partially parsed collection is ever returned.
package sbat

import (
	"bytes"

	"github.com/linuxboot/sbat/pkg/log"
)

// MaxSectionEntries bounds the number of entries a Section may grow to.
// Parsing a section with more entries fails with ErrOutOfResources.
var MaxSectionEntries = 1024

// Section is the ordered list of entries parsed from a .sbat section.
type Section struct {
	Entries []*Entry
}

// Len returns the number of entries.
func (s *Section) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Entries)
}

// Bytes serializes the section back to its on-disk form.
func (s *Section) Bytes() []byte {
	var buf bytes.Buffer
	for _, e := range s.Entries {
		buf.WriteString(e.String())
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// ParseSection parses the contents of a .sbat section.
//
// data must end with a newline and hold more than that newline. Each line
// is parsed into an Entry; the first malformed line fails the whole call
// with an error wrapping ErrInvalidParameter. The returned entries do not
// alias data.
func ParseSection(data []byte) (*Section, error) {
	sec, err := parseSection(data)
	if err != nil {
		log.Errorf("Failed to parse SBAT data: %v", err)
		return nil, err
	}
	return sec, nil
}

func parseSection(data []byte) (*Section, error) {
	if len(data) == 0 {
		return nil, &ParseError{What: "section", Reason: "no data"}
	}
	if len(data) == 1 {
		return nil, &ParseError{What: "section", Reason: "section holds only a terminator"}
	}
	if data[len(data)-1] != '\n' {
		return nil, &ParseError{What: "section", Reason: "last record is not newline terminated"}
	}

	lines := bytes.Count(data, []byte{'\n'})
	if lines > MaxSectionEntries {
		lines = MaxSectionEntries
	}
	entries := make([]*Entry, 0, lines)

	cur := data
	for line := 1; len(cur) > 0; line++ {
		entry, rest, err := parseEntry(cur, line)
		if err != nil {
			return nil, err
		}
		if len(entries) >= MaxSectionEntries {
			return nil, &LimitError{Limit: MaxSectionEntries}
		}
		entries = append(entries, entry)
		cur = rest
	}
	return &Section{Entries: entries}, nil
}
