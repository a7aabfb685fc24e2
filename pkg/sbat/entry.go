// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sbat

import (
	"fmt"
	"strings"
)

// entryFieldNames lists the columns of a .sbat record in order.
var entryFieldNames = [...]string{
	"component_name",
	"component_generation",
	"vendor_name",
	"vendor_package_name",
	"vendor_version",
	"vendor_url",
}

const entryFields = len(entryFieldNames)

// Entry is one record of a .sbat section: a component's self-declared
// identity and generation. Entries are not modified after parsing.
type Entry struct {
	ComponentName       string
	ComponentGeneration string
	VendorName          string
	VendorPackageName   string
	VendorVersion       string
	VendorURL           string
}

// Generation returns the component generation, 0 if it does not parse.
func (e *Entry) Generation() uint32 {
	return ParseGeneration(e.ComponentGeneration)
}

// Fields returns the six fields in section order.
func (e *Entry) Fields() []string {
	return []string{
		e.ComponentName,
		e.ComponentGeneration,
		e.VendorName,
		e.VendorPackageName,
		e.VendorVersion,
		e.VendorURL,
	}
}

// String returns the entry as it appears in a .sbat section, without
// the trailing newline.
func (e *Entry) String() string {
	return strings.Join(e.Fields(), ",")
}

// parseEntry consumes one newline terminated record from cur and returns
// it together with the remaining data. The first five fields are comma
// delimited, the sixth runs to the end of the line and so may contain
// commas itself. line is only used for error reporting.
func parseEntry(cur []byte, line int) (*Entry, []byte, error) {
	record, rest, terminated, ok := nextField(cur, '\n')
	if !ok {
		return nil, nil, &ParseError{What: "section", Line: line, Reason: "no data"}
	}
	if !terminated {
		return nil, nil, &ParseError{What: "section", Line: line, Reason: "record is not newline terminated"}
	}

	var f [entryFields]string
	for i := 0; i < entryFields-1; i++ {
		field, tail, terminated, ok := nextField(record, ',')
		if !ok || !terminated {
			return nil, nil, &ParseError{What: "section", Line: line,
				Reason: fmt.Sprintf("missing %s", entryFieldNames[i+1])}
		}
		if len(field) == 0 {
			return nil, nil, &ParseError{What: "section", Line: line,
				Reason: fmt.Sprintf("empty %s", entryFieldNames[i])}
		}
		f[i] = string(field)
		record = tail
	}
	if len(record) == 0 {
		return nil, nil, &ParseError{What: "section", Line: line,
			Reason: fmt.Sprintf("empty %s", entryFieldNames[entryFields-1])}
	}
	f[entryFields-1] = string(record)

	return &Entry{
		ComponentName:       f[0],
		ComponentGeneration: f[1],
		VendorName:          f[2],
		VendorPackageName:   f[3],
		VendorVersion:       f[4],
		VendorURL:           f[5],
	}, rest, nil
}
