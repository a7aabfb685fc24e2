// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sbat

import (
	"bytes"

	"github.com/linuxboot/sbat/pkg/log"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Revocation is one line of an SBAT level: the minimum generation a
// component must have to be allowed to boot.
type Revocation struct {
	Name       string
	Generation string
}

// Minimum returns the minimum generation, 0 if it does not parse.
func (r Revocation) Minimum() uint32 {
	return ParseGeneration(r.Generation)
}

// Level is the platform's list of revocations. The same name may appear
// more than once; every occurrence is enforced.
type Level struct {
	Revocations []Revocation

	released bool
}

// Len returns the number of revocations. A released Level is empty.
func (l *Level) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Revocations)
}

// Release drops the revocations. Verify calls it once it has used the
// level, after which the Level can not be verified against again.
func (l *Level) Release() {
	if l == nil {
		return
	}
	l.Revocations = nil
	l.released = true
}

// Released tells whether Release was called.
func (l *Level) Released() bool {
	return l != nil && l.released
}

// Minimum returns the highest minimum generation listed for name.
func (l *Level) Minimum(name string) (uint32, bool) {
	var (
		highest uint32
		found   bool
	)
	if l == nil {
		return 0, false
	}
	for _, r := range l.Revocations {
		if r.Name != name {
			continue
		}
		if g := r.Minimum(); !found || g > highest {
			highest = g
		}
		found = true
	}
	return highest, found
}

// Bytes serializes the level in variable format, without comments.
func (l *Level) Bytes() []byte {
	var buf bytes.Buffer
	for _, r := range l.Revocations {
		buf.WriteString(r.Name)
		buf.WriteByte(',')
		buf.WriteString(r.Generation)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// ParseLevel parses SBAT level data as stored in the SbatLevel variable.
//
// Each line is "name,generation[,comment]". A leading UTF-8 byte order
// mark is skipped and parsing stops at the first NUL byte. The last line
// does not need a newline. Any malformed line fails the whole call with
// an error wrapping ErrInvalidParameter. Empty data yields an empty Level,
// which Verify rejects.
func ParseLevel(data []byte) (*Level, error) {
	l, err := parseLevel(data)
	if err != nil {
		log.Errorf("failed to parse SBAT variable: %v", err)
		return nil, err
	}
	for _, r := range l.Revocations {
		log.Debugf("component %s with generation %s", r.Name, r.Generation)
	}
	return l, nil
}

func parseLevel(data []byte) (*Level, error) {
	cur := data
	if bytes.HasPrefix(cur, utf8BOM) {
		cur = cur[len(utf8BOM):]
	}
	if i := bytes.IndexByte(cur, 0); i >= 0 {
		cur = cur[:i]
	}

	var revs []Revocation
	for line := 1; len(cur) > 0; line++ {
		var (
			fields [2][]byte
			delim  byte
		)
		for i := range fields {
			// A field ends at a comma only if that comma comes before the
			// end of the line; otherwise the next line's first field would
			// be swallowed.
			delim = ','
			if indexOrEnd(cur, '\n') <= indexOrEnd(cur, ',') {
				delim = '\n'
			}
			if i == 0 && delim == '\n' {
				return nil, &ParseError{What: "level", Line: line, Reason: "missing generation"}
			}
			field, rest, _, ok := nextField(cur, delim)
			if !ok || len(field) == 0 {
				return nil, &ParseError{What: "level", Line: line, Reason: "empty field"}
			}
			fields[i] = field
			cur = rest
		}
		if delim == ',' {
			// Anything after the second comma is a comment.
			_, cur, _, _ = nextField(cur, '\n')
		}
		revs = append(revs, Revocation{
			Name:       string(fields[0]),
			Generation: string(fields[1]),
		})
	}
	return &Level{Revocations: revs}, nil
}
