// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sbat

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
)

// EntryState is the standing of an entry against a level.
type EntryState int

// States
const (
	EntryUnlisted EntryState = iota
	EntryAllowed
	EntryRevoked
)

var entryStateName = map[EntryState]string{
	EntryUnlisted: "unlisted",
	EntryAllowed:  "allowed",
	EntryRevoked:  "REVOKED",
}

func (s EntryState) String() string {
	if n, ok := entryStateName[s]; ok {
		return n
	}
	return "UNKNOWN"
}

// State tells how e fares against l, which may be nil.
func (e *Entry) State(l *Level) EntryState {
	if l == nil {
		return EntryUnlisted
	}
	m, ok := l.Minimum(e.ComponentName)
	switch {
	case !ok:
		return EntryUnlisted
	case e.Generation() < m:
		return EntryRevoked
	default:
		return EntryAllowed
	}
}

// Table returns a table of the section's entries. When l is not nil
// every entry is annotated with its minimum generation and state.
func (s *Section) Table(l *Level) table.Writer {
	t := table.NewWriter()
	t.SetTitle("SBAT section, %d entries", s.Len())
	header := table.Row{"Component", "Generation", "Vendor", "Package", "Version", "URL"}
	if l != nil {
		header = append(header, "Minimum", "State")
	}
	t.AppendHeader(header)
	for _, e := range s.Entries {
		row := table.Row{e.ComponentName, e.ComponentGeneration, e.VendorName,
			e.VendorPackageName, e.VendorVersion, e.VendorURL}
		if l != nil {
			minimum := "-"
			if m, ok := l.Minimum(e.ComponentName); ok {
				minimum = fmt.Sprintf("%d", m)
			}
			row = append(row, minimum, e.State(l))
		}
		t.AppendRow(row)
	}
	return t
}

// Table returns a table of the level's revocations in listed order.
func (l *Level) Table() table.Writer {
	t := table.NewWriter()
	t.SetTitle("SBAT level, %d revocations", l.Len())
	t.AppendHeader(table.Row{"Component", "Minimum Generation"})
	for _, r := range l.Revocations {
		t.AppendRow(table.Row{r.Name, r.Generation})
	}
	return t
}
