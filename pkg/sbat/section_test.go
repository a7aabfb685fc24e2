// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sbat

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestNextField(t *testing.T) {
	for _, tc := range []struct {
		name           string
		in             string
		delim          byte
		wantField      string
		wantRest       string
		wantTerminated bool
		wantOK         bool
	}{
		{name: "empty", in: "", delim: ',', wantOK: false},
		{name: "first", in: "a,b,c", delim: ',', wantField: "a", wantRest: "b,c", wantTerminated: true, wantOK: true},
		{name: "leading_delim", in: ",b", delim: ',', wantField: "", wantRest: "b", wantTerminated: true, wantOK: true},
		{name: "trailing_delim", in: "a\n", delim: '\n', wantField: "a", wantRest: "", wantTerminated: true, wantOK: true},
		{name: "unterminated", in: "abc", delim: ',', wantField: "abc", wantTerminated: false, wantOK: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			in := []byte(tc.in)
			field, rest, terminated, ok := nextField(in, tc.delim)
			require.Equal(t, tc.wantOK, ok)
			require.Equal(t, tc.wantTerminated, terminated)
			require.Equal(t, tc.wantField, string(field))
			require.Equal(t, tc.wantRest, string(rest))
			if !terminated {
				require.Nil(t, rest)
			}
			require.Equal(t, tc.in, string(in), "input modified")
		})
	}
}

func TestIndexOrEnd(t *testing.T) {
	require.Equal(t, 1, indexOrEnd([]byte("a,b"), ','))
	require.Equal(t, 3, indexOrEnd([]byte("abc"), ','))
	require.Equal(t, 0, indexOrEnd(nil, ','))
}

func TestParseSection(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		want []*Entry
	}{
		{
			name: "single_entry",
			in:   "test1,1,SBAT test1,acme,1,testURL\n",
			want: []*Entry{
				{"test1", "1", "SBAT test1", "acme", "1", "testURL"},
			},
		},
		{
			name: "multiple_entries",
			in:   "test1,1,SBAT test1,acme,1,testURL\ntest2,2,SBAT test2,acme2,2,testURL2\n",
			want: []*Entry{
				{"test1", "1", "SBAT test1", "acme", "1", "testURL"},
				{"test2", "2", "SBAT test2", "acme2", "2", "testURL2"},
			},
		},
		{
			name: "too_many_elem",
			in:   "test1,1,SBAT test1,acme,1,testURL,testURL2\n",
			want: []*Entry{
				{"test1", "1", "SBAT test1", "acme", "1", "testURL,testURL2"},
			},
		},
		{
			name: "too_many_elem_multiple_entries",
			in:   "test1,1,SBAT test1,acme,1,testURL\ntest2,2,SBAT test2,acme2,2,testURL2,test3\n",
			want: []*Entry{
				{"test1", "1", "SBAT test1", "acme", "1", "testURL"},
				{"test2", "2", "SBAT test2", "acme2", "2", "testURL2,test3"},
			},
		},
		{
			name: "shim",
			in: "sbat,1,SBAT Version,sbat,1,https://github.com/rhboot/shim/blob/main/SBAT.md\n" +
				"shim,1,UEFI shim,shim,1,https://github.com/rhboot/shim\n",
			want: []*Entry{
				{"sbat", "1", "SBAT Version", "sbat", "1", "https://github.com/rhboot/shim/blob/main/SBAT.md"},
				{"shim", "1", "UEFI shim", "shim", "1", "https://github.com/rhboot/shim"},
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			sec, err := ParseSection([]byte(tc.in))
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, sec.Entries); diff != "" {
				t.Errorf("ParseSection(%q) unexpected diff (-want +got):\n%s", tc.in, diff)
			}
			require.Equal(t, len(tc.want), sec.Len())
			require.Equal(t, tc.in, string(sec.Bytes()))
		})
	}
}

func TestParseSectionInvalid(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   []byte
	}{
		{name: "nil", in: nil},
		{name: "zero_size", in: []byte{}},
		{name: "only_terminator", in: []byte("\n")},
		{name: "no_newline", in: []byte("test1,1,SBAT test1,acme,1,testURL")},
		{name: "too_few_elem", in: []byte("test1,1,SBAT test1,acme,1\n")},
		{name: "no_newline_multiple_entries", in: []byte("test1,1,SBAT test1,acme,1,testURL\ntest2,2,SBAT test2,acme2,2,testURL2")},
		{name: "too_few_elem_multiple_entries", in: []byte("test1,1,SBAT test1,acme,1,testURL\ntest2,2,SBAT test2,acme2,2\n")},
		{name: "fields_split_across_lines", in: []byte("a,1,v,p\nb,2,v,p,ver,url\n")},
		{name: "blank_line", in: []byte("test1,1,SBAT test1,acme,1,testURL\n\n")},
		{name: "empty_name", in: []byte(",1,SBAT test1,acme,1,testURL\n")},
		{name: "empty_generation", in: []byte("test1,,SBAT test1,acme,1,testURL\n")},
		{name: "empty_url", in: []byte("test1,1,SBAT test1,acme,1,\n")},
		{name: "trailing_nul", in: []byte("test1,1,SBAT test1,acme,1,testURL\n\x00")},
	} {
		t.Run(tc.name, func(t *testing.T) {
			sec, err := ParseSection(tc.in)
			require.ErrorIs(t, err, ErrInvalidParameter)
			require.Nil(t, sec)
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			require.Equal(t, "section", perr.What)
			status, known := StatusOf(err)
			require.True(t, known)
			require.Equal(t, StatusInvalidParameter, status)
		})
	}
}

func TestParseSectionErrorLine(t *testing.T) {
	_, err := ParseSection([]byte("test1,1,SBAT test1,acme,1,testURL\ntest2,2,SBAT test2,acme2,2\n"))
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, 2, perr.Line)
	require.Contains(t, err.Error(), "vendor_url")
}

func TestParseSectionTooManyEntries(t *testing.T) {
	saved := MaxSectionEntries
	defer func() { MaxSectionEntries = saved }()
	MaxSectionEntries = 2

	var b strings.Builder
	for i := 0; i < 3; i++ {
		fmt.Fprintf(&b, "test%d,%d,SBAT test,acme,1,testURL\n", i, i)
	}

	sec, err := ParseSection([]byte(b.String()))
	require.ErrorIs(t, err, ErrOutOfResources)
	require.Nil(t, sec)
	status, _ := StatusOf(err)
	require.Equal(t, StatusOutOfResources, status)

	// Records past the limit are never parsed.
	b.WriteString("broken\n")
	_, err = ParseSection([]byte(b.String()))
	require.ErrorIs(t, err, ErrOutOfResources)

	// A malformed record before the limit is reported as such.
	_, err = ParseSection([]byte("test0,0,SBAT test,acme,1,testURL\nbroken\n" + b.String()))
	require.ErrorIs(t, err, ErrInvalidParameter)
	require.NotErrorIs(t, err, ErrOutOfResources)

	MaxSectionEntries = 3
	sec, err = ParseSection([]byte(strings.TrimSuffix(b.String(), "broken\n")))
	require.NoError(t, err)
	require.Equal(t, 3, sec.Len())
}

func TestParseSectionIndependentCopies(t *testing.T) {
	in := []byte("test1,1,SBAT test1,acme,1,testURL\ntest2,2,SBAT test2,acme2,2,testURL2\n")

	first, err := ParseSection(in)
	require.NoError(t, err)
	second, err := ParseSection(in)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("re-parse differs (-first +second):\n%s", diff)
	}
	require.NotSame(t, first.Entries[0], second.Entries[0])

	// The entries do not alias the input.
	copy(in, "XXXXX")
	require.Equal(t, "test1", first.Entries[0].ComponentName)
}

func TestEntry(t *testing.T) {
	e := &Entry{"grub", "3", "Free Software Foundation", "grub", "2.06", "https://www.gnu.org/software/grub/"}
	require.Equal(t, uint32(3), e.Generation())
	require.Equal(t, "grub,3,Free Software Foundation,grub,2.06,https://www.gnu.org/software/grub/", e.String())
	require.Len(t, e.Fields(), entryFields)
}

func TestParseGeneration(t *testing.T) {
	for in, want := range map[string]uint32{
		"0":           0,
		"1":           1,
		"42":          42,
		"007":         7,
		"4294967295":  4294967295,
		"4294967296":  0,
		"99999999999": 0,
		"2021030218":  2021030218,
		"-1":          0,
		"+1":          1,
		"++1":         0,
		" 1":          1,
		"\t\r\n 7":   7,
		"1a":          1,
		"4\r":        4,
		"4 ":          4,
		"12 34":       12,
		"abc":         0,
		"+":           0,
		" ":           0,
		"":            0,
	} {
		require.Equal(t, want, ParseGeneration(in), "ParseGeneration(%q)", in)
	}
}
