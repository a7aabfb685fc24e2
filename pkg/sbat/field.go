// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sbat

import (
	"bytes"
)

// nextField splits cur at the first occurrence of delim.
//
// ok is false when there is no data left to produce a field from. When
// delim is found, field holds the bytes before it, rest the bytes after
// it and terminated is true. When delim is not found, field holds all of
// cur, rest is nil and terminated is false: the field ran into the end
// of the data. Whether that is acceptable is up to the caller.
//
// field aliases cur; the input is never modified.
func nextField(cur []byte, delim byte) (field, rest []byte, terminated, ok bool) {
	if len(cur) == 0 {
		return nil, nil, false, false
	}
	i := bytes.IndexByte(cur, delim)
	if i < 0 {
		return cur, nil, false, true
	}
	return cur[:i], cur[i+1:], true, true
}

// indexOrEnd is bytes.IndexByte, except that a missing c is reported as
// found at len(b).
func indexOrEnd(b []byte, c byte) int {
	if i := bytes.IndexByte(b, c); i >= 0 {
		return i
	}
	return len(b)
}
