// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sbat

import (
	"math"
)

// ParseGeneration parses a decimal component generation the way C's
// atoi does: leading white space and a single '+' are skipped, then the
// leading run of digits is the value and anything after it is ignored.
// So "4\r", "4 " and "+4" all parse as 4.
//
// No digits, a '-' sign or a value that does not fit in 32 bits yield 0.
// This is never an error: a component advertising garbage is simply
// treated as the oldest possible build.
func ParseGeneration(s string) uint32 {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	if i < len(s) && s[i] == '+' {
		i++
	}
	var g uint64
	for ; i < len(s) && '0' <= s[i] && s[i] <= '9'; i++ {
		g = g*10 + uint64(s[i]-'0')
		if g > math.MaxUint32 {
			return 0
		}
	}
	return uint32(g)
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
