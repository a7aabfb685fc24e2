// Copyright 2018 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package guid implements the mixed-endian GUID as implemented by Microsoft
// and used to namespace UEFI variables.
package guid

import (
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	// Size represents number of bytes in a GUID
	Size = 16
	// UExample is a example of a string GUID
	UExample  = "01234567-89AB-CDEF-0123-456789ABCDEF"
	strFormat = "%02X%02X%02X%02X-%02X%02X-%02X%02X-%02X%02X-%02X%02X%02X%02X%02X%02X"
)

// The first three groups are stored little-endian, the rest as-is.
var fields = [...]int{4, 2, 2, 1, 1, 1, 1, 1, 1, 1, 1}

// GUID represents a unique identifier.
type GUID [Size]byte

// Well-known vendor GUIDs.
var (
	// ShimLock namespaces the variables owned by shim, among them the
	// SBAT revocation level.
	ShimLock = MustParse("605DAB50-E046-4300-ABB6-3DD810DD8B23")
	// GlobalVariable is the EFI_GLOBAL_VARIABLE namespace.
	GlobalVariable = MustParse("8BE4DF61-93CA-11D2-AA0D-00E098032B8C")
)

func reverse(b []byte) {
	for i := 0; i < len(b)/2; i++ {
		other := len(b) - i - 1
		b[other], b[i] = b[i], b[other]
	}
}

func swapFields(u *GUID) {
	i := 0
	for _, fieldlen := range fields {
		reverse(u[i : i+fieldlen])
		i += fieldlen
	}
}

// Parse parses a guid string. Hyphens are optional, case is ignored.
func Parse(s string) (GUID, error) {
	var u GUID
	decoded, err := hex.DecodeString(strings.ReplaceAll(s, "-", ""))
	if err != nil {
		return u, fmt.Errorf("guid string %q not correct, need string of the format %v", s, UExample)
	}
	if len(decoded) != Size {
		return u, fmt.Errorf("guid string %q has incorrect length, need string of the format %v", s, UExample)
	}
	copy(u[:], decoded)
	swapFields(&u)
	return u, nil
}

// MustParse parses a guid string or panics.
func MustParse(s string) GUID {
	u, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}

// String returns the canonical upper case form.
func (u GUID) String() string {
	// Value receiver, so swapping does not touch the caller's copy.
	swapFields(&u)
	b := make([]interface{}, Size)
	for i := range u {
		b[i] = u[i]
	}
	return fmt.Sprintf(strFormat, b...)
}

// VarSuffix returns the lower case form efivarfs appends to variable names.
func (u GUID) VarSuffix() string {
	return strings.ToLower(u.String())
}

// MarshalText implements encoding.TextMarshaler.
func (u GUID) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, which lets a GUID
// be read straight from configuration files.
func (u *GUID) UnmarshalText(b []byte) error {
	g, err := Parse(string(b))
	if err != nil {
		return err
	}
	*u = g
	return nil
}
