// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sbat

import (
	"github.com/linuxboot/sbat/pkg/guid"
	"github.com/linuxboot/sbat/pkg/log"
)

// Names of the variables holding the SBAT level. Both live in the
// guid.ShimLock namespace; SbatLevelRT is the runtime-visible mirror.
const (
	LevelVariable   = "SbatLevel"
	LevelRTVariable = "SbatLevelRT"
)

// VariableReader retrieves a trusted named value, such as a UEFI variable.
type VariableReader interface {
	ReadVariable(name string, vendor guid.GUID) ([]byte, error)
}

// LoadLevel reads and parses the SbatLevel variable.
//
// Errors from r are returned unchanged, so an absent variable keeps
// whatever error r uses for it. Parse failures wrap ErrInvalidParameter.
func LoadLevel(r VariableReader) (*Level, error) {
	return LoadNamedLevel(r, LevelVariable, guid.ShimLock)
}

// LoadNamedLevel is LoadLevel for an arbitrary variable.
func LoadNamedLevel(r VariableReader, name string, vendor guid.GUID) (*Level, error) {
	if r == nil {
		return nil, &ParseError{What: "level", Reason: "no variable store"}
	}
	data, err := r.ReadVariable(name, vendor)
	if err != nil {
		log.Errorf("Failed to read %s variable: %v", name, err)
		return nil, err
	}
	log.Debugf("%s variable data: %d bytes", name, len(data))
	return ParseLevel(data)
}
