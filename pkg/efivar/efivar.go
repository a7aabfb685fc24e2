// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package efivar reads UEFI variables from efivarfs, from memory or from
// plain files. All stores satisfy sbat.VariableReader.
package efivar

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/linuxboot/sbat/pkg/compression"
	"github.com/linuxboot/sbat/pkg/guid"
)

// DefaultDir is where efivarfs is usually mounted.
const DefaultDir = "/sys/firmware/efi/efivars"

// ErrNotFound is returned for variables that do not exist. It matches
// os.ErrNotExist with errors.Is.
var ErrNotFound = fmt.Errorf("efi variable not found: %w", os.ErrNotExist)

// Attributes are the EFI_VARIABLE_* attribute bits.
type Attributes uint32

// Attribute bits
const (
	NonVolatile                       Attributes = 0x00000001
	BootServiceAccess                 Attributes = 0x00000002
	RuntimeAccess                     Attributes = 0x00000004
	HardwareErrorRecord               Attributes = 0x00000008
	AuthenticatedWriteAccess          Attributes = 0x00000010
	TimeBasedAuthenticatedWriteAccess Attributes = 0x00000020
	AppendWrite                       Attributes = 0x00000040
)

// Name returns the efivarfs file name of a variable.
func Name(name string, vendor guid.GUID) string {
	return name + "-" + vendor.VarSuffix()
}

// FS reads variables from an efivarfs mount.
type FS struct {
	Dir string
}

// NewFS returns an FS rooted at dir, DefaultDir if dir is empty.
func NewFS(dir string) *FS {
	if dir == "" {
		dir = DefaultDir
	}
	return &FS{Dir: dir}
}

// Read returns a variable's attributes and data.
func (fs *FS) Read(name string, vendor guid.GUID) (Attributes, []byte, error) {
	path := filepath.Join(fs.Dir, Name(name, vendor))
	buf, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	if err != nil {
		return 0, nil, err
	}
	// efivarfs prefixes the data with the attributes.
	if len(buf) < 4 {
		return 0, nil, fmt.Errorf("%s: short variable, %d bytes", path, len(buf))
	}
	return Attributes(binary.LittleEndian.Uint32(buf)), buf[4:], nil
}

// ReadVariable implements sbat.VariableReader.
func (fs *FS) ReadVariable(name string, vendor guid.GUID) ([]byte, error) {
	_, data, err := fs.Read(name, vendor)
	return data, err
}

// Map is an in-memory variable store keyed by Name.
type Map map[string][]byte

// Set stores a variable.
func (m Map) Set(name string, vendor guid.GUID, data []byte) {
	m[Name(name, vendor)] = data
}

// ReadVariable implements sbat.VariableReader.
func (m Map) ReadVariable(name string, vendor guid.GUID) ([]byte, error) {
	data, ok := m[Name(name, vendor)]
	if !ok {
		return nil, fmt.Errorf("%s: %w", Name(name, vendor), ErrNotFound)
	}
	return data, nil
}

// File serves the contents of Path as the variable VarName, whatever the
// vendor. Compressed files are decompressed transparently.
type File struct {
	Path    string
	VarName string
}

// ReadVariable implements sbat.VariableReader.
func (f *File) ReadVariable(name string, vendor guid.GUID) ([]byte, error) {
	if f.VarName != "" && name != f.VarName {
		return nil, fmt.Errorf("%s: %w", Name(name, vendor), ErrNotFound)
	}
	buf, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", f.Path, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return compression.Unwrap(buf)
}
