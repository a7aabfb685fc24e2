// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pesbat extracts the .sbat section from signed PE/COFF boot
// components such as shim, GRUB or systemd-boot.
package pesbat

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/saferwall/pe"

	"github.com/linuxboot/sbat/pkg/compression"
	"github.com/linuxboot/sbat/pkg/log"
)

// SectionName is the name of the section holding SBAT metadata.
const SectionName = ".sbat"

// ErrNoSection is returned for images without a .sbat section.
var ErrNoSection = errors.New("image has no " + SectionName + " section")

// Extract returns the contents of the .sbat section of a PE image.
//
// The section is cut at its virtual size when that is smaller than its
// raw size, and trailing NUL padding is dropped. The result does not
// alias data.
func Extract(data []byte) ([]byte, error) {
	// Fast skips data directories; section headers are still parsed.
	// Nothing is mapped for an in-memory image, so f is not closed.
	f, err := pe.NewBytes(data, &pe.Options{Fast: true})
	if err != nil {
		return nil, fmt.Errorf("unable to open PE image: %w", err)
	}
	if err := f.Parse(); err != nil {
		return nil, fmt.Errorf("unable to parse PE image: %w", err)
	}

	for _, s := range f.Sections {
		if sectionName(s.Header.Name) != SectionName {
			continue
		}
		size := s.Header.SizeOfRawData
		if v := s.Header.VirtualSize; v != 0 && v < size {
			size = v
		}
		start := uint64(s.Header.PointerToRawData)
		end := start + uint64(size)
		if end > uint64(len(data)) {
			return nil, fmt.Errorf("%s section [%#x, %#x) exceeds image size %#x", SectionName, start, end, len(data))
		}
		raw := bytes.TrimRight(data[start:end], "\x00")
		log.Debugf("%s section: offset %#x, %d bytes", SectionName, start, len(raw))
		return append([]byte(nil), raw...), nil
	}
	return nil, ErrNoSection
}

// ExtractFile is Extract for the image stored at path.
func ExtractFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	out, err := Extract(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

// ReadMetadata returns SBAT metadata from path, which may be a PE image
// or a raw section dump. Compressed files are decompressed first.
func ReadMetadata(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if data, err = compression.Unwrap(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if !bytes.HasPrefix(data, []byte("MZ")) {
		return data, nil
	}
	out, err := Extract(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

func sectionName(name [8]uint8) string {
	return string(bytes.TrimRight(name[:], "\x00"))
}
