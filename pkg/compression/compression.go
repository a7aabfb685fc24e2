// Copyright 2018 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compression implements reading and writing of compressed files.
//
// SBAT level and section dumps are small text files, but distributions
// ship them compressed next to other boot assets. Detect recognises the
// supported container formats by their magic number.
package compression

import (
	"bytes"
	"fmt"
	"io"
)

// MaxDecodedSize bounds the output of Decode, so that a tiny crafted
// input can not expand into an arbitrary amount of memory.
var MaxDecodedSize int64 = 16 << 20

// Compressor defines a single compression scheme (such as XZ).
type Compressor interface {
	// Name is typically the name of a class.
	Name() string

	// Decode and Encode obey "x == Decode(Encode(x))".
	Decode(encodedData []byte) ([]byte, error)
	Encode(decodedData []byte) ([]byte, error)
}

var magics = []struct {
	magic []byte
	new   func() Compressor
}{
	{[]byte{0xFD, '7', 'z', 'X', 'Z', 0x00}, func() Compressor { return &XZ{} }},
	{[]byte{0x28, 0xB5, 0x2F, 0xFD}, func() Compressor { return &ZSTD{} }},
	{[]byte{0x04, 0x22, 0x4D, 0x18}, func() Compressor { return &LZ4{} }},
}

// Detect returns the Compressor for data, or nil if data does not start
// with a known magic number.
func Detect(data []byte) Compressor {
	for _, m := range magics {
		if bytes.HasPrefix(data, m.magic) {
			return m.new()
		}
	}
	return nil
}

// Unwrap decodes data if it is compressed, and returns it as is otherwise.
func Unwrap(data []byte) ([]byte, error) {
	c := Detect(data)
	if c == nil {
		return data, nil
	}
	out, err := c.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.Name(), err)
	}
	return out, nil
}

// readAllLimited reads r up to MaxDecodedSize.
func readAllLimited(r io.Reader) ([]byte, error) {
	out, err := io.ReadAll(io.LimitReader(r, MaxDecodedSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(out)) > MaxDecodedSize {
		return nil, fmt.Errorf("decoded data exceeds %d bytes", MaxDecodedSize)
	}
	return out, nil
}
