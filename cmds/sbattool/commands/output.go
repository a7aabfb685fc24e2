// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Output is embedded by verbs that print. The zero value prints to
// os.Stdout.
type Output struct {
	out io.Writer
}

// SetOutput redirects the verb's output, for tests.
func (o *Output) SetOutput(w io.Writer) {
	o.out = w
}

// Writer returns the writer output goes to.
func (o *Output) Writer() io.Writer {
	if o.out == nil {
		return os.Stdout
	}
	return o.out
}

// JSON prints v as indented JSON.
func (o *Output) JSON(v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to marshal: %w", err)
	}
	_, err = fmt.Fprintf(o.Writer(), "%s\n", b)
	return err
}
