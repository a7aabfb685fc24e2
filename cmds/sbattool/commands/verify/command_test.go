// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package verify

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linuxboot/sbat/pkg/sbat"
)

func write(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestVerify(t *testing.T) {
	dir := t.TempDir()
	shim := write(t, dir, "shim.csv", "sbat,1,SBAT Version,sbat,1,https://github.com/rhboot/shim/blob/main/SBAT.md\n"+
		"shim,4,UEFI shim,shim,1,https://github.com/rhboot/shim\n")
	grub := write(t, dir, "grub.csv", "sbat,1,SBAT Version,sbat,1,https://github.com/rhboot/shim/blob/main/SBAT.md\n"+
		"grub,3,Free Software Foundation,grub,2.06,https://www.gnu.org/software/grub/\n")
	level := write(t, dir, "level.csv", "sbat,1,2023012900\nshim,2\ngrub,4\n")

	t.Run("allowed", func(t *testing.T) {
		var out bytes.Buffer
		cmd := &Command{}
		cmd.LevelFile = level
		cmd.SetOutput(&out)
		require.NoError(t, cmd.Execute([]string{shim, shim}))
		require.Equal(t, shim+": Success\n"+shim+": Success\n", out.String())
	})

	t.Run("stops_at_revoked", func(t *testing.T) {
		var out bytes.Buffer
		cmd := &Command{}
		cmd.LevelFile = level
		cmd.SetOutput(&out)
		err := cmd.Execute([]string{shim, grub, shim})
		require.ErrorIs(t, err, sbat.ErrSecurityViolation)
		require.Equal(t, shim+": Success\n"+grub+": Security Violation\n", out.String())
	})

	t.Run("no_level", func(t *testing.T) {
		cmd := &Command{}
		cmd.EFIVars = t.TempDir()
		require.Error(t, cmd.Execute([]string{shim}))
	})
}
