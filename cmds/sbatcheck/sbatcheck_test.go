// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	metadata = "sbat,1,SBAT Version,sbat,1,https://github.com/rhboot/shim/blob/main/SBAT.md\n" +
		"grub,3,Free Software Foundation,grub,2.06,https://www.gnu.org/software/grub/\n"
	allowing = "sbat,1,2022052400\ngrub,2\n"
	revoking = "sbat,1,2023012900\nshim,2\ngrub,4\n"
)

func write(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	image := write(t, dir, "sbat.csv", metadata)
	allow := write(t, dir, "allow.csv", allowing)
	revoke := write(t, dir, "revoke.csv", revoking)
	broken := write(t, dir, "broken.csv", "grub,3,Free Software Foundation\n")
	cfg := write(t, dir, "sbat.toml", "level_file = \""+revoke+"\"\n")

	// efivarfs prefixes the variable data with its attributes.
	efivars := t.TempDir()
	write(t, efivars, "SbatLevel-8be4df61-93ca-11d2-aa0d-00e098032b8c", "\x07\x00\x00\x00"+revoking)

	for _, tc := range []struct {
		name   string
		args   []string
		code   int
		stdout string
		stderr string
	}{
		{
			name:   "allowed",
			args:   []string{"--raw", "-l", allow, image},
			code:   exitOK,
			stdout: "Success",
		},
		{
			name:   "revoked",
			args:   []string{"--raw", "--level", revoke, image},
			code:   exitRevoked,
			stdout: "Security Violation",
			stderr: "grub",
		},
		{
			name:   "level_from_config",
			args:   []string{"-c", cfg, image},
			code:   exitRevoked,
			stdout: "Security Violation",
		},
		{
			name:   "flag_overrides_config",
			args:   []string{"-c", cfg, "-l", allow, image},
			code:   exitOK,
			stdout: "Success",
		},
		{
			name:   "malformed_metadata",
			args:   []string{"-l", allow, broken},
			code:   exitFailure,
			stdout: "Invalid Parameter",
		},
		{
			name:   "missing_level",
			args:   []string{"--efivars", t.TempDir(), image},
			code:   exitFailure,
			stdout: "Invalid Parameter",
		},
		{
			name:   "vendor",
			args:   []string{"--efivars", efivars, "--vendor", "8BE4DF61-93CA-11D2-AA0D-00E098032B8C", image},
			code:   exitRevoked,
			stdout: "Security Violation",
		},
		{
			name:   "default_vendor",
			args:   []string{"--efivars", efivars, image},
			code:   exitFailure,
			stdout: "Invalid Parameter",
		},
		{
			name:   "bad_vendor",
			args:   []string{"--efivars", efivars, "--vendor", "shim", image},
			code:   exitFailure,
			stderr: "invalid vendor",
		},
		{
			name:   "no_image",
			args:   []string{"-l", allow},
			code:   exitFailure,
			stderr: "usage",
		},
		{
			name: "unknown_flag",
			args: []string{"--bogus", image},
			code: exitFailure,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(tc.args, &stdout, &stderr)
			require.Equal(t, tc.code, code, "stdout: %s\nstderr: %s", stdout.String(), stderr.String())
			require.True(t, strings.Contains(stdout.String(), tc.stdout), stdout.String())
			require.True(t, strings.Contains(stderr.String(), tc.stderr), stderr.String())
		})
	}
}
