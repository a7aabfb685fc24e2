// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// sbatcheck decides whether a boot component may run under the current
// SBAT level, the way shim does before starting it.
//
// Synopsis:
//
//	sbatcheck [-d] [-c config.toml] [-l level.csv] [--efivars DIR] [--variable NAME] [--vendor GUID] [--raw] IMAGE
//
// It prints the resulting status and exits 0 if the image may boot, 1 if
// it is revoked and 2 on any other failure.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/linuxboot/sbat/pkg/config"
	"github.com/linuxboot/sbat/pkg/log"
	"github.com/linuxboot/sbat/pkg/pesbat"
	"github.com/linuxboot/sbat/pkg/sbat"
)

// Exit codes.
const (
	exitOK      = 0
	exitRevoked = 1
	exitFailure = 2
)

var errUsage = errors.New("usage: sbatcheck [flags] IMAGE")

type options struct {
	config.Overrides
	raw bool
}

func parseArgs(args []string, stderr io.Writer) (*options, []string, error) {
	var o options
	fs := flag.NewFlagSet("sbatcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVarP(&o.Debug, "debug", "d", false, "enable debug prints")
	fs.StringVarP(&o.Config, "config", "c", "", "path to a TOML configuration file")
	fs.StringVarP(&o.LevelFile, "level", "l", "", "read the SBAT level from this file instead of efivarfs")
	fs.StringVar(&o.EFIVars, "efivars", "", "efivarfs mount point")
	fs.StringVar(&o.Variable, "variable", "", "name of the SBAT level variable")
	fs.StringVar(&o.Vendor, "vendor", "", "GUID namespace of the SBAT level variable")
	fs.BoolVar(&o.raw, "raw", false, "IMAGE is a raw .sbat section, not a PE image")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if fs.NArg() != 1 {
		return nil, nil, errUsage
	}
	return &o, fs.Args(), nil
}

func check(o *options, path string) error {
	cfg, err := config.Resolve(o.Overrides)
	if err != nil {
		return err
	}
	log.SetDebug(cfg.Debug)

	var data []byte
	if o.raw {
		data, err = os.ReadFile(path)
	} else {
		data, err = pesbat.ReadMetadata(path)
	}
	if err != nil {
		return err
	}
	sec, err := sbat.ParseSection(data)
	if err != nil {
		return err
	}
	l, err := cfg.LoadLevel()
	if err != nil {
		return err
	}
	return sbat.Verify(sec, l)
}

func run(args []string, stdout, stderr io.Writer) int {
	o, rest, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintln(stderr, err)
		return exitFailure
	}

	err = check(o, rest[0])
	status, _ := sbat.StatusOf(err)
	fmt.Fprintf(stdout, "%s: %s\n", rest[0], status)
	switch {
	case err == nil:
		return exitOK
	case status == sbat.StatusSecurityViolation:
		fmt.Fprintln(stderr, err)
		return exitRevoked
	}
	fmt.Fprintln(stderr, err)
	return exitFailure
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
