// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package verify

import (
	"fmt"

	"github.com/linuxboot/sbat/cmds/sbattool/commands"
	"github.com/linuxboot/sbat/pkg/pesbat"
	"github.com/linuxboot/sbat/pkg/sbat"
)

var _ commands.Command = (*Command)(nil)

// Command decides whether images may boot under the SBAT level.
type Command struct {
	commands.LevelOptions
	commands.Output
}

// ShortDescription explains what this command does in one line
func (cmd *Command) ShortDescription() string {
	return "verifies images against the SBAT level"
}

// LongDescription explains what this verb does (without limitation in amount of lines)
func (cmd *Command) LongDescription() string {
	return "Checks the SBAT metadata of every image given against the SBAT level, " +
		"the way shim does before starting the next stage. Fails on the first image that is revoked or malformed."
}

// Execute is the main function here. It is responsible to
// start the execution of the command.
//
// `args` are the arguments left unused by verb itself and options.
func (cmd *Command) Execute(args []string) error {
	if len(args) == 0 {
		return commands.ErrArgs{Err: fmt.Errorf("no image given")}
	}
	cfg, err := cmd.Resolve()
	if err != nil {
		return err
	}

	for _, path := range args {
		data, err := pesbat.ReadMetadata(path)
		if err != nil {
			return fmt.Errorf("unable to read SBAT metadata: %w", err)
		}
		sec, err := sbat.ParseSection(data)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		// Verify consumes the level, so every image gets a fresh one.
		l, err := cfg.LoadLevel()
		if err != nil {
			return fmt.Errorf("unable to load the SBAT level: %w", err)
		}
		err = sbat.Verify(sec, l)
		status, _ := sbat.StatusOf(err)
		fmt.Fprintf(cmd.Writer(), "%s: %s\n", path, status)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}
