// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package audit

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/linuxboot/sbat/cmds/sbattool/commands"
	"github.com/linuxboot/sbat/pkg/pesbat"
	"github.com/linuxboot/sbat/pkg/sbat"
)

var _ commands.Command = (*Command)(nil)

// Command lists every revoked component of a set of images.
type Command struct {
	commands.LevelOptions
	commands.Output
}

// ShortDescription explains what this command does in one line
func (cmd *Command) ShortDescription() string {
	return "lists every revoked component of the given images"
}

// LongDescription explains what this verb does (without limitation in amount of lines)
func (cmd *Command) LongDescription() string {
	return "Unlike verify, audit does not stop at the first problem: it reports every revoked " +
		"component and every unreadable image, and fails if there was any."
}

// Execute is the main function here. It is responsible to
// start the execution of the command.
//
// `args` are the arguments left unused by verb itself and options.
func (cmd *Command) Execute(args []string) error {
	if len(args) == 0 {
		return commands.ErrArgs{Err: fmt.Errorf("no image given")}
	}
	l, err := cmd.Level()
	if err != nil {
		return err
	}

	var result *multierror.Error
	for _, path := range args {
		if err := cmd.audit(path, l); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", path, err))
		}
	}
	return result.ErrorOrNil()
}

func (cmd *Command) audit(path string, l *sbat.Level) error {
	err := auditImage(path, l)
	var merr *multierror.Error
	if errors.As(err, &merr) {
		for _, e := range merr.Errors {
			fmt.Fprintf(cmd.Writer(), "%s: %v\n", path, e)
		}
		return err
	}
	status, _ := sbat.StatusOf(err)
	fmt.Fprintf(cmd.Writer(), "%s: %s\n", path, status)
	return err
}

func auditImage(path string, l *sbat.Level) error {
	data, err := pesbat.ReadMetadata(path)
	if err != nil {
		return err
	}
	sec, err := sbat.ParseSection(data)
	if err != nil {
		return err
	}
	return sbat.Audit(sec, l)
}
