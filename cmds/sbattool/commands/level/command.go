// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package level

import (
	"fmt"

	"github.com/linuxboot/sbat/cmds/sbattool/commands"
)

var _ commands.Command = (*Command)(nil)

// Command prints the SBAT level.
type Command struct {
	commands.LevelOptions
	commands.Output

	Format string `long:"format" description:"output format [text, json, csv]"`
}

// ShortDescription explains what this command does in one line
func (cmd *Command) ShortDescription() string {
	return "prints the SBAT level"
}

// LongDescription explains what this verb does (without limitation in amount of lines)
func (cmd *Command) LongDescription() string {
	return "Reads the SBAT level from efivarfs (or the file given with --level) and prints the revocations it holds."
}

// Execute is the main function here. It is responsible to
// start the execution of the command.
//
// `args` are the arguments left unused by verb itself and options.
func (cmd *Command) Execute(args []string) error {
	if len(args) != 0 {
		return commands.ErrArgs{Err: fmt.Errorf("there are extra arguments")}
	}
	format, err := commands.ParseFormat(cmd.Format)
	if err != nil {
		return err
	}

	l, err := cmd.Level()
	if err != nil {
		return err
	}

	w := cmd.Writer()
	switch format {
	case commands.FormatCSV:
		_, err = w.Write(l.Bytes())
		return err
	case commands.FormatJSON:
		return cmd.JSON(l)
	}
	t := l.Table()
	t.SetOutputMirror(w)
	t.Render()
	return nil
}
