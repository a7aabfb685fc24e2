// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package show

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/linuxboot/sbat/cmds/sbattool/commands"
	"github.com/linuxboot/sbat/pkg/pesbat"
	"github.com/linuxboot/sbat/pkg/sbat"
)

var _ commands.Command = (*Command)(nil)

// Command prints the SBAT metadata of an image.
type Command struct {
	commands.LevelOptions
	commands.Output

	Format    string `long:"format" description:"output format [text, json, csv]"`
	WithLevel bool   `long:"with-level" description:"annotate entries with the SBAT level"`
}

// ShortDescription explains what this command does in one line
func (cmd *Command) ShortDescription() string {
	return "prints the SBAT metadata of an image"
}

// LongDescription explains what this verb does (without limitation in amount of lines)
func (cmd *Command) LongDescription() string {
	return "Takes a PE image (or a raw .sbat dump, possibly compressed) and prints its SBAT entries. " +
		"With --with-level every entry is checked against the SBAT level."
}

// Execute is the main function here. It is responsible to
// start the execution of the command.
//
// `args` are the arguments left unused by verb itself and options.
func (cmd *Command) Execute(args []string) error {
	if len(args) != 1 {
		return commands.ErrArgs{Err: fmt.Errorf("expected exactly one image, got %d arguments", len(args))}
	}
	format, err := commands.ParseFormat(cmd.Format)
	if err != nil {
		return err
	}

	data, err := pesbat.ReadMetadata(args[0])
	if err != nil {
		return fmt.Errorf("unable to read SBAT metadata: %w", err)
	}
	sec, err := sbat.ParseSection(data)
	if err != nil {
		return err
	}

	var l *sbat.Level
	if cmd.WithLevel {
		if l, err = cmd.Level(); err != nil {
			return err
		}
	}

	w := cmd.Writer()
	switch format {
	case commands.FormatCSV:
		_, err = w.Write(sec.Bytes())
		return err
	case commands.FormatJSON:
		return cmd.JSON(sec)
	}
	t := sec.Table(l)
	t.SetOutputMirror(w)
	t.Render()
	fmt.Fprintf(w, "%s: %s of SBAT metadata\n", args[0], humanize.Bytes(uint64(len(data))))
	return nil
}
