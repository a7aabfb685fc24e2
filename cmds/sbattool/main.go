// Copyright 2017-2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// sbattool inspects and checks SBAT (Secure Boot Advanced Targeting) data.
//
// Synopsis:
//
//	sbattool show [--format=text|json|csv] [--with-level] IMAGE
//	sbattool level [--format=text|json|csv]
//	sbattool verify IMAGE...
//	sbattool audit IMAGE...
//
// Every verb that needs the SBAT level accepts:
//
//	-c, --config FILE   TOML configuration
//	-l, --level FILE    read the level from FILE instead of efivarfs
//	--efivars DIR       efivarfs mount point
//	--variable NAME     level variable, SbatLevel by default
//	--vendor GUID       namespace of the level variable
//	-d, --debug         enable debug prints
//
// An example:
//
//	sbattool show --with-level /boot/efi/EFI/debian/shimx64.efi
//	sbattool verify --level sbat_level.csv.xz /boot/efi/EFI/debian/grubx64.efi
//
// Description:
//
//	show:   Print the SBAT entries of an image
//	level:  Print the SBAT level
//	verify: Check images the way shim does, stopping at the first failure
//	audit:  Report every revoked component of the given images
package main

import (
	"github.com/jessevdk/go-flags"

	"github.com/linuxboot/sbat/cmds/sbattool/commands"
	"github.com/linuxboot/sbat/cmds/sbattool/commands/audit"
	"github.com/linuxboot/sbat/cmds/sbattool/commands/level"
	"github.com/linuxboot/sbat/cmds/sbattool/commands/show"
	"github.com/linuxboot/sbat/cmds/sbattool/commands/verify"
	"github.com/linuxboot/sbat/pkg/log"
)

var (
	knownCommands = map[string]commands.Command{
		"show":   &show.Command{},
		"level":  &level.Command{},
		"verify": &verify.Command{},
		"audit":  &audit.Command{},
	}
)

func main() {
	flagsParser := flags.NewParser(nil, flags.Default)
	for commandName, command := range knownCommands {
		_, err := flagsParser.AddCommand(commandName, command.ShortDescription(), command.LongDescription(), command)
		if err != nil {
			panic(err)
		}
	}

	// parse arguments and execute the appropriate command
	if _, err := flagsParser.Parse(); err != nil {
		if flags.WroteHelp(err) {
			return
		}
		log.Fatalf("%v", err)
	}
}
