// Copyright 2017-2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package commands holds what the sbattool verbs share: the Command
// interface, argument errors, and the options selecting the SBAT level.
package commands

import (
	"fmt"
	"strings"

	"github.com/jessevdk/go-flags"

	"github.com/linuxboot/sbat/pkg/config"
	"github.com/linuxboot/sbat/pkg/log"
	"github.com/linuxboot/sbat/pkg/sbat"
)

// Command is an interface of implementations of verbs
// (like "show", "verify" etc of "sbattool show"/"sbattool verify")
type Command interface {
	flags.Commander

	// ShortDescription explains what this command does in one line
	ShortDescription() string

	// LongDescription explains what this verb does (without limitation in amount of lines)
	LongDescription() string
}

// ErrArgs means arguments are invalid
type ErrArgs struct {
	Err error
}

func (err ErrArgs) Error() string {
	return fmt.Sprintf("invalid arguments: %v", err.Err)
}

func (err ErrArgs) Unwrap() error {
	return err.Err
}

// LevelOptions select where the SBAT level comes from. Flags override
// the configuration file, which overrides the defaults.
type LevelOptions struct {
	Config    string `short:"c" long:"config" description:"path to a TOML configuration file"`
	LevelFile string `short:"l" long:"level" description:"read the SBAT level from this file instead of efivarfs"`
	EFIVars   string `long:"efivars" description:"efivarfs mount point"`
	Variable  string `long:"variable" description:"name of the SBAT level variable"`
	Vendor    string `long:"vendor" description:"GUID namespace of the SBAT level variable"`
	Debug     bool   `short:"d" long:"debug" description:"enable debug prints"`
}

// Resolve merges the configuration file and the flags.
func (o *LevelOptions) Resolve() (config.Config, error) {
	cfg, err := config.Resolve(config.Overrides{
		Config:    o.Config,
		LevelFile: o.LevelFile,
		EFIVars:   o.EFIVars,
		Variable:  o.Variable,
		Vendor:    o.Vendor,
		Debug:     o.Debug,
	})
	if err != nil {
		return config.Config{}, err
	}
	log.SetDebug(cfg.Debug)
	return cfg, nil
}

// Level resolves the options and loads the level they point at.
func (o *LevelOptions) Level() (*sbat.Level, error) {
	cfg, err := o.Resolve()
	if err != nil {
		return nil, err
	}
	l, err := cfg.LoadLevel()
	if err != nil {
		return nil, fmt.Errorf("unable to load the SBAT level: %w", err)
	}
	return l, nil
}

// Format is an output format.
type Format int

// Formats
const (
	FormatUndefined = Format(iota)
	FormatText
	FormatJSON
	FormatCSV
)

// ParseFormat parses a --format value, FormatText if s is empty.
func ParseFormat(s string) (Format, error) {
	switch strings.Trim(strings.ToLower(s), " ") {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	}
	return FormatUndefined, ErrArgs{Err: fmt.Errorf("unknown format '%s'", s)}
}
