// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the settings shared by the sbat command line tools.
//
// A configuration file is optional. It is TOML, for example:
//
//	efivars = "/sys/firmware/efi/efivars"
//	variable = "SbatLevelRT"
//	vendor = "605DAB50-E046-4300-ABB6-3DD810DD8B23"
//	level_file = "/usr/share/sbat/level.csv.xz"
//	debug = true
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/linuxboot/sbat/pkg/efivar"
	"github.com/linuxboot/sbat/pkg/guid"
	"github.com/linuxboot/sbat/pkg/sbat"
)

// Config selects where the SBAT level is read from.
type Config struct {
	// EFIVars is the efivarfs mount point.
	EFIVars string `toml:"efivars"`
	// Variable is the name of the variable holding the level.
	Variable string `toml:"variable"`
	// Vendor is the GUID namespace of Variable.
	Vendor guid.GUID `toml:"vendor"`
	// LevelFile, if set, is read instead of efivarfs.
	LevelFile string `toml:"level_file"`
	Debug     bool   `toml:"debug"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		EFIVars:  efivar.DefaultDir,
		Variable: sbat.LevelVariable,
		Vendor:   guid.ShimLock,
	}
}

// Load reads the file at path over the defaults. Unknown keys are an
// error, so that a misspelt key is not silently ignored.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("config parse failed (%s): unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Variable == "" {
		return fmt.Errorf("variable must not be empty")
	}
	if c.LevelFile == "" && c.EFIVars == "" {
		return fmt.Errorf("one of efivars or level_file must be set")
	}
	return nil
}

// Store returns the variable store the configuration points at.
func (c Config) Store() sbat.VariableReader {
	if c.LevelFile != "" {
		return &efivar.File{Path: c.LevelFile, VarName: c.Variable}
	}
	return efivar.NewFS(c.EFIVars)
}

// LoadLevel reads and parses the configured SBAT level.
func (c Config) LoadLevel() (*sbat.Level, error) {
	return sbat.LoadNamedLevel(c.Store(), c.Variable, c.Vendor)
}

// Overrides are command line settings. Empty values leave the
// configuration as it is.
type Overrides struct {
	// Config is the path of a configuration file to start from.
	Config    string
	LevelFile string
	EFIVars   string
	Variable  string
	// Vendor is a GUID string.
	Vendor string
	Debug  bool
}

// Resolve loads o.Config over the defaults, if set, applies the other
// overrides on top and validates the result. Flags win over the file.
func Resolve(o Overrides) (Config, error) {
	cfg := Default()
	if o.Config != "" {
		var err error
		if cfg, err = Load(o.Config); err != nil {
			return Config{}, err
		}
	}
	if o.LevelFile != "" {
		cfg.LevelFile = o.LevelFile
	}
	if o.EFIVars != "" {
		cfg.EFIVars = o.EFIVars
	}
	if o.Variable != "" {
		cfg.Variable = o.Variable
	}
	if o.Vendor != "" {
		vendor, err := guid.Parse(o.Vendor)
		if err != nil {
			return Config{}, fmt.Errorf("invalid vendor: %w", err)
		}
		cfg.Vendor = vendor
	}
	cfg.Debug = cfg.Debug || o.Debug
	return cfg, cfg.Validate()
}
