// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/lassandro/gomano/pkg/assembler"
	"github.com/lassandro/gomano/pkg/encoding"
)

// Name of the configuration file looked up in the working directory when
// no path is given.
const DefaultFile = "gomano.toml"

type AssemblerConfig struct {
	Format  string `toml:"format"`
	Symbols bool   `toml:"symbols"`
}

type MachineConfig struct {
	MaxSteps    uint64   `toml:"max-steps"`
	Trace       bool     `toml:"trace"`
	Breakpoints []string `toml:"breakpoints"`
}

type Config struct {
	LogLevel  string          `toml:"log-level"`
	Assembler AssemblerConfig `toml:"assembler"`
	Machine   MachineConfig   `toml:"machine"`
}

func Default() *Config {
	return &Config{
		LogLevel: "info",
		Assembler: AssemblerConfig{
			Format:  "normal",
			Symbols: true,
		},
		Machine: MachineConfig{
			MaxSteps: 1000000,
		},
	}
}

// Load reads path over the defaults. An empty path reads DefaultFile if it
// exists; an explicit path must exist.
func Load(path string) (*Config, error) {
	config := Default()

	if path == "" {
		if _, err := os.Stat(DefaultFile); err != nil {
			return config, nil
		}

		path = DefaultFile
	}

	meta, err := toml.DecodeFile(path, config)

	if err != nil {
		return nil, errors.Wrapf(err, "loading config %s", path)
	}

	for _, key := range meta.Undecoded() {
		logrus.Warnf("%s: unknown configuration key %q", path, key.String())
	}

	if err := config.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}

	return config, nil
}

func (config *Config) Validate() error {
	if _, err := logrus.ParseLevel(config.LogLevel); err != nil {
		return err
	}

	if _, err := config.Format(); err != nil {
		return err
	}

	_, err := config.BreakpointAddrs()

	return err
}

func (config *Config) Format() (assembler.Format, error) {
	return assembler.ParseFormat(config.Assembler.Format)
}

// Decodes the configured breakpoints, which are hex addresses.
func (config *Config) BreakpointAddrs() ([]uint16, error) {
	addrs := make([]uint16, 0, len(config.Machine.Breakpoints))

	for _, s := range config.Machine.Breakpoints {
		addr, err := encoding.DecodeHex(s)

		if err != nil || addr > assembler.ADDRESS_MASK {
			return nil, errors.Errorf("invalid breakpoint address %q", s)
		}

		addrs = append(addrs, addr)
	}

	return addrs, nil
}
