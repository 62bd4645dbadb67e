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

package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/lassandro/gomano/pkg/assembler"
	"github.com/lassandro/gomano/pkg/encoding"
	"github.com/lassandro/gomano/pkg/machine"
)

var imagevar string

var disCmd = &cobra.Command{
	Use:   "dis [--image file | WORD...]",
	Short: "Disassemble hex words or an assembled image",
	RunE: func(cmd *cobra.Command, args []string) error {
		if imagevar != "" {
			if len(args) > 0 {
				return errors.New("--image does not take words")
			}

			return disassembleImage(cmd, imagevar)
		}

		if len(args) == 0 {
			return errors.New("no words to disassemble")
		}

		return disassembleWords(cmd, args)
	},
}

func init() {
	disCmd.Flags().StringVarP(
		&imagevar, "image", "i", "",
		"Disassemble every nonzero word of an assembled file",
	)
}

func disassembleWords(cmd *cobra.Command, args []string) error {
	stdout := cmd.OutOrStdout()

	for i, arg := range args {
		word, err := encoding.DecodeHex(arg)

		if err != nil {
			return errors.Wrapf(err, "word %d", i+1)
		}

		fmt.Fprintf(
			stdout, "%03x\t%04x\t%s\n",
			uint16(i)&assembler.ADDRESS_MASK, word, assembler.Disassemble(word),
		)
	}

	return nil
}

func disassembleImage(cmd *cobra.Command, path string) error {
	file, err := os.Open(path)

	if err != nil {
		return err
	}

	defer file.Close()

	img, err := machine.Load(file)

	if err != nil {
		return errors.Wrapf(err, "loading %s", path)
	}

	return assembler.DisassembleAll(img.Words[:], 0, cmd.OutOrStdout())
}
