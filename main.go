// This file is part of dwlocstat.
//
// dwlocstat is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// dwlocstat is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with dwlocstat.  If not, see <https://www.gnu.org/licenses/>.

// Command dwlocstat reports, for every variable and formal-parameter DIE
// of an ELF object's DWARF debug info, what percentage of its address
// range is covered by a location description.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jetsetilly/dwlocstat/internal/bucket"
	"github.com/jetsetilly/dwlocstat/internal/config"
	"github.com/jetsetilly/dwlocstat/internal/report"
	"github.com/jetsetilly/dwlocstat/internal/scan"
	"github.com/jetsetilly/dwlocstat/internal/xlog"
)

// errNoInputFile is returned by run when invoked with no FILE arguments; main
// checks for it specifically to print usage instead of a bare error line.
var errNoInputFile = errors.New("no input file specified")

var (
	cfgFile               string
	ignoreFlag            string
	dumpFlag              string
	tabulateFlag          string
	showProgress          bool
	ignoreImplicitPointer bool
)

var rootCmd = &cobra.Command{
	Use:   "dwlocstat FILE...",
	Short: "Report DWARF location-description coverage for ELF object files",
	Long: `dwlocstat examines the DWARF debug information of one or more ELF
object files and reports, for every variable and formal-parameter DIE,
what percentage of its address-range scope is covered by a location
description. Coverage is bucketed into a histogram controlled by
--tabulate.`,
	Args:          cobra.ArbitraryArgs,
	RunE:          run,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.dwlocstat.yaml)")
	flags.StringVar(&ignoreFlag, "ignore", "", "comma-separated list of CLASS to ignore")
	flags.StringVar(&dumpFlag, "dump", "", "comma-separated list of CLASS to dump to stderr")
	flags.StringVar(&tabulateFlag, "tabulate", "", "bucket rule, e.g. 10:10 (default \"0.0,10:10\")")
	flags.BoolVarP(&showProgress, "show-progress", "p", false, "show a per-compile-unit progress indicator on stderr")
	flags.BoolVar(&ignoreImplicitPointer, "ignore-implicit-pointer", false, "don't follow DW_OP_implicit_pointer to its target")

	cobra.OnInitialize(initConfig)
}

// initConfig reads a config file and environment variables, mirroring the
// cucaracha CLI's viper wiring; an explicit --tabulate flag always wins
// over whatever a config file supplies.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigType("yaml")
			viper.SetConfigName(".dwlocstat")
		}
	}

	viper.SetEnvPrefix("dwlocstat")
	viper.AutomaticEnv()
	viper.ReadInConfig()
}

func run(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return errNoInputFile
	}

	unknownClass := func(flag, bad string) {
		fmt.Fprintf(os.Stderr, "dwlocstat: --%s: unrecognised class %q\n", flag, bad)
	}
	cfg := config.FromFlags(args, ignoreFlag, dumpFlag, tabulateFlag, showProgress, ignoreImplicitPointer, unknownClass)

	log := xlog.New(os.Stderr)

	for i, path := range cfg.Files {
		if len(cfg.Files) > 1 {
			if i > 0 {
				fmt.Println()
			}
			fmt.Printf("%s:\n", path)
		}

		t, out := scan.File(path, cfg, log, os.Stderr, os.Stderr)
		if out.IsSkipFile() {
			log.Log(xlog.AlwaysAllow, "dwlocstat", out.Err)
			continue
		}

		rule := bucket.Parse(cfg.Tabulate, func(msg string) {
			fmt.Fprintf(os.Stderr, "dwlocstat: %s\n", msg)
		})
		if err := report.Write(os.Stdout, t, rule); err != nil {
			return err
		}
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errNoInputFile) {
			rootCmd.Help()
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
