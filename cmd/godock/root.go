/*
 * root.go, part of godock.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"godock/grid"
)

//usageError marks invalid input parameters, mapped to exit code 2.
type usageError struct{ err error }

func (u usageError) Error() string { return u.err.Error() }

func (u usageError) Unwrap() error { return u.err }

func usagef(format string, args ...interface{}) error {
	return usageError{fmt.Errorf(format, args...)}
}

var (
	flagConfig    string
	flagLogFormat string
	flagLogLevel  string

	logger *zap.Logger
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "godock",
		Short:         "consensus molecular docking pipeline",
		Version:       version + " (" + commit + ")",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = newLogger(flagLogFormat, flagLogLevel)
			if err != nil {
				return usageError{err}
			}
			return loadConfig(flagConfig)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: ./godock.yaml if present)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "console", "log format: console or json")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level: debug, info, warn or error")
	root.AddCommand(newDockCmd(), newPrepareCmd(), newDoctorCmd())
	return root
}

//Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newLogger(format, level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.Set(level); err != nil {
		return nil, fmt.Errorf("bad log level %q", level)
	}
	var cfg zap.Config
	switch format {
	case "json":
		cfg = zap.NewProductionConfig()
	case "console":
		cfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("bad log format %q, want console or json", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

//loadConfig reads the optional configuration file. Tunables live under
//the score, engine and grid keys; named binding pockets under pockets.
func loadConfig(path string) error {
	viper.SetDefault("score.plausible_bound", 50.0)
	viper.SetDefault("engine.timeout", "5m")
	viper.SetDefault("prep.ph", 7.4)
	viper.SetDefault("grid.min_size", 10.0)
	viper.SetDefault("grid.max_size", 60.0)
	viper.SetDefault("grid.default_size", 20.0)
	viper.SetDefault("grid.buffer", grid.DefaultBuffer)
	if path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return usagef("cannot read config %s: %v", path, err)
		}
		return nil
	}
	viper.SetConfigName("godock")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		//a missing default config is fine
		var nf viper.ConfigFileNotFoundError
		if errors.As(err, &nf) {
			return nil
		}
		return usagef("cannot read config: %v", err)
	}
	return nil
}
