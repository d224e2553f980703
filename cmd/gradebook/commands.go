// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jinterlante1206/gradebook/cmd/gradebook/config"
	"github.com/jinterlante1206/gradebook/cmd/gradebook/internal/app"
	"github.com/jinterlante1206/gradebook/cmd/gradebook/internal/grading"
	"github.com/jinterlante1206/gradebook/cmd/gradebook/internal/record"
	"github.com/jinterlante1206/gradebook/cmd/gradebook/internal/repository"
	"github.com/jinterlante1206/gradebook/pkg/logging"
	"github.com/jinterlante1206/gradebook/pkg/ux"
)

// cliState holds flag values and what PersistentPreRunE builds from them.
type cliState struct {
	configPath string
	dataFile   string
	verbose    bool
	kind       string

	cfg    config.GradebookConfig
	logger *logging.Logger
}

// newRootCmd builds the command tree. Each call returns an independent
// tree, so tests can execute commands without sharing flag state.
func newRootCmd() *cobra.Command {
	state := &cliState{}

	rootCmd := &cobra.Command{
		Use:   "gradebook",
		Short: "Interactive student grade manager",
		Long: `gradebook keeps student records in a flat text file and grades them
using the standard or graduate threshold table.

Run without a subcommand to open the interactive menu.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return state.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if state.logger != nil {
				_ = state.logger.Close()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, state)
		},
	}

	rootCmd.PersistentFlags().StringVar(&state.configPath, "config", "", "path to a YAML config file (created with defaults if missing)")
	rootCmd.PersistentFlags().StringVar(&state.dataFile, "data-file", "", "student records file (default \"students.txt\")")
	rootCmd.PersistentFlags().BoolVarP(&state.verbose, "verbose", "v", false, "write debug logs to stderr")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print every stored student record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, state)
		},
	}

	gradeCmd := &cobra.Command{
		Use:   "grade [marks]",
		Short: "Print the letter grade for a mark between 0 and 100",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGrade(cmd, state, args[0])
		},
	}
	gradeCmd.Flags().StringVar(&state.kind, "kind", grading.KindStandard.String(), "grading policy: standard or graduate")

	rootCmd.AddCommand(showCmd, gradeCmd)
	return rootCmd
}

// setup loads config, applies flag overrides and builds the logger.
func (s *cliState) setup(cmd *cobra.Command) error {
	cfg, created, err := config.Load(s.configPath)
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(cmd.ErrOrStderr(), "First run detected, created the config at %s\n", s.configPath)
	}

	if cmd.Flags().Changed("data-file") {
		cfg.DataFile = s.dataFile
	}
	if s.verbose {
		cfg.Log.Quiet = false
		cfg.Log.Level = logging.LevelDebug.String()
	}

	logCfg, err := cfg.LoggingConfig()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v, using info\n", err)
	}
	logCfg.Output = cmd.ErrOrStderr()

	s.cfg = cfg
	s.logger = logging.New(logCfg)
	s.logger.Debug("configuration loaded", "config", s.configPath, "data_file", cfg.DataFile)
	return nil
}

// newPrinter styles output only when writing to an interactive stdout.
func newPrinter(cmd *cobra.Command, forcePlain bool) *ux.Printer {
	w := cmd.OutOrStdout()
	if w == os.Stdout {
		return ux.NewStdoutPrinter(forcePlain)
	}
	return ux.NewPrinter(w, true)
}

func runInteractive(cmd *cobra.Command, s *cliState) error {
	session := app.New(app.Options{
		In:      cmd.InOrStdin(),
		Printer: newPrinter(cmd, s.cfg.Output.Plain),
		Store:   repository.New(s.cfg.DataFile, s.logger),
		Logger:  s.logger,
	})
	return session.Run(cmd.Context())
}

// runShow prints stored records without entering the menu. Unlike the
// menu, a load failure here is returned so the exit status reflects it.
func runShow(cmd *cobra.Command, s *cliState) error {
	printer := newPrinter(cmd, s.cfg.Output.Plain)

	records, err := repository.New(s.cfg.DataFile, s.logger).Load()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		printer.Line(app.MsgNoRecords)
		return nil
	}
	for _, rec := range records {
		if err := rec.Display(printer.Writer()); err != nil {
			return err
		}
	}
	return nil
}

func runGrade(cmd *cobra.Command, s *cliState, marksArg string) error {
	kind, err := grading.ParseKind(s.kind)
	if err != nil {
		return err
	}

	marks, err := strconv.ParseFloat(strings.TrimSpace(marksArg), 64)
	if err != nil {
		return fmt.Errorf("invalid marks %q: %w", marksArg, err)
	}

	rec, err := record.New(0, "", marks, kind)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%c\n", rec.Grade())
	return nil
}
