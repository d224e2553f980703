// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package app runs the interactive student grade menu.
//
// # State Machine
//
//	Menu ──1──> AddStandard ──┐
//	     ──2──> AddGraduate ──┤
//	     ──3──> ShowAll ──────┼──> Menu
//	     ──4──> SaveAndExit ──┘ (on save failure)
//	                 │
//	                 └──> Exited (on success)
//
// Everything runs on the caller's goroutine. The record set is owned by
// the App and only changes when a record is added.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jinterlante1206/gradebook/cmd/gradebook/internal/grading"
	"github.com/jinterlante1206/gradebook/cmd/gradebook/internal/record"
	"github.com/jinterlante1206/gradebook/pkg/logging"
	"github.com/jinterlante1206/gradebook/pkg/ux"
)

// Console text shown to the user.
const (
	MenuTitle        = "--- Student Grade System ---"
	MenuPrompt       = "Enter choice: "
	MsgNotANumber    = "Invalid input! Enter number 1-4."
	MsgInvalidChoice = "Invalid choice!"
	MsgAdded         = "Student added!"
	MsgNoRecords     = "No students yet"
	MsgSaved         = "Data saved!"
	MsgExiting       = "Exiting program..."
	MsgInputClosed   = "Input closed, exiting without saving."
	PromptID         = "ID: "
	PromptName       = "Name: "
	PromptMarks      = "Marks: "
)

// Choice is a menu selection.
type Choice int

const (
	ChoiceAddStandard Choice = iota + 1
	ChoiceAddGraduate
	ChoiceShowAll
	ChoiceSaveAndExit
)

// menuItems lists the menu in display order.
var menuItems = []struct {
	choice Choice
	label  string
}{
	{ChoiceAddStandard, "Add Student"},
	{ChoiceAddGraduate, "Add Graduate Student"},
	{ChoiceShowAll, "Show Students"},
	{ChoiceSaveAndExit, "Save & Exit"},
}

var (
	// ErrNotANumber is returned by ParseChoice for non-integer input.
	ErrNotANumber = errors.New("menu choice is not a number")

	// ErrInvalidChoice is returned by ParseChoice for integers outside 1-4.
	ErrInvalidChoice = errors.New("menu choice out of range")
)

// ParseChoice converts a menu entry to a Choice.
//
// # Outputs
//
//   - Choice: The selection when err is nil
//   - error: ErrNotANumber or ErrInvalidChoice
func ParseChoice(input string) (Choice, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, input)
	}
	c := Choice(n)
	if c < ChoiceAddStandard || c > ChoiceSaveAndExit {
		return 0, fmt.Errorf("%w: %d", ErrInvalidChoice, n)
	}
	return c, nil
}

// Store is the persistence the menu depends on.
// *repository.FileRepository satisfies it.
type Store interface {
	Load() ([]record.Record, error)
	Save(records []record.Record) error
}

// Options configures an App.
type Options struct {
	// In supplies user input. Required.
	In io.Reader

	// Printer receives all console output. Required.
	Printer *ux.Printer

	// Store loads records at startup and saves them on exit. Required.
	Store Store

	// Logger receives diagnostics. nil discards them.
	Logger *logging.Logger
}

// App is one interactive session.
type App struct {
	in        *lineReader
	printer   *ux.Printer
	store     Store
	logger    *logging.Logger
	sessionID string
	records   []record.Record
}

// New creates an App. Nothing is read or loaded until Run.
func New(opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	sessionID := uuid.New().String()

	return &App{
		in:        newLineReader(opts.In),
		printer:   opts.Printer,
		store:     opts.Store,
		logger:    logger.With("session_id", sessionID),
		sessionID: sessionID,
		records:   []record.Record{},
	}
}

// SessionID identifies this session in logs.
func (a *App) SessionID() string {
	return a.sessionID
}

// Records returns a copy of the current record set.
func (a *App) Records() []record.Record {
	out := make([]record.Record, len(a.records))
	copy(out, a.records)
	return out
}

// Run loads stored records and drives the menu until the user saves and
// exits or input ends.
//
// # Description
//
// A load failure is reported and the session starts empty. Invalid
// input and failed saves are reported and the menu is shown again.
//
// # Outputs
//
//   - error: nil after Save & Exit or end of input; ctx.Err() when the
//     context is cancelled; any other input read error
func (a *App) Run(ctx context.Context) error {
	a.loadRecords()
	a.logger.Info("session started", "records", len(a.records))

	for {
		a.showMenu()

		choice, err := a.readChoice(ctx)
		if err != nil {
			return a.endOfInput(err)
		}
		a.logger.Debug("menu choice", "choice", int(choice))

		var exit bool
		switch choice {
		case ChoiceAddStandard:
			err = a.addRecord(ctx, grading.KindStandard)
		case ChoiceAddGraduate:
			err = a.addRecord(ctx, grading.KindGraduate)
		case ChoiceShowAll:
			err = a.showAll()
		case ChoiceSaveAndExit:
			exit = a.saveAndExit()
		}
		if err != nil {
			return a.endOfInput(err)
		}
		if exit {
			a.logger.Info("session ended", "records", len(a.records))
			return nil
		}
	}
}

func (a *App) loadRecords() {
	records, err := a.store.Load()
	if err != nil {
		a.logger.Warn("load failed, starting empty", "error", err)
		a.printer.Warning("File loading error: " + err.Error())
		return
	}
	a.records = records
}

func (a *App) showMenu() {
	a.printer.Line("")
	a.printer.Title(MenuTitle)
	for _, item := range menuItems {
		a.printer.Line(fmt.Sprintf("%d. %s", item.choice, item.label))
	}
	a.printer.Prompt(MenuPrompt)
}

// readChoice reads until a valid selection arrives. Blank lines are
// skipped; anything else that is not 1-4 is reported and discarded.
func (a *App) readChoice(ctx context.Context) (Choice, error) {
	for {
		line, err := a.in.ReadLine(ctx)
		if err != nil {
			return 0, err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		choice, err := ParseChoice(line)
		switch {
		case err == nil:
			return choice, nil
		case errors.Is(err, ErrNotANumber):
			a.printer.Error(MsgNotANumber)
		default:
			a.printer.Error(MsgInvalidChoice)
			a.showMenu()
		}
	}
}

// addRecord prompts for id, name and marks. Invalid values are reported
// and nothing is added; only input read errors are returned.
func (a *App) addRecord(ctx context.Context, kind grading.Kind) error {
	a.printer.Prompt(PromptID)
	idText, err := a.in.ReadLine(ctx)
	if err != nil {
		return err
	}
	id, err := strconv.ParseInt(strings.TrimSpace(idText), 10, 32)
	if err != nil {
		a.printer.Error(fmt.Sprintf("Error: invalid ID %q", strings.TrimSpace(idText)))
		return nil
	}

	a.printer.Prompt(PromptName)
	name, err := a.in.ReadLine(ctx)
	if err != nil {
		return err
	}

	a.printer.Prompt(PromptMarks)
	marksText, err := a.in.ReadLine(ctx)
	if err != nil {
		return err
	}
	marks, err := strconv.ParseFloat(strings.TrimSpace(marksText), 64)
	if err != nil {
		a.printer.Error(fmt.Sprintf("Error: invalid marks %q", strings.TrimSpace(marksText)))
		return nil
	}

	rec, err := record.New(int(id), name, marks, kind)
	if err != nil {
		a.logger.Debug("record rejected", "id", id, "error", err)
		a.printer.Error("Error: " + err.Error())
		return nil
	}

	a.records = append(a.records, rec)
	a.logger.Info("record added", "id", rec.ID(), "kind", kind.String())
	a.printer.Success(MsgAdded)
	return nil
}

func (a *App) showAll() error {
	if len(a.records) == 0 {
		a.printer.Line(MsgNoRecords)
		return nil
	}
	for _, rec := range a.records {
		if err := rec.Display(a.printer.Writer()); err != nil {
			return fmt.Errorf("display record %d: %w", rec.ID(), err)
		}
	}
	return nil
}

// saveAndExit saves synchronously. It reports whether the session should
// end; a failed save keeps the session open so the user can retry.
func (a *App) saveAndExit() bool {
	if err := a.store.Save(a.records); err != nil {
		a.logger.Error("save failed", "error", err)
		a.printer.Error("File saving error: " + err.Error())
		return false
	}
	a.printer.Success(MsgSaved)
	a.printer.Line(MsgExiting)
	return true
}

// endOfInput turns a read error into Run's result.
func (a *App) endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		a.printer.Line("")
		a.printer.Warning(MsgInputClosed)
		a.logger.Info("input closed", "records", len(a.records))
		return nil
	}
	return err
}
