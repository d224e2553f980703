// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package ux provides terminal output styling for the gradebook CLI.
package ux

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Palette
var (
	ColorAccent  = lipgloss.Color("#20B9B4")
	ColorSuccess = lipgloss.Color("#2CD7C7")
	ColorWarning = lipgloss.Color("#F4D03F")
	ColorError   = lipgloss.Color("#E74C3C")
	ColorMuted   = lipgloss.Color("#2C4A54")
)

// Styles provides pre-configured lipgloss styles
var Styles = struct {
	Title   lipgloss.Style
	Prompt  lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}{
	Title:   lipgloss.NewStyle().Bold(true).Foreground(ColorAccent),
	Prompt:  lipgloss.NewStyle().Foreground(ColorAccent),
	Muted:   lipgloss.NewStyle().Foreground(ColorMuted),
	Success: lipgloss.NewStyle().Foreground(ColorSuccess),
	Warning: lipgloss.NewStyle().Foreground(ColorWarning),
	Error:   lipgloss.NewStyle().Foreground(ColorError),
}

// Printer writes user-facing console text.
//
// In plain mode every method writes its text unchanged, which keeps
// output stable for pipes, scripts and tests. Otherwise text is styled
// with lipgloss. Messages never gain prefixes or icons, so the wording
// is identical in both modes.
type Printer struct {
	w     io.Writer
	plain bool
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer, plain bool) *Printer {
	return &Printer{w: w, plain: plain}
}

// NewStdoutPrinter creates a Printer for stdout, styled only when stdout
// is a terminal. forcePlain disables styling regardless.
func NewStdoutPrinter(forcePlain bool) *Printer {
	return NewPrinter(os.Stdout, forcePlain || !IsTerminal(os.Stdout))
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Writer returns the destination, for callers that write raw text.
func (p *Printer) Writer() io.Writer {
	return p.w
}

// Plain reports whether styling is disabled.
func (p *Printer) Plain() bool {
	return p.plain
}

func (p *Printer) render(style lipgloss.Style, text string) string {
	if p.plain {
		return text
	}
	return style.Render(text)
}

// Title prints a heading line
func (p *Printer) Title(text string) {
	fmt.Fprintln(p.w, p.render(Styles.Title, text))
}

// Line prints text as-is
func (p *Printer) Line(text string) {
	fmt.Fprintln(p.w, text)
}

// Prompt prints text without a trailing newline
func (p *Printer) Prompt(text string) {
	fmt.Fprint(p.w, p.render(Styles.Prompt, text))
}

// Success prints a confirmation
func (p *Printer) Success(text string) {
	fmt.Fprintln(p.w, p.render(Styles.Success, text))
}

// Warning prints a recoverable problem
func (p *Printer) Warning(text string) {
	fmt.Fprintln(p.w, p.render(Styles.Warning, text))
}

// Error prints a failure
func (p *Printer) Error(text string) {
	fmt.Fprintln(p.w, p.render(Styles.Error, text))
}

// Muted prints secondary text
func (p *Printer) Muted(text string) {
	fmt.Fprintln(p.w, p.render(Styles.Muted, text))
}
