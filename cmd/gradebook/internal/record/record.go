// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package record defines the student record held in memory and on disk.
//
// A Record can only be built through New, which enforces the marks range.
// Once built it is read-only.
package record

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jinterlante1206/gradebook/cmd/gradebook/internal/grading"
)

// Marks bounds, inclusive.
const (
	MinMarks = 0
	MaxMarks = 100
)

// ErrInvalidInput is the sentinel behind every InvalidInputError.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError reports a value rejected during record construction.
//
// # Example
//
//	_, err := record.New(1, "Ann", 120, grading.KindStandard)
//	var inv *record.InvalidInputError
//	if errors.As(err, &inv) {
//	    fmt.Println(inv.Field) // "marks"
//	}
type InvalidInputError struct {
	// Field is the offending input ("marks").
	Field string

	// Reason is the human-readable explanation.
	Reason string
}

// Error returns "invalid input: <reason>".
func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidInput, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

// recordValidate checks construction input. Shared; validator caches
// struct metadata per type.
var recordValidate = validator.New()

// constructionInput mirrors New's arguments so the validator can read tags.
type constructionInput struct {
	Marks float64 `validate:"gte=0,lte=100"`
}

// Record is one student's data. The zero value is not meaningful; use New.
type Record struct {
	id    int
	name  string
	marks float64
	kind  grading.Kind
}

// New builds a Record after checking that marks lie in [0, 100].
//
// # Description
//
// Only marks are validated. Any id (zero, negative, duplicate) and any
// name (including empty) are accepted as given. NaN and infinities fail
// the range check.
//
// # Inputs
//
//   - id: Caller-chosen identifier
//   - name: Student name
//   - marks: Numeric mark, must satisfy 0 <= marks <= 100
//   - kind: Grading policy to apply
//
// # Outputs
//
//   - Record: The constructed record (zero value on error)
//   - error: *InvalidInputError when marks are out of range
func New(id int, name string, marks float64, kind grading.Kind) (Record, error) {
	if err := recordValidate.Struct(constructionInput{Marks: marks}); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return Record{}, &InvalidInputError{
				Field:  "marks",
				Reason: fmt.Sprintf("marks out of range (must be %d-%d)", MinMarks, MaxMarks),
			}
		}
		return Record{}, fmt.Errorf("validate record: %w", err)
	}

	return Record{id: id, name: name, marks: marks, kind: kind}, nil
}

// ID returns the caller-supplied identifier.
func (r Record) ID() int { return r.id }

// Name returns the student name.
func (r Record) Name() string { return r.name }

// Marks returns the numeric mark.
func (r Record) Marks() float64 { return r.marks }

// Kind returns the grading policy tag.
func (r Record) Kind() grading.Kind { return r.kind }

// Grade returns the letter grade under the record's own policy.
func (r Record) Grade() byte { return grading.Grade(r.marks, r.kind) }

// Display writes the record as four lines: ID, Name, Marks, Grade.
func (r Record) Display(w io.Writer) error {
	_, err := fmt.Fprintf(w, "ID: %d\nName: %s\nMarks: %s\nGrade: %c\n",
		r.id, r.name, FormatMarks(r.marks), r.Grade())
	return err
}

// FormatMarks renders marks in shortest decimal form, always with a
// fractional part: 85 -> "85.0", 72.5 -> "72.5".
func FormatMarks(marks float64) string {
	s := strconv.FormatFloat(marks, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
