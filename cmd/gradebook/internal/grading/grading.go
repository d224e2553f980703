// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package grading maps numeric marks to letter grades.
//
// Two policies exist, selected by Kind:
//
//	Kind       A     B     C     F
//	standard   >=80  >=60  >=40  below 40
//	graduate   >=85  >=65  >=50  below 50
//
// Every lower bound is inclusive. The tables are fixed; there is no
// runtime configuration.
package grading

import (
	"errors"
	"fmt"
	"strings"
)

// Kind selects the grading policy applied to a record.
type Kind int

const (
	// KindStandard is the default policy and the zero value.
	KindStandard Kind = iota

	// KindGraduate applies the stricter graduate thresholds.
	KindGraduate
)

// ErrUnknownKind is returned by ParseKind for unrecognised names.
var ErrUnknownKind = errors.New("unknown student kind")

// String returns "standard" or "graduate".
func (k Kind) String() string {
	switch k {
	case KindStandard:
		return "standard"
	case KindGraduate:
		return "graduate"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind converts a case-insensitive name to a Kind.
//
// # Inputs
//
//   - s: "standard" or "graduate" (surrounding whitespace ignored)
//
// # Outputs
//
//   - Kind: The parsed kind
//   - error: Wraps ErrUnknownKind for any other value
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standard":
		return KindStandard, nil
	case "graduate":
		return KindGraduate, nil
	default:
		return KindStandard, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// threshold is one row of a policy table: marks at or above Min earn Letter.
type threshold struct {
	Min    float64
	Letter byte
}

// Policy tables, highest bound first. Anything below the last row is an F.
var (
	standardThresholds = []threshold{{80, 'A'}, {60, 'B'}, {40, 'C'}}
	graduateThresholds = []threshold{{85, 'A'}, {65, 'B'}, {50, 'C'}}
)

// FailingGrade is returned when marks fall below every threshold.
const FailingGrade byte = 'F'

// Grade returns the letter grade for marks under the policy for kind.
//
// Grade is pure and total. Callers are expected to have range-checked
// marks already (record.New does); out-of-range or NaN input still
// produces a letter, never a panic. Unknown kinds fall back to the
// standard table.
func Grade(marks float64, kind Kind) byte {
	table := standardThresholds
	if kind == KindGraduate {
		table = graduateThresholds
	}
	for _, t := range table {
		if marks >= t.Min {
			return t.Letter
		}
	}
	return FailingGrade
}
