// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package repository persists student records to a flat text file.
//
// # File Format
//
// One record per line, three comma-separated fields, no header:
//
//	1,Ann,85.0
//	2,Bo,70.0
//
// Names are not escaped, so a name containing a comma produces a line
// that cannot be read back. The record kind is not stored; every loaded
// record is graded with the standard policy.
//
// # Durability
//
// Save truncates and rewrites the file in place. A crash mid-write can
// leave a partial file.
package repository

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/jinterlante1206/gradebook/cmd/gradebook/internal/grading"
	"github.com/jinterlante1206/gradebook/cmd/gradebook/internal/record"
	"github.com/jinterlante1206/gradebook/pkg/logging"
)

// DefaultPath is the storage location used when nothing overrides it.
const DefaultPath = "students.txt"

// fieldSeparator separates id, name and marks on a line.
const fieldSeparator = ","

// fieldCount is the number of fields on every line.
const fieldCount = 3

var (
	// ErrLoad is the sentinel behind every LoadError.
	ErrLoad = errors.New("load records")

	// ErrSave wraps every Save failure.
	ErrSave = errors.New("save records")

	// ErrMalformedLine is returned by Decode for lines it cannot parse.
	ErrMalformedLine = errors.New("malformed line")
)

// LoadError reports why Load gave up.
//
// Line is the 1-based line number of the offending line, or 0 when the
// failure was not tied to a line (open or read errors).
type LoadError struct {
	Path string
	Line int
	Err  error
}

// Error returns "load records: <path>:<line>: <cause>".
func (e *LoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: %s:%d: %v", ErrLoad, e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", ErrLoad, e.Path, e.Err)
}

// Unwrap exposes the cause.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrLoad) match any LoadError.
func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}

// FileRepository reads and writes records at a single path.
//
// It assumes exclusive ownership of the file for the life of the process.
// It is not safe for concurrent use.
type FileRepository struct {
	path   string
	logger *logging.Logger
}

// New creates a FileRepository for path.
//
// # Inputs
//
//   - path: Storage file; DefaultPath when empty
//   - logger: Destination for load/save logs; nil discards them
//
// # Outputs
//
//   - *FileRepository: Ready to use; nothing is touched on disk yet
func New(path string, logger *logging.Logger) *FileRepository {
	if path == "" {
		path = DefaultPath
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &FileRepository{path: path, logger: logger}
}

// Path returns the storage location.
func (r *FileRepository) Path() string {
	return r.path
}

// Load reads every record from the storage file.
//
// # Description
//
// A missing file is not an error: the result is an empty, non-nil slice.
// Loading is all-or-nothing. The first malformed line or read failure
// aborts the load and nil is returned with a *LoadError, so callers never
// see a partially parsed file.
//
// # Outputs
//
//   - []record.Record: Records in file order, all KindStandard
//   - error: *LoadError (errors.Is(err, ErrLoad)) on any failure
func (r *FileRepository) Load() ([]record.Record, error) {
	f, err := os.Open(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		r.logger.Debug("storage file absent, starting empty", "path", r.path)
		return []record.Record{}, nil
	}
	if err != nil {
		return nil, &LoadError{Path: r.path, Err: err}
	}
	defer f.Close()

	records := []record.Record{}
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		rec, err := Decode(scanner.Text())
		if err != nil {
			r.logger.Warn("malformed storage line", "path", r.path, "line", lineNo)
			return nil, &LoadError{Path: r.path, Line: lineNo, Err: err}
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, &LoadError{Path: r.path, Err: err}
	}

	r.logger.Info("records loaded", "path", r.path, "count", len(records))
	return records, nil
}

// Save overwrites the storage file with one line per record.
//
// # Description
//
// The file is truncated and rewritten in full. Kind is not written.
// Saving the same records twice yields byte-identical files.
//
// # Inputs
//
//   - records: Records to write, in order
//
// # Outputs
//
//   - error: Wraps ErrSave and the underlying I/O error; not retried
func (r *FileRepository) Save(records []record.Record) error {
	var buf bytes.Buffer
	for _, rec := range records {
		buf.WriteString(Encode(rec))
		buf.WriteByte('\n')
	}

	if err := os.WriteFile(r.path, buf.Bytes(), 0644); err != nil {
		r.logger.Error("save failed", "path", r.path, "error", err)
		return fmt.Errorf("%w: %w", ErrSave, err)
	}

	r.logger.Info("records saved", "path", r.path, "count", len(records))
	return nil
}

// Encode renders rec as "id,name,marks" without a line terminator.
func Encode(rec record.Record) string {
	return strings.Join([]string{
		strconv.Itoa(rec.ID()),
		rec.Name(),
		record.FormatMarks(rec.Marks()),
	}, fieldSeparator)
}

// Decode parses one "id,name,marks" line into a standard record.
//
// # Inputs
//
//   - line: A single line without its terminator
//
// # Outputs
//
//   - record.Record: KindStandard record
//   - error: Wraps ErrMalformedLine for wrong field counts or unparsable
//     numbers; marks outside [0,100] return the record.ErrInvalidInput error
func Decode(line string) (record.Record, error) {
	fields := strings.Split(line, fieldSeparator)
	if len(fields) != fieldCount {
		return record.Record{}, fmt.Errorf("%w: want %d fields, got %d", ErrMalformedLine, fieldCount, len(fields))
	}

	id, err := strconv.ParseInt(strings.TrimSpace(fields[0]), 10, 32)
	if err != nil {
		return record.Record{}, fmt.Errorf("%w: id %q: %w", ErrMalformedLine, fields[0], err)
	}

	marks, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
	if err != nil {
		return record.Record{}, fmt.Errorf("%w: marks %q: %w", ErrMalformedLine, fields[2], err)
	}

	return record.New(int(id), fields[1], marks, grading.KindStandard)
}
