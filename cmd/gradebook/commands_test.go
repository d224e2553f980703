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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinterlante1206/gradebook/cmd/gradebook/internal/grading"
	"github.com/jinterlante1206/gradebook/cmd/gradebook/internal/record"
	"github.com/jinterlante1206/gradebook/cmd/gradebook/internal/repository"
)

// execute runs a fresh command tree and captures stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

// =============================================================================
// Interactive Root Command
// =============================================================================

func TestRoot_InteractiveSaves(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "students.txt")

	out, _, err := execute(t, "1\n1\nAnn\n85\n2\n2\nBo\n70\n3\n4\n", "--data-file", dataFile)
	require.NoError(t, err)

	assert.Contains(t, out, "--- Student Grade System ---")
	assert.Contains(t, out, "ID: 1\nName: Ann\nMarks: 85.0\nGrade: A\n")
	assert.Contains(t, out, "ID: 2\nName: Bo\nMarks: 70.0\nGrade: B\n")
	assert.Contains(t, out, "Exiting program...")

	data, err := os.ReadFile(dataFile)
	require.NoError(t, err)
	assert.Equal(t, "1,Ann,85.0\n2,Bo,70.0\n", string(data))
}

func TestRoot_RejectsArgs(t *testing.T) {
	_, _, err := execute(t, "", "unexpected")
	assert.Error(t, err)
}

func TestRoot_VerboseLogsToStderr(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "students.txt")

	out, errOut, err := execute(t, "4\n", "--data-file", dataFile, "--verbose")
	require.NoError(t, err)

	assert.Contains(t, out, "Data saved!")
	assert.Contains(t, errOut, "records saved")
	assert.Contains(t, errOut, "session_id=")
	assert.NotContains(t, out, "records saved")
}

func TestRoot_QuietByDefault(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "students.txt")

	_, errOut, err := execute(t, "4\n", "--data-file", dataFile)
	require.NoError(t, err)
	assert.Empty(t, errOut)
}

// =============================================================================
// Config Flag
// =============================================================================

func TestRoot_ConfigCreatedAndUsed(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "gradebook.yaml")

	_, errOut, err := execute(t, "4\n", "--config", configPath, "--data-file", filepath.Join(dir, "s.txt"))
	require.NoError(t, err)
	assert.Contains(t, errOut, "First run detected")
	assert.FileExists(t, configPath)
}

func TestRoot_ConfigDataFile(t *testing.T) {
	dir := t.TempDir()
	dataFile := filepath.Join(dir, "from-config.txt")
	configPath := filepath.Join(dir, "gradebook.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("data_file: "+dataFile+"\n"), 0644))

	_, _, err := execute(t, "1\n5\nCy\n45\n4\n", "--config", configPath)
	require.NoError(t, err)

	data, err := os.ReadFile(dataFile)
	require.NoError(t, err)
	assert.Equal(t, "5,Cy,45.0\n", string(data))
}

func TestRoot_BadConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "gradebook.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("log: [oops\n"), 0644))

	_, _, err := execute(t, "", "--config", configPath)
	assert.Error(t, err)
}

// =============================================================================
// show
// =============================================================================

func TestShow_PrintsStoredRecords(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "students.txt")
	rec, err := record.New(3, "Dee", 59.5, grading.KindGraduate)
	require.NoError(t, err)
	require.NoError(t, repository.New(dataFile, nil).Save([]record.Record{rec}))

	out, _, err := execute(t, "", "show", "--data-file", dataFile)
	require.NoError(t, err)
	// stored without kind, so graded as standard
	assert.Equal(t, "ID: 3\nName: Dee\nMarks: 59.5\nGrade: C\n", out)
}

func TestShow_Empty(t *testing.T) {
	out, _, err := execute(t, "", "show", "--data-file", filepath.Join(t.TempDir(), "none.txt"))
	require.NoError(t, err)
	assert.Equal(t, "No students yet\n", out)
}

func TestShow_Malformed(t *testing.T) {
	dataFile := filepath.Join(t.TempDir(), "students.txt")
	require.NoError(t, os.WriteFile(dataFile, []byte("1,Ann\n"), 0644))

	_, _, err := execute(t, "", "show", "--data-file", dataFile)
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrLoad)
}

// =============================================================================
// grade
// =============================================================================

func TestGrade(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"standard default", []string{"grade", "80"}, "A\n"},
		{"standard boundary", []string{"grade", "59.99"}, "C\n"},
		{"graduate B", []string{"grade", "70", "--kind", "graduate"}, "B\n"},
		{"graduate F", []string{"grade", "49", "--kind", "Graduate"}, "F\n"},
		{"zero", []string{"grade", "0"}, "F\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, "", tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestGrade_Errors(t *testing.T) {
	_, _, err := execute(t, "", "grade", "150")
	assert.ErrorIs(t, err, record.ErrInvalidInput)

	_, _, err = execute(t, "", "grade", "--", "-1")
	assert.ErrorIs(t, err, record.ErrInvalidInput)

	_, _, err = execute(t, "", "grade", "abc")
	assert.Error(t, err)

	_, _, err = execute(t, "", "grade", "50", "--kind", "postdoc")
	assert.ErrorIs(t, err, grading.ErrUnknownKind)

	_, _, err = execute(t, "", "grade")
	assert.Error(t, err)
}
