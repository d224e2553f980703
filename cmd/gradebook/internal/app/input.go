// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package app

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
)

// lineReader reads newline-terminated input one line at a time.
//
// # Description
//
// Every call consumes exactly one line, so a malformed entry can never
// be re-read by the next prompt. The line terminator (\n or \r\n) is
// stripped; other whitespace is left for the caller to decide on.
//
// # Limitations
//
//   - Blocks until a newline or EOF arrives; a context cancelled while
//     blocked is only noticed on the next call
type lineReader struct {
	reader *bufio.Reader
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{reader: bufio.NewReader(r)}
}

// ReadLine returns the next line without its terminator.
//
// # Outputs
//
//   - string: The line. A final line without a newline is still returned.
//   - error: ctx.Err() if the context is done, io.EOF once input is exhausted
func (r *lineReader) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	line, err := r.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return trimEOL(line), nil
		}
		return "", err
	}
	return trimEOL(line), nil
}

func trimEOL(line string) string {
	return strings.TrimRight(line, "\r\n")
}
