package aggregate

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ReadLines splits r into lines. Both "\n" and "\r\n" terminators are handled.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return lines, fmt.Errorf("aggregate: read lines: %w", err)
	}
	return lines, nil
}

// splitFields splits a line on commas and discards trailing empty fields,
// so "a,b,,," has two fields. A line without any comma is one field.
func splitFields(line string) []string {
	fields := strings.Split(line, ",")
	if len(fields) == 1 {
		return fields
	}
	n := len(fields)
	for n > 0 && fields[n-1] == "" {
		n--
	}
	return fields[:n]
}

// trim strips leading and trailing ASCII control characters and spaces.
func trim(s string) string {
	return strings.TrimFunc(s, func(r rune) bool { return r <= ' ' })
}
