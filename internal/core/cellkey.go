package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Encode and Decode are the only permitted constructors/accessors for a
// CellKey. A CellKey's wire form is exactly "<row>-<col>" with no padding,
// decimal integers.

// Encode builds the canonical CellKey string for a (row, col) pair.
func Encode(row, col int) string {
	return strconv.Itoa(row) + "-" + strconv.Itoa(col)
}

// Decode parses a CellKey string back into (row, col). Returns an error if
// key is not in "<row>-<col>" form.
func Decode(key string) (row, col int, err error) {
	parts := strings.SplitN(key, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("core: malformed cell key %q", key)
	}
	row, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("core: malformed cell key %q: %w", key, err)
	}
	col, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("core: malformed cell key %q: %w", key, err)
	}
	return row, col, nil
}
