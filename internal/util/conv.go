package util

import (
	"strconv"
)

// MustParseUint converts a path or query id, returning 0 when malformed.
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}
