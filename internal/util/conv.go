package util

import (
	"strconv"
)

// ParseID parses a positive numeric path id. Zero means invalid.
func ParseID(s string) uint {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}
