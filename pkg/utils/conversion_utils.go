package utils

import (
	"fmt"
	"strconv"
)

// ParseID converts a path or query parameter into a positive int64 id.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id: %q", raw)
	}
	return id, nil
}
