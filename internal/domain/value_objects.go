package domain

import (
	"fmt"
	"math"
	"strconv"
)

// ParseTodoID converts a path segment into a todo ID.
// The store column is a 32-bit integer, so anything outside that range
// can never match a row and is rejected before reaching the repository.
func ParseTodoID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	if id < math.MinInt32 || id > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %d out of range", ErrInvalidID, id)
	}
	return id, nil
}
