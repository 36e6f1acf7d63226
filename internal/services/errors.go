package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrQuizNotFound   = errors.New("quiz not found")
	ErrResultNotFound = errors.New("result not found")
)

// ValidationErrors collects every violation in a submission keyed by field,
// so callers always see the full list rather than just the first failure.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(v))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, v[field]))
	}
	return strings.Join(parts, "; ")
}
