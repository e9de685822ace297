// Package shared provides common utility functions used across multiple
// packages in the sdkmeta codebase.
package shared

import (
	"errors"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// ErrorMessage returns the message an errbuilder error was built with, or
// the plain error text for any other error.
func ErrorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}

// SortedKeys returns the keys of a string-keyed map in ascending order.
func SortedKeys[V any](values map[string]V) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// RemoveValue returns values without any entry equal to value, keeping the
// order of the rest.
func RemoveValue(values []string, value string) []string {
	out := make([]string, 0, len(values))
	for _, entry := range values {
		if entry != value {
			out = append(out, entry)
		}
	}
	return out
}
