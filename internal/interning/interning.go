// Package interning deduplicates low-cardinality strings such as resource
// paths and property names so repeated lookups share one backing array.
package interning

import (
	"strings"
	"sync"
)

var (
	table   = make(map[string]string)
	tableMu sync.RWMutex
)

// Intern returns the canonical instance of s.
func Intern(s string) string {
	if s == "" {
		return ""
	}
	tableMu.RLock()
	v, ok := table[s]
	tableMu.RUnlock()
	if ok {
		return v
	}

	// s may alias a larger buffer (a file read, a Lua string); keep a private copy
	clone := strings.Clone(s)
	tableMu.Lock()
	defer tableMu.Unlock()
	if v, ok := table[clone]; ok {
		return v
	}
	table[clone] = clone
	return clone
}

// Count returns the number of interned strings.
func Count() int {
	tableMu.RLock()
	defer tableMu.RUnlock()
	return len(table)
}
