package store

import (
	"sort"
	"strings"
	"time"
)

// expireSentinel stands in for a missing expiry so tasks without one
// rank after every task with a concrete expiry.
var expireSentinel = time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC)

// Compare is the urgency order over tasks: today before todo, earlier
// expiry before later, lower priority number before higher, then
// lexical id so display order does not depend on directory traversal
// order. It returns a negative number when a is more urgent, a positive
// number when b is, and zero for identical tie keys.
func Compare(a, b Task) int {
	if c := compareList(a.List, b.List); c != 0 {
		return c
	}
	if c := compareExpire(a.Expire, b.Expire); c != 0 {
		return c
	}
	if a.Priority != b.Priority {
		if a.Priority < b.Priority {
			return -1
		}
		return 1
	}
	return strings.Compare(a.ID, b.ID)
}

// compareList ranks today above todo regardless of any other field.
func compareList(a, b string) int {
	if a == b {
		return 0
	}
	if a == ListToday {
		return -1
	}
	if b == ListToday {
		return 1
	}
	return 0
}

func compareExpire(a, b *time.Time) int {
	ta, tb := expireSentinel, expireSentinel
	if a != nil {
		ta = *a
	}
	if b != nil {
		tb = *b
	}
	return ta.Compare(tb)
}

// SortByUrgency sorts tasks most urgent first.
func SortByUrgency(tasks []Task) {
	sort.Slice(tasks, func(i, j int) bool {
		return Compare(tasks[i], tasks[j]) < 0
	})
}
