package memory

import (
	"sort"
	"time"
)

func newestFirst[T any](rows []T, createdAt func(T) time.Time) {
	sort.SliceStable(rows, func(i, j int) bool {
		return createdAt(rows[i]).After(createdAt(rows[j]))
	})
}

func page[T any](rows []T, limit, offset int) []T {
	if offset < 0 || offset >= len(rows) {
		return []T{}
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}
