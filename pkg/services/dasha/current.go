package dasha

import (
	"time"

	"github.com/vedic-tools/jyotish-atlas/pkg/models/domain"
)

// MarkCurrent finds the active period at every populated level for the
// query instant. Intervals are half-open, so an instant on a boundary
// belongs to the later period. It returns false when the instant lies
// outside the tree.
func MarkCurrent(tree []domain.DashaPeriod, query time.Time) (domain.CurrentPath, bool) {
	var path domain.CurrentPath
	level := tree
	for len(level) > 0 {
		idx := find(level, query)
		if idx < 0 {
			break
		}
		path = append(path, idx)
		level = level[idx].Children
	}
	return path, len(path) > 0
}

func find(periods []domain.DashaPeriod, t time.Time) int {
	for i, p := range periods {
		if p.Contains(t) {
			return i
		}
	}
	return -1
}
