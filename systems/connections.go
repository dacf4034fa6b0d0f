package systems

import (
	"slices"

	"github.com/pthm-cable/plexus/components"
)

// Connection is an unordered pair of particle slots closer than the
// connection threshold. A is always less than B.
type Connection struct {
	A, B int
	Dist float32
}

// BruteConnections appends every pair (i, j), i < j, whose distance is
// strictly below threshold. Results are ordered by A then B.
func BruteConnections(dst []Connection, positions []components.Position, threshold float32) []Connection {
	if threshold <= 0 {
		return dst
	}
	limitSq := threshold * threshold
	for i := range positions {
		pi := positions[i]
		for j := i + 1; j < len(positions); j++ {
			dSq := pi.DistSq(positions[j])
			if dSq < limitSq {
				dst = append(dst, Connection{A: i, B: j, Dist: sqrtf(dSq)})
			}
		}
	}
	return dst
}

// GridConnections finds the same pairs as BruteConnections using grid
// buckets sized to the threshold. scratch is reused for candidate lists.
func GridConnections(dst []Connection, positions []components.Position, threshold float32, grid *SpatialGrid, scratch []int32) ([]Connection, []int32) {
	if threshold <= 0 || len(positions) < 2 {
		return dst, scratch
	}
	grid.Clear()
	for i, p := range positions {
		grid.Insert(int32(i), p.X, p.Y)
	}

	limitSq := threshold * threshold
	start := len(dst)
	for i, pi := range positions {
		scratch = grid.QueryInto(scratch[:0], pi.X, pi.Y, threshold)
		for _, s := range scratch {
			j := int(s)
			if j <= i {
				continue
			}
			dSq := pi.DistSq(positions[j])
			if dSq < limitSq {
				dst = append(dst, Connection{A: i, B: j, Dist: sqrtf(dSq)})
			}
		}
	}

	slices.SortFunc(dst[start:], func(a, b Connection) int {
		if a.A != b.A {
			return a.A - b.A
		}
		return a.B - b.B
	})
	return dst, scratch
}
