package comparer

import (
	"time"

	"github.com/google/go-cmp/cmp"
)

func TimeWithinTolerance(toleranceMs int) cmp.Option {
	tolerance := time.Duration(toleranceMs) * time.Millisecond

	return cmp.Comparer(func(x, y time.Time) bool {
		diff := x.Sub(y)
		if diff < 0 {
			diff = -diff
		}
		return diff <= tolerance
	})
}

// SameDay ignora hora e fuso, útil para colunas date
func SameDay() cmp.Option {
	return cmp.Comparer(func(x, y time.Time) bool {
		if x.IsZero() || y.IsZero() {
			return x.IsZero() == y.IsZero()
		}
		return x.Format(time.DateOnly) == y.Format(time.DateOnly)
	})
}
