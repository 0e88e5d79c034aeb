package strategy

import (
	"sort"

	"SignalScanner/internal/model"
)

// Rank sorts reports in place: scored symbols first by score descending,
// ties broken by latest close descending and then symbol ascending. Failed
// symbols go last in symbol order.
func Rank(reports []model.ScoreReport) {
	sort.SliceStable(reports, func(i, j int) bool {
		a, b := &reports[i], &reports[j]
		if a.OK() != b.OK() {
			return a.OK()
		}
		if a.OK() {
			if a.Score != b.Score {
				return a.Score > b.Score
			}
			if a.Price != b.Price {
				return a.Price > b.Price
			}
		}
		return a.Symbol < b.Symbol
	})
}
