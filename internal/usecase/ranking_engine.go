package usecase

import (
	"math"
	"sort"

	"github.com/Saarathi-n/eshopzz/internal/domain"
)

// Rank orders a product list for display and returns a new slice; the
// input is never mutated. The comparator is a strict priority chain:
//
//  1. Match priority: records listed on both marketplaces come first,
//     regardless of sort mode.
//  2. The mode key: lowest present price (ascending or descending, with
//     priceless records last under both directions), or rating descending.
//  3. ID ascending, which is also the whole key for relevance mode.
//
// The ID tie-break makes the order a deterministic total order: ranking
// any permutation of the same records yields the same output.
func Rank(products []domain.ProductRecord, mode domain.SortMode) []domain.ProductRecord {
	ranked := append([]domain.ProductRecord(nil), products...)

	sort.SliceStable(ranked, func(i, j int) bool {
		return less(ranked[i], ranked[j], mode)
	})

	return ranked
}

// less reports whether a ranks strictly before b under mode.
func less(a, b domain.ProductRecord, mode domain.SortMode) bool {
	if a.HasMatch() != b.HasMatch() {
		return a.HasMatch()
	}

	switch mode {
	case domain.SortPriceAsc, domain.SortPriceDesc:
		pa, pb := sortPrice(a), sortPrice(b)
		if pa != pb {
			// Records without any price carry an infinite key, so they sort
			// last under both directions within their match tier.
			if math.IsInf(pa, 1) || math.IsInf(pb, 1) {
				return math.IsInf(pb, 1)
			}
			if mode == domain.SortPriceAsc {
				return pa < pb
			}
			return pa > pb
		}
	case domain.SortRating:
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
	}

	return a.ID < b.ID
}

// sortPrice is the mode key for the price sorts: the lowest present price,
// or +Inf when the record has no price at all.
func sortPrice(p domain.ProductRecord) float64 {
	price, ok := p.MinPrice()
	if !ok {
		return math.Inf(1)
	}
	return price
}
