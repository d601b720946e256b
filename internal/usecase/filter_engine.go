package usecase

import "github.com/Saarathi-n/eshopzz/internal/domain"

// Filter narrows a product list to the records satisfying every active
// constraint of the spec (AND semantics). The result is a new slice
// preserving the input order; the input is never mutated. A spec with no
// active constraints returns a copy of the whole list, which also makes
// Filter idempotent: filtering an already-filtered list is a no-op.
func Filter(products []domain.ProductRecord, spec domain.FilterSpec) []domain.ProductRecord {
	filtered := make([]domain.ProductRecord, 0, len(products))
	for _, p := range products {
		if matchesSpec(p, spec) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// matchesSpec evaluates the conjunction of all active constraints for one
// record. An inactive dimension is vacuously true.
func matchesSpec(p domain.ProductRecord, spec domain.FilterSpec) bool {
	if spec.PriceRange != nil {
		price, ok := p.RepresentativePrice()
		// A record with no price on either marketplace never matches an
		// active price range.
		if !ok {
			return false
		}
		if price < spec.PriceRange.Min || price > spec.PriceRange.Max {
			return false
		}
	}

	if spec.MinRating != nil && p.Rating < *spec.MinRating {
		return false
	}

	if spec.PrimeOnly && !p.IsPrime {
		return false
	}

	if spec.Category != "" && spec.Category != domain.AllCategories && p.Category != spec.Category {
		return false
	}

	return true
}
