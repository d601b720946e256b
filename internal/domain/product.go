package domain

import "math"

// AllCategories is the sentinel category meaning "no category constraint".
const AllCategories = "All Categories"

// ProductRecord represents one aggregated listing unified across both
// marketplaces. A nil price means no listing was found on that source.
type ProductRecord struct {
	ID            int      `json:"id"`
	Title         string   `json:"title"`
	Image         string   `json:"image,omitempty"`
	AmazonLink    string   `json:"amazon_link,omitempty"`
	FlipkartLink  string   `json:"flipkart_link,omitempty"`
	Category      string   `json:"category,omitempty"`
	AmazonPrice   *float64 `json:"amazon_price"`
	FlipkartPrice *float64 `json:"flipkart_price"`
	Rating        float64  `json:"rating"`
	IsPrime       bool     `json:"is_prime"`
}

// HasMatch reports whether the product was found on both marketplaces.
func (p ProductRecord) HasMatch() bool {
	return p.AmazonPrice != nil && p.FlipkartPrice != nil
}

// MinPrice returns the lowest present price. ok is false when the record
// has no price on either marketplace.
func (p ProductRecord) MinPrice() (price float64, ok bool) {
	price = math.Inf(1)
	if p.AmazonPrice != nil {
		price = *p.AmazonPrice
		ok = true
	}
	if p.FlipkartPrice != nil && *p.FlipkartPrice < price {
		price = *p.FlipkartPrice
		ok = true
	}
	if !ok {
		return 0, false
	}
	return price, true
}

// RepresentativePrice returns the price used for range filtering: the
// Amazon price if present, else the Flipkart price.
func (p ProductRecord) RepresentativePrice() (price float64, ok bool) {
	if p.AmazonPrice != nil {
		return *p.AmazonPrice, true
	}
	if p.FlipkartPrice != nil {
		return *p.FlipkartPrice, true
	}
	return 0, false
}

// PriceRange is an inclusive [Min, Max] price constraint.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// FilterSpec is an immutable filter specification. Nil pointer fields and
// the AllCategories sentinel mean "no constraint" for that dimension.
type FilterSpec struct {
	Category   string      `json:"category"`
	PriceRange *PriceRange `json:"price_range,omitempty"`
	MinRating  *float64    `json:"min_rating,omitempty"`
	PrimeOnly  bool        `json:"prime_only"`
}

// DefaultFilters returns the spec with every dimension unconstrained.
func DefaultFilters() FilterSpec {
	return FilterSpec{Category: AllCategories}
}

// SortMode selects the ordering applied to the displayed list. The values
// match the sort options of the aggregation API.
type SortMode string

const (
	SortRelevance SortMode = "relevance"
	SortPriceAsc  SortMode = "price_asc"
	SortPriceDesc SortMode = "price_desc"
	SortRating    SortMode = "rating"
)

// ParseSortMode maps a wire value to a SortMode, defaulting to relevance
// for unknown or empty input.
func ParseSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortPriceAsc, SortPriceDesc, SortRating:
		return SortMode(s)
	default:
		return SortRelevance
	}
}

// SearchResult is the outcome of one retrieval: the unified product list
// and whether it came from the fallback/demo dataset.
type SearchResult struct {
	Products   []ProductRecord `json:"products"`
	IsFallback bool            `json:"is_fallback"`
}
