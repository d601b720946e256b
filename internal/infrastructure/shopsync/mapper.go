package shopsync

import "github.com/Saarathi-n/eshopzz/internal/domain"

// maxRating is the upper bound of the marketplace star scale.
const maxRating = 5.0

// wireProduct mirrors one product object of the aggregation API payload.
// Prices and rating are nullable on the wire.
type wireProduct struct {
	ID            int      `json:"id"`
	Title         string   `json:"title"`
	Image         string   `json:"image"`
	AmazonLink    string   `json:"amazon_link"`
	FlipkartLink  string   `json:"flipkart_link"`
	Category      string   `json:"category"`
	AmazonPrice   *float64 `json:"amazon_price"`
	FlipkartPrice *float64 `json:"flipkart_price"`
	Rating        *float64 `json:"rating"`
	IsPrime       bool     `json:"is_prime"`
}

// mapProducts converts wire products to domain records, sanitizing
// malformed values at ingestion so the filter and ranking engines never
// see them: negative prices become absent, a missing or negative rating
// becomes 0, ratings are capped at the star-scale maximum, and
// non-positive IDs are reassigned from the record's position.
func mapProducts(wire []wireProduct) []domain.ProductRecord {
	products := make([]domain.ProductRecord, 0, len(wire))
	for i, w := range wire {
		products = append(products, mapProduct(w, i+1))
	}
	return products
}

// mapProduct converts a single wire product, using fallbackID when the
// payload carries no usable identifier.
func mapProduct(w wireProduct, fallbackID int) domain.ProductRecord {
	record := domain.ProductRecord{
		ID:            w.ID,
		Title:         w.Title,
		Image:         w.Image,
		AmazonLink:    w.AmazonLink,
		FlipkartLink:  w.FlipkartLink,
		Category:      w.Category,
		AmazonPrice:   sanitizePrice(w.AmazonPrice),
		FlipkartPrice: sanitizePrice(w.FlipkartPrice),
		Rating:        sanitizeRating(w.Rating),
		IsPrime:       w.IsPrime,
	}

	if record.ID <= 0 {
		record.ID = fallbackID
	}

	return record
}

// sanitizePrice treats a negative price as absent
func sanitizePrice(price *float64) *float64 {
	if price == nil || *price < 0 {
		return nil
	}
	p := *price
	return &p
}

// sanitizeRating clamps the rating to [0, maxRating]; nil means unrated
func sanitizeRating(rating *float64) float64 {
	if rating == nil || *rating < 0 {
		return 0
	}
	if *rating > maxRating {
		return maxRating
	}
	return *rating
}
