package models

import (
	"fmt"
	"strconv"
	"time"
)

// ListingOwner identifies the user a listing belongs to.
type ListingOwner struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// ListingImage references one stored image of a listing.
type ListingImage struct {
	ID       string `json:"id"`
	ImageURL string `json:"imageUrl"`
}

// Listing mirrors the server-side listing object. The server is the source
// of truth: instances are only ever replaced by a fresh fetch, never merged.
//
// Price is a decimal serialized as a string on the wire and is kept that way
// to avoid float drift; use FormattedPrice for display.
type Listing struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Price       string         `json:"price"`
	Sold        bool           `json:"sold"`
	DateListed  time.Time      `json:"dateListed"`
	Owner       ListingOwner   `json:"user"`
	Images      []ListingImage `json:"images"`
}

// FormattedPrice renders the decimal price as "$12.34". An unparsable price
// is shown verbatim rather than hidden.
func (l Listing) FormattedPrice() string {
	v, err := strconv.ParseFloat(l.Price, 64)
	if err != nil {
		return "$" + l.Price
	}
	return fmt.Sprintf("$%.2f", v)
}
