package domain

import "time"

// Property is a rentable listing.
type Property struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Address       string     `json:"address"`
	City          string     `json:"city"`
	University    string     `json:"university,omitempty"`
	Price         float64    `json:"price"` // monthly rent
	Currency      string     `json:"currency,omitempty"`
	Bedrooms      int        `json:"bedrooms"`
	Bathrooms     int        `json:"bathrooms"`
	PropertyType  string     `json:"propertyType"` // "apartment", "studio", "shared", "house"
	Amenities     []string   `json:"amenities,omitempty"`
	Images        []string   `json:"images,omitempty"`
	Available     bool       `json:"available"`
	AvailableFrom *time.Time `json:"availableFrom,omitempty"`
	LandlordID    string     `json:"landlordId"`
	Rating        float64    `json:"rating,omitempty"`
	URL           string     `json:"url,omitempty"` // public listing page
	CreatedAt     time.Time  `json:"createdAt"`
}

// PropertyFilters narrows a property search. Zero values mean "any".
type PropertyFilters struct {
	Search       string   `json:"search,omitempty"`
	City         string   `json:"city,omitempty"`
	University   string   `json:"university,omitempty"`
	PropertyType string   `json:"propertyType,omitempty"`
	MinPrice     float64  `json:"minPrice,omitempty"`
	MaxPrice     float64  `json:"maxPrice,omitempty"`
	Bedrooms     int      `json:"bedrooms,omitempty"`
	Amenities    []string `json:"amenities,omitempty"`
	Sort         string   `json:"sort,omitempty"` // "newest", "price_asc", "price_desc", "rating"
}

// IsZero reports whether no filter is set.
func (f PropertyFilters) IsZero() bool {
	return f.Search == "" && f.City == "" && f.University == "" && f.PropertyType == "" &&
		f.MinPrice == 0 && f.MaxPrice == 0 && f.Bedrooms == 0 && len(f.Amenities) == 0 && f.Sort == ""
}

// Equal reports whether two filter sets select the same listings.
func (f PropertyFilters) Equal(o PropertyFilters) bool {
	if len(f.Amenities) != len(o.Amenities) {
		return false
	}
	for i := range f.Amenities {
		if f.Amenities[i] != o.Amenities[i] {
			return false
		}
	}
	return f.Search == o.Search && f.City == o.City && f.University == o.University &&
		f.PropertyType == o.PropertyType && f.MinPrice == o.MinPrice && f.MaxPrice == o.MaxPrice &&
		f.Bedrooms == o.Bedrooms && f.Sort == o.Sort
}
