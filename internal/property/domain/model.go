package domain

import "time"

type PropertyType string

const (
	TypeApartment PropertyType = "apartment"
	TypeLand      PropertyType = "land"
)

type PropertyStatus string

const (
	StatusAvailable PropertyStatus = "available"
	StatusSold      PropertyStatus = "sold"
)

// Property is a single listed property. Optional fields are pointers so that
// an absent value can be persisted as an explicit null instead of being
// silently dropped by the repository.
type Property struct {
	ID             string
	NameKey        string
	DescriptionKey *string
	PriceTRY       *float64
	PriceUSD       *float64
	PriceEUR       *float64
	ImageURL       string
	GalleryImages  []string
	Location       string
	Latitude       *float64
	Longitude      *float64
	Bedrooms       *int
	Bathrooms      *int
	Area           *float64
	Type           PropertyType
	Status         PropertyStatus
	IsFeatured     bool
	BlockNumber    *string
	ParcelNumber   *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Filter narrows FindAll results. A nil Featured matches every property.
type Filter struct {
	Featured *bool
}
