package usecase

import (
	"fmt"

	"github.com/alanya-estates/property-service/internal/property/domain"
)

// PropertyInput is the decoded `data` payload of a create or update request.
// Pointer fields distinguish "not supplied" from a zero value; anything left
// nil is persisted as an explicit null.
type PropertyInput struct {
	NameKey        string   `json:"nameKey"`
	DescriptionKey *string  `json:"descriptionKey"`
	PriceTRY       *float64 `json:"priceTRY"`
	PriceUSD       *float64 `json:"priceUSD"`
	PriceEUR       *float64 `json:"priceEUR"`
	Location       string   `json:"location"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	Bedrooms       *int     `json:"bedrooms"`
	Bathrooms      *int     `json:"bathrooms"`
	Area           *float64 `json:"area"`
	Type           string   `json:"type"`
	Status         string   `json:"status"`
	IsFeatured     bool     `json:"isFeatured"`
	BlockNumber    *string  `json:"blockNumber"`
	ParcelNumber   *string  `json:"parcelNumber"`

	// ExistingGalleryImages is only meaningful on update: the subset of the
	// previous gallery the caller chose to keep.
	ExistingGalleryImages []string `json:"existingGalleryImages"`
}

// FileUpload is a single uploaded file as received by the API surface.
type FileUpload struct {
	Filename string
	Data     []byte
}

func (in PropertyInput) validate() error {
	if in.NameKey == "" {
		return fmt.Errorf("%w: nameKey is required", ErrInvalidInput)
	}
	if in.Location == "" {
		return fmt.Errorf("%w: location is required", ErrInvalidInput)
	}
	switch domain.PropertyType(in.Type) {
	case domain.TypeApartment, domain.TypeLand:
	default:
		return fmt.Errorf("%w: type must be %q or %q", ErrInvalidInput, domain.TypeApartment, domain.TypeLand)
	}
	if in.Status != "" {
		switch domain.PropertyStatus(in.Status) {
		case domain.StatusAvailable, domain.StatusSold:
		default:
			return fmt.Errorf("%w: status must be %q or %q", ErrInvalidInput, domain.StatusAvailable, domain.StatusSold)
		}
	}
	return nil
}

// toDomain builds a normalized Property from the input: the status default is
// applied, coordinates outside the geographic range are treated as absent,
// and fields irrelevant to the property type are cleared.
func (in PropertyInput) toDomain() *domain.Property {
	p := &domain.Property{
		NameKey:        in.NameKey,
		DescriptionKey: in.DescriptionKey,
		PriceTRY:       in.PriceTRY,
		PriceUSD:       in.PriceUSD,
		PriceEUR:       in.PriceEUR,
		GalleryImages:  []string{},
		Location:       in.Location,
		Latitude:       in.Latitude,
		Longitude:      in.Longitude,
		Bedrooms:       in.Bedrooms,
		Bathrooms:      in.Bathrooms,
		Area:           in.Area,
		Type:           domain.PropertyType(in.Type),
		Status:         domain.PropertyStatus(in.Status),
		IsFeatured:     in.IsFeatured,
		BlockNumber:    in.BlockNumber,
		ParcelNumber:   in.ParcelNumber,
	}
	if p.Status == "" {
		p.Status = domain.StatusAvailable
	}
	if p.Latitude != nil && (*p.Latitude < -90 || *p.Latitude > 90) {
		p.Latitude = nil
	}
	if p.Longitude != nil && (*p.Longitude < -180 || *p.Longitude > 180) {
		p.Longitude = nil
	}
	switch p.Type {
	case domain.TypeLand:
		p.Bedrooms = nil
		p.Bathrooms = nil
	case domain.TypeApartment:
		p.BlockNumber = nil
		p.ParcelNumber = nil
	}
	return p
}
