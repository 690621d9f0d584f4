package httpapi

import (
	"time"

	"github.com/alanya-estates/property-service/internal/property/domain"
)

// propertyResponse is the wire shape of a property. Nullable fields keep
// their pointers so absent values serialize as JSON nulls.
type propertyResponse struct {
	ID             string    `json:"id"`
	NameKey        string    `json:"nameKey"`
	DescriptionKey *string   `json:"descriptionKey"`
	PriceTRY       *float64  `json:"priceTRY"`
	PriceUSD       *float64  `json:"priceUSD"`
	PriceEUR       *float64  `json:"priceEUR"`
	ImageURL       string    `json:"imageUrl"`
	GalleryImages  []string  `json:"galleryImages"`
	Location       string    `json:"location"`
	Latitude       *float64  `json:"latitude"`
	Longitude      *float64  `json:"longitude"`
	Bedrooms       *int      `json:"bedrooms"`
	Bathrooms      *int      `json:"bathrooms"`
	Area           *float64  `json:"area"`
	Type           string    `json:"type"`
	Status         string    `json:"status"`
	IsFeatured     bool      `json:"isFeatured"`
	BlockNumber    *string   `json:"blockNumber"`
	ParcelNumber   *string   `json:"parcelNumber"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func toPropertyResponse(p *domain.Property) propertyResponse {
	gallery := p.GalleryImages
	if gallery == nil {
		gallery = []string{}
	}
	return propertyResponse{
		ID:             p.ID,
		NameKey:        p.NameKey,
		DescriptionKey: p.DescriptionKey,
		PriceTRY:       p.PriceTRY,
		PriceUSD:       p.PriceUSD,
		PriceEUR:       p.PriceEUR,
		ImageURL:       p.ImageURL,
		GalleryImages:  gallery,
		Location:       p.Location,
		Latitude:       p.Latitude,
		Longitude:      p.Longitude,
		Bedrooms:       p.Bedrooms,
		Bathrooms:      p.Bathrooms,
		Area:           p.Area,
		Type:           string(p.Type),
		Status:         string(p.Status),
		IsFeatured:     p.IsFeatured,
		BlockNumber:    p.BlockNumber,
		ParcelNumber:   p.ParcelNumber,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func toPropertyResponses(properties []*domain.Property) []propertyResponse {
	responses := make([]propertyResponse, 0, len(properties))
	for _, p := range properties {
		responses = append(responses, toPropertyResponse(p))
	}
	return responses
}
