package mongodb

import (
	"fmt"
	"time"

	"github.com/alanya-estates/property-service/internal/property/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// propertyDocument is the persisted shape of a property. The nullable fields
// deliberately carry no omitempty tag: an absent optional value is written as
// an explicit null, never left out of the document.
type propertyDocument struct {
	ID             primitive.ObjectID    `bson:"_id,omitempty"`
	NameKey        string                `bson:"nameKey"`
	DescriptionKey *string               `bson:"descriptionKey"`
	PriceTRY       *float64              `bson:"priceTRY"`
	PriceUSD       *float64              `bson:"priceUSD"`
	PriceEUR       *float64              `bson:"priceEUR"`
	ImageURL       string                `bson:"imageUrl"`
	GalleryImages  []string              `bson:"galleryImages"`
	Location       string                `bson:"location"`
	Latitude       *float64              `bson:"latitude"`
	Longitude      *float64              `bson:"longitude"`
	Bedrooms       *int                  `bson:"bedrooms"`
	Bathrooms      *int                  `bson:"bathrooms"`
	Area           *float64              `bson:"area"`
	Type           domain.PropertyType   `bson:"type"`
	Status         domain.PropertyStatus `bson:"status"`
	IsFeatured     bool                  `bson:"isFeatured"`
	BlockNumber    *string               `bson:"blockNumber"`
	ParcelNumber   *string               `bson:"parcelNumber"`
	CreatedAt      time.Time             `bson:"createdAt"`
	UpdatedAt      time.Time             `bson:"updatedAt"`
}

func toPropertyDocument(p *domain.Property) (*propertyDocument, error) {
	if p == nil {
		return nil, nil
	}

	var docID primitive.ObjectID
	if p.ID != "" {
		var err error
		docID, err = primitive.ObjectIDFromHex(p.ID)
		if err != nil {
			return nil, fmt.Errorf("toPropertyDocument: invalid ID format %q: %w", p.ID, err)
		}
	}

	gallery := p.GalleryImages
	if gallery == nil {
		gallery = []string{}
	}

	return &propertyDocument{
		ID:             docID,
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
		Type:           p.Type,
		Status:         p.Status,
		IsFeatured:     p.IsFeatured,
		BlockNumber:    p.BlockNumber,
		ParcelNumber:   p.ParcelNumber,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}, nil
}

func toDomainProperty(d *propertyDocument) *domain.Property {
	if d == nil {
		return nil
	}
	gallery := d.GalleryImages
	if gallery == nil {
		gallery = []string{}
	}
	return &domain.Property{
		ID:             d.ID.Hex(),
		NameKey:        d.NameKey,
		DescriptionKey: d.DescriptionKey,
		PriceTRY:       d.PriceTRY,
		PriceUSD:       d.PriceUSD,
		PriceEUR:       d.PriceEUR,
		ImageURL:       d.ImageURL,
		GalleryImages:  gallery,
		Location:       d.Location,
		Latitude:       d.Latitude,
		Longitude:      d.Longitude,
		Bedrooms:       d.Bedrooms,
		Bathrooms:      d.Bathrooms,
		Area:           d.Area,
		Type:           d.Type,
		Status:         d.Status,
		IsFeatured:     d.IsFeatured,
		BlockNumber:    d.BlockNumber,
		ParcelNumber:   d.ParcelNumber,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func toDomainProperties(docs []*propertyDocument) []*domain.Property {
	properties := make([]*domain.Property, 0, len(docs))
	for _, doc := range docs {
		properties = append(properties, toDomainProperty(doc))
	}
	return properties
}
