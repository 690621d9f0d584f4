package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/alanya-estates/property-service/internal/property/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type PropertyRepository struct {
	collection *mongo.Collection
}

func NewPropertyRepository(db *mongo.Database) *PropertyRepository {
	return &PropertyRepository{collection: db.Collection("properties")}
}

func (r *PropertyRepository) Create(ctx context.Context, property *domain.Property) error {
	doc, err := toPropertyDocument(property)
	if err != nil {
		return err
	}
	doc.ID = primitive.NewObjectID()
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("mongodb: failed to insert property: %w", err)
	}
	property.ID = doc.ID.Hex()
	return nil
}

func (r *PropertyRepository) Update(ctx context.Context, property *domain.Property) error {
	doc, err := toPropertyDocument(property)
	if err != nil {
		return domain.ErrPropertyNotFound
	}

	// createdAt and _id are immutable; everything else is replaced.
	update := bson.M{"$set": bson.M{
		"nameKey":        doc.NameKey,
		"descriptionKey": doc.DescriptionKey,
		"priceTRY":       doc.PriceTRY,
		"priceUSD":       doc.PriceUSD,
		"priceEUR":       doc.PriceEUR,
		"imageUrl":       doc.ImageURL,
		"galleryImages":  doc.GalleryImages,
		"location":       doc.Location,
		"latitude":       doc.Latitude,
		"longitude":      doc.Longitude,
		"bedrooms":       doc.Bedrooms,
		"bathrooms":      doc.Bathrooms,
		"area":           doc.Area,
		"type":           doc.Type,
		"status":         doc.Status,
		"isFeatured":     doc.IsFeatured,
		"blockNumber":    doc.BlockNumber,
		"parcelNumber":   doc.ParcelNumber,
		"updatedAt":      doc.UpdatedAt,
	}}

	result, err := r.collection.UpdateByID(ctx, doc.ID, update)
	if err != nil {
		return fmt.Errorf("mongodb: failed to update property %s: %w", property.ID, err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrPropertyNotFound
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("mongodb: failed to delete property %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

func (r *PropertyRepository) FindByID(ctx context.Context, id string) (*domain.Property, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPropertyNotFound
	}
	var doc propertyDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrPropertyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongodb: failed to find property %s: %w", id, err)
	}
	return toDomainProperty(&doc), nil
}

func (r *PropertyRepository) FindAll(ctx context.Context, filter domain.Filter) ([]*domain.Property, error) {
	query := bson.M{}
	if filter.Featured != nil {
		query["isFeatured"] = *filter.Featured
	}

	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("mongodb: failed to query properties: %w", err)
	}
	var docs []*propertyDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongodb: failed to decode properties: %w", err)
	}
	return toDomainProperties(docs), nil
}
