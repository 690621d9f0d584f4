package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/alanya-estates/property-service/internal/platform/logger"
	"github.com/alanya-estates/property-service/internal/property/domain"
)

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrInvalidInput     = errors.New("invalid property data")
)

const (
	SubjectPropertyCreated = "property.created"
	SubjectPropertyUpdated = "property.updated"
	SubjectPropertyDeleted = "property.deleted"
)

// propertyEvent is the payload published to the message broker after a
// successful mutation.
type propertyEvent struct {
	ID         string    `json:"id"`
	NameKey    string    `json:"nameKey"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
}

type PropertyUsecase struct {
	repo       domain.PropertyRepository
	storage    Storage
	cache      Cache
	events     EventPublisher
	mailer     Mailer
	adminEmail string
	logger     *logger.Logger
}

func NewPropertyUsecase(repo domain.PropertyRepository, storage Storage, cache Cache, events EventPublisher, mailer Mailer, adminEmail string, log *logger.Logger) *PropertyUsecase {
	return &PropertyUsecase{
		repo:       repo,
		storage:    storage,
		cache:      cache,
		events:     events,
		mailer:     mailer,
		adminEmail: adminEmail,
		logger:     log,
	}
}

// CreateProperty validates and normalizes the input, stores the uploaded
// images, and persists the new property. The returned record carries the
// repository-assigned id.
func (uc *PropertyUsecase) CreateProperty(ctx context.Context, in PropertyInput, mainImage *FileUpload, gallery []FileUpload) (*domain.Property, error) {
	uc.logger.Info("PropertyUsecase.CreateProperty: creating property", "name_key", in.NameKey, "type", in.Type)

	if err := in.validate(); err != nil {
		uc.logger.Warn("PropertyUsecase.CreateProperty: validation failed", "error", err.Error())
		return nil, err
	}

	property := in.toDomain()

	if mainImage != nil {
		url, err := uc.storage.Upload(ctx, mainImage.Filename, mainImage.Data)
		if err != nil {
			uc.logger.Error("PropertyUsecase.CreateProperty: main image upload failed", "filename", mainImage.Filename, "error", err.Error())
			return nil, err
		}
		property.ImageURL = url
	}

	for _, file := range gallery {
		url, err := uc.storage.Upload(ctx, file.Filename, file.Data)
		if err != nil {
			// An already-stored image stays behind as an orphan; this is
			// logged rather than rolled back.
			uc.logger.Error("PropertyUsecase.CreateProperty: gallery image upload failed", "filename", file.Filename, "error", err.Error())
			return nil, err
		}
		property.GalleryImages = append(property.GalleryImages, url)
	}

	now := time.Now()
	property.CreatedAt = now
	property.UpdatedAt = now

	if err := uc.repo.Create(ctx, property); err != nil {
		uc.logger.Error("PropertyUsecase.CreateProperty: failed to persist property", "name_key", in.NameKey, "error", err.Error())
		return nil, err
	}

	uc.publishEvent(ctx, SubjectPropertyCreated, property)
	uc.notifyAdmin(property)

	return property, nil
}

// UpdateProperty merges the supplied fields over the stored record. A new
// main image replaces the old one and schedules its deletion; the gallery is
// rebuilt from the retained references plus any newly uploaded files.
func (uc *PropertyUsecase) UpdateProperty(ctx context.Context, id string, in PropertyInput, mainImage *FileUpload, gallery []FileUpload) (*domain.Property, error) {
	uc.logger.Info("PropertyUsecase.UpdateProperty: updating property", "property_id", id)

	existing, err := uc.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := in.validate(); err != nil {
		uc.logger.Warn("PropertyUsecase.UpdateProperty: validation failed", "property_id", id, "error", err.Error())
		return nil, err
	}

	property := in.toDomain()
	property.ID = existing.ID
	property.CreatedAt = existing.CreatedAt
	property.ImageURL = existing.ImageURL

	if mainImage != nil {
		if existing.ImageURL != "" {
			// Best-effort: a failed delete leaves the old file behind but
			// never blocks the update.
			if err := uc.storage.Remove(ctx, existing.ImageURL); err != nil {
				uc.logger.Warn("PropertyUsecase.UpdateProperty: failed to remove old main image", "property_id", id, "image_url", existing.ImageURL, "error", err.Error())
			}
		}
		url, err := uc.storage.Upload(ctx, mainImage.Filename, mainImage.Data)
		if err != nil {
			uc.logger.Error("PropertyUsecase.UpdateProperty: main image upload failed", "property_id", id, "error", err.Error())
			return nil, err
		}
		property.ImageURL = url
	}

	// Only references from our own asset namespace may be retained; anything
	// else in the list is dropped. Retained images that the caller removed
	// are not deleted from storage.
	retained := make([]string, 0, len(in.ExistingGalleryImages))
	for _, ref := range in.ExistingGalleryImages {
		if uc.storage.Owns(ref) {
			retained = append(retained, ref)
		} else {
			uc.logger.Warn("PropertyUsecase.UpdateProperty: dropping unrecognized gallery reference", "property_id", id, "reference", ref)
		}
	}
	property.GalleryImages = retained
	for _, file := range gallery {
		url, err := uc.storage.Upload(ctx, file.Filename, file.Data)
		if err != nil {
			uc.logger.Error("PropertyUsecase.UpdateProperty: gallery image upload failed", "property_id", id, "filename", file.Filename, "error", err.Error())
			return nil, err
		}
		property.GalleryImages = append(property.GalleryImages, url)
	}

	property.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, property); err != nil {
		uc.logger.Error("PropertyUsecase.UpdateProperty: failed to persist property", "property_id", id, "error", err.Error())
		if errors.Is(err, domain.ErrPropertyNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}

	uc.invalidateCache(ctx, id)
	uc.publishEvent(ctx, SubjectPropertyUpdated, property)

	return property, nil
}

// DeleteProperty removes the document and best-effort deletes its images.
// The operation succeeds once the document is gone, regardless of how the
// asset deletions fared.
func (uc *PropertyUsecase) DeleteProperty(ctx context.Context, id string) error {
	uc.logger.Info("PropertyUsecase.DeleteProperty: deleting property", "property_id", id)

	property, err := uc.findByID(ctx, id)
	if err != nil {
		return err
	}

	if property.ImageURL != "" {
		if err := uc.storage.Remove(ctx, property.ImageURL); err != nil {
			uc.logger.Warn("PropertyUsecase.DeleteProperty: failed to remove main image", "property_id", id, "image_url", property.ImageURL, "error", err.Error())
		}
	}
	for _, ref := range property.GalleryImages {
		if err := uc.storage.Remove(ctx, ref); err != nil {
			uc.logger.Warn("PropertyUsecase.DeleteProperty: failed to remove gallery image", "property_id", id, "image_url", ref, "error", err.Error())
		}
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		uc.logger.Error("PropertyUsecase.DeleteProperty: failed to delete property", "property_id", id, "error", err.Error())
		if errors.Is(err, domain.ErrPropertyNotFound) {
			return ErrPropertyNotFound
		}
		return err
	}

	uc.invalidateCache(ctx, id)
	uc.publishEvent(ctx, SubjectPropertyDeleted, property)

	return nil
}

// GetProperty reads through the cache; cache failures degrade to a plain
// repository read.
func (uc *PropertyUsecase) GetProperty(ctx context.Context, id string) (*domain.Property, error) {
	if cached, err := uc.cache.GetProperty(ctx, id); err != nil {
		uc.logger.Warn("PropertyUsecase.GetProperty: cache read failed", "property_id", id, "error", err.Error())
	} else if cached != nil {
		return cached, nil
	}

	property, err := uc.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.SetProperty(ctx, property); err != nil {
		uc.logger.Warn("PropertyUsecase.GetProperty: cache write failed", "property_id", id, "error", err.Error())
	}
	return property, nil
}

func (uc *PropertyUsecase) ListProperties(ctx context.Context, filter domain.Filter) ([]*domain.Property, error) {
	properties, err := uc.repo.FindAll(ctx, filter)
	if err != nil {
		uc.logger.Error("PropertyUsecase.ListProperties: failed to list properties", "error", err.Error())
		return nil, err
	}
	return properties, nil
}

func (uc *PropertyUsecase) findByID(ctx context.Context, id string) (*domain.Property, error) {
	property, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrPropertyNotFound) {
			uc.logger.Warn("PropertyUsecase: property not found", "property_id", id)
			return nil, ErrPropertyNotFound
		}
		uc.logger.Error("PropertyUsecase: failed to find property", "property_id", id, "error", err.Error())
		return nil, err
	}
	return property, nil
}

func (uc *PropertyUsecase) invalidateCache(ctx context.Context, id string) {
	if err := uc.cache.DeleteProperty(ctx, id); err != nil {
		uc.logger.Warn("PropertyUsecase: cache invalidation failed", "property_id", id, "error", err.Error())
	}
}

func (uc *PropertyUsecase) publishEvent(ctx context.Context, subject string, property *domain.Property) {
	event := propertyEvent{
		ID:         property.ID,
		NameKey:    property.NameKey,
		Type:       string(property.Type),
		OccurredAt: time.Now(),
	}
	if err := uc.events.Publish(ctx, subject, event); err != nil {
		uc.logger.Warn("PropertyUsecase: failed to publish event", "subject", subject, "property_id", property.ID, "error", err.Error())
	}
}

func (uc *PropertyUsecase) notifyAdmin(property *domain.Property) {
	if uc.adminEmail == "" {
		return
	}
	if err := uc.mailer.SendPropertyCreated(uc.adminEmail, property.NameKey); err != nil {
		uc.logger.Warn("PropertyUsecase: failed to send admin notification", "property_id", property.ID, "error", err.Error())
	}
}
