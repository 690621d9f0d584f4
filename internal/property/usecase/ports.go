package usecase

import (
	"context"

	"github.com/alanya-estates/property-service/internal/property/domain"
)

// Storage stores uploaded images and hands back publicly resolvable
// references. Remove is best-effort and must silently ignore references the
// adapter does not own.
type Storage interface {
	Upload(ctx context.Context, originalFileName string, data []byte) (string, error)
	Remove(ctx context.Context, fileURL string) error
	Owns(fileURL string) bool
}

// Cache is a best-effort read cache for single properties. Get returns
// (nil, nil) on a miss.
type Cache interface {
	GetProperty(ctx context.Context, id string) (*domain.Property, error)
	SetProperty(ctx context.Context, property *domain.Property) error
	DeleteProperty(ctx context.Context, id string) error
}

// EventPublisher broadcasts property lifecycle events.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// Mailer notifies the site admin about new listings.
type Mailer interface {
	SendPropertyCreated(toEmail, nameKey string) error
}
