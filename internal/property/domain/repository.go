package domain

import "context"

type PropertyRepository interface {
	Create(ctx context.Context, property *Property) error
	Update(ctx context.Context, property *Property) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Property, error)
	FindAll(ctx context.Context, filter Filter) ([]*Property, error)
}
