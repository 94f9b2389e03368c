package resource

import (
	"context"

	"github.com/google/uuid"
)

// Envelope is the uniform wrapper every custom entities response uses.
// Success false with a nil transport error is an application-level rejection.
type Envelope[T any] struct {
	Success bool
	Data    T
	Error   string
}

// API is the network collaborator a Controller drives. A non-nil error means
// the call itself failed (network, status, decode).
type API[E any, P any] interface {
	List(ctx context.Context) (Envelope[[]E], error)
	Create(ctx context.Context, payload P) (Envelope[E], error)
	Update(ctx context.Context, id uuid.UUID, payload P) (Envelope[E], error)
	Delete(ctx context.Context, id uuid.UUID) (Envelope[struct{}], error)
}

// Notifier receives user-visible messages. Calls are fire-and-forget.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Payload is implemented by create/update records so success messages can
// name the entity.
type Payload interface {
	DisplayName() string
}
