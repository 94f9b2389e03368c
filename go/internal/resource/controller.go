package resource

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Controller keeps a client-side cache of one server collection and drives
// fetch/create/update/delete against it. The held list is only ever replaced
// by a full fetch; mutations never patch it in place.
//
// Operations on one controller run one at a time. Busy is true exactly while
// an operation is outstanding.
type Controller[E any, P Payload] struct {
	api      API[E, P]
	notifier Notifier
	labels   Labels

	// opMu serializes operations
	opMu     sync.Mutex
	initOnce sync.Once

	mu          sync.RWMutex
	state       State[E]
	subscribers map[int]func(State[E])
	nextSubID   int
}

// NewController creates a controller. It performs no I/O; the owner calls
// Initialize once it is ready for the first fetch.
func NewController[E any, P Payload](api API[E, P], notifier Notifier, labels Labels) *Controller[E, P] {
	return &Controller[E, P]{
		api:         api,
		notifier:    notifier,
		labels:      labels,
		state:       State[E]{Items: []E{}},
		subscribers: make(map[int]func(State[E])),
	}
}

// Labels returns the entity labels the controller was built with
func (c *Controller[E, P]) Labels() Labels {
	return c.labels
}

// Initialize performs the first fetch. Only the first call does anything.
func (c *Controller[E, P]) Initialize(ctx context.Context) {
	c.initOnce.Do(func() {
		c.Fetch(ctx)
	})
}

// Fetch replaces the held list with the server's collection
func (c *Controller[E, P]) Fetch(ctx context.Context) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.begin()
	defer c.end()

	c.fetch(ctx)
}

// Create submits payload and, once the server accepts it, resynchronizes the
// list before returning the created entity. It returns nil on any failure.
func (c *Controller[E, P]) Create(ctx context.Context, payload P) *E {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.begin()
	defer c.end()

	fallback := c.labels.createFailed()
	env, err := guard(func() (Envelope[E], error) {
		return c.api.Create(ctx, payload)
	})
	if err != nil {
		c.transportFailure(err, fallback, fallback)
		return nil
	}
	if !env.Success {
		c.rejected(env.Error, fallback)
		return nil
	}

	c.fetch(ctx)
	c.notifySuccess(fmt.Sprintf("Created %s", payload.DisplayName()))

	created := env.Data
	return &created
}

// Update replaces every field of entity id with payload. Same contract as Create.
func (c *Controller[E, P]) Update(ctx context.Context, id uuid.UUID, payload P) *E {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.begin()
	defer c.end()

	fallback := c.labels.updateFailed()
	env, err := guard(func() (Envelope[E], error) {
		return c.api.Update(ctx, id, payload)
	})
	if err != nil {
		c.transportFailure(err, fallback, fallback)
		return nil
	}
	if !env.Success {
		c.rejected(env.Error, fallback)
		return nil
	}

	c.fetch(ctx)
	c.notifySuccess(fmt.Sprintf("Updated %s", payload.DisplayName()))

	updated := env.Data
	return &updated
}

// Delete removes entity id. displayName is only used for the notification
// text. It reports whether the server confirmed the deletion.
func (c *Controller[E, P]) Delete(ctx context.Context, id uuid.UUID, displayName string) bool {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.begin()
	defer c.end()

	fallback := c.labels.deleteFailed()
	env, err := guard(func() (Envelope[struct{}], error) {
		return c.api.Delete(ctx, id)
	})
	if err != nil {
		c.transportFailure(err, fallback, fallback)
		return false
	}
	if !env.Success {
		c.rejected(env.Error, fallback)
		return false
	}

	c.fetch(ctx)
	c.notifySuccess(fmt.Sprintf("Deleted %s", displayName))
	return true
}

// fetch runs the list round trip. Callers hold opMu and have marked busy.
func (c *Controller[E, P]) fetch(ctx context.Context) bool {
	log.Debug().Str("resource", c.labels.Plural).Msg("fetching list")

	env, err := guard(func() (Envelope[[]E], error) {
		return c.api.List(ctx)
	})
	if err != nil {
		c.transportFailure(err, c.labels.fetchFailed(), c.labels.loadFailed())
		return false
	}
	if !env.Success {
		c.rejected(env.Error, c.labels.fetchFailed())
		return false
	}

	items := env.Data
	if items == nil {
		items = []E{}
	}
	c.update(func(s *State[E]) {
		s.Items = items
	})
	return true
}

func (c *Controller[E, P]) begin() {
	c.update(func(s *State[E]) {
		s.Busy = true
		s.Error = nil
	})
}

func (c *Controller[E, P]) end() {
	c.update(func(s *State[E]) {
		s.Busy = false
	})
}

// rejected records an application-level rejection: the call went through but
// the envelope says it failed.
func (c *Controller[E, P]) rejected(serverMsg, fallback string) {
	msg := serverMsg
	if msg == "" {
		msg = fallback
	}
	log.Warn().Str("resource", c.labels.Plural).Str("error", msg).Msg("request rejected")

	c.setError(msg)
	c.notifyError(msg)
}

// transportFailure records a failed call. The error field carries the fault's
// own message while the notification uses the fixed wording.
func (c *Controller[E, P]) transportFailure(err error, fallback, notice string) {
	msg := err.Error()
	if msg == "" {
		msg = fallback
	}
	log.Error().Err(err).Str("resource", c.labels.Plural).Msg(notice)

	c.setError(msg)
	c.notifyError(notice)
}

func (c *Controller[E, P]) setError(msg string) {
	c.update(func(s *State[E]) {
		s.Error = &msg
	})
}

func (c *Controller[E, P]) notifySuccess(msg string) {
	contain(c.labels.Plural, "notifier", func() { c.notifier.Success(msg) })
}

func (c *Controller[E, P]) notifyError(msg string) {
	contain(c.labels.Plural, "notifier", func() { c.notifier.Error(msg) })
}

// contain runs fn and logs a panic instead of letting it reach the caller
func contain(resource, what string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("resource", resource).
				Str("source", what).
				Interface("panic", r).
				Msg("recovered from panic")
		}
	}()
	fn()
}

// guard turns a panic in the collaborator into an ordinary error
func guard[T any](fn func() (T, error)) (out T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return fn()
}
