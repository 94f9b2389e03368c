package resource

import "slices"

// State is a point-in-time view of a controller. Error is nil unless the
// most recent operation failed.
type State[E any] struct {
	Items []E     `json:"items"`
	Busy  bool    `json:"busy"`
	Error *string `json:"error"`
}

// Cloner is implemented by entities holding slices or maps, so snapshots
// never share memory with the held list.
type Cloner[E any] interface {
	Clone() E
}

func (s State[E]) clone() State[E] {
	out := State[E]{Busy: s.Busy, Items: slices.Clone(s.Items)}
	if out.Items == nil {
		out.Items = []E{}
	}
	for i, item := range out.Items {
		if cl, ok := any(item).(Cloner[E]); ok {
			out.Items[i] = cl.Clone()
		}
	}
	if s.Error != nil {
		msg := *s.Error
		out.Error = &msg
	}
	return out
}

// Subscribe registers fn to receive a snapshot after every state change.
// The returned func removes the subscription.
func (c *Controller[E, P]) Subscribe(fn func(State[E])) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subscribers, id)
	}
}

// State returns a snapshot of the held list, busy flag and last error
func (c *Controller[E, P]) State() State[E] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.clone()
}

// Items returns a copy of the held list
func (c *Controller[E, P]) Items() []E {
	return c.State().Items
}

func (c *Controller[E, P]) Busy() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Busy
}

// Err returns the last error message, or "" when the last operation succeeded
func (c *Controller[E, P]) Err() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state.Error == nil {
		return ""
	}
	return *c.state.Error
}

// update applies mutate under the state lock and then publishes the result
// to subscribers outside of it.
func (c *Controller[E, P]) update(mutate func(s *State[E])) {
	c.mu.Lock()
	mutate(&c.state)
	snapshot := c.state.clone()
	subs := make([]func(State[E]), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		contain(c.labels.Plural, "subscriber", func() { fn(snapshot.clone()) })
	}
}
