package resource

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID   uuid.UUID
	Name string
	Tags []string
}

func (w widget) Clone() widget {
	w.Tags = slices.Clone(w.Tags)
	return w
}

type widgetPayload struct {
	Name string
}

func (p widgetPayload) DisplayName() string { return p.Name }

type fakeAPI struct {
	mu sync.Mutex

	listEnv   Envelope[[]widget]
	listErr   error
	createEnv Envelope[widget]
	createErr error
	updateEnv Envelope[widget]
	updateErr error
	deleteEnv Envelope[struct{}]
	deleteErr error

	// onCall runs inside every collaborator call, while the round trip is
	// outstanding
	onCall func(op string)

	calls map[string]int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{calls: make(map[string]int)}
}

func (f *fakeAPI) record(op string) {
	f.mu.Lock()
	f.calls[op]++
	f.mu.Unlock()
	if f.onCall != nil {
		f.onCall(op)
	}
}

func (f *fakeAPI) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeAPI) List(ctx context.Context) (Envelope[[]widget], error) {
	f.record("list")
	return f.listEnv, f.listErr
}

func (f *fakeAPI) Create(ctx context.Context, payload widgetPayload) (Envelope[widget], error) {
	f.record("create")
	return f.createEnv, f.createErr
}

func (f *fakeAPI) Update(ctx context.Context, id uuid.UUID, payload widgetPayload) (Envelope[widget], error) {
	f.record("update")
	return f.updateEnv, f.updateErr
}

func (f *fakeAPI) Delete(ctx context.Context, id uuid.UUID) (Envelope[struct{}], error) {
	f.record("delete")
	return f.deleteEnv, f.deleteErr
}

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
	// all holds every message in delivery order
	all []string
}

func (n *recordingNotifier) Success(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, message)
	n.all = append(n.all, "success: "+message)
}

func (n *recordingNotifier) Error(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, message)
	n.all = append(n.all, "error: "+message)
}

type panickingNotifier struct{}

func (panickingNotifier) Success(string) { panic("sink down") }
func (panickingNotifier) Error(string)   { panic("sink down") }

var widgetLabels = Labels{Singular: "widget", Plural: "custom widgets"}

func newTestController() (*Controller[widget, widgetPayload], *fakeAPI, *recordingNotifier) {
	api := newFakeAPI()
	notifier := &recordingNotifier{}
	return NewController[widget, widgetPayload](api, notifier, widgetLabels), api, notifier
}

func TestFetchReplacesListInServerOrder(t *testing.T) {
	c, api, notifier := newTestController()
	w1 := widget{ID: uuid.New(), Name: "one"}
	w2 := widget{ID: uuid.New(), Name: "two"}
	api.listEnv = Envelope[[]widget]{Success: true, Data: []widget{w1, w2}}

	c.Fetch(context.Background())

	state := c.State()
	require.Equal(t, []widget{w1, w2}, state.Items)
	require.False(t, state.Busy)
	require.Nil(t, state.Error)
	require.Empty(t, notifier.errors)
}

func TestFetchMissingCollectionDefaultsToEmpty(t *testing.T) {
	c, api, _ := newTestController()
	api.listEnv = Envelope[[]widget]{Success: true, Data: []widget{{Name: "stale"}}}
	c.Fetch(context.Background())
	require.Len(t, c.Items(), 1)

	api.listEnv = Envelope[[]widget]{Success: true}
	c.Fetch(context.Background())

	require.NotNil(t, c.Items())
	require.Empty(t, c.Items())
}

func TestFetchRejectedKeepsListAndUsesServerMessage(t *testing.T) {
	c, api, notifier := newTestController()
	existing := widget{ID: uuid.New(), Name: "kept"}
	api.listEnv = Envelope[[]widget]{Success: true, Data: []widget{existing}}
	c.Fetch(context.Background())

	api.listEnv = Envelope[[]widget]{Success: false, Error: "X"}
	c.Fetch(context.Background())

	require.Equal(t, []widget{existing}, c.Items())
	require.Equal(t, "X", c.Err())
	require.Equal(t, []string{"X"}, notifier.errors)
	require.False(t, c.Busy())
}

func TestFetchRejectedWithoutMessageUsesFallback(t *testing.T) {
	c, api, notifier := newTestController()
	api.listEnv = Envelope[[]widget]{Success: false}

	c.Fetch(context.Background())

	require.Equal(t, "Failed to fetch custom widgets", c.Err())
	require.Equal(t, []string{"Failed to fetch custom widgets"}, notifier.errors)
}

func TestFetchTransportFailure(t *testing.T) {
	c, api, notifier := newTestController()
	api.listErr = errors.New("timeout")

	c.Fetch(context.Background())

	require.Equal(t, "timeout", c.Err())
	require.Equal(t, []string{"Failed to load custom widgets"}, notifier.errors)
	require.False(t, c.Busy())
}

func TestTransportAndRejectionNotificationsDiffer(t *testing.T) {
	c, api, notifier := newTestController()

	api.listEnv = Envelope[[]widget]{Success: false}
	c.Fetch(context.Background())
	api.listErr = errors.New("")
	c.Fetch(context.Background())

	require.Len(t, notifier.errors, 2)
	require.NotEqual(t, notifier.errors[0], notifier.errors[1])
	require.Equal(t, "Failed to fetch custom widgets", c.Err())
}

func TestErrorClearedByNextOperation(t *testing.T) {
	c, api, _ := newTestController()
	api.listErr = errors.New("boom")
	c.Fetch(context.Background())
	require.Equal(t, "boom", c.Err())

	api.listErr = nil
	api.listEnv = Envelope[[]widget]{Success: true}
	c.Fetch(context.Background())

	require.Nil(t, c.State().Error)
}

func TestCreateRefreshesThenReturnsEntity(t *testing.T) {
	c, api, notifier := newTestController()
	created := widget{ID: uuid.New(), Name: "Bob"}
	api.createEnv = Envelope[widget]{Success: true, Data: created}

	var itemsAtCreate int
	api.onCall = func(op string) {
		if op == "create" {
			api.listEnv = Envelope[[]widget]{Success: true, Data: []widget{created}}
		}
		itemsAtCreate = len(c.Items())
	}

	got := c.Create(context.Background(), widgetPayload{Name: "Bob"})

	require.NotNil(t, got)
	require.Equal(t, created, *got)
	require.Equal(t, 1, api.count("list"))
	require.Equal(t, []widget{created}, c.Items())
	require.Equal(t, []string{"Created Bob"}, notifier.successes)
	require.Empty(t, notifier.errors)
	require.Zero(t, itemsAtCreate)
}

func TestCreateRejected(t *testing.T) {
	c, api, notifier := newTestController()
	api.createEnv = Envelope[widget]{Success: false, Error: "name taken"}

	got := c.Create(context.Background(), widgetPayload{Name: "Bob"})

	require.Nil(t, got)
	require.Equal(t, "name taken", c.Err())
	require.Equal(t, []string{"name taken"}, notifier.errors)
	require.Zero(t, api.count("list"))
	require.Empty(t, notifier.successes)
}

func TestCreateTransportFailure(t *testing.T) {
	c, api, notifier := newTestController()
	api.createErr = errors.New("connection refused")

	got := c.Create(context.Background(), widgetPayload{Name: "Bob"})

	require.Nil(t, got)
	require.Equal(t, "connection refused", c.Err())
	require.Equal(t, []string{"Failed to create widget"}, notifier.errors)
	require.Zero(t, api.count("list"))
}

func TestUpdateSuccessAndFailure(t *testing.T) {
	c, api, notifier := newTestController()
	id := uuid.New()
	api.updateEnv = Envelope[widget]{Success: true, Data: widget{ID: id, Name: "Renamed"}}
	api.listEnv = Envelope[[]widget]{Success: true, Data: []widget{{ID: id, Name: "Renamed"}}}

	got := c.Update(context.Background(), id, widgetPayload{Name: "Renamed"})
	require.NotNil(t, got)
	require.Equal(t, "Renamed", got.Name)
	require.Equal(t, 1, api.count("list"))
	require.Equal(t, []string{"Updated Renamed"}, notifier.successes)

	api.updateEnv = Envelope[widget]{}
	got = c.Update(context.Background(), id, widgetPayload{Name: "Again"})
	require.Nil(t, got)
	require.Equal(t, "Failed to update widget", c.Err())
	require.Equal(t, 1, api.count("list"))
}

func TestDeleteSuccess(t *testing.T) {
	c, api, notifier := newTestController()
	api.deleteEnv = Envelope[struct{}]{Success: true}
	api.listEnv = Envelope[[]widget]{Success: true}

	ok := c.Delete(context.Background(), uuid.New(), "Bob")

	require.True(t, ok)
	require.Equal(t, 1, api.count("list"))
	require.Equal(t, []string{"Deleted Bob"}, notifier.successes)
}

func TestDeleteFailureDoesNotRefresh(t *testing.T) {
	c, api, notifier := newTestController()
	api.deleteErr = errors.New("gateway timeout")

	ok := c.Delete(context.Background(), uuid.New(), "Bob")

	require.False(t, ok)
	require.Equal(t, "gateway timeout", c.Err())
	require.Zero(t, api.count("list"))
	require.Equal(t, []string{"Failed to delete widget"}, notifier.errors)
	require.Empty(t, notifier.successes)
}

func TestPanickingCollaboratorIsContained(t *testing.T) {
	c, api, notifier := newTestController()
	api.onCall = func(op string) { panic("decoder exploded") }

	var ok bool
	require.NotPanics(t, func() {
		ok = c.Delete(context.Background(), uuid.New(), "Bob")
	})

	require.False(t, ok)
	require.Equal(t, "decoder exploded", c.Err())
	require.Len(t, notifier.errors, 1)
	require.False(t, c.Busy())
}

func TestBusyHeldForWholeOperation(t *testing.T) {
	type scenario struct {
		name    string
		succeed bool
		run     func(c *Controller[widget, widgetPayload])
	}

	var scenarios []scenario
	for _, succeed := range []bool{true, false} {
		scenarios = append(scenarios,
			scenario{"fetch", succeed, func(c *Controller[widget, widgetPayload]) { c.Fetch(context.Background()) }},
			scenario{"create", succeed, func(c *Controller[widget, widgetPayload]) {
				c.Create(context.Background(), widgetPayload{Name: "a"})
			}},
			scenario{"update", succeed, func(c *Controller[widget, widgetPayload]) {
				c.Update(context.Background(), uuid.New(), widgetPayload{Name: "a"})
			}},
			scenario{"delete", succeed, func(c *Controller[widget, widgetPayload]) {
				c.Delete(context.Background(), uuid.New(), "a")
			}},
		)
	}

	for _, sc := range scenarios {
		name := sc.name + "/failure"
		if sc.succeed {
			name = sc.name + "/success"
		}
		t.Run(name, func(t *testing.T) {
			c, api, _ := newTestController()
			api.listEnv = Envelope[[]widget]{Success: sc.succeed}
			api.createEnv = Envelope[widget]{Success: sc.succeed}
			api.updateEnv = Envelope[widget]{Success: sc.succeed}
			api.deleteEnv = Envelope[struct{}]{Success: sc.succeed}

			var busyDuringCalls []bool
			api.onCall = func(op string) {
				busyDuringCalls = append(busyDuringCalls, c.Busy())
			}

			var transitions []bool
			unsubscribe := c.Subscribe(func(s State[widget]) {
				transitions = append(transitions, s.Busy)
			})
			defer unsubscribe()

			require.False(t, c.Busy())
			sc.run(c)
			require.False(t, c.Busy())

			require.NotEmpty(t, busyDuringCalls)
			for _, busy := range busyDuringCalls {
				require.True(t, busy)
			}
			require.True(t, transitions[0])
			require.False(t, transitions[len(transitions)-1])
			for _, busy := range transitions[1 : len(transitions)-1] {
				require.True(t, busy)
			}
		})
	}
}

func TestInitializeFetchesOnce(t *testing.T) {
	c, api, _ := newTestController()
	api.listEnv = Envelope[[]widget]{Success: true}

	c.Initialize(context.Background())
	c.Initialize(context.Background())

	require.Equal(t, 1, api.count("list"))
}

func TestNewControllerPerformsNoIO(t *testing.T) {
	_, api, _ := newTestController()
	require.Zero(t, api.count("list"))
}

func TestOperationsAreSerialized(t *testing.T) {
	c, api, _ := newTestController()
	api.listEnv = Envelope[[]widget]{Success: true}

	var mu sync.Mutex
	inFlight, maxInFlight := 0, 0
	release := make(chan struct{})
	api.onCall = func(op string) {
		mu.Lock()
		inFlight++
		if inFlight > maxInFlight {
			maxInFlight = inFlight
		}
		mu.Unlock()
		<-release
		mu.Lock()
		inFlight--
		mu.Unlock()
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Fetch(context.Background())
		}()
	}
	for i := 0; i < 4; i++ {
		release <- struct{}{}
	}
	wg.Wait()

	require.Equal(t, 1, maxInFlight)
	require.Equal(t, 4, api.count("list"))
}

func TestUnsubscribeStopsUpdates(t *testing.T) {
	c, api, _ := newTestController()
	api.listEnv = Envelope[[]widget]{Success: true}

	calls := 0
	unsubscribe := c.Subscribe(func(State[widget]) { calls++ })
	c.Fetch(context.Background())
	seen := calls
	unsubscribe()
	c.Fetch(context.Background())

	require.Positive(t, seen)
	require.Equal(t, seen, calls)
}

func TestStateSnapshotIsIsolated(t *testing.T) {
	c, api, _ := newTestController()
	api.listEnv = Envelope[[]widget]{Success: true, Data: []widget{{Name: "orig"}}}
	c.Fetch(context.Background())

	snapshot := c.State()
	snapshot.Items[0].Name = "mutated"

	require.Equal(t, "orig", c.Items()[0].Name)
}

func TestStateSnapshotDoesNotShareNestedSlices(t *testing.T) {
	c, api, _ := newTestController()
	api.listEnv = Envelope[[]widget]{Success: true, Data: []widget{{Name: "orig", Tags: []string{"a"}}}}

	var seen State[widget]
	c.Subscribe(func(s State[widget]) { seen = s })
	c.Fetch(context.Background())

	snapshot := c.State()
	snapshot.Items[0].Tags[0] = "mutated"
	seen.Items[0].Tags[0] = "mutated"

	require.Equal(t, []string{"a"}, c.Items()[0].Tags)
}

func TestCreateSucceedsWhenRefreshFails(t *testing.T) {
	c, api, notifier := newTestController()
	created := widget{ID: uuid.New(), Name: "Bob"}
	api.createEnv = Envelope[widget]{Success: true, Data: created}
	api.onCall = func(op string) {
		if op == "create" {
			api.listErr = errors.New("connection reset")
		}
	}

	got := c.Create(context.Background(), widgetPayload{Name: "Bob"})

	require.NotNil(t, got)
	require.Equal(t, created, *got)
	require.Equal(t, "connection reset", c.Err())
	require.False(t, c.Busy())
	require.Equal(t, []string{
		"error: Failed to load custom widgets",
		"success: Created Bob",
	}, notifier.all)
}

func TestDeleteSucceedsWhenRefreshFails(t *testing.T) {
	c, api, notifier := newTestController()
	api.deleteEnv = Envelope[struct{}]{Success: true}
	api.onCall = func(op string) {
		if op == "delete" {
			api.listErr = errors.New("connection reset")
		}
	}

	ok := c.Delete(context.Background(), uuid.New(), "Bob")

	require.True(t, ok)
	require.Equal(t, "connection reset", c.Err())
	require.Equal(t, []string{
		"error: Failed to load custom widgets",
		"success: Deleted Bob",
	}, notifier.all)
}

func TestPanickingNotifierIsContained(t *testing.T) {
	api := newFakeAPI()
	api.deleteErr = errors.New("gateway timeout")
	c := NewController[widget, widgetPayload](api, panickingNotifier{}, widgetLabels)

	var ok bool
	require.NotPanics(t, func() {
		ok = c.Delete(context.Background(), uuid.New(), "Bob")
	})

	require.False(t, ok)
	require.Equal(t, "gateway timeout", c.Err())
	require.False(t, c.Busy())

	api.deleteErr = nil
	api.deleteEnv = Envelope[struct{}]{Success: true}
	api.listEnv = Envelope[[]widget]{Success: true}
	require.NotPanics(t, func() {
		ok = c.Delete(context.Background(), uuid.New(), "Bob")
	})
	require.True(t, ok)
}

func TestPanickingSubscriberIsContained(t *testing.T) {
	c, api, _ := newTestController()
	api.listEnv = Envelope[[]widget]{Success: true, Data: []widget{{Name: "one"}}}

	c.Subscribe(func(State[widget]) { panic("render failed") })
	calls := 0
	c.Subscribe(func(State[widget]) { calls++ })

	require.NotPanics(t, func() { c.Fetch(context.Background()) })

	require.Len(t, c.Items(), 1)
	require.False(t, c.Busy())
	require.Positive(t, calls)
}
