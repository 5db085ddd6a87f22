package inventory

import (
	"context"
	"time"
)

// ItemState is an item's booking state
type ItemState string

const (
	// ItemStateAvailable means in stock, no booker recorded.
	ItemStateAvailable ItemState = "available"
	// ItemStateBooked means reserved by exactly one identity.
	ItemStateBooked ItemState = "booked"
)

// ItemStateMachine drives the booking lifecycle. There are two transitions and
// no others: Available -> Booked (book) and Booked -> Available (return, same
// booker only). No timeout-based auto-release, no queueing of bookers.
type ItemStateMachine interface {
	Book(ctx context.Context, actor Identity, itemID int64) (*Item, error)
	Return(ctx context.Context, actor Identity, itemID int64) (*Item, error)
	CurrentState(item *Item) ItemState
}

// BookingOption customizes state machine construction.
type BookingOption func(*itemStateMachine)

// WithBookingClock injects a custom clock (useful for tests).
func WithBookingClock(clock func() time.Time) BookingOption {
	return func(sm *itemStateMachine) {
		if clock != nil {
			sm.now = clock
		}
	}
}

// WithBookingActivitySink sets the ActivitySink used to publish lifecycle events.
func WithBookingActivitySink(sink ActivitySink) BookingOption {
	return func(sm *itemStateMachine) {
		sm.activitySink = normalizeActivitySink(sink)
	}
}

// WithBookingLogger overrides the logger used for sink failures.
func WithBookingLogger(logger Logger) BookingOption {
	return func(sm *itemStateMachine) {
		if logger != nil {
			sm.logger = logger
		}
	}
}

// NewItemStateMachine returns the default implementation backed by the provided ledger.
func NewItemStateMachine(items Items, opts ...BookingOption) ItemStateMachine {
	sm := &itemStateMachine{
		items:        items,
		now:          time.Now,
		activitySink: noopActivitySink{},
		logger:       defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(sm)
		}
	}

	return sm
}

type itemStateMachine struct {
	items        Items
	now          func() time.Time
	activitySink ActivitySink
	logger       Logger
}

// Book moves an item from Available to Booked(actor). AuthorizeBooking is the
// eligibility authority; the write is one conditional update in the ledger, so
// losing a race after the check still fails with the same error.
func (sm *itemStateMachine) Book(ctx context.Context, actor Identity, itemID int64) (*Item, error) {
	item, err := sm.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if err := AuthorizeBooking(item, actor, ItemStateBooked); err != nil {
		return nil, err
	}

	updated, err := sm.items.Book(ctx, itemID, actor.Email())
	if err != nil {
		return nil, err
	}

	sm.recordActivity(ctx, ActivityEvent{
		EventType: ActivityEventItemBooked,
		UserID:    actor.ID(),
		ItemID:    itemID,
	})

	return updated, nil
}

// Return moves an item from Booked back to Available, only for the identity
// that booked it. Any other caller, or an item that is not booked, fails.
func (sm *itemStateMachine) Return(ctx context.Context, actor Identity, itemID int64) (*Item, error) {
	item, err := sm.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if err := AuthorizeBooking(item, actor, ItemStateAvailable); err != nil {
		return nil, err
	}

	updated, err := sm.items.Return(ctx, itemID, actor.Email())
	if err != nil {
		return nil, err
	}

	sm.recordActivity(ctx, ActivityEvent{
		EventType: ActivityEventItemReturned,
		UserID:    actor.ID(),
		ItemID:    itemID,
	})

	return updated, nil
}

func (sm *itemStateMachine) CurrentState(item *Item) ItemState {
	return item.State()
}

func (sm *itemStateMachine) recordActivity(ctx context.Context, event ActivityEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = sm.now()
	}

	sink := normalizeActivitySink(sm.activitySink)
	if err := sink.Record(ctx, event); err != nil {
		sm.logger.Warn("state machine activity sink error: %v", err)
	}
}
