package inventory_test

import (
	"sync"
	"testing"

	"github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inventory "github.com/goliatone/go-inventory"
)

func TestAuthorizeOwner(t *testing.T) {
	owner := testIdentity{id: 1, email: "a@x.com"}
	other := testIdentity{id: 2, email: "b@x.com"}

	item := &inventory.Item{ID: 10, OwnerID: 1, InStock: true}

	assert.NoError(t, inventory.AuthorizeOwner(item, owner))

	assertTextCode(t, inventory.AuthorizeOwner(item, other), "NOT_OWNER")
	assertTextCode(t, inventory.AuthorizeOwner(item, nil), "NOT_OWNER")
	assertTextCode(t, inventory.AuthorizeOwner(nil, owner), "ITEM_NOT_FOUND")
}

func TestAuthorizeBooking(t *testing.T) {
	booker := testIdentity{id: 2, email: "b@x.com"}
	stranger := testIdentity{id: 3, email: "c@x.com"}

	bookedBy := "b@x.com"
	available := &inventory.Item{ID: 10, OwnerID: 1, InStock: true}
	booked := &inventory.Item{ID: 10, OwnerID: 1, InStock: false, BookedBy: &bookedBy}

	t.Run("booking", func(t *testing.T) {
		assert.NoError(t, inventory.AuthorizeBooking(available, booker, inventory.ItemStateBooked))
		assertTextCode(t, inventory.AuthorizeBooking(booked, booker, inventory.ItemStateBooked), "ALREADY_BOOKED")
	})

	t.Run("returning", func(t *testing.T) {
		assert.NoError(t, inventory.AuthorizeBooking(booked, booker, inventory.ItemStateAvailable))
		assertTextCode(t, inventory.AuthorizeBooking(booked, stranger, inventory.ItemStateAvailable), "CANNOT_RETURN")
		assertTextCode(t, inventory.AuthorizeBooking(available, booker, inventory.ItemStateAvailable), "CANNOT_RETURN")
	})
}

// Failures must not write through to the shared sentinels: each denial carries
// its own metadata and the package-level errors stay untouched.
func TestAuthorizeOwner_FailuresDoNotShareState(t *testing.T) {
	other := testIdentity{id: 2, email: "b@x.com"}

	first := inventory.AuthorizeOwner(&inventory.Item{ID: 111, OwnerID: 1}, other)
	second := inventory.AuthorizeOwner(&inventory.Item{ID: 222, OwnerID: 1}, other)

	var firstRich, secondRich *errors.Error
	require.True(t, errors.As(first, &firstRich))
	require.True(t, errors.As(second, &secondRich))

	assert.NotSame(t, inventory.ErrNotOwner, firstRich)
	assert.Equal(t, int64(111), firstRich.Metadata["id"])
	assert.Equal(t, int64(222), secondRich.Metadata["id"])
	assert.Nil(t, inventory.ErrNotOwner.Metadata)
}

func TestAuthorizeOwner_ConcurrentFailures(t *testing.T) {
	other := testIdentity{id: 2, email: "b@x.com"}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			err := inventory.AuthorizeOwner(&inventory.Item{ID: id, OwnerID: 1}, other)
			assert.Error(t, err)
		}(int64(i + 1))
	}
	wg.Wait()

	assert.Nil(t, inventory.ErrNotOwner.Metadata)
}
