package inventory

// AuthorizeOwner succeeds only when the identity created the item. Used to
// gate update and delete, independent of booking state.
func AuthorizeOwner(item *Item, identity Identity) error {
	if item == nil {
		return ErrItemNotFound
	}

	if identity == nil || item.OwnerID != identity.ID() {
		return ErrNotOwner.Clone().WithMetadata(map[string]any{
			"id": item.ID,
		})
	}

	return nil
}

// AuthorizeBooking reports whether the identity may move the item into the
// target state: booking requires the item in stock, returning requires the
// identity to be the recorded booker.
func AuthorizeBooking(item *Item, identity Identity, target ItemState) error {
	if item == nil {
		return ErrItemNotFound
	}

	switch target {
	case ItemStateBooked:
		if !item.InStock {
			return ErrAlreadyBooked.Clone().WithMetadata(map[string]any{
				"id":        item.ID,
				"booked_by": item.BookedByEmail(),
			})
		}
	case ItemStateAvailable:
		if item.InStock || identity == nil || item.BookedByEmail() != identity.Email() {
			return ErrCannotReturn.Clone().WithMetadata(map[string]any{
				"id": item.ID,
			})
		}
	}

	return nil
}
