package inventory

import (
	"context"
	"database/sql"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// ListItemsCriteria narrows and pages the item listing
type ListItemsCriteria struct {
	Limit  int
	Skip   int
	Search string
}

// Items is the item ledger contract. Book and Return are conditional writes:
// the current state is part of the UPDATE predicate so conflicting requests on
// the same item serialize in storage instead of racing in the application.
type Items interface {
	Create(ctx context.Context, item *Item) (*Item, error)
	GetByID(ctx context.Context, id int64) (*Item, error)
	List(ctx context.Context, criteria ListItemsCriteria) ([]*Item, error)
	Update(ctx context.Context, id, ownerID int64, name, description string) (*Item, error)
	Delete(ctx context.Context, id, ownerID int64) error
	Book(ctx context.Context, id int64, bookerEmail string) (*Item, error)
	Return(ctx context.Context, id int64, bookerEmail string) (*Item, error)
}

type items struct {
	db     bun.IDB
	logger Logger
}

var _ Items = (*items)(nil)

type ItemsOption func(*items)

func WithItemsLogger(logger Logger) ItemsOption {
	return func(i *items) {
		if logger != nil {
			i.logger = logger
		}
	}
}

func NewItemsRepository(db bun.IDB, opts ...ItemsOption) Items {
	repo := &items{
		db:     db,
		logger: defLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(repo)
		}
	}
	return repo
}

func (a *items) Create(ctx context.Context, item *Item) (*Item, error) {
	item.InStock = true
	item.BookedBy = nil

	if _, err := a.db.NewInsert().Model(item).Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to create item")
	}

	return a.GetByID(ctx, item.ID)
}

func (a *items) GetByID(ctx context.Context, id int64) (*Item, error) {
	record := &Item{}
	err := a.db.NewSelect().
		Model(record).
		Relation("Owner").
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound.Clone().WithMetadata(map[string]any{
				"id": id,
			})
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load item")
	}

	return record, nil
}

func (a *items) List(ctx context.Context, criteria ListItemsCriteria) ([]*Item, error) {
	if criteria.Limit <= 0 {
		criteria.Limit = 10
	}
	if criteria.Skip < 0 {
		criteria.Skip = 0
	}

	records := []*Item{}
	q := a.db.NewSelect().
		Model(&records).
		Relation("Owner").
		Limit(criteria.Limit).
		Offset(criteria.Skip).
		Order("itm.id ASC")

	if criteria.Search != "" {
		q = q.Where("?TableAlias.name LIKE ?", "%"+criteria.Search+"%")
	}

	if err := q.Scan(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to list items")
	}

	return records, nil
}

// Update changes name and description only; booking fields are never touched.
// The owner id rides in the predicate so a concurrent delete cannot turn the
// earlier ownership check stale.
func (a *items) Update(ctx context.Context, id, ownerID int64, name, description string) (*Item, error) {
	res, err := a.db.NewUpdate().
		Model((*Item)(nil)).
		Set("name = ?", name).
		Set("description = ?", description).
		Set("updated_at = current_timestamp").
		Where("?TableAlias.id = ?", id).
		Where("?TableAlias.owner_id = ?", ownerID).
		Exec(ctx)

	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to update item")
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, a.classifyOwnerMiss(ctx, id, ownerID)
	}

	return a.GetByID(ctx, id)
}

func (a *items) Delete(ctx context.Context, id, ownerID int64) error {
	res, err := a.db.NewDelete().
		Model((*Item)(nil)).
		Where("?TableAlias.id = ?", id).
		Where("?TableAlias.owner_id = ?", ownerID).
		Exec(ctx)

	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to delete item")
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return a.classifyOwnerMiss(ctx, id, ownerID)
	}

	return nil
}

// Book flips an available item to booked in a single guarded statement. A
// zero-row result means the guard failed; a fresh read decides whether that
// was a missing item or a lost booking race.
func (a *items) Book(ctx context.Context, id int64, bookerEmail string) (*Item, error) {
	res, err := a.db.NewUpdate().
		Model((*Item)(nil)).
		Set("in_stock = ?", false).
		Set("booked_by = ?", bookerEmail).
		Set("updated_at = current_timestamp").
		Where("?TableAlias.id = ?", id).
		Where("?TableAlias.in_stock = ?", true).
		Exec(ctx)

	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to book item")
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		if _, err := a.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrAlreadyBooked.Clone().WithMetadata(map[string]any{
			"id": id,
		})
	}

	return a.GetByID(ctx, id)
}

// Return clears the booking only when the caller is the current booker.
func (a *items) Return(ctx context.Context, id int64, bookerEmail string) (*Item, error) {
	res, err := a.db.NewUpdate().
		Model((*Item)(nil)).
		Set("in_stock = ?", true).
		Set("booked_by = NULL").
		Set("updated_at = current_timestamp").
		Where("?TableAlias.id = ?", id).
		Where("?TableAlias.in_stock = ?", false).
		Where("?TableAlias.booked_by = ?", bookerEmail).
		Exec(ctx)

	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to return item")
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		if _, err := a.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrCannotReturn.Clone().WithMetadata(map[string]any{
			"id": id,
		})
	}

	return a.GetByID(ctx, id)
}

func (a *items) classifyOwnerMiss(ctx context.Context, id, ownerID int64) error {
	item, err := a.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return ErrNotOwner.Clone().WithMetadata(map[string]any{
		"id":       id,
		"owner_id": item.OwnerID,
		"actor_id": ownerID,
	})
}
