package rest

import (
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	inventory "github.com/goliatone/go-inventory"
)

// ItemsController serves the item ledger routes. Every handler resolves the
// authenticated identity first; ownership and booking checks run before any
// write reaches storage.
type ItemsController struct {
	Items   inventory.Items
	Booking inventory.ItemStateMachine
	Logger  inventory.Logger
}

// ItemRequest is the create/update payload
type ItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate will run validation rules
func (r ItemRequest) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(
				&r.Name,
				validation.Required,
				validation.Length(1, 200),
			),
			validation.Field(
				&r.Description,
				validation.Required,
				validation.Length(1, 2000),
			),
		)
	}, "Invalid item payload")
}

// ItemResponse is the public shape of a ledger record
type ItemResponse struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	InStock     bool          `json:"in_stock"`
	BookedBy    *string       `json:"booked_by"`
	OwnerID     int64         `json:"owner_id"`
	Owner       *UserResponse `json:"owner,omitempty"`
	CreatedAt   *time.Time    `json:"created_at,omitempty"`
}

// NewItemResponse maps a ledger record onto the response shape
func NewItemResponse(item *inventory.Item) ItemResponse {
	resp := ItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		InStock:     item.InStock,
		BookedBy:    item.BookedBy,
		OwnerID:     item.OwnerID,
		CreatedAt:   item.CreatedAt,
	}

	if item.Owner != nil {
		owner := NewUserResponse(item.Owner)
		resp.Owner = &owner
	}

	return resp
}

func (a *ItemsController) List(c *fiber.Ctx) error {
	if _, err := IdentityFromCtx(c); err != nil {
		return err
	}

	criteria := inventory.ListItemsCriteria{
		Limit:  c.QueryInt("limit", 10),
		Skip:   c.QueryInt("skip", 0),
		Search: c.Query("search"),
	}

	records, err := a.Items.List(c.Context(), criteria)
	if err != nil {
		return err
	}

	out := make([]ItemResponse, 0, len(records))
	for _, record := range records {
		out = append(out, NewItemResponse(record))
	}

	return c.JSON(out)
}

func (a *ItemsController) Create(c *fiber.Ctx) error {
	identity, err := IdentityFromCtx(c)
	if err != nil {
		return err
	}

	payload := new(ItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "failed to parse item payload").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	item, err := a.Items.Create(c.Context(), &inventory.Item{
		Name:        payload.Name,
		Description: payload.Description,
		OwnerID:     identity.ID(),
	})
	if err != nil {
		a.Logger.Error("item create failed: %v", err)
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(NewItemResponse(item))
}

func (a *ItemsController) Show(c *fiber.Ctx) error {
	identity, err := IdentityFromCtx(c)
	if err != nil {
		return err
	}

	id, err := itemID(c)
	if err != nil {
		return err
	}

	item, err := a.Items.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	if err := inventory.AuthorizeOwner(item, identity); err != nil {
		return err
	}

	return c.JSON(NewItemResponse(item))
}

func (a *ItemsController) Update(c *fiber.Ctx) error {
	identity, err := IdentityFromCtx(c)
	if err != nil {
		return err
	}

	id, err := itemID(c)
	if err != nil {
		return err
	}

	payload := new(ItemRequest)
	if err := c.BodyParser(payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "failed to parse item payload").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	item, err := a.Items.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	if err := inventory.AuthorizeOwner(item, identity); err != nil {
		return err
	}

	updated, err := a.Items.Update(c.Context(), id, identity.ID(), payload.Name, payload.Description)
	if err != nil {
		return err
	}

	return c.JSON(NewItemResponse(updated))
}

func (a *ItemsController) Delete(c *fiber.Ctx) error {
	identity, err := IdentityFromCtx(c)
	if err != nil {
		return err
	}

	id, err := itemID(c)
	if err != nil {
		return err
	}

	item, err := a.Items.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	if err := inventory.AuthorizeOwner(item, identity); err != nil {
		return err
	}

	if err := a.Items.Delete(c.Context(), id, identity.ID()); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (a *ItemsController) Book(c *fiber.Ctx) error {
	identity, err := IdentityFromCtx(c)
	if err != nil {
		return err
	}

	id, err := itemID(c)
	if err != nil {
		return err
	}

	item, err := a.Booking.Book(c.Context(), identity, id)
	if err != nil {
		return err
	}

	a.Logger.Info("item %d booked by user %d", id, identity.ID())

	return c.JSON(NewItemResponse(item))
}

func (a *ItemsController) Return(c *fiber.Ctx) error {
	identity, err := IdentityFromCtx(c)
	if err != nil {
		return err
	}

	id, err := itemID(c)
	if err != nil {
		return err
	}

	item, err := a.Booking.Return(c.Context(), identity, id)
	if err != nil {
		return err
	}

	a.Logger.Info("item %d returned by user %d", id, identity.ID())

	return c.JSON(NewItemResponse(item))
}

func itemID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid item id", errors.CategoryBadInput).
			WithTextCode("INVALID_ITEM_ID").
			WithCode(errors.CodeBadRequest)
	}
	return id, nil
}
