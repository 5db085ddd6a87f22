package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inventory "github.com/goliatone/go-inventory"
)

func TestUsersRepository_Register(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	users := inventory.NewUsersRepository(db)

	t.Run("assigns an id and normalizes the email", func(t *testing.T) {
		user, err := users.Register(ctx, &inventory.User{
			Email:        "  A@X.com ",
			PasswordHash: "hash",
		})
		require.NoError(t, err)
		assert.NotZero(t, user.ID)
		assert.Equal(t, "a@x.com", user.Email)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		_, err := users.Register(ctx, &inventory.User{
			Email:        "a@x.com",
			PasswordHash: "hash",
		})
		assertTextCode(t, err, "EMAIL_TAKEN")
	})

	t.Run("duplicate detection is case insensitive", func(t *testing.T) {
		_, err := users.Register(ctx, &inventory.User{
			Email:        "A@X.COM",
			PasswordHash: "hash",
		})
		assertTextCode(t, err, "EMAIL_TAKEN")
	})
}

func TestUsersRepository_Lookup(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	users := inventory.NewUsersRepository(db)

	seeded := seedUser(t, users, "a@x.com", "sekret-password")

	t.Run("by id", func(t *testing.T) {
		user, err := users.GetByID(ctx, seeded.ID)
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", user.Email)
	})

	t.Run("by email ignores case and whitespace", func(t *testing.T) {
		user, err := users.GetByEmail(ctx, " A@X.com ")
		require.NoError(t, err)
		assert.Equal(t, seeded.ID, user.ID)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := users.GetByID(ctx, 9999)
		assertTextCode(t, err, "IDENTITY_NOT_FOUND")
		assert.Nil(t, inventory.ErrIdentityNotFound.Metadata)
	})

	t.Run("missing email", func(t *testing.T) {
		_, err := users.GetByEmail(ctx, "nobody@x.com")
		assertTextCode(t, err, "IDENTITY_NOT_FOUND")
	})
}

func TestUsersRepository_UpdatePasswordHash(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	users := inventory.NewUsersRepository(db)

	seeded := seedUser(t, users, "a@x.com", "sekret-password")

	require.NoError(t, users.UpdatePasswordHash(ctx, seeded.ID, "new-hash"))

	user, err := users.GetByID(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", user.PasswordHash)

	err = users.UpdatePasswordHash(ctx, 9999, "new-hash")
	assertTextCode(t, err, "IDENTITY_NOT_FOUND")
}
