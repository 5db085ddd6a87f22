package inventory_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/goliatone/go-errors"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"golang.org/x/crypto/bcrypt"

	inventory "github.com/goliatone/go-inventory"
)

func setupTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:")
	require.NoError(t, err)

	// a single connection keeps the in-memory database alive and shared
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err)

	require.NoError(t, inventory.Migrate(context.Background(), db))

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func seedUser(t *testing.T, users inventory.Users, email, password string) *inventory.User {
	t.Helper()

	// MinCost keeps seeding fast; verification is cost-agnostic
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user, err := users.Register(context.Background(), &inventory.User{
		Email:        email,
		PasswordHash: string(hash),
	})
	require.NoError(t, err)

	return user
}

func assertTextCode(t *testing.T, err error, textCode string) {
	t.Helper()

	require.Error(t, err)

	var richErr *errors.Error
	require.True(t, errors.As(err, &richErr), "expected rich error, got %T: %v", err, err)
	require.Equal(t, textCode, richErr.TextCode)
}
