package inventory

import (
	"context"
	"database/sql"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// Users is the credential store contract
type Users interface {
	Register(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error
}

type users struct {
	db     bun.IDB
	logger Logger
}

var _ Users = (*users)(nil)

type UsersOption func(*users)

func WithUsersLogger(logger Logger) UsersOption {
	return func(u *users) {
		if logger != nil {
			u.logger = logger
		}
	}
}

func NewUsersRepository(db bun.IDB, opts ...UsersOption) Users {
	repo := &users{
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

func (a *users) Register(ctx context.Context, user *User) (*User, error) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	if _, err := a.db.NewInsert().Model(user).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken.Clone().WithMetadata(map[string]any{
				"email": user.Email,
			})
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to register user")
	}

	return user, nil
}

func (a *users) GetByID(ctx context.Context, id int64) (*User, error) {
	record := &User{}
	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrIdentityNotFound.Clone().WithMetadata(map[string]any{
				"id": id,
			})
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load user")
	}

	return record, nil
}

func (a *users) GetByEmail(ctx context.Context, email string) (*User, error) {
	record := &User{}
	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias.email = ?", strings.ToLower(strings.TrimSpace(email))).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrIdentityNotFound.Clone().WithMetadata(map[string]any{
				"email": email,
			})
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load user")
	}

	return record, nil
}

func (a *users) UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error {
	res, err := a.db.NewUpdate().
		Model((*User)(nil)).
		Set("password_hash = ?", passwordHash).
		Set("updated_at = current_timestamp").
		Where("?TableAlias.id = ?", id).
		Exec(ctx)

	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to update password")
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrIdentityNotFound.Clone().WithMetadata(map[string]any{
			"id": id,
		})
	}

	return nil
}

// isUniqueViolation matches constraint errors across the sqlite and postgres
// drivers without importing either.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate key")
}
