package inventory

import (
	"time"

	"github.com/uptrace/bun"
)

// User is the credential store record. Immutable after registration except
// for the password hash; never deleted in-scope.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Item is the ledger record. OwnerID is set at creation and never reassigned.
// Invariant: InStock == false exactly when BookedBy is non-nil.
type Item struct {
	bun.BaseModel `bun:"table:items,alias:itm"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Name          string     `bun:"name,notnull" json:"name,omitempty"`
	Description   string     `bun:"description,notnull" json:"description,omitempty"`
	InStock       bool       `bun:"in_stock,notnull,default:true" json:"in_stock"`
	BookedBy      *string    `bun:"booked_by" json:"booked_by"`
	OwnerID       int64      `bun:"owner_id,notnull" json:"owner_id,omitempty"`
	Owner         *User      `bun:"rel:belongs-to,join:owner_id=id" json:"owner,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// State reports the booking state the record is in.
func (i *Item) State() ItemState {
	if i == nil {
		return ""
	}
	if i.InStock {
		return ItemStateAvailable
	}
	return ItemStateBooked
}

// BookedByEmail returns the booker identity or "" when available.
func (i *Item) BookedByEmail() string {
	if i == nil || i.BookedBy == nil {
		return ""
	}
	return *i.BookedBy
}
