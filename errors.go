package inventory

import (
	"github.com/goliatone/go-errors"
)

var (
	// ErrTokenExpired is returned when the embedded expiry is in the past.
	ErrTokenExpired = errors.New("authentication token expired", errors.CategoryAuth).
			WithTextCode("TOKEN_EXPIRED").
			WithCode(errors.CodeUnauthorized)

	// ErrTokenMalformed covers bad signatures, undecodable payloads, and
	// tokens missing the user id claim.
	ErrTokenMalformed = errors.New("invalid authentication token", errors.CategoryAuth).
				WithTextCode("TOKEN_MALFORMED").
				WithCode(errors.CodeUnauthorized)

	// ErrIdentityNotFound is the error we return for non found identities
	ErrIdentityNotFound = errors.New("identity not found", errors.CategoryAuth).
				WithTextCode("IDENTITY_NOT_FOUND").
				WithCode(errors.CodeUnauthorized)

	// ErrMismatchedHashAndPassword is returned on credential mismatch. Unknown
	// identifiers collapse into this error so login does not leak which
	// addresses are registered.
	ErrMismatchedHashAndPassword = errors.New("invalid credentials", errors.CategoryAuth).
					WithTextCode("INVALID_CREDENTIALS").
					WithCode(errors.CodeUnauthorized)

	// ErrNoEmptyString rejects empty passwords before hashing.
	ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryBadInput).
				WithTextCode("EMPTY_PASSWORD").
				WithCode(errors.CodeBadRequest)

	// ErrNotOwner is returned when a caller mutates an item they do not own.
	ErrNotOwner = errors.New("not authorized to perform requested action", errors.CategoryAuthz).
			WithTextCode("NOT_OWNER").
			WithCode(errors.CodeForbidden)

	// ErrItemNotFound is returned for absent items.
	ErrItemNotFound = errors.New("item not found", errors.CategoryNotFound).
			WithTextCode("ITEM_NOT_FOUND").
			WithCode(errors.CodeNotFound)

	// ErrAlreadyBooked is returned when booking an item that is not in stock.
	ErrAlreadyBooked = errors.New("item already booked", errors.CategoryConflict).
				WithTextCode("ALREADY_BOOKED").
				WithCode(errors.CodeConflict)

	// ErrCannotReturn is returned when the caller is not the current booker,
	// or the item is not booked at all.
	ErrCannotReturn = errors.New("you can't return this item", errors.CategoryAuthz).
			WithTextCode("CANNOT_RETURN").
			WithCode(errors.CodeForbidden)

	// ErrEmailTaken is returned when registration hits the unique email constraint.
	ErrEmailTaken = errors.New("email already registered", errors.CategoryConflict).
			WithTextCode("EMAIL_TAKEN").
			WithCode(errors.CodeConflict)
)
