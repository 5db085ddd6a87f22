package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	inventory "github.com/goliatone/go-inventory"
)

func testConfig() inventory.AppConfig {
	return inventory.AppConfig{
		SigningKey:      "test-signing-key",
		SigningMethod:   "HS256",
		TokenExpiration: 30,
		Issuer:          "test-issuer",
	}
}

func TestAuther_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("returns a verifiable token for good credentials", func(t *testing.T) {
		provider := &MockIdentityProvider{}
		provider.On("VerifyIdentity", ctx, "a@x.com", "sekret-password").
			Return(testIdentity{id: 42, email: "a@x.com"}, nil)

		auther := inventory.NewAuthenticator(provider, testConfig())

		token, err := auther.Login(ctx, "a@x.com", "sekret-password")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := auther.TokenService().Validate(token)
		require.NoError(t, err)
		assert.Equal(t, int64(42), claims.UserID())

		provider.AssertExpectations(t)
	})

	t.Run("propagates credential errors", func(t *testing.T) {
		provider := &MockIdentityProvider{}
		provider.On("VerifyIdentity", ctx, "a@x.com", "wrong").
			Return(nil, inventory.ErrMismatchedHashAndPassword)

		auther := inventory.NewAuthenticator(provider, testConfig())

		_, err := auther.Login(ctx, "a@x.com", "wrong")
		assertTextCode(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("emits login events to the activity sink", func(t *testing.T) {
		provider := &MockIdentityProvider{}
		provider.On("VerifyIdentity", ctx, "a@x.com", "sekret-password").
			Return(testIdentity{id: 42, email: "a@x.com"}, nil)
		provider.On("VerifyIdentity", ctx, "a@x.com", "wrong").
			Return(nil, inventory.ErrMismatchedHashAndPassword)

		var events []inventory.ActivityEvent
		sink := inventory.ActivitySinkFunc(func(_ context.Context, event inventory.ActivityEvent) error {
			events = append(events, event)
			return nil
		})

		auther := inventory.NewAuthenticator(provider, testConfig()).WithActivitySink(sink)

		_, err := auther.Login(ctx, "a@x.com", "sekret-password")
		require.NoError(t, err)

		_, err = auther.Login(ctx, "a@x.com", "wrong")
		require.Error(t, err)

		require.Len(t, events, 2)
		assert.Equal(t, inventory.ActivityEventLoginSuccess, events[0].EventType)
		assert.Equal(t, int64(42), events[0].UserID)
		assert.Equal(t, inventory.ActivityEventLoginFailure, events[1].EventType)
	})
}

func TestAuther_Authenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves a freshly issued token to the stored identity", func(t *testing.T) {
		provider := &MockIdentityProvider{}
		provider.On("VerifyIdentity", ctx, "a@x.com", "sekret-password").
			Return(testIdentity{id: 42, email: "a@x.com"}, nil)
		provider.On("FindIdentityByID", ctx, int64(42)).
			Return(testIdentity{id: 42, email: "a@x.com"}, nil)

		auther := inventory.NewAuthenticator(provider, testConfig())

		token, err := auther.Login(ctx, "a@x.com", "sekret-password")
		require.NoError(t, err)

		identity, err := auther.Authenticate(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, int64(42), identity.ID())
		assert.Equal(t, "a@x.com", identity.Email())
	})

	t.Run("rejects tokens for users that no longer resolve", func(t *testing.T) {
		provider := &MockIdentityProvider{}
		provider.On("FindIdentityByID", ctx, mock.Anything).
			Return(nil, inventory.ErrIdentityNotFound)

		auther := inventory.NewAuthenticator(provider, testConfig())

		token, err := auther.TokenService().Generate(testIdentity{id: 99, email: "ghost@x.com"})
		require.NoError(t, err)

		_, err = auther.Authenticate(ctx, token)
		assertTextCode(t, err, "IDENTITY_NOT_FOUND")
	})

	t.Run("rejects garbage tokens without hitting the provider", func(t *testing.T) {
		provider := &MockIdentityProvider{}
		auther := inventory.NewAuthenticator(provider, testConfig())

		_, err := auther.Authenticate(ctx, "garbage")
		assertTextCode(t, err, "TOKEN_MALFORMED")

		provider.AssertNotCalled(t, "FindIdentityByID", mock.Anything, mock.Anything)
	})
}
