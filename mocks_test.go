package inventory_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	inventory "github.com/goliatone/go-inventory"
)

// testIdentity implements inventory.Identity
type testIdentity struct {
	id    int64
	email string
}

func (t testIdentity) ID() int64     { return t.id }
func (t testIdentity) Email() string { return t.email }

// MockIdentityProvider implements inventory.IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) VerifyIdentity(ctx context.Context, identifier, password string) (inventory.Identity, error) {
	args := m.Called(ctx, identifier, password)
	identity, _ := args.Get(0).(inventory.Identity)
	return identity, args.Error(1)
}

func (m *MockIdentityProvider) FindIdentityByID(ctx context.Context, id int64) (inventory.Identity, error) {
	args := m.Called(ctx, id)
	identity, _ := args.Get(0).(inventory.Identity)
	return identity, args.Error(1)
}

// MockItems implements inventory.Items
type MockItems struct {
	mock.Mock
}

func (m *MockItems) Create(ctx context.Context, item *inventory.Item) (*inventory.Item, error) {
	args := m.Called(ctx, item)
	record, _ := args.Get(0).(*inventory.Item)
	return record, args.Error(1)
}

func (m *MockItems) GetByID(ctx context.Context, id int64) (*inventory.Item, error) {
	args := m.Called(ctx, id)
	record, _ := args.Get(0).(*inventory.Item)
	return record, args.Error(1)
}

func (m *MockItems) List(ctx context.Context, criteria inventory.ListItemsCriteria) ([]*inventory.Item, error) {
	args := m.Called(ctx, criteria)
	records, _ := args.Get(0).([]*inventory.Item)
	return records, args.Error(1)
}

func (m *MockItems) Update(ctx context.Context, id, ownerID int64, name, description string) (*inventory.Item, error) {
	args := m.Called(ctx, id, ownerID, name, description)
	record, _ := args.Get(0).(*inventory.Item)
	return record, args.Error(1)
}

func (m *MockItems) Delete(ctx context.Context, id, ownerID int64) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

func (m *MockItems) Book(ctx context.Context, id int64, bookerEmail string) (*inventory.Item, error) {
	args := m.Called(ctx, id, bookerEmail)
	record, _ := args.Get(0).(*inventory.Item)
	return record, args.Error(1)
}

func (m *MockItems) Return(ctx context.Context, id int64, bookerEmail string) (*inventory.Item, error) {
	args := m.Called(ctx, id, bookerEmail)
	record, _ := args.Get(0).(*inventory.Item)
	return record, args.Error(1)
}

// MockLogger implements inventory.Logger
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Info(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Warn(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Error(format string, args ...any) {
	m.Called(format, args)
}
