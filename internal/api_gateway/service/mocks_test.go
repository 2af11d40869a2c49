package service

import (
	"context"

	"github.com/purse-ledger/internal/domain/ledger"
	"github.com/purse-ledger/internal/domain/settings"
	"github.com/stretchr/testify/mock"
)

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Append(ctx context.Context, tx ledger.NewTransaction) (ledger.Transaction, error) {
	args := m.Called(ctx, tx)
	return args.Get(0).(ledger.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) List(ctx context.Context) ([]ledger.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerRepository) Update(ctx context.Context, id string, update ledger.Update) (bool, error) {
	args := m.Called(ctx, id, update)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerRepository) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockResettingLedgerRepository also implements ledger.Resetter
type MockResettingLedgerRepository struct {
	MockLedgerRepository
}

func (m *MockResettingLedgerRepository) Reset(ctx context.Context, tx ledger.NewTransaction) (ledger.Transaction, error) {
	args := m.Called(ctx, tx)
	return args.Get(0).(ledger.Transaction), args.Error(1)
}

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Load(ctx context.Context) (settings.Settings, error) {
	args := m.Called(ctx)
	return args.Get(0).(settings.Settings), args.Error(1)
}

func (m *MockSettingsRepository) Save(ctx context.Context, s settings.Settings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

type MockMessagingProducer struct {
	mock.Mock
}

func (m *MockMessagingProducer) Publish(ctx context.Context, key string, value interface{}) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagingProducer) Close() error {
	args := m.Called()
	return args.Error(0)
}

var (
	_ ledger.Repository   = (*MockLedgerRepository)(nil)
	_ ledger.Resetter     = (*MockResettingLedgerRepository)(nil)
	_ settings.Repository = (*MockSettingsRepository)(nil)
)
