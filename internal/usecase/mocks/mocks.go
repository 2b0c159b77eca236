package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/budgetledger/internal/domain"
	"github.com/iho/budgetledger/internal/usecase"
)

// AccountRepositoryStub is a map-backed implementation of AccountRepository
// whose methods can be overridden per test.
type AccountRepositoryStub struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc            func(ctx context.Context, tx usecase.Transaction, account *domain.Account) error
	GetByIDFunc           func(ctx context.Context, ownerID, id string) (*domain.Account, error)
	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ownerID string, ids []string) ([]*domain.Account, error)
	LockOwnerFunc         func(ctx context.Context, tx usecase.Transaction, ownerID string) error
	CountByOwnerFunc      func(ctx context.Context, tx usecase.Transaction, ownerID string) (int, error)
	AdjustBalanceFunc     func(ctx context.Context, tx usecase.Transaction, id string, delta decimal.Decimal, updatedAt time.Time) (decimal.Decimal, error)
	DeleteFunc            func(ctx context.Context, tx usecase.Transaction, id string) error
	ListFunc              func(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

func NewAccountRepositoryStub(accounts ...*domain.Account) *AccountRepositoryStub {
	s := &AccountRepositoryStub{accounts: make(map[string]*domain.Account)}
	for _, a := range accounts {
		s.accounts[a.ID] = a
	}
	return s
}

func (m *AccountRepositoryStub) Create(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *AccountRepositoryStub) GetByID(ctx context.Context, ownerID, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, ownerID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok && acc.OwnedBy(ownerID) {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *AccountRepositoryStub) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ownerID string, ids []string) ([]*domain.Account, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ownerID, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, id := range ids {
		if acc, ok := m.accounts[id]; ok && acc.OwnedBy(ownerID) {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

func (m *AccountRepositoryStub) LockOwner(ctx context.Context, tx usecase.Transaction, ownerID string) error {
	if m.LockOwnerFunc != nil {
		return m.LockOwnerFunc(ctx, tx, ownerID)
	}
	return nil
}

func (m *AccountRepositoryStub) CountByOwner(ctx context.Context, tx usecase.Transaction, ownerID string) (int, error) {
	if m.CountByOwnerFunc != nil {
		return m.CountByOwnerFunc(ctx, tx, ownerID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, acc := range m.accounts {
		if acc.OwnedBy(ownerID) {
			n++
		}
	}
	return n, nil
}

func (m *AccountRepositoryStub) AdjustBalance(ctx context.Context, tx usecase.Transaction, id string, delta decimal.Decimal, updatedAt time.Time) (decimal.Decimal, error) {
	if m.AdjustBalanceFunc != nil {
		return m.AdjustBalanceFunc(ctx, tx, id, delta, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[id]
	if !ok {
		return decimal.Zero, domain.ErrAccountNotFound
	}
	acc.Balance = acc.Balance.Add(delta)
	acc.UpdatedAt = updatedAt
	return acc.Balance, nil
}

func (m *AccountRepositoryStub) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(m.accounts, id)
	return nil
}

func (m *AccountRepositoryStub) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Account, error) {
	all, err := m.List(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	var accounts []*domain.Account
	for _, acc := range all {
		if acc.OwnedBy(ownerID) {
			accounts = append(accounts, acc)
		}
	}
	return window(accounts, limit, offset), nil
}

func (m *AccountRepositoryStub) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	accounts := make([]*domain.Account, 0, len(m.accounts))
	for _, acc := range m.accounts {
		accounts = append(accounts, acc)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return window(accounts, limit, offset), nil
}

func window[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// OutboxRepositoryStub records created events.
type OutboxRepositoryStub struct {
	mu     sync.Mutex
	Events []*domain.OutboxEvent

	CreateFunc func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
}

func NewOutboxRepositoryStub() *OutboxRepositoryStub {
	return &OutboxRepositoryStub{}
}

func (m *OutboxRepositoryStub) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
	return nil
}

func (m *OutboxRepositoryStub) GetUnpublished(_ context.Context, limit int) ([]*domain.OutboxEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.OutboxEvent
	for _, e := range m.Events {
		if !e.Published {
			out = append(out, e)
		}
	}
	return window(out, limit, 0), nil
}

func (m *OutboxRepositoryStub) MarkPublished(_ context.Context, id string, publishedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Events {
		if e.ID == id {
			at := publishedAt
			e.Published = true
			e.PublishedAt = &at
		}
	}
	return nil
}

func (m *OutboxRepositoryStub) DeletePublished(_ context.Context, before time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.Events[:0]
	for _, e := range m.Events {
		if !e.Published || e.PublishedAt == nil || !e.PublishedAt.Before(before) {
			kept = append(kept, e)
		}
	}
	m.Events = kept
	return nil
}

// EventTypes returns the types of the recorded events in order.
func (m *OutboxRepositoryStub) EventTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.Events))
	for _, e := range m.Events {
		out = append(out, e.EventType)
	}
	return out
}

// TransactionManagerStub is a mock implementation of TransactionManager.
type TransactionManagerStub struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewTransactionManagerStub() *TransactionManagerStub {
	return &TransactionManagerStub{}
}

func (m *TransactionManagerStub) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &TransactionStub{}, nil
}

// TransactionStub is a mock implementation of Transaction.
type TransactionStub struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack int
}

func (m *TransactionStub) Commit(ctx context.Context) error {
	m.Committed = true
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *TransactionStub) Rollback(ctx context.Context) error {
	m.RolledBack++
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// IDGeneratorStub returns prefix-1, prefix-2, ... unless GenerateFunc is set.
type IDGeneratorStub struct {
	GenerateFunc func() string
	Prefix       string
	counter      int
	mu           sync.Mutex
}

func NewIDGeneratorStub() *IDGeneratorStub {
	return &IDGeneratorStub{Prefix: "id"}
}

func (m *IDGeneratorStub) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("%s-%04d", m.Prefix, m.counter)
}

// ClockStub is a settable clock.
type ClockStub struct {
	mu  sync.Mutex
	now time.Time
}

func NewClockStub(now time.Time) *ClockStub {
	return &ClockStub{now: now}
}

func (c *ClockStub) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to t.
func (c *ClockStub) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance moves the clock forward by d.
func (c *ClockStub) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// IdempotencyStoreStub is a mock implementation of IdempotencyStore.
type IdempotencyStoreStub struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewIdempotencyStoreStub() *IdempotencyStoreStub {
	return &IdempotencyStoreStub{
		data: make(map[string][]byte),
	}
}

func (m *IdempotencyStoreStub) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *IdempotencyStoreStub) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}
