// Package memory is an in-process implementation of every ledger repository.
// It backs STORE_DRIVER=memory and the use-case test suites.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/iho/budgetledger/internal/domain"
	"github.com/iho/budgetledger/internal/usecase"
)

// ErrTxClosed is returned when committing a transaction that already ended.
var ErrTxClosed = errors.New("transaction already closed")

// Store holds the committed state. Transactions are serialized: Begin takes the
// writer lock and works on a private copy that Commit swaps in.
type Store struct {
	writer sync.Mutex

	mu    sync.RWMutex
	state *state
}

type state struct {
	accounts  map[string]*domain.Account
	movements map[string]*domain.Movement
	budgets   map[string]*domain.Budget
	outbox    map[string]*domain.OutboxEvent
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		state: &state{
			accounts:  make(map[string]*domain.Account),
			movements: make(map[string]*domain.Movement),
			budgets:   make(map[string]*domain.Budget),
			outbox:    make(map[string]*domain.OutboxEvent),
		},
	}
}

func (st *state) clone() *state {
	out := &state{
		accounts:  make(map[string]*domain.Account, len(st.accounts)),
		movements: make(map[string]*domain.Movement, len(st.movements)),
		budgets:   make(map[string]*domain.Budget, len(st.budgets)),
		outbox:    make(map[string]*domain.OutboxEvent, len(st.outbox)),
	}
	for k, v := range st.accounts {
		out.accounts[k] = cloneAccount(v)
	}
	for k, v := range st.movements {
		out.movements[k] = cloneMovement(v)
	}
	for k, v := range st.budgets {
		out.budgets[k] = cloneBudget(v)
	}
	for k, v := range st.outbox {
		e := *v
		out.outbox[k] = &e
	}
	return out
}

// Tx is a transaction on the store.
type Tx struct {
	store *Store
	state *state
	done  bool
}

// Commit publishes the transaction's changes.
func (t *Tx) Commit(ctx context.Context) error {
	if t.done {
		return ErrTxClosed
	}
	if err := ctx.Err(); err != nil {
		t.end()
		return domain.NewTransientStoreError("commit", err)
	}

	t.store.mu.Lock()
	t.store.state = t.state
	t.store.mu.Unlock()

	t.end()
	return nil
}

// Rollback discards the transaction's changes. Rolling back an ended
// transaction is a no-op.
func (t *Tx) Rollback(_ context.Context) error {
	if t.done {
		return nil
	}
	t.end()
	return nil
}

func (t *Tx) end() {
	t.done = true
	t.state = nil
	t.store.writer.Unlock()
}

// TxManager begins transactions on a Store.
type TxManager struct {
	store *Store
}

// NewTxManager creates a new TxManager.
func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

// Begin starts a transaction, waiting for the running one to finish.
func (m *TxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	acquired := make(chan struct{})
	go func() {
		m.store.writer.Lock()
		close(acquired)
	}()

	select {
	case <-acquired:
	case <-ctx.Done():
		// The lock is released as soon as the waiter gets it.
		go func() {
			<-acquired
			m.store.writer.Unlock()
		}()
		return nil, domain.NewTransientStoreError("begin transaction", ctx.Err())
	}

	m.store.mu.RLock()
	snapshot := m.store.state.clone()
	m.store.mu.RUnlock()

	return &Tx{store: m.store, state: snapshot}, nil
}

// txState returns the working copy of tx. Decorated transactions are unwrapped
// through an Unwrap() usecase.Transaction method.
func txState(tx usecase.Transaction) (*state, error) {
	for {
		w, ok := tx.(interface{ Unwrap() usecase.Transaction })
		if !ok {
			break
		}
		tx = w.Unwrap()
	}

	t, ok := tx.(*Tx)
	if !ok {
		return nil, fmt.Errorf("memory: unexpected transaction type %T", tx)
	}
	if t.done {
		return nil, ErrTxClosed
	}
	return t.state, nil
}

// read runs fn against the committed state.
func (s *Store) read(fn func(st *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.state)
}

// write runs fn as its own transaction, for writes that are not part of a
// caller's transaction.
func (s *Store) write(fn func(st *state) error) error {
	s.writer.Lock()
	defer s.writer.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

func cloneAccount(a *domain.Account) *domain.Account {
	c := *a
	return &c
}

func cloneMovement(m *domain.Movement) *domain.Movement {
	c := *m
	if m.RectifyingMovementID != nil {
		id := *m.RectifyingMovementID
		c.RectifyingMovementID = &id
	}
	return &c
}

func cloneBudget(b *domain.Budget) *domain.Budget {
	c := *b
	return &c
}
