package memory

import (
	"context"
	"sort"
	"time"

	"github.com/iho/budgetledger/internal/domain"
	"github.com/iho/budgetledger/internal/usecase"
)

// OutboxRepository implements usecase.OutboxRepository.
type OutboxRepository struct {
	store *Store
}

// NewOutboxRepository creates a new OutboxRepository.
func NewOutboxRepository(store *Store) *OutboxRepository {
	return &OutboxRepository{store: store}
}

// Create stores an event inside tx.
func (r *OutboxRepository) Create(_ context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	st, err := txState(tx)
	if err != nil {
		return err
	}
	e := *event
	st.outbox[e.ID] = &e
	return nil
}

// GetUnpublished returns up to limit unpublished events, oldest first.
func (r *OutboxRepository) GetUnpublished(_ context.Context, limit int) ([]*domain.OutboxEvent, error) {
	out := make([]*domain.OutboxEvent, 0)
	r.store.read(func(st *state) {
		for _, e := range st.outbox {
			if !e.Published {
				c := *e
				out = append(out, &c)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return paginate(out, limit, 0), nil
}

// MarkPublished flags an event as published.
func (r *OutboxRepository) MarkPublished(_ context.Context, id string, publishedAt time.Time) error {
	return r.store.write(func(st *state) error {
		if e, ok := st.outbox[id]; ok {
			at := publishedAt
			e.Published = true
			e.PublishedAt = &at
		}
		return nil
	})
}

// DeletePublished removes events published before the cutoff.
func (r *OutboxRepository) DeletePublished(_ context.Context, before time.Time) error {
	return r.store.write(func(st *state) error {
		for id, e := range st.outbox {
			if e.Published && e.PublishedAt != nil && e.PublishedAt.Before(before) {
				delete(st.outbox, id)
			}
		}
		return nil
	})
}
