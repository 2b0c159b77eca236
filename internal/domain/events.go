package domain

import "time"

// Event types
const (
	EventTypeMovementPosted    = "movement.posted"
	EventTypeMovementEdited    = "movement.edited"
	EventTypeMovementDeleted   = "movement.deleted"
	EventTypeMovementRectified = "movement.rectified"
	EventTypeTransferPosted    = "transfer.posted"
	EventTypeAccountCreated    = "account.created"
	EventTypeAccountDeleted    = "account.deleted"
	EventTypeBudgetCreated     = "budget.created"
)

// Aggregate types
const (
	AggregateTypeMovement = "movement"
	AggregateTypeTransfer = "transfer"
	AggregateTypeAccount  = "account"
	AggregateTypeBudget   = "budget"
)

// OutboxEvent is an event written in the same transaction as the change it
// describes and published asynchronously.
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// MovementEvent payload
type MovementEvent struct {
	MovementID  string `json:"movement_id"`
	OwnerID     string `json:"owner_id"`
	AccountID   string `json:"account_id"`
	Kind        string `json:"kind"`
	Amount      string `json:"amount"`
	CategoryID  string `json:"category_id"`
	OccurredAt  string `json:"occurred_at"`
	OriginalID  string `json:"original_movement_id,omitempty"`
	TransferID  string `json:"transfer_id,omitempty"`
	Counterpart string `json:"counterpart_account_id,omitempty"`
}

// NewMovementEvent flattens m into an event payload.
func NewMovementEvent(m *Movement) MovementEvent {
	ev := MovementEvent{
		MovementID: m.ID,
		OwnerID:    m.OwnerID,
		AccountID:  m.AccountID,
		Kind:       string(m.Kind),
		Amount:     m.Amount.String(),
		CategoryID: m.CategoryID,
		OccurredAt: m.OccurredAt.UTC().Format(time.RFC3339Nano),
	}
	if id, ok := m.OriginalMovementID(); ok {
		ev.OriginalID = id
	}
	if leg, ok := m.Transfer(); ok {
		ev.TransferID = leg.TransferID
		ev.Counterpart = leg.CounterpartAccountID
	}
	return ev
}

// Map converts the payload into the outbox representation.
func (e MovementEvent) Map() map[string]any {
	out := map[string]any{
		"movement_id": e.MovementID,
		"owner_id":    e.OwnerID,
		"account_id":  e.AccountID,
		"kind":        e.Kind,
		"amount":      e.Amount,
		"category_id": e.CategoryID,
		"occurred_at": e.OccurredAt,
	}
	if e.OriginalID != "" {
		out["original_movement_id"] = e.OriginalID
	}
	if e.TransferID != "" {
		out["transfer_id"] = e.TransferID
		out["counterpart_account_id"] = e.Counterpart
	}
	return out
}
