package domain

// Reserved categories used by transfer legs.
const (
	CategoryTransferOut      = "transfer-out"
	CategoryTransferReceived = "transfer-received"
)

// IsTransferCategory reports whether id is one of the reserved transfer categories.
func IsTransferCategory(id string) bool {
	return id == CategoryTransferOut || id == CategoryTransferReceived
}
