package postgres

import (
	"crypto/rand"
	"sync"

	"github.com/oklog/ulid/v2"
)

// ULIDGenerator generates ULIDs that sort in creation order, also within the
// same millisecond, so id is a stable tie-breaker for time-ordered listings.
type ULIDGenerator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{entropy: ulid.Monotonic(rand.Reader, 0)}
}

// Generate generates a new ULID.
func (g *ULIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Now(), g.entropy).String()
}
