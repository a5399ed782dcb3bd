package ids

import (
	"strings"

	"github.com/google/uuid"
)

// matchNamespace scopes derived match IDs
var matchNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("kmnx-league:match"))

// Generator issues IDs for newly created records
type Generator interface {
	NewID() string
}

// UUIDGenerator issues random (v4) UUIDs
type UUIDGenerator struct{}

// New creates a new UUIDGenerator
func New() *UUIDGenerator {
	return &UUIDGenerator{}
}

// NewID returns a random UUID string
func (g *UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// Derive returns a stable (v5) UUID for the given parts, so a record that
// arrives without an ID gets the same one on every load
func Derive(parts ...string) string {
	return uuid.NewSHA1(matchNamespace, []byte(strings.Join(parts, "\x1f"))).String()
}
