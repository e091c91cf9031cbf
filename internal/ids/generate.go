package ids

import (
	"crypto/sha256"
	"encoding/base32"
	"fmt"
	"sync"

	internalstrings "github.com/amonks/routine/internal/strings"
	"github.com/google/uuid"
)

// DefaultLength is the standard length for generated IDs.
const DefaultLength = 10

// Generate creates a deterministic, lowercase base32 ID derived from input.
func Generate(input string, length int) string {
	hash := sha256.Sum256([]byte(input))
	encoded := base32.StdEncoding.EncodeToString(hash[:])
	if length <= 0 {
		return ""
	}
	if length > len(encoded) {
		length = len(encoded)
	}
	return internalstrings.NormalizeLower(encoded[:length])
}

// Generator produces short unique IDs. Each ID hashes a version 7 UUID
// (millisecond time plus random bits) together with a per-generator sequence
// number.
type Generator struct {
	mu     sync.Mutex
	seq    uint64
	length int
	newV7  func() (uuid.UUID, error)
}

// NewGenerator returns a Generator producing IDs of DefaultLength.
func NewGenerator() *Generator {
	return &Generator{length: DefaultLength, newV7: uuid.NewV7}
}

// NewID returns a fresh ID.
func (g *Generator) NewID() string {
	g.mu.Lock()
	g.seq++
	seq := g.seq
	g.mu.Unlock()

	u, err := g.newV7()
	if err != nil {
		u = uuid.New()
	}
	return Generate(fmt.Sprintf("%s-%d", u, seq), g.length)
}

// Sequence produces predictable IDs ("<prefix>1", "<prefix>2", ...).
// It is meant for tests and fixtures.
type Sequence struct {
	mu     sync.Mutex
	prefix string
	next   int
}

// NewSequence returns a Sequence using prefix.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

// NewID returns the next ID in the sequence.
func (s *Sequence) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return fmt.Sprintf("%s%d", s.prefix, s.next)
}
