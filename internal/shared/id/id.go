// Package id generates sortable identifiers for batch runs.
//
// Batch IDs are prefixed ULIDs (batch_01J...). They sort by creation time,
// so report files and log lines from successive batches order naturally.
// Per-table run IDs stay UUIDs; a batch ID groups the runs of one
// invocation.
package id

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// BatchPrefix tags batch identifiers.
const BatchPrefix = "batch"

// ErrBadPrefix is returned when an ID lacks its expected prefix.
var ErrBadPrefix = errors.New("id has wrong prefix")

// BatchID identifies one batch invocation.
type BatchID string

func (id BatchID) String() string { return string(id) }

// Time returns the creation time encoded in the ID.
func (id BatchID) Time() (time.Time, error) {
	raw, ok := strings.CutPrefix(string(id), BatchPrefix+"_")
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadPrefix, id)
	}
	return Timestamp(raw)
}

// Generator produces monotonic ULIDs. Safe for concurrent use.
type Generator struct {
	mu      sync.Mutex
	entropy io.Reader
	now     func() time.Time
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the process-wide generator.
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator backed by crypto/rand. IDs created in the
// same millisecond are strictly increasing.
func NewGenerator() *Generator {
	return NewGeneratorWithEntropy(ulid.Monotonic(rand.Reader, 0), time.Now)
}

// NewGeneratorWithEntropy creates a generator with a custom entropy source
// and clock, for deterministic tests.
func NewGeneratorWithEntropy(entropy io.Reader, now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{entropy: entropy, now: now}
}

// Generate creates a new ULID.
func (g *Generator) Generate() ulid.ULID {
	g.mu.Lock()
	defer g.mu.Unlock()

	return ulid.MustNew(ulid.Timestamp(g.now()), g.entropy)
}

// GenerateWithPrefix creates a prefix_ULID string.
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return prefix + "_" + g.Generate().String()
}

// NewBatchID generates a batch ID from the default generator.
func NewBatchID() BatchID {
	return BatchID(Default().GenerateWithPrefix(BatchPrefix))
}

// IsValid reports whether s is a bare ULID.
func IsValid(s string) bool {
	_, err := ulid.Parse(s)
	return err == nil
}

// Timestamp extracts the timestamp from a bare ULID string.
func Timestamp(s string) (time.Time, error) {
	parsed, err := ulid.Parse(s)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(parsed.Time()), nil
}
