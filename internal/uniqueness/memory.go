package uniqueness

import (
	"context"
	"fmt"
	"sync"

	"github.com/jonathan/persona-forge/internal/memstore"
)

// MaxEntries bounds the similarity memory; the oldest entry is evicted first.
const MaxEntries = 20

// Memory is the shared, persisted list of accepted persona text blobs.
// MaxSimilarity followed by Remember must be treated as one read-modify-write
// under concurrent synthesis runs; Memory serializes both behind one mutex.
type Memory struct {
	mu      sync.Mutex
	entries []string
	store   memstore.Store
}

// NewMemory loads the persisted entries from store. Entries beyond MaxEntries
// are trimmed oldest-first on load.
func NewMemory(ctx context.Context, store memstore.Store) (*Memory, error) {
	entries, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load similarity memory: %w", err)
	}
	if len(entries) > MaxEntries {
		entries = entries[len(entries)-MaxEntries:]
	}
	return &Memory{entries: entries, store: store}, nil
}

// MaxSimilarity returns the highest Jaccard similarity between text and any
// remembered entry, or 0 for an empty memory.
func (m *Memory) MaxSimilarity(text string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	max := 0.0
	for _, entry := range m.entries {
		if sim := Jaccard(text, entry); sim > max {
			max = sim
		}
	}
	return max
}

// TooSimilar reports whether text crosses the similarity threshold against
// any remembered entry.
func (m *Memory) TooSimilar(text string) bool {
	return m.MaxSimilarity(text) >= SimilarityThreshold
}

// Remember appends text, evicts the oldest entry past MaxEntries, and
// persists the updated list.
func (m *Memory) Remember(ctx context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries, text)
	if len(m.entries) > MaxEntries {
		m.entries = m.entries[len(m.entries)-MaxEntries:]
	}
	if err := m.store.Save(ctx, m.entries); err != nil {
		return fmt.Errorf("failed to persist similarity memory: %w", err)
	}
	return nil
}

// Len returns the current number of remembered entries.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Entries returns a copy of the remembered entries, oldest first.
func (m *Memory) Entries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.entries))
	copy(out, m.entries)
	return out
}
