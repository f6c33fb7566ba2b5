package repository

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/cloud-wave-best-zizon/till-service/internal/domain"
	"github.com/google/btree"
)

type ledgerEntry struct {
	at  int64 // unix nanos
	seq uint64
	tx  *domain.Transaction
}

func lessEntry(a, b ledgerEntry) bool {
	if a.at != b.at {
		return a.at < b.at
	}
	return a.seq < b.seq
}

// LedgerRepository is the append-only transaction log. The slice keeps
// append order; the btree indexes entries by timestamp for day lookups.
type LedgerRepository struct {
	mu      sync.RWMutex
	entries []*domain.Transaction
	byTime  *btree.BTreeG[ledgerEntry]
	ids     map[string]struct{}
	seq     uint64

	now      func() time.Time
	idSource func() int
	loc      *time.Location
}

type LedgerOption func(*LedgerRepository)

func WithClock(now func() time.Time) LedgerOption {
	return func(r *LedgerRepository) { r.now = now }
}

// WithIDSource overrides the random number behind TX-###### ids.
func WithIDSource(next func() int) LedgerOption {
	return func(r *LedgerRepository) { r.idSource = next }
}

func WithLocation(loc *time.Location) LedgerOption {
	return func(r *LedgerRepository) { r.loc = loc }
}

func NewLedgerRepository(opts ...LedgerOption) *LedgerRepository {
	r := &LedgerRepository{
		byTime:   btree.NewG[ledgerEntry](16, lessEntry),
		ids:      make(map[string]struct{}),
		now:      time.Now,
		idSource: func() int { return rand.IntN(1000000) },
		loc:      time.Local,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Append assigns the id and timestamp and records the transaction.
// Colliding ids are redrawn.
func (r *LedgerRepository) Append(_ context.Context, tx domain.Transaction) (domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, err := r.nextID()
	if err != nil {
		return domain.Transaction{}, err
	}
	tx.ID = id
	tx.Timestamp = r.now()

	stored := tx
	r.seq++
	r.entries = append(r.entries, &stored)
	r.byTime.ReplaceOrInsert(ledgerEntry{at: tx.Timestamp.UnixNano(), seq: r.seq, tx: &stored})
	r.ids[id] = struct{}{}

	return tx, nil
}

// All returns every transaction, most recent first.
func (r *LedgerRepository) All(_ context.Context) []domain.Transaction {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Transaction, 0, len(r.entries))
	for i := len(r.entries) - 1; i >= 0; i-- {
		out = append(out, *r.entries[i])
	}
	return out
}

// ForDay returns the transactions within [midnight, next midnight) of the
// local day containing dayStart, most recent first.
func (r *LedgerRepository) ForDay(_ context.Context, dayStart time.Time) []domain.Transaction {
	start := domain.StartOfDay(dayStart, r.loc)
	end := start.AddDate(0, 0, 1)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Transaction
	r.byTime.DescendLessOrEqual(ledgerEntry{at: end.UnixNano() - 1, seq: ^uint64(0)}, func(e ledgerEntry) bool {
		if e.at < start.UnixNano() {
			return false
		}
		out = append(out, *e.tx)
		return true
	})
	return out
}

func (r *LedgerRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}

func (r *LedgerRepository) Location() *time.Location {
	return r.loc
}

func (r *LedgerRepository) nextID() (string, error) {
	for range maxIDAttempts {
		id := fmt.Sprintf("TX-%06d", r.idSource()%1000000)
		if _, taken := r.ids[id]; !taken {
			return id, nil
		}
	}
	return "", fmt.Errorf("transaction id: %w", domain.ErrDuplicateKey)
}
