package validator

import (
	"container/list"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint produces a stable key for a statement: whitespace-collapsed,
// lowercased text hashed with xxhash. Structurally identical queries that
// differ only in formatting share a fingerprint.
func Fingerprint(sql string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(sql), " "))
	return strconv.FormatUint(xxhash.Sum64String(normalized), 16)
}

// DedupFilter decides whether a statement fingerprint should be validated or
// was already validated within the TTL window. It is the only shared mutable
// state in the pipeline and is safe for concurrent use.
type DedupFilter struct {
	mu      sync.Mutex
	entries map[string]*list.Element
	order   *list.List
	maxSize int
	ttl     time.Duration
	now     func() time.Time
}

type dedupEntry struct {
	key  string
	seen time.Time
}

// NewDedupFilter builds a filter holding at most maxSize fingerprints, each
// suppressing re-validation for ttl.
func NewDedupFilter(maxSize int, ttl time.Duration) *DedupFilter {
	return &DedupFilter{
		entries: make(map[string]*list.Element),
		order:   list.New(),
		maxSize: maxSize,
		ttl:     ttl,
		now:     time.Now,
	}
}

// ShouldCheck reports whether the fingerprint needs validation. The first
// sighting, and any sighting after the TTL expired, returns true and
// refreshes the entry; a sighting within the TTL returns false.
func (f *DedupFilter) ShouldCheck(fingerprint string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.now()
	if el, ok := f.entries[fingerprint]; ok {
		entry := el.Value.(*dedupEntry)
		if now.Sub(entry.seen) < f.ttl {
			f.order.MoveToFront(el)
			return false
		}
		entry.seen = now
		f.order.MoveToFront(el)
		return true
	}

	el := f.order.PushFront(&dedupEntry{key: fingerprint, seen: now})
	f.entries[fingerprint] = el
	for f.order.Len() > f.maxSize {
		oldest := f.order.Back()
		f.order.Remove(oldest)
		delete(f.entries, oldest.Value.(*dedupEntry).key)
	}
	return true
}
