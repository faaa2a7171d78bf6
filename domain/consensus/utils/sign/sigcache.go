package sign

import (
	"sync"

	"github.com/ghostdag-labs/ghostdagd/domain/consensus/model/externalapi"
)

// SigCache amortises re-verification during reorg (§5) by caching the
// verdict for a (sighash, pubkey, signature) triple. Eviction is random
// once the cache is full -- acceptable since the store (script execution)
// remains the authority on a miss, as §5 prescribes for every cache in
// this design.
type SigCache struct {
	mu       sync.Mutex
	entries  map[sigCacheKey]bool
	capacity int
}

type sigCacheKey struct {
	sigHash   externalapi.DomainHash
	pubKey    string
	signature string
}

// NewSigCache creates a SigCache bounded to capacity entries.
func NewSigCache(capacity int) *SigCache {
	return &SigCache{entries: make(map[sigCacheKey]bool, capacity), capacity: capacity}
}

// Get returns the cached verdict, if any.
func (c *SigCache) Get(sigHash *externalapi.DomainHash, pubKey, signature []byte) (valid bool, found bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[sigCacheKey{*sigHash, string(pubKey), string(signature)}]
	return v, ok
}

// Add records a verdict, evicting a random entry first if at capacity.
func (c *SigCache) Add(sigHash *externalapi.DomainHash, pubKey, signature []byte, valid bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) >= c.capacity {
		for k := range c.entries {
			delete(c.entries, k)
			break
		}
	}
	c.entries[sigCacheKey{*sigHash, string(pubKey), string(signature)}] = valid
}
