package cache

import (
	"sync"
	"sync/atomic"

	"github.com/dot5enko/pst-blocks/block"
)

type BlockCacheItem struct {
	Block    block.Block
	DiskSize int

	RtStats *CacheStats

	seq uint64
}

// BlockCache keeps decoded blocks by id. Decoded blocks are immutable so
// the same value is handed to every reader. When full, the oldest entry is
// evicted.
type BlockCache struct {
	storage       map[block.BID]*BlockCacheItem
	storageLocker sync.RWMutex

	maxItems int
	seq      uint64

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// NewBlockCache creates a cache of at most maxItems blocks, zero disables caching.
func NewBlockCache(maxItems int) *BlockCache {
	return &BlockCache{
		storage:  make(map[block.BID]*BlockCacheItem),
		maxItems: maxItems,
	}
}

func (c *BlockCache) Get(bid block.BID) (block.Block, bool) {

	c.storageLocker.RLock()
	defer c.storageLocker.RUnlock()

	if item, ok := c.storage[bid]; ok {
		item.RtStats.Reads.Add(1)
		c.hits.Add(1)
		return item.Block, true
	}

	c.misses.Add(1)
	return nil, false
}

func (c *BlockCache) Put(b block.Block, diskSize int) {
	if c.maxItems <= 0 {
		return
	}

	c.storageLocker.Lock()
	defer c.storageLocker.Unlock()

	bid := b.BREF().BID

	if _, ok := c.storage[bid]; !ok && len(c.storage) >= c.maxItems {
		c.evictOldest()
	}

	c.seq++
	c.storage[bid] = &BlockCacheItem{
		Block:    b,
		DiskSize: diskSize,
		RtStats:  newCacheStats(),
		seq:      c.seq,
	}
}

// Item returns the cache entry of bid without counting a read.
func (c *BlockCache) Item(bid block.BID) (*BlockCacheItem, bool) {
	c.storageLocker.RLock()
	defer c.storageLocker.RUnlock()

	item, ok := c.storage[bid]
	return item, ok
}

func (c *BlockCache) Remove(bid block.BID) {
	c.storageLocker.Lock()
	defer c.storageLocker.Unlock()

	delete(c.storage, bid)
}

// must be called with storageLocker held
func (c *BlockCache) evictOldest() {
	var (
		oldestBid  block.BID
		oldestItem *BlockCacheItem
	)

	for bid, item := range c.storage {
		if oldestItem == nil || item.seq < oldestItem.seq {
			oldestBid = bid
			oldestItem = item
		}
	}

	if oldestItem != nil {
		delete(c.storage, oldestBid)
		c.evictions.Add(1)
	}
}

func (c *BlockCache) Stats() Stats {
	c.storageLocker.RLock()
	items := len(c.storage)
	c.storageLocker.RUnlock()

	return Stats{
		Items:     items,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}
